package response

import "cinema-manager/internal/data/entity"

type SettingResponse struct {
	ID    string             `json:"id"`
	Key   string             `json:"key"`
	Type  entity.SettingType `json:"type"`
	Value string             `json:"value"`
}

func SettingToResponse(setting *entity.Setting) SettingResponse {
	return SettingResponse{
		ID:    setting.ID.String(),
		Key:   setting.Key,
		Type:  setting.Type,
		Value: setting.Value,
	}
}

func SettingsToResponse(settings []*entity.Setting) []SettingResponse {
	resp := make([]SettingResponse, 0, len(settings))
	for _, setting := range settings {
		resp = append(resp, SettingToResponse(setting))
	}
	return resp
}
