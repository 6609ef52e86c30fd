package request

type SettingRequest struct {
	Key   string `json:"key" validate:"required,min=2,max=100,lowercase"`
	Type  string `json:"type" validate:"required,oneof=number string json"`
	Value string `json:"value" validate:"required"`
}

type SettingUpdateRequest struct {
	Type  *string `json:"type,omitempty" validate:"omitempty,oneof=number string json"`
	Value *string `json:"value,omitempty"`
}
