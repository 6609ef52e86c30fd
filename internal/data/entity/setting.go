package entity

type SettingType string

const (
	SettingTypeNumber SettingType = "number"
	SettingTypeString SettingType = "string"
	SettingTypeJSON   SettingType = "json"
)

// Setting is a typed key/value configuration row. Keys are lowercase and
// unique; Value holds the raw text regardless of type.
type Setting struct {
	BaseNoDelete
	Key   string      `db:"key"`
	Type  SettingType `db:"type"`
	Value string      `db:"value"`
}
