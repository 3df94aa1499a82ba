package model

import (
	"time"

	"gorm.io/datatypes"
)

// SettingModel is one typed key of the flat settings table. The value is the
// JSON serialization of the key's declared type (see Registry).
type SettingModel struct {
	SettingKey     string         `gorm:"column:setting_key;primaryKey;type:varchar(64)" json:"key"`
	SettingType    ValueType      `gorm:"column:setting_type;type:varchar(20);not null"  json:"type"`
	SettingValue   datatypes.JSON `gorm:"column:setting_value;not null"                  json:"value"`
	SettingVersion int            `gorm:"column:setting_version;not null"                json:"version"`

	SettingCreatedAt time.Time `gorm:"column:setting_created_at;autoCreateTime" json:"createdAt"`
	SettingUpdatedAt time.Time `gorm:"column:setting_updated_at;autoUpdateTime" json:"updatedAt"`
}

func (SettingModel) TableName() string {
	return "settings"
}

// ApplyDefaults fills the version and, for registered keys, the type tag.
func (m *SettingModel) ApplyDefaults(now time.Time) {
	if m.SettingType == "" {
		if spec, ok := Lookup(m.SettingKey); ok {
			m.SettingType = spec.Type
		}
	}
	if m.SettingVersion == 0 {
		m.SettingVersion = 1
	}
	if m.SettingCreatedAt.IsZero() {
		m.SettingCreatedAt = now
		m.SettingUpdatedAt = now
	}
}

func (m SettingModel) EntityID() string { return m.SettingKey }
func (m *SettingModel) SetEntityID(id string) { m.SettingKey = id }
