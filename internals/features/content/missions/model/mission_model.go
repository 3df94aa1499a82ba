package model

import (
	"time"

	helper "vetmissions_backend/internals/helpers"

	"gorm.io/gorm"
)

const (
	StatusUpcoming  = "Upcoming"
	StatusOngoing   = "Ongoing"
	StatusCompleted = "Completed"
)

func init() {
	helper.RegisterEnum("mission_status", StatusUpcoming, StatusOngoing, StatusCompleted)
}

// MissionStats is embedded; values are free text ("120+", "1,200").
type MissionStats struct {
	Treated string `gorm:"column:treated;type:varchar(64)" json:"treated"`
	Value   string `gorm:"column:value;type:varchar(64)"   json:"value"`
	Bibles  string `gorm:"column:bibles;type:varchar(64)"  json:"bibles"`
}

type MissionModel struct {
	MissionID          string       `gorm:"column:mission_id;primaryKey;type:varchar(24)"   json:"id"`
	MissionTitle       string       `gorm:"column:mission_title;type:varchar(255);not null" json:"title"             validate:"required,max=255"`
	MissionCoverImage  string       `gorm:"column:mission_cover_image;type:text;not null"   json:"missionCoverImage" validate:"required"`
	MissionDescription string       `gorm:"column:mission_description;type:text;not null"   json:"description"       validate:"required"`
	MissionLocation    string       `gorm:"column:mission_location;type:varchar(255)"       json:"location"          validate:"required"`
	MissionDate        string       `gorm:"column:mission_date;type:varchar(100);index"     json:"date"              validate:"required"`
	MissionYear        string       `gorm:"column:mission_year;type:varchar(10)"            json:"year"              validate:"required"`
	MissionStatus      string       `gorm:"column:mission_status;type:varchar(20);not null" json:"status"            validate:"required,mission_status"`
	MissionTeam        string       `gorm:"column:mission_team;type:text"                   json:"team"`
	MissionOutcome     string       `gorm:"column:mission_outcome;type:text"                json:"outcome"`
	MissionStats       MissionStats `gorm:"embedded;embeddedPrefix:mission_stats_"          json:"stats"`

	// incremented on every update; optional precondition for PUT
	MissionVersion   int       `gorm:"column:mission_version;not null" json:"version"`
	MissionCreatedAt time.Time `gorm:"column:mission_created_at;autoCreateTime" json:"createdAt"`
	MissionUpdatedAt time.Time `gorm:"column:mission_updated_at;autoUpdateTime" json:"updatedAt"`
}

func (MissionModel) TableName() string {
	return "missions"
}

// ApplyDefaults fills the insert-time defaults.
func (m *MissionModel) ApplyDefaults(now time.Time) {
	if m.MissionStatus == "" {
		m.MissionStatus = StatusUpcoming
	}
	if m.MissionStats.Treated == "" {
		m.MissionStats.Treated = "0"
	}
	if m.MissionStats.Value == "" {
		m.MissionStats.Value = "0"
	}
	if m.MissionStats.Bibles == "" {
		m.MissionStats.Bibles = "0"
	}
	if m.MissionVersion == 0 {
		m.MissionVersion = 1
	}
	if m.MissionCreatedAt.IsZero() {
		m.MissionCreatedAt = now
		m.MissionUpdatedAt = now
	}
}

func (m *MissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.MissionID == "" {
		m.MissionID = helper.NewObjectID()
	}
	return nil
}

func (m MissionModel) EntityID() string { return m.MissionID }
func (m *MissionModel) SetEntityID(id string) { m.MissionID = id }
