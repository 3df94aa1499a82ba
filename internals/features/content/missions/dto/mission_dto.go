package dto

import (
	"time"

	"vetmissions_backend/internals/features/content/missions/model"
)

// ============================
// Create Request DTO
// ============================

type CreateMissionRequest struct {
	Title             string             `json:"title"`
	MissionCoverImage string             `json:"missionCoverImage"`
	Description       string             `json:"description"`
	Location          string             `json:"location"`
	Date              string             `json:"date"`
	Year              string             `json:"year"`
	Status            string             `json:"status,omitempty"`
	Team              string             `json:"team,omitempty"`
	Outcome           string             `json:"outcome,omitempty"`
	Stats             model.MissionStats `json:"stats"`
}

// ============================
// Update Request DTO (partial)
// ============================

type MissionStatsPatch struct {
	Treated *string `json:"treated,omitempty"`
	Value   *string `json:"value,omitempty"`
	Bibles  *string `json:"bibles,omitempty"`
}

type UpdateMissionRequest struct {
	Title             *string            `json:"title,omitempty"`
	MissionCoverImage *string            `json:"missionCoverImage,omitempty"`
	Description       *string            `json:"description,omitempty"`
	Location          *string            `json:"location,omitempty"`
	Date              *string            `json:"date,omitempty"`
	Year              *string            `json:"year,omitempty"`
	Status            *string            `json:"status,omitempty"`
	Team              *string            `json:"team,omitempty"`
	Outcome           *string            `json:"outcome,omitempty"`
	Stats             *MissionStatsPatch `json:"stats,omitempty"`
	Version           *int               `json:"version,omitempty"`
}

// ============================
// Converter
// ============================

func (r CreateMissionRequest) ToModel(now time.Time) model.MissionModel {
	m := model.MissionModel{
		MissionTitle:       r.Title,
		MissionCoverImage:  r.MissionCoverImage,
		MissionDescription: r.Description,
		MissionLocation:    r.Location,
		MissionDate:        r.Date,
		MissionYear:        r.Year,
		MissionStatus:      r.Status,
		MissionTeam:        r.Team,
		MissionOutcome:     r.Outcome,
		MissionStats:       r.Stats,
	}
	m.ApplyDefaults(now)
	return m
}

// ApplyTo merges the supplied fields onto m; absent fields stay untouched.
func (r UpdateMissionRequest) ApplyTo(m *model.MissionModel) {
	setIf(&m.MissionTitle, r.Title)
	setIf(&m.MissionCoverImage, r.MissionCoverImage)
	setIf(&m.MissionDescription, r.Description)
	setIf(&m.MissionLocation, r.Location)
	setIf(&m.MissionDate, r.Date)
	setIf(&m.MissionYear, r.Year)
	setIf(&m.MissionStatus, r.Status)
	setIf(&m.MissionTeam, r.Team)
	setIf(&m.MissionOutcome, r.Outcome)
	if r.Stats != nil {
		setIf(&m.MissionStats.Treated, r.Stats.Treated)
		setIf(&m.MissionStats.Value, r.Stats.Value)
		setIf(&m.MissionStats.Bibles, r.Stats.Bibles)
	}
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
