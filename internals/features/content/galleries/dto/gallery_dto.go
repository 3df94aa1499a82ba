package dto

import (
	"time"

	"vetmissions_backend/internals/features/content/galleries/model"

	"gorm.io/datatypes"
)

type CreateGalleryRequest struct {
	Title        string     `json:"title"`
	CoverImage   string     `json:"coverImage"`
	Type         string     `json:"type,omitempty"`
	ExternalLink string     `json:"externalLink,omitempty"`
	Images       []string   `json:"images,omitempty"`
	Category     string     `json:"category,omitempty"`
	Description  string     `json:"description,omitempty"`
	Mission      *string    `json:"mission,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
}

type UpdateGalleryRequest struct {
	Title        *string    `json:"title,omitempty"`
	CoverImage   *string    `json:"coverImage,omitempty"`
	Type         *string    `json:"type,omitempty"`
	ExternalLink *string    `json:"externalLink,omitempty"`
	Images       *[]string  `json:"images,omitempty"`
	Category     *string    `json:"category,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Mission      *string    `json:"mission,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
	Version      *int       `json:"version,omitempty"`
}

func (r CreateGalleryRequest) ToModel(now time.Time) model.GalleryModel {
	m := model.GalleryModel{
		GalleryTitle:        r.Title,
		GalleryCoverImage:   r.CoverImage,
		GalleryType:         r.Type,
		GalleryExternalLink: r.ExternalLink,
		GalleryCategory:     r.Category,
		GalleryDescription:  r.Description,
		GalleryMissionID:    emptyToNil(r.Mission),
	}
	if r.Images != nil {
		m.GalleryImages = datatypes.JSONSlice[string](r.Images)
	}
	if r.Date != nil {
		m.GalleryDate = *r.Date
	}
	m.ApplyDefaults(now)
	return m
}

// ApplyTo merges supplied fields. An empty "mission" clears the reference.
func (r UpdateGalleryRequest) ApplyTo(m *model.GalleryModel) {
	if r.Title != nil {
		m.GalleryTitle = *r.Title
	}
	if r.CoverImage != nil {
		m.GalleryCoverImage = *r.CoverImage
	}
	if r.Type != nil {
		m.GalleryType = *r.Type
	}
	if r.ExternalLink != nil {
		m.GalleryExternalLink = *r.ExternalLink
	}
	if r.Images != nil {
		m.GalleryImages = datatypes.JSONSlice[string](*r.Images)
	}
	if r.Category != nil {
		m.GalleryCategory = *r.Category
	}
	if r.Description != nil {
		m.GalleryDescription = *r.Description
	}
	if r.Mission != nil {
		m.GalleryMissionID = emptyToNil(r.Mission)
	}
	if r.Date != nil {
		m.GalleryDate = *r.Date
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
