package model

import (
	"strings"
	"time"

	helper "vetmissions_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TypeInternal = "internal"
	TypeExternal = "external"

	DefaultCategory = "General"
)

// Mission reference states, computed on read.
const (
	MissionRefNone     = "none"
	MissionRefLinked   = "linked"
	MissionRefOrphaned = "orphaned"
)

func init() {
	helper.RegisterEnum("gallery_type", TypeInternal, TypeExternal)
	helper.RegisterStructRule(galleryRules, GalleryModel{})
}

// galleryRules: an external item must say where it lives.
func galleryRules(sl validator.StructLevel) {
	m := sl.Current().Interface().(GalleryModel)
	if m.GalleryType == TypeExternal && strings.TrimSpace(m.GalleryExternalLink) == "" {
		sl.ReportError(m.GalleryExternalLink, "externalLink", "GalleryExternalLink", "required_when", "type external")
	}
}

type GalleryModel struct {
	GalleryID           string                      `gorm:"column:gallery_id;primaryKey;type:varchar(24)"     json:"id"`
	GalleryTitle        string                      `gorm:"column:gallery_title;type:varchar(255);not null"   json:"title"        validate:"required,max=255"`
	GalleryCoverImage   string                      `gorm:"column:gallery_cover_image;type:text;not null"     json:"coverImage"   validate:"required"`
	GalleryType         string                      `gorm:"column:gallery_type;type:varchar(10);not null"     json:"type"         validate:"required,gallery_type"`
	GalleryExternalLink string                      `gorm:"column:gallery_external_link;type:text"            json:"externalLink"`
	GalleryImages       datatypes.JSONSlice[string] `gorm:"column:gallery_images"                             json:"images"`
	GalleryCategory     string                      `gorm:"column:gallery_category;type:varchar(100)"         json:"category"     validate:"required"`
	GalleryDescription  string                      `gorm:"column:gallery_description;type:text"              json:"description"`
	GalleryMissionID    *string                     `gorm:"column:gallery_mission_id;type:varchar(24);index"  json:"mission,omitempty"`
	GalleryDate         time.Time                   `gorm:"column:gallery_date;index"                         json:"date"`

	// none | linked | orphaned; never stored
	MissionRef string `gorm:"-" json:"missionRef"`

	GalleryVersion   int       `gorm:"column:gallery_version;not null" json:"version"`
	GalleryCreatedAt time.Time `gorm:"column:gallery_created_at;autoCreateTime" json:"createdAt"`
	GalleryUpdatedAt time.Time `gorm:"column:gallery_updated_at;autoUpdateTime" json:"updatedAt"`
}

func (GalleryModel) TableName() string {
	return "galleries"
}

func (m *GalleryModel) ApplyDefaults(now time.Time) {
	if m.GalleryType == "" {
		m.GalleryType = TypeInternal
	}
	if m.GalleryCategory == "" {
		m.GalleryCategory = DefaultCategory
	}
	if m.GalleryImages == nil {
		m.GalleryImages = datatypes.JSONSlice[string]{}
	}
	if m.GalleryDate.IsZero() {
		m.GalleryDate = now
	}
	if m.GalleryVersion == 0 {
		m.GalleryVersion = 1
	}
}

func (m *GalleryModel) BeforeCreate(tx *gorm.DB) error {
	if m.GalleryID == "" {
		m.GalleryID = helper.NewObjectID()
	}
	return nil
}

func (m *GalleryModel) AfterFind(tx *gorm.DB) error {
	if m.GalleryImages == nil {
		m.GalleryImages = datatypes.JSONSlice[string]{}
	}
	return nil
}

// HasMission reports whether the item points at a mission id.
func (m GalleryModel) HasMission() bool {
	return m.GalleryMissionID != nil && *m.GalleryMissionID != ""
}

func (m GalleryModel) EntityID() string { return m.GalleryID }
func (m *GalleryModel) SetEntityID(id string) { m.GalleryID = id }
