package model

import (
	"time"

	helper "vetmissions_backend/internals/helpers"

	"gorm.io/gorm"
)

const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
	StatusArchived  = "Archived"

	CategoryMissionReport = "Mission Report"
	CategoryPartnership   = "Partnership"
	CategoryMilestone     = "Milestone"
	CategoryEvent         = "Event"
	CategoryGeneral       = "General"

	DefaultAuthor = "Admin"
)

func init() {
	helper.RegisterEnum("news_status", StatusDraft, StatusPublished, StatusArchived)
	helper.RegisterEnum("news_category",
		CategoryMissionReport, CategoryPartnership, CategoryMilestone, CategoryEvent, CategoryGeneral)
}

type NewsModel struct {
	NewsID          string    `gorm:"column:news_id;primaryKey;type:varchar(24)"    json:"id"`
	NewsTitle       string    `gorm:"column:news_title;type:varchar(255);not null"  json:"title"       validate:"required,max=255"`
	NewsImage       string    `gorm:"column:news_image;type:text;not null"          json:"image"       validate:"required"`
	NewsContent     string    `gorm:"column:news_content;type:text;not null"        json:"content"     validate:"required"`
	NewsExcerpt     string    `gorm:"column:news_excerpt;type:text"                 json:"excerpt"`
	NewsAuthor      string    `gorm:"column:news_author;type:varchar(120)"          json:"author"      validate:"required"`
	NewsPublishedAt time.Time `gorm:"column:news_published_at;index"                json:"publishedAt"`
	NewsStatus      string    `gorm:"column:news_status;type:varchar(20);not null"  json:"status"      validate:"required,news_status"`
	NewsCategory    string    `gorm:"column:news_category;type:varchar(40);not null" json:"category"   validate:"required,news_category"`
	NewsReadTime    *string   `gorm:"column:news_read_time;type:varchar(40)"        json:"readTime,omitempty"`

	NewsVersion   int       `gorm:"column:news_version;not null" json:"version"`
	NewsCreatedAt time.Time `gorm:"column:news_created_at;autoCreateTime" json:"createdAt"`
	NewsUpdatedAt time.Time `gorm:"column:news_updated_at;autoUpdateTime" json:"updatedAt"`
}

func (NewsModel) TableName() string {
	return "news"
}

func (m *NewsModel) ApplyDefaults(now time.Time) {
	if m.NewsAuthor == "" {
		m.NewsAuthor = DefaultAuthor
	}
	if m.NewsPublishedAt.IsZero() {
		m.NewsPublishedAt = now
	}
	if m.NewsStatus == "" {
		m.NewsStatus = StatusDraft
	}
	if m.NewsCategory == "" {
		m.NewsCategory = CategoryGeneral
	}
	if m.NewsVersion == 0 {
		m.NewsVersion = 1
	}
}

func (m *NewsModel) BeforeCreate(tx *gorm.DB) error {
	if m.NewsID == "" {
		m.NewsID = helper.NewObjectID()
	}
	return nil
}

func (m NewsModel) EntityID() string { return m.NewsID }
func (m *NewsModel) SetEntityID(id string) { m.NewsID = id }
