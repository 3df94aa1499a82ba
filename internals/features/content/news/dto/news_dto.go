package dto

import (
	"time"

	"vetmissions_backend/internals/features/content/news/model"
)

// ============================
// Create Request DTO
// ============================

type CreateNewsRequest struct {
	Title       string     `json:"title"`
	Image       string     `json:"image"`
	Content     string     `json:"content"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Author      string     `json:"author,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Status      string     `json:"status,omitempty"`
	Category    string     `json:"category,omitempty"`
	ReadTime    *string    `json:"readTime,omitempty"`
}

// ============================
// Update Request DTO (partial)
// ============================

type UpdateNewsRequest struct {
	Title       *string    `json:"title,omitempty"`
	Image       *string    `json:"image,omitempty"`
	Content     *string    `json:"content,omitempty"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Author      *string    `json:"author,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Category    *string    `json:"category,omitempty"`
	ReadTime    *string    `json:"readTime,omitempty"`
	Version     *int       `json:"version,omitempty"`
}

func (r CreateNewsRequest) ToModel(now time.Time) model.NewsModel {
	m := model.NewsModel{
		NewsTitle:    r.Title,
		NewsImage:    r.Image,
		NewsContent:  r.Content,
		NewsExcerpt:  r.Excerpt,
		NewsAuthor:   r.Author,
		NewsStatus:   r.Status,
		NewsCategory: r.Category,
		NewsReadTime: r.ReadTime,
	}
	if r.PublishedAt != nil {
		m.NewsPublishedAt = *r.PublishedAt
	}
	m.ApplyDefaults(now)
	return m
}

func (r UpdateNewsRequest) ApplyTo(m *model.NewsModel) {
	if r.Title != nil {
		m.NewsTitle = *r.Title
	}
	if r.Image != nil {
		m.NewsImage = *r.Image
	}
	if r.Content != nil {
		m.NewsContent = *r.Content
	}
	if r.Excerpt != nil {
		m.NewsExcerpt = *r.Excerpt
	}
	if r.Author != nil {
		m.NewsAuthor = *r.Author
	}
	if r.PublishedAt != nil {
		m.NewsPublishedAt = *r.PublishedAt
	}
	if r.Status != nil {
		m.NewsStatus = *r.Status
	}
	if r.Category != nil {
		m.NewsCategory = *r.Category
	}
	if r.ReadTime != nil {
		m.NewsReadTime = r.ReadTime
	}
}
