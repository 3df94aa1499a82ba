package controller

import (
	"errors"
	"time"

	"vetmissions_backend/internals/cache"
	"vetmissions_backend/internals/features/content/news/dto"
	"vetmissions_backend/internals/features/content/news/model"
	helper "vetmissions_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	newsLabel    = "News"
	newsCacheKey = "news"
)

type NewsController struct {
	DB    *gorm.DB
	Cache *cache.ListCache
	Now   func() time.Time
}

func NewNewsController(db *gorm.DB, lc *cache.ListCache) *NewsController {
	return &NewsController{DB: db, Cache: lc, Now: time.Now}
}

// 📄 GET /api/news (publishedAt desc)
func (ctrl *NewsController) GetAllNews(c *fiber.Ctx) error {
	if items, ok := cache.Get[model.NewsModel](ctrl.Cache, newsCacheKey); ok {
		return helper.JsonList(c, items)
	}

	gen := ctrl.Cache.Generation(newsCacheKey)
	var items []model.NewsModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("news_published_at DESC").
		Find(&items).Error; err != nil {
		return helper.JsonServerError(c, err, "list news")
	}

	cache.Set(ctrl.Cache, newsCacheKey, gen, items)
	return helper.JsonList(c, items)
}

// 🔍 GET /api/news/:id
func (ctrl *NewsController) GetNewsByID(c *fiber.Ctx) error {
	item, err := ctrl.find(c, c.Params("id"))
	if err != nil {
		return helper.FromError(c, err, newsLabel)
	}
	return helper.JsonOK(c, item)
}

// ➕ POST /api/news
func (ctrl *NewsController) CreateNews(c *fiber.Ctx) error {
	var req dto.CreateNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationError(c, []string{"invalid request body"})
	}

	item := req.ToModel(ctrl.Now())
	if err := helper.ValidateStruct(&item); err != nil {
		return helper.FromError(c, err, newsLabel)
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&item).Error; err != nil {
		return helper.JsonServerError(c, err, "create news")
	}

	ctrl.Cache.Invalidate(newsCacheKey)
	return helper.JsonCreated(c, item)
}

// 🔄 PUT /api/news/:id
func (ctrl *NewsController) UpdateNews(c *fiber.Ctx) error {
	item, err := ctrl.find(c, c.Params("id"))
	if err != nil {
		return helper.FromError(c, err, newsLabel)
	}

	var req dto.UpdateNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationError(c, []string{"invalid request body"})
	}
	if req.Version != nil && *req.Version != item.NewsVersion {
		return helper.FromError(c, helper.ErrConflict, newsLabel)
	}

	req.ApplyTo(item)
	if err := helper.ValidateStruct(item); err != nil {
		return helper.FromError(c, err, newsLabel)
	}

	seen := item.NewsVersion
	item.NewsVersion = seen + 1
	res := ctrl.DB.WithContext(c.UserContext()).
		Model(item).
		Where("news_version = ?", seen).
		Select("*").Omit("news_id", "news_created_at").
		Updates(item)
	if res.Error != nil {
		return helper.JsonServerError(c, res.Error, "update news")
	}
	if res.RowsAffected == 0 {
		return helper.FromError(c, helper.ErrConflict, newsLabel)
	}

	ctrl.Cache.Invalidate(newsCacheKey)
	return helper.JsonOK(c, item)
}

// 🗑️ DELETE /api/news/:id
func (ctrl *NewsController) DeleteNews(c *fiber.Ctx) error {
	item, err := ctrl.find(c, c.Params("id"))
	if err != nil {
		return helper.FromError(c, err, newsLabel)
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Delete(&model.NewsModel{}, "news_id = ?", item.NewsID).Error; err != nil {
		return helper.JsonServerError(c, err, "delete news")
	}

	ctrl.Cache.Invalidate(newsCacheKey)
	return helper.JsonDeleted(c)
}

func (ctrl *NewsController) find(c *fiber.Ctx, id string) (*model.NewsModel, error) {
	if !helper.IsObjectID(id) {
		return nil, helper.ErrNotFound
	}
	var item model.NewsModel
	err := ctrl.DB.WithContext(c.UserContext()).First(&item, "news_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
