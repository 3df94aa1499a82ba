package controller

import (
	"context"
	"errors"
	"time"

	"vetmissions_backend/internals/cache"
	"vetmissions_backend/internals/features/content/galleries/dto"
	"vetmissions_backend/internals/features/content/galleries/model"
	missionModel "vetmissions_backend/internals/features/content/missions/model"
	helper "vetmissions_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	galleryLabel    = "Gallery"
	galleryCacheKey = "galleries"
)

type GalleryController struct {
	DB    *gorm.DB
	Cache *cache.ListCache
	Now   func() time.Time
}

func NewGalleryController(db *gorm.DB, lc *cache.ListCache) *GalleryController {
	return &GalleryController{DB: db, Cache: lc, Now: time.Now}
}

// 📄 GET /api/galleries (date desc)
func (ctrl *GalleryController) GetAllGalleries(c *fiber.Ctx) error {
	items, ok := cache.Get[model.GalleryModel](ctrl.Cache, galleryCacheKey)
	if !ok {
		gen := ctrl.Cache.Generation(galleryCacheKey)
		if err := ctrl.DB.WithContext(c.UserContext()).
			Order("gallery_date DESC").
			Find(&items).Error; err != nil {
			return helper.JsonServerError(c, err, "list galleries")
		}
		cache.Set(ctrl.Cache, galleryCacheKey, gen, items)
	}

	// missions can be deleted without touching this cache, so the
	// reference state is resolved per request on a copy
	out := append([]model.GalleryModel(nil), items...)
	if err := ctrl.resolveMissionRefs(c.UserContext(), out); err != nil {
		return helper.JsonServerError(c, err, "resolve gallery mission refs")
	}
	return helper.JsonList(c, out)
}

// 🔍 GET /api/galleries/:id
func (ctrl *GalleryController) GetGalleryByID(c *fiber.Ctx) error {
	item, err := ctrl.find(c, c.Params("id"))
	if err != nil {
		return helper.FromError(c, err, galleryLabel)
	}
	return ctrl.respond(c, item, helper.JsonOK)
}

// ➕ POST /api/galleries
func (ctrl *GalleryController) CreateGallery(c *fiber.Ctx) error {
	var req dto.CreateGalleryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationError(c, []string{"invalid request body"})
	}

	item := req.ToModel(ctrl.Now())
	if err := helper.ValidateStruct(&item); err != nil {
		return helper.FromError(c, err, galleryLabel)
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&item).Error; err != nil {
		return helper.JsonServerError(c, err, "create gallery")
	}

	ctrl.Cache.Invalidate(galleryCacheKey)
	return ctrl.respond(c, &item, helper.JsonCreated)
}

// 🔄 PUT /api/galleries/:id
func (ctrl *GalleryController) UpdateGallery(c *fiber.Ctx) error {
	item, err := ctrl.find(c, c.Params("id"))
	if err != nil {
		return helper.FromError(c, err, galleryLabel)
	}

	var req dto.UpdateGalleryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationError(c, []string{"invalid request body"})
	}
	if req.Version != nil && *req.Version != item.GalleryVersion {
		return helper.FromError(c, helper.ErrConflict, galleryLabel)
	}

	req.ApplyTo(item)
	if err := helper.ValidateStruct(item); err != nil {
		return helper.FromError(c, err, galleryLabel)
	}

	seen := item.GalleryVersion
	item.GalleryVersion = seen + 1
	res := ctrl.DB.WithContext(c.UserContext()).
		Model(item).
		Where("gallery_version = ?", seen).
		Select("*").Omit("gallery_id", "gallery_created_at").
		Updates(item)
	if res.Error != nil {
		return helper.JsonServerError(c, res.Error, "update gallery")
	}
	if res.RowsAffected == 0 {
		return helper.FromError(c, helper.ErrConflict, galleryLabel)
	}

	ctrl.Cache.Invalidate(galleryCacheKey)
	return ctrl.respond(c, item, helper.JsonOK)
}

// 🗑️ DELETE /api/galleries/:id
func (ctrl *GalleryController) DeleteGallery(c *fiber.Ctx) error {
	item, err := ctrl.find(c, c.Params("id"))
	if err != nil {
		return helper.FromError(c, err, galleryLabel)
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Delete(&model.GalleryModel{}, "gallery_id = ?", item.GalleryID).Error; err != nil {
		return helper.JsonServerError(c, err, "delete gallery")
	}

	ctrl.Cache.Invalidate(galleryCacheKey)
	return helper.JsonDeleted(c)
}

func (ctrl *GalleryController) respond(c *fiber.Ctx, item *model.GalleryModel, write func(*fiber.Ctx, any) error) error {
	one := []model.GalleryModel{*item}
	if err := ctrl.resolveMissionRefs(c.UserContext(), one); err != nil {
		return helper.JsonServerError(c, err, "resolve gallery mission ref")
	}
	return write(c, one[0])
}

// resolveMissionRefs sets MissionRef on every item with one lookup.
// A reference that is no longer (or never was) a mission is "orphaned".
func (ctrl *GalleryController) resolveMissionRefs(ctx context.Context, items []model.GalleryModel) error {
	var ids []string
	for _, it := range items {
		if it.HasMission() && helper.IsObjectID(*it.GalleryMissionID) {
			ids = append(ids, *it.GalleryMissionID)
		}
	}

	existing := map[string]struct{}{}
	if len(ids) > 0 {
		var found []string
		if err := ctrl.DB.WithContext(ctx).
			Model(&missionModel.MissionModel{}).
			Where("mission_id IN ?", ids).
			Pluck("mission_id", &found).Error; err != nil {
			return err
		}
		for _, id := range found {
			existing[id] = struct{}{}
		}
	}

	for i := range items {
		if !items[i].HasMission() {
			items[i].MissionRef = model.MissionRefNone
			continue
		}
		if _, ok := existing[*items[i].GalleryMissionID]; ok {
			items[i].MissionRef = model.MissionRefLinked
		} else {
			items[i].MissionRef = model.MissionRefOrphaned
		}
	}
	return nil
}

func (ctrl *GalleryController) find(c *fiber.Ctx, id string) (*model.GalleryModel, error) {
	if !helper.IsObjectID(id) {
		return nil, helper.ErrNotFound
	}
	var item model.GalleryModel
	err := ctrl.DB.WithContext(c.UserContext()).First(&item, "gallery_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
