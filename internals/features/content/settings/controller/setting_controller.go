package controller

import (
	"errors"
	"fmt"
	"strings"

	"vetmissions_backend/internals/cache"
	"vetmissions_backend/internals/features/content/settings/dto"
	"vetmissions_backend/internals/features/content/settings/model"
	helper "vetmissions_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	settingLabel    = "Setting"
	settingCacheKey = "settings"
)

type SettingController struct {
	DB    *gorm.DB
	Cache *cache.ListCache
}

func NewSettingController(db *gorm.DB, lc *cache.ListCache) *SettingController {
	return &SettingController{DB: db, Cache: lc}
}

// 📄 GET /api/settings (key asc)
func (ctrl *SettingController) GetAllSettings(c *fiber.Ctx) error {
	if settings, ok := cache.Get[model.SettingModel](ctrl.Cache, settingCacheKey); ok {
		return helper.JsonList(c, settings)
	}

	gen := ctrl.Cache.Generation(settingCacheKey)
	var settings []model.SettingModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("setting_key ASC").
		Find(&settings).Error; err != nil {
		return helper.JsonServerError(c, err, "list settings")
	}
	for _, setting := range settings {
		if err := decodeStored(setting); err != nil {
			return helper.JsonServerError(c, err, "stored setting does not decode")
		}
	}

	cache.Set(ctrl.Cache, settingCacheKey, gen, settings)
	return helper.JsonList(c, settings)
}

// 🔍 GET /api/settings/:key
func (ctrl *SettingController) GetSettingByKey(c *fiber.Ctx) error {
	setting, err := ctrl.find(c, c.Params("key"))
	if err != nil {
		return helper.FromError(c, err, settingLabel)
	}
	if err := decodeStored(*setting); err != nil {
		return helper.JsonServerError(c, err, "stored setting does not decode")
	}
	return helper.JsonOK(c, setting)
}

// ➕ POST /api/settings
func (ctrl *SettingController) CreateSetting(c *fiber.Ctx) error {
	var req dto.CreateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationError(c, []string{"invalid request body"})
	}

	key := strings.TrimSpace(req.Key)
	if key == "" {
		return helper.JsonValidationError(c, []string{"key is required"})
	}
	spec, ok := model.Lookup(key)
	if !ok {
		return helper.JsonValidationError(c, []string{
			fmt.Sprintf("key must be one of: %s (got %q)", strings.Join(model.Keys(), ", "), key),
		})
	}
	value, err := spec.Normalize(req.Value)
	if err != nil {
		return helper.FromError(c, err, settingLabel)
	}

	var existing int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.SettingModel{}).
		Where("setting_key = ?", key).
		Count(&existing).Error; err != nil {
		return helper.JsonServerError(c, err, "check setting")
	}
	if existing > 0 {
		return helper.JsonValidationError(c, []string{"key " + key + " already exists"})
	}

	setting := model.SettingModel{
		SettingKey:     key,
		SettingType:    spec.Type,
		SettingValue:   datatypes.JSON(value),
		SettingVersion: 1,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&setting).Error; err != nil {
		return helper.JsonServerError(c, err, "create setting")
	}

	ctrl.Cache.Invalidate(settingCacheKey)
	return helper.JsonCreated(c, setting)
}

// 🔄 PUT /api/settings/:key
func (ctrl *SettingController) UpdateSetting(c *fiber.Ctx) error {
	setting, err := ctrl.find(c, c.Params("key"))
	if err != nil {
		return helper.FromError(c, err, settingLabel)
	}

	var req dto.UpdateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationError(c, []string{"invalid request body"})
	}
	if req.Version != nil && *req.Version != setting.SettingVersion {
		return helper.FromError(c, helper.ErrConflict, settingLabel)
	}

	spec, _ := model.Lookup(setting.SettingKey)
	value, err := spec.Normalize(req.Value)
	if err != nil {
		return helper.FromError(c, err, settingLabel)
	}

	seen := setting.SettingVersion
	setting.SettingValue = datatypes.JSON(value)
	setting.SettingType = spec.Type
	setting.SettingVersion = seen + 1
	res := ctrl.DB.WithContext(c.UserContext()).
		Model(setting).
		Where("setting_version = ?", seen).
		Select("setting_value", "setting_type", "setting_version", "setting_updated_at").
		Updates(setting)
	if res.Error != nil {
		return helper.JsonServerError(c, res.Error, "update setting")
	}
	if res.RowsAffected == 0 {
		return helper.FromError(c, helper.ErrConflict, settingLabel)
	}

	ctrl.Cache.Invalidate(settingCacheKey)
	return helper.JsonOK(c, setting)
}

// 🗑️ DELETE /api/settings/:key
func (ctrl *SettingController) DeleteSetting(c *fiber.Ctx) error {
	setting, err := ctrl.find(c, c.Params("key"))
	if err != nil {
		return helper.FromError(c, err, settingLabel)
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Delete(&model.SettingModel{}, "setting_key = ?", setting.SettingKey).Error; err != nil {
		return helper.JsonServerError(c, err, "delete setting")
	}

	ctrl.Cache.Invalidate(settingCacheKey)
	return helper.JsonDeleted(c)
}

// decodeStored checks a stored row against its key's declared type.
func decodeStored(setting model.SettingModel) error {
	spec, ok := model.Lookup(setting.SettingKey)
	if !ok {
		return fmt.Errorf("stored setting %q is not a known key", setting.SettingKey)
	}
	if _, err := spec.Decode(setting.SettingValue); err != nil {
		return fmt.Errorf("setting %s: %w", setting.SettingKey, err)
	}
	return nil
}

// find only answers for registered keys; anything else is a 404.
func (ctrl *SettingController) find(c *fiber.Ctx, key string) (*model.SettingModel, error) {
	if _, ok := model.Lookup(key); !ok {
		return nil, helper.ErrNotFound
	}
	var setting model.SettingModel
	err := ctrl.DB.WithContext(c.UserContext()).First(&setting, "setting_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}
