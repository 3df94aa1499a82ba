package controller

import (
	"errors"
	"time"

	"vetmissions_backend/internals/cache"
	"vetmissions_backend/internals/features/content/missions/dto"
	"vetmissions_backend/internals/features/content/missions/model"
	helper "vetmissions_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	missionLabel    = "Mission"
	missionCacheKey = "missions"
)

type MissionController struct {
	DB    *gorm.DB
	Cache *cache.ListCache
	Now   func() time.Time
}

func NewMissionController(db *gorm.DB, lc *cache.ListCache) *MissionController {
	return &MissionController{DB: db, Cache: lc, Now: time.Now}
}

// 📄 GET /api/missions (date desc)
func (ctrl *MissionController) GetAllMissions(c *fiber.Ctx) error {
	if missions, ok := cache.Get[model.MissionModel](ctrl.Cache, missionCacheKey); ok {
		return helper.JsonList(c, missions)
	}

	gen := ctrl.Cache.Generation(missionCacheKey)
	var missions []model.MissionModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("mission_date DESC").
		Order("mission_created_at DESC").
		Find(&missions).Error; err != nil {
		return helper.JsonServerError(c, err, "list missions")
	}

	cache.Set(ctrl.Cache, missionCacheKey, gen, missions)
	return helper.JsonList(c, missions)
}

// 🔍 GET /api/missions/:id
func (ctrl *MissionController) GetMissionByID(c *fiber.Ctx) error {
	mission, err := ctrl.find(c, c.Params("id"))
	if err != nil {
		return helper.FromError(c, err, missionLabel)
	}
	return helper.JsonOK(c, mission)
}

// ➕ POST /api/missions
func (ctrl *MissionController) CreateMission(c *fiber.Ctx) error {
	var req dto.CreateMissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationError(c, []string{"invalid request body"})
	}

	mission := req.ToModel(ctrl.Now())
	if err := helper.ValidateStruct(&mission); err != nil {
		return helper.FromError(c, err, missionLabel)
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&mission).Error; err != nil {
		return helper.JsonServerError(c, err, "create mission")
	}

	ctrl.Cache.Invalidate(missionCacheKey)
	return helper.JsonCreated(c, mission)
}

// 🔄 PUT /api/missions/:id (partial merge + revalidate)
func (ctrl *MissionController) UpdateMission(c *fiber.Ctx) error {
	mission, err := ctrl.find(c, c.Params("id"))
	if err != nil {
		return helper.FromError(c, err, missionLabel)
	}

	var req dto.UpdateMissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationError(c, []string{"invalid request body"})
	}
	if req.Version != nil && *req.Version != mission.MissionVersion {
		return helper.FromError(c, helper.ErrConflict, missionLabel)
	}

	req.ApplyTo(mission)
	if err := helper.ValidateStruct(mission); err != nil {
		return helper.FromError(c, err, missionLabel)
	}

	seen := mission.MissionVersion
	mission.MissionVersion = seen + 1
	res := ctrl.DB.WithContext(c.UserContext()).
		Model(mission).
		Where("mission_version = ?", seen).
		Select("*").Omit("mission_id", "mission_created_at").
		Updates(mission)
	if res.Error != nil {
		return helper.JsonServerError(c, res.Error, "update mission")
	}
	// another writer got in between find and update
	if res.RowsAffected == 0 {
		return helper.FromError(c, helper.ErrConflict, missionLabel)
	}

	ctrl.Cache.Invalidate(missionCacheKey)
	return helper.JsonOK(c, mission)
}

// 🗑️ DELETE /api/missions/:id
func (ctrl *MissionController) DeleteMission(c *fiber.Ctx) error {
	mission, err := ctrl.find(c, c.Params("id"))
	if err != nil {
		return helper.FromError(c, err, missionLabel)
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Delete(&model.MissionModel{}, "mission_id = ?", mission.MissionID).Error; err != nil {
		return helper.JsonServerError(c, err, "delete mission")
	}

	ctrl.Cache.Invalidate(missionCacheKey)
	return helper.JsonDeleted(c)
}

func (ctrl *MissionController) find(c *fiber.Ctx, id string) (*model.MissionModel, error) {
	if !helper.IsObjectID(id) {
		return nil, helper.ErrNotFound
	}
	var mission model.MissionModel
	err := ctrl.DB.WithContext(c.UserContext()).First(&mission, "mission_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mission, nil
}
