package route

import (
	"vetmissions_backend/internals/cache"
	"vetmissions_backend/internals/features/content/missions/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func MissionRoutes(api fiber.Router, db *gorm.DB, lc *cache.ListCache) {
	missionCtrl := controller.NewMissionController(db, lc)

	missions := api.Group("/missions")
	missions.Get("/", missionCtrl.GetAllMissions)      // 📄 list
	missions.Post("/", missionCtrl.CreateMission)      // ➕ create
	missions.Get("/:id", missionCtrl.GetMissionByID)   // 🔍 detail
	missions.Put("/:id", missionCtrl.UpdateMission)    // 🔄 partial update
	missions.Delete("/:id", missionCtrl.DeleteMission) // 🗑️ delete
}
