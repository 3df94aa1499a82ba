package route

import (
	"vetmissions_backend/internals/cache"
	"vetmissions_backend/internals/features/content/settings/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SettingRoutes(api fiber.Router, db *gorm.DB, lc *cache.ListCache) {
	settingCtrl := controller.NewSettingController(db, lc)

	settings := api.Group("/settings")
	settings.Get("/", settingCtrl.GetAllSettings)       // 📄 list
	settings.Post("/", settingCtrl.CreateSetting)       // ➕ create
	settings.Get("/:key", settingCtrl.GetSettingByKey)  // 🔍 by key
	settings.Put("/:key", settingCtrl.UpdateSetting)    // 🔄 replace value
	settings.Delete("/:key", settingCtrl.DeleteSetting) // 🗑️ delete
}
