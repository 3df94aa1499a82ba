package route

import (
	"vetmissions_backend/internals/cache"
	"vetmissions_backend/internals/features/content/news/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func NewsRoutes(api fiber.Router, db *gorm.DB, lc *cache.ListCache) {
	newsCtrl := controller.NewNewsController(db, lc)

	news := api.Group("/news")
	news.Get("/", newsCtrl.GetAllNews)       // 📄 list
	news.Post("/", newsCtrl.CreateNews)      // ➕ create
	news.Get("/:id", newsCtrl.GetNewsByID)   // 🔍 detail
	news.Put("/:id", newsCtrl.UpdateNews)    // 🔄 partial update
	news.Delete("/:id", newsCtrl.DeleteNews) // 🗑️ delete
}
