package route

import (
	"vetmissions_backend/internals/cache"
	"vetmissions_backend/internals/features/content/galleries/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GalleryRoutes(api fiber.Router, db *gorm.DB, lc *cache.ListCache) {
	galleryCtrl := controller.NewGalleryController(db, lc)

	galleries := api.Group("/galleries")
	galleries.Get("/", galleryCtrl.GetAllGalleries)     // 📄 list
	galleries.Post("/", galleryCtrl.CreateGallery)      // ➕ create
	galleries.Get("/:id", galleryCtrl.GetGalleryByID)   // 🔍 detail (+ missionRef)
	galleries.Put("/:id", galleryCtrl.UpdateGallery)    // 🔄 partial update
	galleries.Delete("/:id", galleryCtrl.DeleteGallery) // 🗑️ delete
}
