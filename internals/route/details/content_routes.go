package details

import (
	"vetmissions_backend/internals/cache"
	galleryRoute "vetmissions_backend/internals/features/content/galleries/route"
	missionRoute "vetmissions_backend/internals/features/content/missions/route"
	newsRoute "vetmissions_backend/internals/features/content/news/route"
	settingRoute "vetmissions_backend/internals/features/content/settings/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ContentRoutes mounts the public CRUD API for every content entity.
func ContentRoutes(api fiber.Router, db *gorm.DB, lc *cache.ListCache) {
	missionRoute.MissionRoutes(api, db, lc)
	newsRoute.NewsRoutes(api, db, lc)
	galleryRoute.GalleryRoutes(api, db, lc)
	settingRoute.SettingRoutes(api, db, lc)
}
