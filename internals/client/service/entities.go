package service

import (
	"time"

	"vetmissions_backend/internals/client/localstore"
	"vetmissions_backend/internals/client/remote"
	galleryModel "vetmissions_backend/internals/features/content/galleries/model"
	missionModel "vetmissions_backend/internals/features/content/missions/model"
	newsModel "vetmissions_backend/internals/features/content/news/model"
	settingModel "vetmissions_backend/internals/features/content/settings/model"
)

// Options configures the per-entity services. An empty BaseURL runs offline.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Local   *localstore.DB
}

type (
	MissionService = Store[missionModel.MissionModel]
	NewsService    = Store[newsModel.NewsModel]
	GalleryService = Store[galleryModel.GalleryModel]
	SettingService = Store[settingModel.SettingModel]
)

func NewMissionService(opts Options) *MissionService {
	return newEntityService[missionModel.MissionModel](opts, "missions", localstore.KeyMissions)
}

func NewNewsService(opts Options) *NewsService {
	return newEntityService[newsModel.NewsModel](opts, "news", localstore.KeyNews)
}

func NewGalleryService(opts Options) *GalleryService {
	return newEntityService[galleryModel.GalleryModel](opts, "galleries", localstore.KeyGallery)
}

func NewSettingService(opts Options) *SettingService {
	return newEntityService[settingModel.SettingModel](opts, "settings", localstore.KeySettings)
}

func newEntityService[T any, PT localstore.Identifiable[T]](opts Options, resource, key string) *Store[T] {
	var primary Primary[T]
	if opts.BaseURL != "" {
		primary = remote.NewPrimaryStore[T](opts.BaseURL, resource, opts.Timeout)
	}
	return NewStore[T](resource, primary, localstore.NewFallbackStore[T, PT](opts.Local, key))
}
