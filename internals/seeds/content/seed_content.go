package content

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	galleryModel "vetmissions_backend/internals/features/content/galleries/model"
	missionModel "vetmissions_backend/internals/features/content/missions/model"
	newsModel "vetmissions_backend/internals/features/content/news/model"
	settingModel "vetmissions_backend/internals/features/content/settings/model"
	helper "vetmissions_backend/internals/helpers"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func readJSON[T any](filePath string) ([]T, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	var data []T
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}
	return data, nil
}

// insert validates and creates each record unless the existing query
// (model + where) already matches a row.
func insert[T any](db *gorm.DB, label string, data []T, name func(*T) string, existing func(*T) *gorm.DB) error {
	for i := range data {
		item := &data[i]
		var n int64
		if err := existing(item).Count(&n).Error; err != nil {
			log.Error().Err(err).Str("seed", label).Str("name", name(item)).Msg("❌ lookup failed")
			return fmt.Errorf("seed %s %q: %w", label, name(item), err)
		}
		if n > 0 {
			log.Debug().Str("seed", label).Str("name", name(item)).Msg("ℹ️ already present, skipping")
			continue
		}
		if err := helper.ValidateStruct(item); err != nil {
			return fmt.Errorf("seed %s %q: %w", label, name(item), err)
		}
		if err := db.Create(item).Error; err != nil {
			return fmt.Errorf("seed %s %q: %w", label, name(item), err)
		}
		log.Info().Str("seed", label).Str("name", name(item)).Msg("✅ inserted")
	}
	return nil
}

func SeedMissionsFromJSON(db *gorm.DB, filePath string) error {
	data, err := readJSON[missionModel.MissionModel](filePath)
	if err != nil {
		return err
	}
	now := time.Now()
	for i := range data {
		data[i].ApplyDefaults(now)
	}
	return insert(db, "mission", data,
		func(m *missionModel.MissionModel) string { return m.MissionTitle },
		func(m *missionModel.MissionModel) *gorm.DB {
			return db.Model(&missionModel.MissionModel{}).Where("mission_title = ?", m.MissionTitle)
		})
}

func SeedNewsFromJSON(db *gorm.DB, filePath string) error {
	data, err := readJSON[newsModel.NewsModel](filePath)
	if err != nil {
		return err
	}
	now := time.Now()
	for i := range data {
		data[i].ApplyDefaults(now)
	}
	return insert(db, "news", data,
		func(n *newsModel.NewsModel) string { return n.NewsTitle },
		func(n *newsModel.NewsModel) *gorm.DB {
			return db.Model(&newsModel.NewsModel{}).Where("news_title = ?", n.NewsTitle)
		})
}

func SeedGalleriesFromJSON(db *gorm.DB, filePath string) error {
	data, err := readJSON[galleryModel.GalleryModel](filePath)
	if err != nil {
		return err
	}
	now := time.Now()
	for i := range data {
		data[i].ApplyDefaults(now)
	}
	return insert(db, "gallery", data,
		func(g *galleryModel.GalleryModel) string { return g.GalleryTitle },
		func(g *galleryModel.GalleryModel) *gorm.DB {
			return db.Model(&galleryModel.GalleryModel{}).Where("gallery_title = ?", g.GalleryTitle)
		})
}

type settingSeed struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

func SeedSettingsFromJSON(db *gorm.DB, filePath string) error {
	data, err := readJSON[settingSeed](filePath)
	if err != nil {
		return err
	}

	records := make([]settingModel.SettingModel, 0, len(data))
	for _, s := range data {
		spec, ok := settingModel.Lookup(s.Key)
		if !ok {
			return fmt.Errorf("seed setting: unknown key %q", s.Key)
		}
		value, err := spec.Normalize(s.Value)
		if err != nil {
			return fmt.Errorf("seed setting %q: %w", s.Key, err)
		}
		records = append(records, settingModel.SettingModel{
			SettingKey:     s.Key,
			SettingType:    spec.Type,
			SettingValue:   datatypes.JSON(value),
			SettingVersion: 1,
		})
	}

	return insert(db, "setting", records,
		func(s *settingModel.SettingModel) string { return s.SettingKey },
		func(s *settingModel.SettingModel) *gorm.DB {
			return db.Model(&settingModel.SettingModel{}).Where("setting_key = ?", s.SettingKey)
		})
}
