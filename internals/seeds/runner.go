package seeds

import (
	"errors"
	"path/filepath"

	"vetmissions_backend/internals/seeds/content"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RunAllSeeds loads the starter content from dir. Records that already exist
// are skipped, so it is safe to run on every start.
func RunAllSeeds(db *gorm.DB, dir string) error {
	log.Info().Str("dir", dir).Msg("📥 seeding content")

	return errors.Join(
		content.SeedMissionsFromJSON(db, filepath.Join(dir, "missions.json")),
		content.SeedNewsFromJSON(db, filepath.Join(dir, "news.json")),
		content.SeedGalleriesFromJSON(db, filepath.Join(dir, "galleries.json")),
		content.SeedSettingsFromJSON(db, filepath.Join(dir, "settings.json")),
	)
}
