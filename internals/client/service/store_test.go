package service_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"vetmissions_backend/internals/client/localstore"
	"vetmissions_backend/internals/client/service"
	galleryModel "vetmissions_backend/internals/features/content/galleries/model"
	galleryRoute "vetmissions_backend/internals/features/content/galleries/route"
	missionModel "vetmissions_backend/internals/features/content/missions/model"
	missionRoute "vetmissions_backend/internals/features/content/missions/route"
	helper "vetmissions_backend/internals/helpers"
	"vetmissions_backend/internals/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const unreachable = "http://127.0.0.1:1"

func newLocal(t *testing.T) *localstore.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	local, err := localstore.New(db)
	require.NoError(t, err)
	t.Cleanup(local.Close)
	return local
}

func serve(t *testing.T, app *fiber.App) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}

func startAPI(t *testing.T) string {
	t.Helper()
	app, api := testutil.NewApp()
	db, lc := testutil.NewDB(t), testutil.NewCache(t)
	missionRoute.MissionRoutes(api, db, lc)
	galleryRoute.GalleryRoutes(api, db, lc)
	return serve(t, app)
}

func mission(title string) map[string]any {
	return map[string]any{
		"title":             title,
		"missionCoverImage": "x.jpg",
		"description":       "d",
		"location":          "Turkana",
		"date":              "2024-09",
		"year":              "2024",
	}
}

func TestStore_RemoteSuccessRefreshesSnapshot(t *testing.T) {
	ctx := context.Background()
	local := newLocal(t)
	online := service.NewMissionService(service.Options{BaseURL: startAPI(t), Timeout: time.Second, Local: local})

	created, err := online.Create(ctx, mission("Turkana Outreach"))
	require.NoError(t, err)
	assert.False(t, created.FromCache)
	assert.True(t, helper.IsObjectID(created.Item.MissionID))

	list, err := online.List(ctx)
	require.NoError(t, err)
	assert.False(t, list.FromCache)
	require.Len(t, list.Items, 1)

	offline := service.NewMissionService(service.Options{BaseURL: unreachable, Timeout: 200 * time.Millisecond, Local: local})
	cached, err := offline.List(ctx)
	require.NoError(t, err)
	assert.True(t, cached.FromCache)
	require.Len(t, cached.Items, 1)
	assert.Equal(t, "Turkana Outreach", cached.Items[0].MissionTitle)

	got, err := offline.Get(ctx, created.Item.MissionID)
	require.NoError(t, err)
	assert.True(t, got.FromCache)
	assert.Equal(t, created.Item.MissionID, got.Item.MissionID)
}

func TestStore_RemoteErrorsAreAuthoritative(t *testing.T) {
	ctx := context.Background()
	local := newLocal(t)
	svc := service.NewMissionService(service.Options{BaseURL: startAPI(t), Timeout: time.Second, Local: local})

	_, err := svc.Get(ctx, "65f1c0ffee0000000000beef")
	assert.ErrorIs(t, err, helper.ErrNotFound)

	body := mission("")
	_, err = svc.Create(ctx, body)
	ve, ok := helper.IsValidation(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, []string{"title is required"}, ve.Messages)

	created, err := svc.Create(ctx, mission("Marsabit"))
	require.NoError(t, err)
	_, err = svc.Update(ctx, created.Item.MissionID, map[string]any{"outcome": "x", "version": 7})
	assert.ErrorIs(t, err, helper.ErrConflict)

	// rejected writes never reach the snapshot
	var snapshot []missionModel.MissionModel
	_, err = local.Load(ctx, localstore.KeyMissions, &snapshot)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "Marsabit", snapshot[0].MissionTitle)
}

func TestStore_UnavailableFallsBackForWrites(t *testing.T) {
	ctx := context.Background()
	svc := service.NewMissionService(service.Options{BaseURL: unreachable, Timeout: 200 * time.Millisecond, Local: newLocal(t)})

	created, err := svc.Create(ctx, mission("Offline draft"))
	require.NoError(t, err)
	assert.True(t, created.FromCache)
	_, err = uuid.Parse(created.Item.MissionID)
	assert.NoError(t, err)

	updated, err := svc.Update(ctx, created.Item.MissionID, map[string]any{"status": "Ongoing"})
	require.NoError(t, err)
	assert.True(t, updated.FromCache)
	assert.Equal(t, "Ongoing", updated.Item.MissionStatus)
	assert.Equal(t, "Offline draft", updated.Item.MissionTitle)

	fromCache, err := svc.Delete(ctx, created.Item.MissionID)
	require.NoError(t, err)
	assert.True(t, fromCache)

	_, err = svc.Delete(ctx, created.Item.MissionID)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestStore_ServerErrorAndMalformedPayloadFallBack(t *testing.T) {
	ctx := context.Background()

	broken := fiber.New(fiber.Config{DisableStartupMessage: true})
	broken.Get("/api/missions", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Server Error"})
	})
	broken.Get("/api/missions/:id", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("<html>maintenance</html>")
	})
	svc := service.NewMissionService(service.Options{BaseURL: serve(t, broken), Timeout: time.Second, Local: newLocal(t)})

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.True(t, list.FromCache)
	assert.Empty(t, list.Items)

	_, err = svc.Get(ctx, "65f1c0ffee0000000000beef")
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestStore_OfflineWithoutRemote(t *testing.T) {
	ctx := context.Background()
	svc := service.NewSettingService(service.Options{Local: newLocal(t)})

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.True(t, list.FromCache)
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)

	created, err := svc.Create(ctx, map[string]any{"key": "theme", "type": "string", "value": "dark"})
	require.NoError(t, err)
	assert.Equal(t, "theme", created.Item.SettingKey)

	_, err = svc.Get(ctx, "site_title")
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestStore_OfflineCreatedItemReachableOnceOnline(t *testing.T) {
	ctx := context.Background()
	local := newLocal(t)
	offline := service.NewMissionService(service.Options{BaseURL: unreachable, Timeout: 200 * time.Millisecond, Local: local})
	online := service.NewMissionService(service.Options{BaseURL: startAPI(t), Timeout: time.Second, Local: local})

	draft, err := offline.Create(ctx, mission("Turkana Outreach"))
	require.NoError(t, err)
	require.True(t, draft.FromCache)
	assert.Equal(t, missionModel.StatusUpcoming, draft.Item.MissionStatus)
	assert.Equal(t, "0", draft.Item.MissionStats.Treated)
	id := draft.Item.MissionID

	got, err := online.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.FromCache)
	assert.Equal(t, "Turkana Outreach", got.Item.MissionTitle)

	updated, err := online.Update(ctx, id, map[string]any{"status": "Ongoing"})
	require.NoError(t, err)
	assert.True(t, updated.FromCache)
	assert.Equal(t, "Ongoing", updated.Item.MissionStatus)

	fromCache, err := online.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, fromCache)

	_, err = online.Get(ctx, id)
	assert.ErrorIs(t, err, helper.ErrNotFound)
	_, err = online.Update(ctx, id, map[string]any{"status": "Completed"})
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestStore_GalleryListServedFromSnapshot(t *testing.T) {
	ctx := context.Background()
	local := newLocal(t)
	online := service.NewGalleryService(service.Options{BaseURL: startAPI(t), Timeout: time.Second, Local: local})

	for _, title := range []string{"Clinic day", "Vaccination drive"} {
		_, err := online.Create(ctx, map[string]any{"title": title, "coverImage": "c.jpg"})
		require.NoError(t, err)
	}
	fresh, err := online.List(ctx)
	require.NoError(t, err)
	require.False(t, fresh.FromCache)
	require.Len(t, fresh.Items, 2)

	var snapshot []galleryModel.GalleryModel
	ok, err := local.Load(ctx, localstore.KeyGallery, &snapshot)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, snapshot, 2)

	offline := service.NewGalleryService(service.Options{BaseURL: unreachable, Timeout: 200 * time.Millisecond, Local: local})
	cached, err := offline.List(ctx)
	require.NoError(t, err)
	assert.True(t, cached.FromCache)
	require.Len(t, cached.Items, 2)

	titles := []string{cached.Items[0].GalleryTitle, cached.Items[1].GalleryTitle}
	assert.ElementsMatch(t, []string{"Clinic day", "Vaccination drive"}, titles)
	for _, g := range cached.Items {
		assert.Equal(t, fresh.Items[0].GalleryType, g.GalleryType)
		assert.True(t, helper.IsObjectID(g.GalleryID))
	}
}
