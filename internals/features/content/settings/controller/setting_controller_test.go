package controller_test

import (
	"net/http"
	"testing"

	"vetmissions_backend/internals/features/content/settings/model"
	"vetmissions_backend/internals/features/content/settings/route"
	"vetmissions_backend/internals/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newSettingApp(t *testing.T) *fiber.App {
	t.Helper()
	app, api := testutil.NewApp()
	route.SettingRoutes(api, testutil.NewDB(t), testutil.NewCache(t))
	return app
}

func TestCreateSetting_TypedValues(t *testing.T) {
	app := newSettingApp(t)

	cases := map[string]any{
		"site_title":       "Vet Missions",
		"theme":            "dark",
		"social_links":     map[string]string{"facebook": "https://fb.example.org/vmp"},
		"feature_toggles":  map[string]bool{"donations": true},
		"donation_presets": []int{25, 50, 100},
		"maintenance_mode": false,
		"hero_slides": []map[string]string{
			{"image": "hero.jpg", "title": "Serving pastoralists"},
		},
	}
	for key, value := range cases {
		status, env := testutil.Do(t, app, http.MethodPost, "/api/settings", map[string]any{"key": key, "value": value})
		require.Equal(t, http.StatusCreated, status, key+": "+string(env.Error))
	}

	_, env := testutil.Do(t, app, http.MethodGet, "/api/settings", nil)
	var list []model.SettingModel
	testutil.DecodeData(t, env, &list)
	require.Len(t, list, len(cases))
	assert.Equal(t, "dark", mustString(t, list, model.KeyTheme))
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].SettingKey, list[i].SettingKey)
	}

	var presets []int
	for _, s := range list {
		if s.SettingKey == model.KeyDonationPresets {
			v, err := model.DecodeAs[[]int](s)
			require.NoError(t, err)
			presets = v
		}
	}
	assert.Equal(t, []int{25, 50, 100}, presets)
}

func mustString(t *testing.T, list []model.SettingModel, key string) string {
	t.Helper()
	for _, s := range list {
		if s.SettingKey == key {
			v, err := model.DecodeAs[string](s)
			require.NoError(t, err)
			return v
		}
	}
	t.Fatalf("setting %s not in list", key)
	return ""
}

func TestCreateSetting_RejectsWrongType(t *testing.T) {
	app := newSettingApp(t)

	status, env := testutil.Do(t, app, http.MethodPost, "/api/settings", map[string]any{
		"key":   "maintenance_mode",
		"value": "yes",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []string{"value for maintenance_mode must be of type bool"}, testutil.Errors(t, env))
}

func TestCreateSetting_ThemeOutsideSet(t *testing.T) {
	app := newSettingApp(t)

	status, env := testutil.Do(t, app, http.MethodPost, "/api/settings", map[string]any{
		"key":   "theme",
		"value": "sepia",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []string{"value for theme must be one of: light, dark"}, testutil.Errors(t, env))
}

func TestCreateSetting_SlideNeedsImage(t *testing.T) {
	app := newSettingApp(t)

	status, env := testutil.Do(t, app, http.MethodPost, "/api/settings", map[string]any{
		"key":   "hero_slides",
		"value": []map[string]string{{"title": "no image"}},
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []string{"hero_slides[0].image is required"}, testutil.Errors(t, env))
}

func TestCreateSetting_UnknownAndDuplicateKey(t *testing.T) {
	app := newSettingApp(t)

	status, env := testutil.Do(t, app, http.MethodPost, "/api/settings", map[string]any{"key": "colour", "value": "red"})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, testutil.Errors(t, env)[0], "key must be one of")

	body := map[string]any{"key": "site_title", "value": "VMP"}
	status, _ = testutil.Do(t, app, http.MethodPost, "/api/settings", body)
	require.Equal(t, http.StatusCreated, status)

	status, env = testutil.Do(t, app, http.MethodPost, "/api/settings", body)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []string{"key site_title already exists"}, testutil.Errors(t, env))
}

func TestGetSetting_NotStored(t *testing.T) {
	app := newSettingApp(t)

	for _, key := range []string{"site_title", "no_such_key"} {
		status, env := testutil.Do(t, app, http.MethodGet, "/api/settings/"+key, nil)
		assert.Equal(t, http.StatusNotFound, status, key)
		assert.Equal(t, []string{"Setting not found"}, testutil.Errors(t, env))
	}
}

func TestUpdateSetting_ReplacesValueAndBumpsVersion(t *testing.T) {
	app := newSettingApp(t)

	status, _ := testutil.Do(t, app, http.MethodPost, "/api/settings", map[string]any{"key": "contact_email", "value": "info@vetmissions.org"})
	require.Equal(t, http.StatusCreated, status)

	status, env := testutil.Do(t, app, http.MethodPut, "/api/settings/contact_email", map[string]any{"value": "office@vetmissions.org", "version": 1})
	require.Equal(t, http.StatusOK, status, string(env.Error))

	var s model.SettingModel
	testutil.DecodeData(t, env, &s)
	v, err := model.DecodeAs[string](s)
	require.NoError(t, err)
	assert.Equal(t, "office@vetmissions.org", v)
	assert.Equal(t, 2, s.SettingVersion)

	status, _ = testutil.Do(t, app, http.MethodPut, "/api/settings/contact_email", map[string]any{"value": "stale@vetmissions.org", "version": 1})
	assert.Equal(t, http.StatusConflict, status)

	status, env = testutil.Do(t, app, http.MethodPut, "/api/settings/contact_email", map[string]any{})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []string{"value is required"}, testutil.Errors(t, env))
}

func TestDeleteSetting(t *testing.T) {
	app := newSettingApp(t)

	status, _ := testutil.Do(t, app, http.MethodPost, "/api/settings", map[string]any{"key": "maintenance_mode", "value": true})
	require.Equal(t, http.StatusCreated, status)

	status, _ = testutil.Do(t, app, http.MethodDelete, "/api/settings/maintenance_mode", nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = testutil.Do(t, app, http.MethodGet, "/api/settings/maintenance_mode", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetSetting_UndecodableValue(t *testing.T) {
	app, api := testutil.NewApp()
	db := testutil.NewDB(t)
	route.SettingRoutes(api, db, testutil.NewCache(t))

	require.NoError(t, db.Create(&model.SettingModel{
		SettingKey:     model.KeyMaintenanceMode,
		SettingType:    model.TypeBool,
		SettingValue:   datatypes.JSON(`"maybe"`),
		SettingVersion: 1,
	}).Error)

	status, env := testutil.Do(t, app, http.MethodGet, "/api/settings/maintenance_mode", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, []string{"Server Error"}, testutil.Errors(t, env))
}

func TestListSettings_UndecodableValue(t *testing.T) {
	app, api := testutil.NewApp()
	db := testutil.NewDB(t)
	route.SettingRoutes(api, db, testutil.NewCache(t))

	status, _ := testutil.Do(t, app, http.MethodPost, "/api/settings", map[string]any{"key": "site_title", "value": "Vet Missions"})
	require.Equal(t, http.StatusCreated, status)
	require.NoError(t, db.Create(&model.SettingModel{
		SettingKey:     model.KeyDonationPresets,
		SettingType:    model.TypeIntList,
		SettingValue:   datatypes.JSON(`{"not":"a list"}`),
		SettingVersion: 1,
	}).Error)

	status, env := testutil.Do(t, app, http.MethodGet, "/api/settings", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, []string{"Server Error"}, testutil.Errors(t, env))
}
