package controller_test

import (
	"net/http"
	"strings"
	"testing"

	"vetmissions_backend/internals/features/content/missions/model"
	"vetmissions_backend/internals/features/content/missions/route"
	"vetmissions_backend/internals/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMissionApp(t *testing.T) *fiber.App {
	t.Helper()
	app, api := testutil.NewApp()
	route.MissionRoutes(api, testutil.NewDB(t), testutil.NewCache(t))
	return app
}

func turkana() map[string]any {
	return map[string]any{
		"title":             "Turkana Outreach",
		"missionCoverImage": "x.jpg",
		"description":       "d",
		"location":          "Turkana",
		"date":              "Sept 2024",
		"year":              "2024",
	}
}

func createMission(t *testing.T, app *fiber.App, body map[string]any) model.MissionModel {
	t.Helper()
	status, env := testutil.Do(t, app, http.MethodPost, "/api/missions", body)
	require.Equal(t, http.StatusCreated, status, string(env.Error))
	var m model.MissionModel
	testutil.DecodeData(t, env, &m)
	return m
}

func TestCreateMission_AppliesDefaults(t *testing.T) {
	app := newMissionApp(t)

	m := createMission(t, app, turkana())

	assert.Len(t, m.MissionID, 24)
	assert.Equal(t, "Upcoming", m.MissionStatus)
	assert.Equal(t, "0", m.MissionStats.Treated)
	assert.Equal(t, "0", m.MissionStats.Value)
	assert.Equal(t, "0", m.MissionStats.Bibles)
	assert.Equal(t, 1, m.MissionVersion)
	assert.False(t, m.MissionCreatedAt.IsZero())
}

func TestCreateThenGet_ReturnsSamePayload(t *testing.T) {
	app := newMissionApp(t)
	body := turkana()
	body["team"] = "4 vets, 2 pastors"
	body["stats"] = map[string]any{"treated": "350"}

	created := createMission(t, app, body)

	status, env := testutil.Do(t, app, http.MethodGet, "/api/missions/"+created.MissionID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	var got model.MissionModel
	testutil.DecodeData(t, env, &got)
	assert.Equal(t, "Turkana Outreach", got.MissionTitle)
	assert.Equal(t, "4 vets, 2 pastors", got.MissionTeam)
	assert.Equal(t, "350", got.MissionStats.Treated)
	assert.Equal(t, "0", got.MissionStats.Bibles)
	assert.Equal(t, created.MissionID, got.MissionID)
}

func TestCreateMission_ValidationErrors(t *testing.T) {
	app := newMissionApp(t)

	body := turkana()
	delete(body, "title")
	body["status"] = "Cancelled"

	status, env := testutil.Do(t, app, http.MethodPost, "/api/missions", body)
	require.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)

	msgs := testutil.Errors(t, env)
	require.Len(t, msgs, 2)
	assert.Contains(t, strings.Join(msgs, "|"), "title is required")
	assert.Contains(t, strings.Join(msgs, "|"), "status must be one of: Upcoming, Ongoing, Completed")
}

func TestCreateMission_MalformedBody(t *testing.T) {
	app := newMissionApp(t)

	status, env := testutil.Do(t, app, http.MethodPost, "/api/missions", "{not json")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
}

func TestGetMission_NotFoundAndMalformedID(t *testing.T) {
	app := newMissionApp(t)

	for _, id := range []string{"65f1c0ffee0000000000beef", "not-an-id"} {
		status, env := testutil.Do(t, app, http.MethodGet, "/api/missions/"+id, nil)
		assert.Equal(t, http.StatusNotFound, status, id)
		assert.Equal(t, []string{"Mission not found"}, testutil.Errors(t, env))
	}
}

func TestUpdateMission_PartialMerge(t *testing.T) {
	app := newMissionApp(t)
	created := createMission(t, app, turkana())

	status, env := testutil.Do(t, app, http.MethodPut, "/api/missions/"+created.MissionID, map[string]any{
		"status": "Completed",
		"stats":  map[string]any{"bibles": "40"},
	})
	require.Equal(t, http.StatusOK, status, string(env.Error))

	var got model.MissionModel
	testutil.DecodeData(t, env, &got)
	assert.Equal(t, "Completed", got.MissionStatus)
	assert.Equal(t, "40", got.MissionStats.Bibles)
	assert.Equal(t, "0", got.MissionStats.Treated)
	assert.Equal(t, created.MissionTitle, got.MissionTitle)
	assert.Equal(t, created.MissionDescription, got.MissionDescription)
	assert.Equal(t, created.MissionDate, got.MissionDate)
	assert.Equal(t, 2, got.MissionVersion)
}

func TestUpdateMission_InvalidStatusLeavesStoredUnchanged(t *testing.T) {
	app := newMissionApp(t)
	created := createMission(t, app, turkana())

	status, env := testutil.Do(t, app, http.MethodPut, "/api/missions/"+created.MissionID, map[string]any{"status": "Invalid"})
	require.Equal(t, http.StatusBadRequest, status)
	msgs := testutil.Errors(t, env)
	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[0], "status")

	_, env = testutil.Do(t, app, http.MethodGet, "/api/missions/"+created.MissionID, nil)
	var got model.MissionModel
	testutil.DecodeData(t, env, &got)
	assert.Equal(t, "Upcoming", got.MissionStatus)
	assert.Equal(t, 1, got.MissionVersion)
}

func TestUpdateMission_VersionConflict(t *testing.T) {
	app := newMissionApp(t)
	created := createMission(t, app, turkana())

	status, _ := testutil.Do(t, app, http.MethodPut, "/api/missions/"+created.MissionID, map[string]any{"outcome": "ok", "version": 1})
	require.Equal(t, http.StatusOK, status)

	status, env := testutil.Do(t, app, http.MethodPut, "/api/missions/"+created.MissionID, map[string]any{"outcome": "stale", "version": 1})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, []string{"Mission was modified by another request"}, testutil.Errors(t, env))
}

func TestUpdateMission_NotFound(t *testing.T) {
	app := newMissionApp(t)

	status, _ := testutil.Do(t, app, http.MethodPut, "/api/missions/65f1c0ffee0000000000beef", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteMission(t *testing.T) {
	app := newMissionApp(t)
	created := createMission(t, app, turkana())

	status, env := testutil.Do(t, app, http.MethodDelete, "/api/missions/"+created.MissionID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{}`, string(env.Data))

	status, _ = testutil.Do(t, app, http.MethodGet, "/api/missions/"+created.MissionID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = testutil.Do(t, app, http.MethodDelete, "/api/missions/"+created.MissionID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListMissions_DateDescending(t *testing.T) {
	app := newMissionApp(t)

	for _, date := range []string{"2022-07", "2024-09", "2023-01"} {
		body := turkana()
		body["date"] = date
		createMission(t, app, body)
	}

	status, env := testutil.Do(t, app, http.MethodGet, "/api/missions", nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Count)
	assert.Equal(t, 3, *env.Count)

	var list []model.MissionModel
	testutil.DecodeData(t, env, &list)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-09", list[0].MissionDate)
	assert.Equal(t, "2023-01", list[1].MissionDate)
	assert.Equal(t, "2022-07", list[2].MissionDate)
}

func TestListMissions_CacheInvalidatedOnWrite(t *testing.T) {
	app := newMissionApp(t)

	_, env := testutil.Do(t, app, http.MethodGet, "/api/missions", nil)
	assert.Equal(t, 0, *env.Count)

	createMission(t, app, turkana())

	_, env = testutil.Do(t, app, http.MethodGet, "/api/missions", nil)
	assert.Equal(t, 1, *env.Count)
}
