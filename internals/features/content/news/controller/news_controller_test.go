package controller_test

import (
	"net/http"
	"testing"
	"time"

	"vetmissions_backend/internals/features/content/news/controller"
	"vetmissions_backend/internals/features/content/news/model"
	"vetmissions_backend/internals/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNewsApp(t *testing.T, now func() time.Time) *fiber.App {
	t.Helper()
	app, api := testutil.NewApp()
	ctrl := controller.NewNewsController(testutil.NewDB(t), testutil.NewCache(t))
	ctrl.Now = now

	news := api.Group("/news")
	news.Get("/", ctrl.GetAllNews)
	news.Post("/", ctrl.CreateNews)
	news.Get("/:id", ctrl.GetNewsByID)
	news.Put("/:id", ctrl.UpdateNews)
	news.Delete("/:id", ctrl.DeleteNews)
	return app
}

func story(title string) map[string]any {
	return map[string]any{
		"title":   title,
		"image":   "story.jpg",
		"content": "<p>We vaccinated 400 goats.</p>",
	}
}

func TestCreateNews_Defaults(t *testing.T) {
	fixed := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	app := newNewsApp(t, func() time.Time { return fixed })

	status, env := testutil.Do(t, app, http.MethodPost, "/api/news", story("Goats of Samburu"))
	require.Equal(t, http.StatusCreated, status, string(env.Error))

	var n model.NewsModel
	testutil.DecodeData(t, env, &n)
	assert.Equal(t, "Draft", n.NewsStatus)
	assert.Equal(t, "General", n.NewsCategory)
	assert.Equal(t, "Admin", n.NewsAuthor)
	assert.True(t, fixed.Equal(n.NewsPublishedAt))
	assert.Nil(t, n.NewsReadTime)
}

func TestCreateNews_CategoryOutsideSet(t *testing.T) {
	app := newNewsApp(t, time.Now)

	body := story("Bad category")
	body["category"] = "Gossip"

	status, env := testutil.Do(t, app, http.MethodPost, "/api/news", body)
	require.Equal(t, http.StatusBadRequest, status)
	msgs := testutil.Errors(t, env)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "category must be one of")
}

func TestCreateNews_CategoryWithSpace(t *testing.T) {
	app := newNewsApp(t, time.Now)

	body := story("Report")
	body["category"] = "Mission Report"
	body["status"] = "Published"

	status, env := testutil.Do(t, app, http.MethodPost, "/api/news", body)
	require.Equal(t, http.StatusCreated, status, string(env.Error))
}

func TestListNews_PublishedAtDescending(t *testing.T) {
	app := newNewsApp(t, time.Now)

	for i, day := range []int{3, 9, 1} {
		body := story("n" + string(rune('a'+i)))
		body["publishedAt"] = time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC)
		status, _ := testutil.Do(t, app, http.MethodPost, "/api/news", body)
		require.Equal(t, http.StatusCreated, status)
	}

	_, env := testutil.Do(t, app, http.MethodGet, "/api/news", nil)
	var list []model.NewsModel
	testutil.DecodeData(t, env, &list)
	require.Len(t, list, 3)
	assert.Equal(t, 9, list[0].NewsPublishedAt.Day())
	assert.Equal(t, 3, list[1].NewsPublishedAt.Day())
	assert.Equal(t, 1, list[2].NewsPublishedAt.Day())
}

func TestUpdateNews_OnlySuppliedFieldsChange(t *testing.T) {
	app := newNewsApp(t, time.Now)

	_, env := testutil.Do(t, app, http.MethodPost, "/api/news", story("Original"))
	var created model.NewsModel
	testutil.DecodeData(t, env, &created)

	status, env := testutil.Do(t, app, http.MethodPut, "/api/news/"+created.NewsID, map[string]any{
		"status":   "Published",
		"readTime": "3 min read",
	})
	require.Equal(t, http.StatusOK, status, string(env.Error))

	var updated model.NewsModel
	testutil.DecodeData(t, env, &updated)
	assert.Equal(t, "Published", updated.NewsStatus)
	require.NotNil(t, updated.NewsReadTime)
	assert.Equal(t, "3 min read", *updated.NewsReadTime)
	assert.Equal(t, created.NewsTitle, updated.NewsTitle)
	assert.Equal(t, created.NewsContent, updated.NewsContent)
	assert.Equal(t, created.NewsCategory, updated.NewsCategory)
}

func TestUpdateNews_RejectsEmptyRequiredField(t *testing.T) {
	app := newNewsApp(t, time.Now)

	_, env := testutil.Do(t, app, http.MethodPost, "/api/news", story("Original"))
	var created model.NewsModel
	testutil.DecodeData(t, env, &created)

	status, env := testutil.Do(t, app, http.MethodPut, "/api/news/"+created.NewsID, map[string]any{"title": ""})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []string{"title is required"}, testutil.Errors(t, env))
}

func TestDeleteNews_Missing(t *testing.T) {
	app := newNewsApp(t, time.Now)

	status, env := testutil.Do(t, app, http.MethodDelete, "/api/news/65f1c0ffee0000000000beef", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, []string{"News not found"}, testutil.Errors(t, env))
}
