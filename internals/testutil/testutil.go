// Package testutil wires an isolated in-memory database and Fiber app for
// controller tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"vetmissions_backend/internals/cache"
	database "vetmissions_backend/internals/databases"
	helper "vetmissions_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory sqlite database with all content tables.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

// NewCache returns a list cache with a TTL long enough to survive a test.
func NewCache(t *testing.T) *cache.ListCache {
	t.Helper()
	lc, err := cache.NewListCache(16, time.Minute)
	require.NoError(t, err)
	return lc
}

// NewApp returns a Fiber app with the production error handler; mount routes
// on the returned /api group.
func NewApp() (*fiber.App, fiber.Router) {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler, DisableStartupMessage: true})
	return app, app.Group("/api")
}

// Envelope is the decoded response body.
type Envelope struct {
	Success bool            `json:"success"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

// Do sends a JSON request through app and decodes the envelope.
func Do(t *testing.T, app *fiber.App, method, path string, body any) (int, Envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			rd = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env Envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

// DecodeData unmarshals env.Data into out.
func DecodeData(t *testing.T, env Envelope, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out), string(env.Data))
}

// Errors returns env.Error as a message list (single string errors become a
// one-element list).
func Errors(t *testing.T, env Envelope) []string {
	t.Helper()
	var list []string
	if err := json.Unmarshal(env.Error, &list); err == nil {
		return list
	}
	var one string
	require.NoError(t, json.Unmarshal(env.Error, &one))
	return []string{one}
}
