package controller_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vetmissions_backend/internals/features/contact/dto"
	"vetmissions_backend/internals/features/contact/route"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []dto.ContactRequest
	err  error
}

func (f *fakeMailer) Send(_ context.Context, req dto.ContactRequest) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, req)
	return nil
}

type contactResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func newContactApp(m *fakeMailer) *fiber.App {
	app := fiber.New()
	route.ContactRoutes(app.Group("/api"), m)
	return app
}

func post(t *testing.T, app *fiber.App, body string) (int, contactResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out contactResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestSendContact_Success(t *testing.T) {
	m := &fakeMailer{}
	app := newContactApp(m)

	status, out := post(t, app, `{"name":" Amina ","email":"amina@example.com","interest":"Donate","message":"Hello"}`)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, out.Success)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "Amina", m.sent[0].Name)
}

func TestSendContact_Invalid(t *testing.T) {
	m := &fakeMailer{}
	app := newContactApp(m)

	status, out := post(t, app, `{"name":"Amina","email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.False(t, out.Success)
	assert.Equal(t, "Invalid contact request", out.Message)
	assert.Len(t, out.Errors, 2)
	assert.Empty(t, m.sent)
}

func TestSendContact_MailerFailure(t *testing.T) {
	app := newContactApp(&fakeMailer{err: errors.New("dial tcp: refused")})

	status, out := post(t, app, `{"name":"Amina","email":"amina@example.com","message":"Hello"}`)
	require.Equal(t, http.StatusInternalServerError, status)
	assert.False(t, out.Success)
	assert.Equal(t, "Email failed", out.Message)
}

func TestSendContact_RateLimited(t *testing.T) {
	app := newContactApp(&fakeMailer{})
	body := `{"name":"Amina","email":"amina@example.com","message":"Hello"}`

	for i := 0; i < 5; i++ {
		status, _ := post(t, app, body)
		require.Equal(t, http.StatusOK, status)
	}
	status, out := post(t, app, body)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.False(t, out.Success)
}
