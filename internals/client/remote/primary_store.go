// Package remote talks to the content REST API.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	helper "vetmissions_backend/internals/helpers"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

const DefaultTimeout = 5 * time.Second

// StatusError is an authoritative 4xx answer the store has no sentinel for.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote answered %d: %s", e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

// PrimaryStore is the remote tier for one resource (e.g. /api/missions).
type PrimaryStore[T any] struct {
	BaseURL  string
	Resource string
	Timeout  time.Duration
}

func NewPrimaryStore[T any](baseURL, resource string, timeout time.Duration) *PrimaryStore[T] {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &PrimaryStore[T]{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Resource: resource,
		Timeout:  timeout,
	}
}

func (s *PrimaryStore[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := s.do(ctx, fiber.MethodGet, "", nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *PrimaryStore[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	err := s.do(ctx, fiber.MethodGet, id, nil, &item)
	return item, err
}

func (s *PrimaryStore[T]) Create(ctx context.Context, payload any) (T, error) {
	var item T
	err := s.do(ctx, fiber.MethodPost, "", payload, &item)
	return item, err
}

func (s *PrimaryStore[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	var item T
	err := s.do(ctx, fiber.MethodPut, id, payload, &item)
	return item, err
}

func (s *PrimaryStore[T]) Delete(ctx context.Context, id string) error {
	return s.do(ctx, fiber.MethodDelete, id, nil, nil)
}

func (s *PrimaryStore[T]) url(id string) string {
	u := s.BaseURL + "/api/" + s.Resource
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

// timeout is the per-call timeout, shortened to the context deadline.
func (s *PrimaryStore[T]) timeout(ctx context.Context) time.Duration {
	t := s.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < t {
			t = left
		}
	}
	return t
}

func (s *PrimaryStore[T]) do(ctx context.Context, method, id string, payload, out any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", helper.ErrRemoteUnavailable, err)
	}
	timeout := s.timeout(ctx)
	if timeout <= 0 {
		return fmt.Errorf("%w: deadline exceeded", helper.ErrRemoteUnavailable)
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(s.url(id))
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	a.Timeout(timeout)
	a.JSONEncoder(sonic.Marshal)
	a.JSONDecoder(sonic.Unmarshal)
	if payload != nil {
		a.JSON(payload)
	}
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return fmt.Errorf("%w: %v", helper.ErrRemoteUnavailable, err)
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", helper.ErrRemoteUnavailable, errs[0])
	}
	return decode(code, body, out)
}

func decode(code int, body []byte, out any) error {
	var env envelope
	parseErr := sonic.Unmarshal(body, &env)

	switch {
	case code >= fiber.StatusInternalServerError,
		code == fiber.StatusRequestTimeout,
		code == fiber.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", helper.ErrRemoteUnavailable, code)
	case code == fiber.StatusNotFound:
		return helper.ErrNotFound
	case code == fiber.StatusConflict:
		return helper.ErrConflict
	case code == fiber.StatusBadRequest:
		return helper.NewValidationError(errorMessages(env.Error)...)
	case code >= fiber.StatusBadRequest:
		msgs := errorMessages(env.Error)
		return &StatusError{Code: code, Message: strings.Join(msgs, "; ")}
	}

	if parseErr != nil || !env.Success {
		return fmt.Errorf("%w: malformed payload (status %d)", helper.ErrRemoteUnavailable, code)
	}
	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: malformed data: %v", helper.ErrRemoteUnavailable, err)
	}
	return nil
}

// errorMessages reads the "error" field, which is a string or a list.
func errorMessages(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := sonic.Unmarshal(raw, &list); err == nil {
		return list
	}
	var one string
	if err := sonic.Unmarshal(raw, &one); err == nil && one != "" {
		return []string{one}
	}
	return nil
}
