package localstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"vetmissions_backend/internals/client/patch"
	helper "vetmissions_backend/internals/helpers"

	"github.com/google/uuid"
)

// Identifiable is satisfied by pointers to the content models.
type Identifiable[T any] interface {
	*T
	EntityID() string
	SetEntityID(id string)
}

// defaulter is implemented by models with insert-time defaults.
type defaulter interface {
	ApplyDefaults(now time.Time)
}

// FallbackStore keeps one entity collection under a fixed key.
type FallbackStore[T any, PT Identifiable[T]] struct {
	db  *DB
	key string
	mu  sync.Mutex
	now func() time.Time
}

func NewFallbackStore[T any, PT Identifiable[T]](db *DB, key string) *FallbackStore[T, PT] {
	return &FallbackStore[T, PT]{db: db, key: key, now: time.Now}
}

func (s *FallbackStore[T, PT]) Key() string { return s.key }

func (s *FallbackStore[T, PT]) List(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *FallbackStore[T, PT]) Get(ctx context.Context, id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	items, err := s.load(ctx)
	if err != nil {
		return zero, err
	}
	if i := indexOf[T, PT](items, id); i >= 0 {
		return items[i], nil
	}
	return zero, helper.ErrNotFound
}

// Create decodes payload into a new entity, fills its defaults and appends
// it. An id is generated when the payload carries none.
func (s *FallbackStore[T, PT]) Create(ctx context.Context, payload any) (T, error) {
	item, err := patch.Decode[T](payload)
	if err != nil {
		return item, helper.NewValidationError(err.Error())
	}
	if d, ok := any(PT(&item)).(defaulter); ok {
		d.ApplyDefaults(s.now())
	}
	if PT(&item).EntityID() == "" {
		PT(&item).SetEntityID(uuid.NewString())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load(ctx)
	if err != nil {
		return item, err
	}
	if indexOf[T, PT](items, PT(&item).EntityID()) >= 0 {
		return item, helper.NewValidationError("id " + PT(&item).EntityID() + " already exists")
	}
	items = append(items, item)
	return item, s.db.Save(ctx, s.key, items)
}

func (s *FallbackStore[T, PT]) Update(ctx context.Context, id string, payload any) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	items, err := s.load(ctx)
	if err != nil {
		return zero, err
	}
	i := indexOf[T, PT](items, id)
	if i < 0 {
		return zero, helper.ErrNotFound
	}
	updated, err := patch.Apply(items[i], payload)
	if err != nil {
		return zero, helper.NewValidationError(err.Error())
	}
	PT(&updated).SetEntityID(id)
	items[i] = updated
	return updated, s.db.Save(ctx, s.key, items)
}

func (s *FallbackStore[T, PT]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf[T, PT](items, id)
	if i < 0 {
		return helper.ErrNotFound
	}
	items = append(items[:i], items[i+1:]...)
	return s.db.Save(ctx, s.key, items)
}

// Replace overwrites the snapshot with items (a fresh remote list).
func (s *FallbackStore[T, PT]) Replace(ctx context.Context, items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if items == nil {
		items = []T{}
	}
	return s.db.Save(ctx, s.key, items)
}

// Upsert stores item, replacing any entry with the same id.
func (s *FallbackStore[T, PT]) Upsert(ctx context.Context, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	if i := indexOf[T, PT](items, PT(&item).EntityID()); i >= 0 {
		items[i] = item
	} else {
		items = append(items, item)
	}
	return s.db.Save(ctx, s.key, items)
}

// Remove drops id from the snapshot if present.
func (s *FallbackStore[T, PT]) Remove(ctx context.Context, id string) error {
	err := s.Delete(ctx, id)
	if errors.Is(err, helper.ErrNotFound) {
		return nil
	}
	return err
}

func (s *FallbackStore[T, PT]) load(ctx context.Context) ([]T, error) {
	var items []T
	ok, err := s.db.Load(ctx, s.key, &items)
	if err != nil {
		return nil, err
	}
	if !ok || items == nil {
		items = []T{}
	}
	return items, nil
}

func indexOf[T any, PT Identifiable[T]](items []T, id string) int {
	for i := range items {
		if PT(&items[i]).EntityID() == id {
			return i
		}
	}
	return -1
}
