package state

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"vetmissions_backend/internals/client/patch"
	"vetmissions_backend/internals/client/service"
	helper "vetmissions_backend/internals/helpers"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const tempIDPrefix = "tmp-"

type identifiable interface {
	EntityID() string
	SetEntityID(id string)
}

// Collection is the in-memory copy of one entity type.
type Collection[T any] struct {
	store *Store
	name  string
	svc   service.EntityStore[T]

	mu        sync.RWMutex
	items     []T
	fromCache bool
}

func newCollection[T any](s *Store, name string, svc service.EntityStore[T]) *Collection[T] {
	return &Collection[T]{store: s, name: name, svc: svc, items: []T{}}
}

// Items returns a copy of the current items.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// FromCache reports whether the last load came from the local store.
func (c *Collection[T]) FromCache() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fromCache
}

func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Add inserts the decoded payload immediately and creates it in the
// background. Items without an id get a temporary one, replaced by the
// stored id on success. It returns the id the item carries in memory.
func (c *Collection[T]) Add(ctx context.Context, payload any) (string, error) {
	item, err := patch.Decode[T](payload)
	if err != nil {
		return "", helper.NewValidationError(err.Error())
	}
	id := entityID(&item)
	if id == "" {
		id = tempIDPrefix + uuid.NewString()
		setEntityID(&item, id)
	}

	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
	c.store.publish(Event{Entity: c.name, Op: OpAdd, ID: id, Pending: true})

	c.store.background(ctx, func(ctx context.Context) {
		res, err := c.svc.Create(ctx, payload)
		if err != nil {
			c.failed(OpAdd, id, err)
			return
		}
		c.mu.Lock()
		if i := c.indexOf(id); i >= 0 {
			c.items[i] = res.Item
		}
		c.mu.Unlock()
		c.store.publish(Event{Entity: c.name, Op: OpAdd, ID: entityID(&res.Item), FromCache: res.FromCache})
	})
	return id, nil
}

// Update merges patch into the item in memory and updates it in the
// background.
func (c *Collection[T]) Update(ctx context.Context, id string, changes any) error {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return helper.ErrNotFound
	}
	merged, err := patch.Apply(c.items[i], changes)
	if err != nil {
		c.mu.Unlock()
		return helper.NewValidationError(err.Error())
	}
	setEntityID(&merged, id)
	c.items[i] = merged
	c.mu.Unlock()
	c.store.publish(Event{Entity: c.name, Op: OpUpdate, ID: id, Pending: true})

	c.store.background(ctx, func(ctx context.Context) {
		res, err := c.svc.Update(ctx, id, changes)
		if err != nil {
			c.failed(OpUpdate, id, err)
			return
		}
		c.mu.Lock()
		if i := c.indexOf(id); i >= 0 {
			c.items[i] = res.Item
		}
		c.mu.Unlock()
		c.store.publish(Event{Entity: c.name, Op: OpUpdate, ID: id, FromCache: res.FromCache})
	})
	return nil
}

// Delete removes the item from memory and deletes it in the background.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return helper.ErrNotFound
	}
	c.items = slices.Delete(c.items, i, i+1)
	c.mu.Unlock()
	c.store.publish(Event{Entity: c.name, Op: OpDelete, ID: id, Pending: true})

	c.store.background(ctx, func(ctx context.Context) {
		fromCache, err := c.svc.Delete(ctx, id)
		if err != nil {
			c.failed(OpDelete, id, err)
			return
		}
		c.store.publish(Event{Entity: c.name, Op: OpDelete, ID: id, FromCache: fromCache})
	})
	return nil
}

func (c *Collection[T]) refresh(ctx context.Context) error {
	if c.svc == nil {
		return nil
	}
	res, err := c.svc.List(ctx)
	if err != nil {
		c.store.publish(Event{Entity: c.name, Op: OpLoad, Err: err})
		return fmt.Errorf("load %s: %w", c.name, err)
	}
	c.mu.Lock()
	c.items = res.Items
	if c.items == nil {
		c.items = []T{}
	}
	c.fromCache = res.FromCache
	c.mu.Unlock()
	c.store.publish(Event{Entity: c.name, Op: OpLoad, FromCache: res.FromCache})
	return nil
}

// failed leaves memory as it is; Refresh reconciles.
func (c *Collection[T]) failed(op Op, id string, err error) {
	log.Error().Err(err).Str("entity", c.name).Str("op", string(op)).Str("id", id).Msg("background call failed")
	c.store.publish(Event{Entity: c.name, Op: op, ID: id, Err: err})
}

func (c *Collection[T]) indexOf(id string) int {
	for i := range c.items {
		if entityID(&c.items[i]) == id {
			return i
		}
	}
	return -1
}

func entityID[T any](item *T) string {
	if e, ok := any(item).(identifiable); ok {
		return e.EntityID()
	}
	return ""
}

func setEntityID[T any](item *T, id string) {
	if e, ok := any(item).(identifiable); ok {
		e.SetEntityID(id)
	}
}
