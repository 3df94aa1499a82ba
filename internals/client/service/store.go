// Package service gives each content entity one data-access API that reads
// and writes the remote REST store and falls back to the local snapshot when
// the remote cannot answer.
package service

import (
	"context"
	"errors"

	helper "vetmissions_backend/internals/helpers"

	"github.com/rs/zerolog/log"
)

type Result[T any] struct {
	Item      T
	FromCache bool
}

type ListResult[T any] struct {
	Items     []T
	FromCache bool
}

// EntityStore is the capability every entity service offers.
type EntityStore[T any] interface {
	List(ctx context.Context) (ListResult[T], error)
	Get(ctx context.Context, id string) (Result[T], error)
	Create(ctx context.Context, payload any) (Result[T], error)
	Update(ctx context.Context, id string, patch any) (Result[T], error)
	Delete(ctx context.Context, id string) (fromCache bool, err error)
}

// Primary is the remote tier.
type Primary[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, payload any) (T, error)
	Update(ctx context.Context, id string, payload any) (T, error)
	Delete(ctx context.Context, id string) error
}

// Fallback is the local tier; it also keeps the snapshot of remote reads.
type Fallback[T any] interface {
	Primary[T]
	Replace(ctx context.Context, items []T) error
	Upsert(ctx context.Context, item T) error
	Remove(ctx context.Context, id string) error
}

// Store composes a primary and a fallback tier. A nil primary means offline:
// every call goes to the fallback.
type Store[T any] struct {
	name     string
	primary  Primary[T]
	fallback Fallback[T]
}

var _ EntityStore[struct{}] = (*Store[struct{}])(nil)

func NewStore[T any](name string, primary Primary[T], fallback Fallback[T]) *Store[T] {
	return &Store[T]{name: name, primary: primary, fallback: fallback}
}

func (s *Store[T]) List(ctx context.Context) (ListResult[T], error) {
	if s.primary != nil {
		items, err := s.primary.List(ctx)
		if err == nil {
			s.snapshot("list", s.fallback.Replace(ctx, items))
			return ListResult[T]{Items: items}, nil
		}
		if !s.unavailable("list", err) {
			return ListResult[T]{}, err
		}
	}

	items, err := s.fallback.List(ctx)
	if err != nil {
		log.Warn().Err(err).Str("entity", s.name).Msg("local list failed, returning empty")
		items = []T{}
	}
	return ListResult[T]{Items: items, FromCache: true}, nil
}

func (s *Store[T]) Get(ctx context.Context, id string) (Result[T], error) {
	if s.primary != nil {
		item, err := s.primary.Get(ctx, id)
		if err == nil {
			s.snapshot("get", s.fallback.Upsert(ctx, item))
			return Result[T]{Item: item}, nil
		}
		if !s.unavailable("get", err) && !s.localOnly("get", err) {
			return Result[T]{}, err
		}
	}

	item, err := s.fallback.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, helper.ErrNotFound) {
			log.Warn().Err(err).Str("entity", s.name).Msg("local get failed")
		}
		return Result[T]{}, helper.ErrNotFound
	}
	return Result[T]{Item: item, FromCache: true}, nil
}

func (s *Store[T]) Create(ctx context.Context, payload any) (Result[T], error) {
	if s.primary != nil {
		item, err := s.primary.Create(ctx, payload)
		if err == nil {
			s.snapshot("create", s.fallback.Upsert(ctx, item))
			return Result[T]{Item: item}, nil
		}
		if !s.unavailable("create", err) {
			return Result[T]{}, err
		}
	}

	item, err := s.fallback.Create(ctx, payload)
	if err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Item: item, FromCache: true}, nil
}

func (s *Store[T]) Update(ctx context.Context, id string, patch any) (Result[T], error) {
	if s.primary != nil {
		item, err := s.primary.Update(ctx, id, patch)
		if err == nil {
			s.snapshot("update", s.fallback.Upsert(ctx, item))
			return Result[T]{Item: item}, nil
		}
		if !s.unavailable("update", err) && !s.localOnly("update", err) {
			return Result[T]{}, err
		}
	}

	item, err := s.fallback.Update(ctx, id, patch)
	if err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Item: item, FromCache: true}, nil
}

func (s *Store[T]) Delete(ctx context.Context, id string) (bool, error) {
	if s.primary != nil {
		err := s.primary.Delete(ctx, id)
		if err == nil {
			s.snapshot("delete", s.fallback.Remove(ctx, id))
			return false, nil
		}
		if !s.unavailable("delete", err) && !s.localOnly("delete", err) {
			return false, err
		}
	}

	if err := s.fallback.Delete(ctx, id); err != nil {
		return true, err
	}
	return true, nil
}

// unavailable reports whether err means "try the fallback". Validation and
// conflict answers are authoritative and never reach the local tier.
func (s *Store[T]) unavailable(op string, err error) bool {
	if !errors.Is(err, helper.ErrRemoteUnavailable) {
		return false
	}
	log.Warn().Err(err).Str("entity", s.name).Str("op", op).Msg("remote unavailable, using local store")
	return true
}

// localOnly reports whether the remote does not know the id. Items created
// while offline carry local ids, so the local tier still gets asked.
func (s *Store[T]) localOnly(op string, err error) bool {
	if !errors.Is(err, helper.ErrNotFound) {
		return false
	}
	log.Debug().Str("entity", s.name).Str("op", op).Msg("not found remotely, checking local store")
	return true
}

func (s *Store[T]) snapshot(op string, err error) {
	if err != nil {
		log.Warn().Err(err).Str("entity", s.name).Str("op", op).Msg("local snapshot not updated")
	}
}
