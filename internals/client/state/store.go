// Package state is the in-memory application state shared by client
// front-ends: one collection per entity, optimistic mutations and change
// notifications.
package state

import (
	"context"
	"errors"
	"sync"

	"vetmissions_backend/internals/client/service"
	galleryModel "vetmissions_backend/internals/features/content/galleries/model"
	missionModel "vetmissions_backend/internals/features/content/missions/model"
	newsModel "vetmissions_backend/internals/features/content/news/model"
	settingModel "vetmissions_backend/internals/features/content/settings/model"
)

type Op string

const (
	OpLoad   Op = "load"
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event describes a change to a collection. Pending events are published
// when memory changes; a second event follows once the background call
// completes, with Err set if it failed.
type Event struct {
	Entity    string
	Op        Op
	ID        string
	Pending   bool
	FromCache bool
	Err       error
}

type Store struct {
	Missions *Collection[missionModel.MissionModel]
	News     *Collection[newsModel.NewsModel]
	Gallery  *Collection[galleryModel.GalleryModel]
	Settings *Collection[settingModel.SettingModel]

	subsMu  sync.RWMutex
	subs    map[int]func(Event)
	nextSub int

	loadOnce sync.Once
	loadErr  error
	inflight sync.WaitGroup
}

type Services struct {
	Missions service.EntityStore[missionModel.MissionModel]
	News     service.EntityStore[newsModel.NewsModel]
	Gallery  service.EntityStore[galleryModel.GalleryModel]
	Settings service.EntityStore[settingModel.SettingModel]
}

func New(svcs Services) *Store {
	s := &Store{subs: map[int]func(Event){}}
	s.Missions = newCollection[missionModel.MissionModel](s, "missions", svcs.Missions)
	s.News = newCollection[newsModel.NewsModel](s, "news", svcs.News)
	s.Gallery = newCollection[galleryModel.GalleryModel](s, "gallery", svcs.Gallery)
	s.Settings = newCollection[settingModel.SettingModel](s, "settings", svcs.Settings)
	return s
}

// Load seeds every collection once; later calls return the first result.
func (s *Store) Load(ctx context.Context) error {
	s.loadOnce.Do(func() {
		s.loadErr = s.Refresh(ctx)
	})
	return s.loadErr
}

// Refresh reloads every collection from its service, discarding any
// divergence left by failed background calls.
func (s *Store) Refresh(ctx context.Context) error {
	return errors.Join(
		s.Missions.refresh(ctx),
		s.News.refresh(ctx),
		s.Gallery.refresh(ctx),
		s.Settings.refresh(ctx),
	)
}

// Subscribe registers fn for every Event and returns its unsubscribe func.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
		})
	}
}

// Wait blocks until every background service call has finished.
func (s *Store) Wait() {
	s.inflight.Wait()
}

func (s *Store) publish(ev Event) {
	s.subsMu.RLock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (s *Store) background(ctx context.Context, fn func(ctx context.Context)) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		fn(context.WithoutCancel(ctx))
	}()
}
