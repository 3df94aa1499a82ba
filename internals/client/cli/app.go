// Package cli implements vmpadmin, a small content editor that works against
// the API and keeps working from the local store when the API is down.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"vetmissions_backend/internals/client/config"
	"vetmissions_backend/internals/client/localstore"
	"vetmissions_backend/internals/client/service"
	"vetmissions_backend/internals/client/state"

	"github.com/fatih/color"
)

const usage = `usage: vmpadmin [-a api-url] [-l local-db] [-t seconds] <entity> <action> [id] [json]

entities: missions, news, gallery, settings
actions:  list, get <id>, create <json>, update <id> <json>, delete <id>`

var ErrUsage = errors.New(usage)

type App struct {
	cfg   *config.Config
	local *localstore.DB
	state *state.Store
	out   io.Writer

	ok   *color.Color
	warn *color.Color
	bad  *color.Color
}

func NewApp(cfg *config.Config, out io.Writer) (*App, error) {
	local, err := localstore.Open(cfg.LocalDB)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, local, out), nil
}

func newApp(cfg *config.Config, local *localstore.DB, out io.Writer) *App {
	opts := service.Options{BaseURL: cfg.APIURL, Timeout: cfg.Timeout, Local: local}
	st := state.New(state.Services{
		Missions: service.NewMissionService(opts),
		News:     service.NewNewsService(opts),
		Gallery:  service.NewGalleryService(opts),
		Settings: service.NewSettingService(opts),
	})

	a := &App{
		cfg:   cfg,
		local: local,
		state: st,
		out:   &lockedWriter{w: out},
		ok:    color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		bad:   color.New(color.FgRed, color.Bold),
	}
	if cfg.NoColor {
		for _, c := range []*color.Color{a.ok, a.warn, a.bad} {
			c.DisableColor()
		}
	}
	return a
}

func (a *App) Close() {
	a.state.Wait()
	a.local.Close()
}

// Run executes one command and waits for its background write to finish.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	entity, action, rest := args[0], args[1], args[2:]

	var failure error
	unsubscribe := a.state.Subscribe(func(ev state.Event) {
		switch {
		case ev.Err != nil:
			failure = ev.Err
		case !ev.Pending && ev.Op != state.OpLoad && ev.FromCache:
			a.warn.Fprintf(a.out, "%s %s saved locally only (API unavailable)\n", ev.Op, ev.ID)
		}
	})
	defer unsubscribe()

	if err := a.state.Load(ctx); err != nil {
		return err
	}

	var err error
	switch entity {
	case "missions":
		err = runOn(ctx, a, a.state.Missions, action, rest)
	case "news":
		err = runOn(ctx, a, a.state.News, action, rest)
	case "gallery", "galleries":
		err = runOn(ctx, a, a.state.Gallery, action, rest)
	case "settings":
		err = runOn(ctx, a, a.state.Settings, action, rest)
	default:
		return fmt.Errorf("unknown entity %q\n%w", entity, ErrUsage)
	}
	if err != nil {
		return err
	}

	a.state.Wait()
	return failure
}

func runOn[T any](ctx context.Context, a *App, c *state.Collection[T], action string, rest []string) error {
	switch action {
	case "list":
		items := c.Items()
		a.source(c.FromCache())
		return a.print(items)
	case "get":
		if len(rest) != 1 {
			return ErrUsage
		}
		item, ok := c.Get(rest[0])
		if !ok {
			return fmt.Errorf("%s not found", rest[0])
		}
		a.source(c.FromCache())
		return a.print(item)
	case "create":
		if len(rest) != 1 {
			return ErrUsage
		}
		id, err := c.Add(ctx, json.RawMessage(rest[0]))
		if err != nil {
			return err
		}
		a.ok.Fprintf(a.out, "created %s\n", id)
		return nil
	case "update":
		if len(rest) != 2 {
			return ErrUsage
		}
		if err := c.Update(ctx, rest[0], json.RawMessage(rest[1])); err != nil {
			return err
		}
		a.ok.Fprintf(a.out, "updated %s\n", rest[0])
		return nil
	case "delete":
		if len(rest) != 1 {
			return ErrUsage
		}
		if err := c.Delete(ctx, rest[0]); err != nil {
			return err
		}
		a.ok.Fprintf(a.out, "deleted %s\n", rest[0])
		return nil
	}
	return fmt.Errorf("unknown action %q\n%w", action, ErrUsage)
}

func (a *App) source(fromCache bool) {
	if fromCache {
		a.warn.Fprintln(a.out, "(from local cache)")
	}
}

func (a *App) print(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(raw))
	return err
}

// Fail prints err in red, stripping the usage text from wrapped errors.
func (a *App) Fail(err error) {
	msg := err.Error()
	if errors.Is(err, ErrUsage) && msg != usage {
		msg = strings.TrimSuffix(msg, "\n"+usage)
		a.bad.Fprintln(a.out, msg)
		fmt.Fprintln(a.out, usage)
		return
	}
	a.bad.Fprintln(a.out, msg)
}

// lockedWriter serializes output from background events and the command.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
