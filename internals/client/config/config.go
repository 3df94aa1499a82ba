// Package config holds the admin CLI settings.
package config

import (
	"flag"
	"io"
	"time"

	"vetmissions_backend/internals/client/remote"
)

// Config holds runtime settings for vmpadmin.
//
//   - APIURL: base URL of the content API; empty runs offline.
//   - LocalDB: sqlite file used as the local fallback store.
//   - Timeout: per-call timeout for the remote store.
type Config struct {
	APIURL  string
	LocalDB string
	Timeout time.Duration
	NoColor bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://127.0.0.1:3000"
	c.LocalDB = "vmpadmin.db"
	c.Timeout = remote.DefaultTimeout
}

// Parse applies defaults, then command-line flags, and returns the remaining
// positional arguments.
//
//	-a string   API base URL ("" for offline)
//	-l string   local fallback database
//	-t int      remote timeout in seconds
//	-no-color   plain output
func Parse(args []string, stderr io.Writer) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	fs := flag.NewFlagSet("vmpadmin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "API base URL (empty for offline)")
	fs.StringVar(&cfg.LocalDB, "l", cfg.LocalDB, "local fallback database file")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "remote timeout (in seconds)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	cfg.Timeout = time.Duration(*timeout) * time.Second
	return cfg, fs.Args(), nil
}
