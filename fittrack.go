// Package fittrack wires the activity metrics core together for a host UI:
// it loads configuration, opens the configured storage backend and exposes
// the record store and session recorder the screens call into.
package fittrack

import (
	"errors"
	"fmt"

	"fittrack/internal/config"
	"fittrack/internal/service"
	"fittrack/internal/store"
)

// App is the assembled core. The host owns exactly one App for the process
// lifetime and closes it on shutdown.
type App struct {
	Config   *config.Config
	Store    *store.RecordStore
	Recorder *service.Recorder

	backend store.Backend
}

// Open loads the configuration, creating an example config file on first
// run, and opens the storage backend it selects.
func Open() (*App, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		if err := config.CreateExample(); err != nil {
			return nil, fmt.Errorf("creating example config: %w", err)
		}
		cfg, err = config.Load()
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return OpenWith(cfg)
}

// OpenWith assembles an App from an already loaded configuration.
func OpenWith(cfg *config.Config) (*App, error) {
	backend, err := store.OpenBackend(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening storage backend: %w", err)
	}

	st := store.New(backend)
	return &App{
		Config:   cfg,
		Store:    st,
		Recorder: service.NewRecorder(st),
		backend:  backend,
	}, nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	if c, ok := a.backend.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
