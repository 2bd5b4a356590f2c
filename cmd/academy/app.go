package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/trmn/academy/achievement"
	"github.com/trmn/academy/catalog"
	"github.com/trmn/academy/eligibility"
	"github.com/trmn/academy/internal/config"
	"github.com/trmn/academy/internal/logger"
	"github.com/trmn/academy/internal/paths"
	"github.com/trmn/academy/progress"
)

var errNoCatalog = errors.New("no catalog configured: pass --catalog or set catalog.path in academy.toml")

// app holds the services a command works with.
type app struct {
	log          *logger.Logger
	catalog      *catalog.Catalog
	engine       *eligibility.Engine
	achievements *achievement.Calculator
	store        *progress.Store
}

// openApp loads configuration, the catalog and the progress store for the
// current directory. Flags override config values.
func openApp() (*app, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	catalogPath, err := resolveCatalogPath(cfg)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.LoadFile(catalogPath, catalog.Options{Logger: log})
	if err != nil {
		return nil, err
	}

	stateDir, err := paths.ResolveWithDefault(firstNonEmpty(rootStateDir, cfg.State.Dir), paths.DefaultStateDir)
	if err != nil {
		return nil, err
	}
	if stateDir, err = paths.ExpandHome(stateDir); err != nil {
		return nil, err
	}

	return &app{
		log:          log,
		catalog:      cat,
		engine:       eligibility.New(cat, eligibility.Options{Logger: log}),
		achievements: achievement.New(cat, achievement.Options{Logger: log}),
		store:        progress.NewStore(stateDir),
	}, nil
}

func resolveCatalogPath(cfg *config.Config) (string, error) {
	path := firstNonEmpty(rootCatalogPath, cfg.Catalog.Path)
	if path == "" {
		return "", errNoCatalog
	}
	return paths.ExpandHome(path)
}

// loadProgress reads the snapshot and refreshes its availability cache
// against the current catalog.
func (a *app) loadProgress() (progress.Progress, error) {
	p, err := a.store.Load()
	if err != nil {
		return progress.Progress{}, err
	}
	return a.engine.Refresh(p), nil
}

func (a *app) close() {
	a.log.Sync()
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// now is replaced in tests.
var now = time.Now
