package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/cashheal/internal/cli"
	"github.com/Veraticus/cashheal/internal/config"
	"github.com/Veraticus/cashheal/internal/i18n"
	"github.com/Veraticus/cashheal/internal/kvstore"
	"github.com/Veraticus/cashheal/internal/ledger"
	"github.com/Veraticus/cashheal/internal/service"
	"github.com/Veraticus/cashheal/internal/storage"
	"github.com/spf13/viper"
)

// app bundles everything a command needs, opened from the current config.
type app struct {
	cfg        *config.Config
	storage    service.Storage
	kv         service.KeyValue
	plans      *storage.PlanStore
	recorder   *ledger.Recorder
	translator *i18n.Translator
	renderer   *cli.Renderer
	closers    []func() error
}

// openApp loads the config and opens an initialized store for the
// configured backend.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	if err := a.openStorage(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	if err := a.storage.Initialize(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to initialize %s storage: %w", cfg.Backend, err)
	}

	a.plans = storage.NewPlanStore(a.kv)
	a.recorder = ledger.NewRecorder(a.storage)
	a.translator = i18n.NewTranslator(cfg.Settings.Language)
	a.renderer = cli.NewRenderer(a.translator, cfg.Settings.Currency)
	return a, nil
}

func (a *app) openStorage(ctx context.Context) error {
	switch a.cfg.Backend {
	case config.BackendSQLite:
		store, err := storage.NewSQLiteStorage(a.cfg.DBPath)
		if err != nil {
			return err
		}
		a.storage, a.kv = store, store
		a.closers = append(a.closers, store.Close)

	case config.BackendRedis:
		kv, err := kvstore.NewRedis(ctx, a.cfg.RedisURL, a.cfg.RedisPrefix)
		if err != nil {
			return err
		}
		a.storage, a.kv = storage.NewKVStorage(kv), kv
		a.closers = append(a.closers, kv.Close)

	case config.BackendMemory:
		slog.Warn("Using in-memory storage; nothing is kept after exit")
		kv := kvstore.NewMemory()
		a.storage, a.kv = storage.NewKVStorage(kv), kv

	default:
		return fmt.Errorf("unknown backend %q", a.cfg.Backend)
	}

	slog.Debug("Opened storage", "backend", a.cfg.Backend)
	return nil
}

// Close releases the store.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// parseDateFlag accepts RFC3339 or a plain date in local time. With endOfDay a
// plain date covers the whole day, for inclusive upper bounds.
func parseDateFlag(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (use YYYY-MM-DD or RFC3339)", value)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Millisecond)
	}
	return &t, nil
}
