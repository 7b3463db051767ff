package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	fssnapshot "github.com/harborline/sso-migrate/internal/adapters/fs/snapshot"
	postgres "github.com/harborline/sso-migrate/internal/adapters/postgres"
	pgrunlog "github.com/harborline/sso-migrate/internal/adapters/postgres/runlog"
	"github.com/harborline/sso-migrate/internal/adapters/vendorhttp"
	"github.com/harborline/sso-migrate/internal/domain"
	"github.com/harborline/sso-migrate/internal/platform/clock"
	"github.com/harborline/sso-migrate/internal/platform/config"
	"github.com/harborline/sso-migrate/internal/platform/logging"
	runlogport "github.com/harborline/sso-migrate/internal/ports/out/runlog"
	snapshotport "github.com/harborline/sso-migrate/internal/ports/out/snapshot"
	vendorapiport "github.com/harborline/sso-migrate/internal/ports/out/vendorapi"
)

// driver owns the per-run wiring: one vendor client, one snapshot store,
// one optional run recorder, and the team list. Teams are processed strictly
// sequentially; ordered, reproducible logs matter more than throughput here.
type driver struct {
	cfg      config.Config
	log      *zap.Logger
	vendor   vendorapiport.Client
	snaps    snapshotport.Store
	recorder runlogport.Recorder
	teams    []domain.TeamConfig
	runID    string

	cleanup func()
}

func newDriver(ctx context.Context, cfg config.Config) (*driver, error) {
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	teams, err := cfg.Teams()
	if err != nil {
		return nil, err
	}

	d := &driver{
		cfg:     cfg,
		log:     log,
		vendor:  vendorhttp.NewClient(cfg.APIBaseURL, vendorhttp.WithTimeout(cfg.APITimeout)),
		snaps:   fssnapshot.NewStore(cfg.BackupDir, clock.NewSystemClock()),
		teams:   teams,
		runID:   uuid.NewString(),
		cleanup: func() { _ = log.Sync() },
	}

	if cfg.RunlogDSN != "" {
		pool, err := postgres.NewPool(ctx, cfg.RunlogDSN)
		if err != nil {
			return nil, fmt.Errorf("run history unavailable: %w", err)
		}
		if err := pgrunlog.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		d.recorder = pgrunlog.NewRecorder(pool)
		prev := d.cleanup
		d.cleanup = func() {
			pool.Close()
			prev()
		}
	}
	return d, nil
}

// record persists one team's outcome when a run history is configured.
// Recording failures are logged, never fatal: the migration already happened.
func (d *driver) record(ctx context.Context, rec runlogport.Record) {
	if d.recorder == nil {
		return
	}
	rec.ID = uuid.NewString()
	rec.RunID = d.runID
	rec.CreatedAt = clock.NewSystemClock().Now()
	if err := d.recorder.Record(ctx, rec); err != nil {
		d.log.Warn("failed to record run history", zap.Error(err))
	}
}
