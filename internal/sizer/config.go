// Package sizer assembles the catalog source, evaluation service and API
// server from the command line options.
package sizer

import (
	"context"
	"net/http"

	"github.com/autopeer-io/edfsizer/internal/sizer/catalog"
	"github.com/autopeer-io/edfsizer/internal/sizer/core/pack"
	"github.com/autopeer-io/edfsizer/internal/sizer/core/powertrain"
	"github.com/autopeer-io/edfsizer/internal/sizer/core/service"
	"github.com/autopeer-io/edfsizer/internal/sizer/server"
	"github.com/autopeer-io/edfsizer/internal/sizer/snapshot"
	"github.com/autopeer-io/edfsizer/internal/sizer/storage"
	"github.com/autopeer-io/edfsizer/internal/sizer/watch"
	"github.com/autopeer-io/edfsizer/pkg/log"
	"github.com/autopeer-io/edfsizer/pkg/options"
)

// Config is the completed option set shared by both binaries. HttpOptions
// is only read by NewServer.
type Config struct {
	CatalogOptions *options.CatalogOptions
	S3Options      *options.S3Options
	PolicyOptions  *options.PolicyOptions
	HttpOptions    *options.HttpOptions
}

// Policy converts the policy flags to a powertrain.Policy.
func (cfg *Config) Policy() powertrain.Policy {
	o := cfg.PolicyOptions
	return powertrain.Policy{
		MotorCounts:      o.MotorCounts,
		AdditionalWeight: o.AdditionalWeight,
		MinPayload:       o.MinPayload,
		MinFlyTime:       o.MinFlyTime,
		Pack: pack.Limits{
			MaxSeriesUnits: o.MaxSeriesUnits,
			MaxParallel:    o.MaxParallel,
		},
	}
}

func (cfg *Config) files() catalog.Files {
	o := cfg.CatalogOptions
	return catalog.Files{
		EDF:      o.EDFFile,
		ESC:      o.ESCFile,
		Battery:  o.BatteryFile,
		Baseline: o.BaselineFile,
	}
}

// NewService builds the evaluation service over the configured catalog source.
func (cfg *Config) NewService(ctx context.Context) (*service.Service, error) {
	// 初始化目录数据源 (本地目录或 S3)
	src, err := storage.NewSource(ctx, cfg.CatalogOptions, cfg.S3Options)
	if err != nil {
		return nil, err
	}
	log.Info("Catalog source ready", "source", src.String())

	repo := catalog.NewRepository(src, cfg.files())
	return service.New(repo, cfg.Policy(), cfg.PolicyOptions.Workers), nil
}

// NewServer builds the API server. With --catalog.watch the directory
// source is watched and every change triggers a full re-evaluation.
func (cfg *Config) NewServer(ctx context.Context) (*server.Server, error) {
	svc, err := cfg.NewService(ctx)
	if err != nil {
		return nil, err
	}
	store := snapshot.NewStore(svc)

	var watcher *watch.Watcher
	if cfg.CatalogOptions.Watch && cfg.CatalogOptions.Source == options.CatalogSourceDir {
		f := cfg.files()
		watcher, err = watch.New(cfg.CatalogOptions.Dir,
			[]string{f.EDF, f.ESC, f.Battery, f.Baseline},
			watch.DefaultDebounce,
			func(ctx context.Context) {
				// errors are logged by the store; the previous snapshot stays in place
				_ = store.Refresh(ctx)
			})
		if err != nil {
			return nil, err
		}
	}

	httpserver := &http.Server{
		Addr:              cfg.HttpOptions.Addr,
		Handler:           server.NewRouter(store),
		ReadHeaderTimeout: cfg.HttpOptions.ReadHeaderTimeout,
	}
	return server.New(httpserver, store, watcher, cfg.HttpOptions.ShutdownTimeout), nil
}
