package root

import (
	"context"
	"database/sql"

	"habitexe/internal/config"
	"habitexe/internal/engine"
	"habitexe/internal/storage"
	"habitexe/internal/uplink"
)

func loadConfig() (config.Config, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default(), nil
	}
	return config.Load(path)
}

func openDB(ctx context.Context, cfg config.Config) (*sql.DB, func(), error) {
	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, nil, err
	}
	db, cleanup, err := openDB(ctx, cfg)
	if err != nil {
		return nil, cfg, nil, err
	}
	svc := engine.NewService(db)
	if err := svc.EnsureSeeded(ctx); err != nil {
		cleanup()
		return nil, cfg, nil, err
	}
	return svc, cfg, cleanup, nil
}

func newUplink(cfg config.Config) *uplink.Client {
	c := uplink.DefaultConfig()
	c.BaseURL = cfg.Uplink.BaseURL
	c.Model = cfg.Uplink.Model
	c.Timeout = cfg.UplinkTimeout()
	return uplink.NewClient(c)
}
