package main

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/Leganyst/clinic-desk/internal/config"
	"github.com/Leganyst/clinic-desk/internal/db"
	"github.com/Leganyst/clinic-desk/internal/metrics"
	"github.com/Leganyst/clinic-desk/internal/model"
	"github.com/Leganyst/clinic-desk/internal/repository"
	"github.com/Leganyst/clinic-desk/internal/service"
)

// app — всё, что собирается из конфигурации один раз на процесс.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	db      *gorm.DB
	repos   *repository.Set
	metrics *metrics.Metrics
	clinic  *service.Clinic
}

func newApp(flags *globalFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.NewGormDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}

	loc, err := cfg.Clinic.Location()
	if err != nil {
		return nil, err
	}

	logger := slog.Default()
	repos := repository.NewSet(gormDB)
	m := metrics.New()

	clinic := service.New(
		service.DepsFromSet(repos),
		service.WithLocation(loc),
		service.WithLogger(logger),
		service.WithRecorder(m),
		service.WithMaxReportDays(cfg.Clinic.MaxReportDays),
	)

	return &app{
		cfg:     cfg,
		log:     logger,
		db:      gormDB,
		repos:   repos,
		metrics: m,
		clinic:  clinic,
	}, nil
}

func (a *app) migrate() error {
	if err := model.AutoMigrate(a.db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (a *app) Close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
