package commands

import (
	"fmt"
	"log/slog"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/config"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/pkg/logging"
	"sacco-admin/internal/pkg/metrics"

	"gorm.io/gorm"
)

// runtime is everything a subcommand needs after startup
type runtime struct {
	cfg      *config.Config
	db       *gorm.DB
	store    *repositories.Store
	metrics  *metrics.Metrics
	services *services.Registry
}

// bootstrap loads config, opens the database and migrates the schema.
func bootstrap() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	logging.Setup(cfg.LogLevel, cfg.IsDev())

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return nil, err
	}

	if err := models.AutoMigrate(db); err != nil {
		_ = config.CloseDatabase()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	slog.Info("✅ Database migration completed")

	store := repositories.NewStore(db)
	m := metrics.New()

	return &runtime{
		cfg:      cfg,
		db:       db,
		store:    store,
		metrics:  m,
		services: services.NewRegistry(store, cfg, m, newMailer(cfg.Mail)),
	}, nil
}

// newMailer returns nil when SMTP is not configured, which disables notifications.
func newMailer(cfg config.MailConfig) services.Mailer {
	if !cfg.Enabled() {
		slog.Info("📭 SMTP not configured, email notifications disabled")
		return nil
	}
	return services.NewSMTPMailer(cfg)
}

func (r *runtime) close() {
	if err := config.CloseDatabase(); err != nil {
		slog.Error("closing database", "error", err)
	}
}
