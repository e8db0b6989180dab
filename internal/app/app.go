package app

import (
	"context"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/wheelmaster/tireshop/config"
	"github.com/wheelmaster/tireshop/internal/database"
	"github.com/wheelmaster/tireshop/internal/domain"
	"github.com/wheelmaster/tireshop/internal/repository"
	"github.com/wheelmaster/tireshop/pkg/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	sched     *cron.Cron
}

var _ RepositoryProvider = (*Application)(nil)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

// Products returns a repository bound to the application database.
func (a *Application) Products() repository.ProductRepository {
	return repository.NewGormProductRepository(a.gormDB)
}

// Orders returns a repository bound to the application database.
func (a *Application) Orders() repository.OrderRepository {
	return repository.NewGormOrderRepository(a.gormDB)
}

// Init prepares the timezone, the global logger and the database pool. The
// schema is not touched; that is initdb's job.
func (a *Application) Init() error {
	cfg := a.appConfig
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	if err := cfg.InitDirs(); err != nil {
		return err
	}

	if err := initLogger(cfg.Logger); err != nil {
		return errors.Wrap(err, "init logger")
	}

	db, err := database.Open(cfg.Database, cfg.System.Workdir)
	if err != nil {
		return err
	}
	a.gormDB = db
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)
	return nil
}

// EnableMetrics opens the metrics store. Only long running commands and the
// metrics report need it.
func (a *Application) EnableMetrics() {
	if err := metrics.InitMetrics(a.appConfig.GetMetricsDir()); err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}
}

// EnsureSchema creates the products and orders tables, the unique index on
// product names and the orders foreign key when they are missing.
func (a *Application) EnsureSchema(ctx context.Context) error {
	if err := a.gormDB.WithContext(ctx).Migrator().AutoMigrate(domain.Tables...); err != nil {
		return repository.Classify(err)
	}
	zap.L().Info("database schema ready")
	return nil
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}
	if a.gormDB != nil {
		if err := database.Close(a.gormDB); err != nil {
			zap.L().Warn("close database", zap.Error(err))
		}
	}
	_ = metrics.Close()
	_ = zap.L().Sync()
}
