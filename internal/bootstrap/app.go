package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/health"
	"placement-backend/internal/jobs"
	"placement-backend/internal/placements"
	"placement-backend/internal/shared/config"
	"placement-backend/internal/shared/server"
	"placement-backend/internal/shared/server/middleware"
	"placement-backend/internal/shared/storage/db"
	"placement-backend/internal/shared/storage/object"
	localstore "placement-backend/internal/shared/storage/object/local"
	s3store "placement-backend/internal/shared/storage/object/s3"
)

const restoreTimeout = 30 * time.Second

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	Store             object.ObjectStore
	JobsRepo          jobs.Repo
	JobsService       *jobs.Service
	PlacementsService *placements.Service
	HealthService     *health.Service
	JobsHandler       *jobs.Handler
	PlacementsHandler *placements.Handler
}

// Build prepares dependencies, restores the last catalog and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	buildServices(app)

	restoreCtx, cancel := context.WithTimeout(ctx, restoreTimeout)
	defer cancel()
	if err := app.JobsService.Restore(restoreCtx); err != nil {
		if !isDevLike(cfg.Env) {
			return nil, fmt.Errorf("restore catalog: %w", err)
		}
		log.Printf("bootstrap: catalog restore failed; starting empty: %v", err)
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		Health:           app.HealthService,
		JobsHandler:      app.JobsHandler,
		PlacementHandler: app.PlacementsHandler,
		RateLimiter:      middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			sqlDB.Close()
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database unavailable; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	var repo jobs.Repo
	var pinger health.Pinger
	if app.DB != nil {
		repo = &jobs.PGRepo{DB: app.DB}
		pinger = app.DB
	} else {
		repo = jobs.NewMemoryRepo()
	}

	jobsSvc := jobs.NewService(repo, app.Store, app.Config.CatalogKey)
	placementsSvc := placements.NewService(jobsSvc)

	app.JobsRepo = repo
	app.JobsService = jobsSvc
	app.PlacementsService = placementsSvc
	app.HealthService = health.NewService(jobsSvc, pinger)
	app.JobsHandler = jobs.NewHandler(jobsSvc)
	app.PlacementsHandler = placements.NewHandler(placementsSvc, app.Config.MaxUploadBytes)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
