package app

import (
	"context"

	"collectgames/config"
	"collectgames/internal/controllers"
	"collectgames/internal/database"
	"collectgames/internal/events"
	"collectgames/internal/handlers/middleware"
	"collectgames/internal/jobs"
	"collectgames/internal/repositories"
	"collectgames/internal/services"
	"collectgames/internal/websockets"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Websocket   *websockets.Manager
	EventBus    *events.EventBus
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events)

	services := services.New(db, config)
	repos := repositories.New(db)

	websocket, err := websockets.New(eventBus)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	middleware := middleware.New(config)
	controllers := controllers.New(services, repos, eventBus, db)

	if err := jobs.RegisterAllJobs(services.Scheduler, config, services, repos, db); err != nil {
		return &App{}, log.Err("failed to register jobs", err)
	}

	app := &App{
		Database:    db,
		Config:      config,
		Middleware:  middleware,
		Websocket:   websocket,
		EventBus:    eventBus,
		Services:    services,
		Repos:       repos,
		Controllers: controllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

// Start launches background work. The scheduler only starts when jobs were
// registered.
func (a *App) Start(ctx context.Context) error {
	log := logger.New("app").Function("Start")

	if err := a.Services.Scheduler.Start(ctx); err != nil {
		return log.Err("failed to start scheduler", err)
	}

	return nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := map[string]bool{
		"websocket":            a.Websocket == nil,
		"eventBus":             a.EventBus == nil,
		"transactionService":   a.Services.Transaction == nil,
		"schedulerService":     a.Services.Scheduler == nil,
		"imageStorageService":  a.Services.Images == nil,
		"reportService":        a.Services.Reports == nil,
		"collectionCache":      a.Services.CollectionCache == nil,
		"collectionController": a.Controllers.Collection == nil,
		"wishlistController":   a.Controllers.Wishlist == nil,
		"reviewController":     a.Controllers.Review == nil,
		"consoleController":    a.Controllers.Console == nil,
		"userCollectionRepo":   a.Repos.UserCollection == nil,
		"wishlistRepo":         a.Repos.Wishlist == nil,
	}

	for name, isNil := range nilChecks {
		if isNil {
			return log.Error("nil check failed", "component", name)
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Websocket != nil {
		a.Websocket.Close()
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
