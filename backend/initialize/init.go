package initialize

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"team-attendance/backend/app/controllers"
	"team-attendance/backend/app/db"
	jwtutil "team-attendance/backend/app/jwt"
	"team-attendance/backend/app/middleware"
	"team-attendance/backend/app/models"
	"team-attendance/backend/app/repo"
	"team-attendance/backend/app/services"
	"team-attendance/backend/config"
	"team-attendance/backend/global"
	"team-attendance/backend/router"
)

type App struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Router http.Handler
	Auth   *controllers.AuthController
	Events *controllers.EventController
	Users  *services.UserService
	Signer *jwtutil.Signer
}

// Build wires config, store, services, controllers and the route table into a
// runnable application. Close releases the store handle.
func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = cfg
	SetLogLevel(cfg.LogLevel)

	gdb, err := db.Open(db.Config{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	app, err := BuildWithDB(cfg, gdb)
	if err != nil {
		_ = db.Close(gdb)
		return nil, err
	}
	return app, nil
}

// BuildWithDB wires everything on top of an already opened store. Tests use
// it with an in-memory database.
func BuildWithDB(cfg *config.Config, gdb *gorm.DB) (*App, error) {
	if err := gdb.AutoMigrate(&models.User{}, &models.Event{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	userRepo := repo.NewUserRepository(gdb)
	eventRepo := repo.NewEventRepository(gdb)
	userSvc := services.NewUserService(userRepo)
	eventSvc := services.NewEventService(eventRepo, userRepo)
	exportSvc := services.NewExportService(eventRepo)
	if err := userSvc.EnsureStaff(); err != nil {
		return nil, fmt.Errorf("seed staff: %w", err)
	}

	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	gate := &middleware.Auth{Signer: signer}
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	authCtrl := controllers.NewAuthController(userSvc, signer)
	eventCtrl := controllers.NewEventController(eventSvc)
	userCtrl := controllers.NewUserController(userSvc, signer)
	exportCtrl := controllers.NewExportController(exportSvc)
	httpCtrl := controllers.NewHTTPController()

	h := router.New(router.Deps{
		HTTP:    httpCtrl,
		Auth:    authCtrl,
		Events:  eventCtrl,
		Users:   userCtrl,
		Export:  exportCtrl,
		Gate:    gate,
		Limiter: limiter,
		WebDir:  cfg.WebDir,
	})
	h = middleware.Logging(h)
	h = middleware.Correlation(h)

	return &App{Cfg: cfg, DB: gdb, Router: h, Auth: authCtrl, Events: eventCtrl, Users: userSvc, Signer: signer}, nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return db.Close(a.DB)
}
