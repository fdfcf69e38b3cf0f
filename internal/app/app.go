package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mindsync/wellness/internal/config"
	"github.com/mindsync/wellness/internal/db"
	"github.com/mindsync/wellness/internal/repository"
	"github.com/mindsync/wellness/internal/service"
	"github.com/mindsync/wellness/internal/storage"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	Mongo            *mongo.Client
	Storage          storage.Storage
	UserRepository   repository.UserRepository
	AuthService      *service.AuthService
	UserService      *service.UserService
	ProfileService   *service.ProfileService
	DashboardService *service.DashboardService
	EmailService     *service.EmailService
	FileService      *service.FileService
}

func New(cfg *config.Config) (*App, error) {
	a := &App{Cfg: cfg}

	userRepository, err := a.openUserRepository()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}
	a.Storage = fileStorage
	a.UserRepository = userRepository

	// Services
	a.EmailService = service.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppURL, cfg.AppName)
	a.FileService = service.NewFileService(fileStorage)
	a.AuthService = service.NewAuthService(userRepository, a.EmailService, cfg.JWTSecret)
	a.UserService = service.NewUserService(userRepository)
	a.ProfileService = service.NewProfileService(userRepository, a.FileService, cfg.BaseURL)
	a.DashboardService = service.NewDashboardService(userRepository, cfg.BaseURL)

	return a, nil
}

// openUserRepository connects the configured store and migrates SQL schemas.
func (a *App) openUserRepository() (repository.UserRepository, error) {
	cfg := a.Cfg

	if cfg.DBDriver == "mongo" {
		client, database, err := db.InitMongo(cfg.DBConnection, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %v", err)
		}
		a.Mongo = client

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return repository.NewMongoUserRepository(ctx, database)
	}

	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}
	a.DB = database

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	return repository.NewUserRepository(database), nil
}

func (a *App) Close() error {
	if a.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := a.Mongo.Disconnect(ctx)
		if err != nil {
			return err
		}
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
