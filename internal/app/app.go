package app

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"hometeam-go/internal/auth"
	"hometeam-go/internal/config"
	"hometeam-go/internal/db"
	messagedomain "hometeam-go/internal/domain/message"
	taskdomain "hometeam-go/internal/domain/task"
	unitdomain "hometeam-go/internal/domain/unit"
	userdomain "hometeam-go/internal/domain/user"
	"hometeam-go/internal/mail"
	messagerepo "hometeam-go/internal/repository/postgres/message"
	taskrepo "hometeam-go/internal/repository/postgres/task"
	unitrepo "hometeam-go/internal/repository/postgres/unit"
	userrepo "hometeam-go/internal/repository/postgres/user"
	"hometeam-go/internal/storage"
	"hometeam-go/internal/transport/httpserver"
	"hometeam-go/internal/transport/httpserver/handler"
	authmw "hometeam-go/internal/transport/httpserver/middleware"
	"hometeam-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	users := userrepo.NewPostgres(dbConn)
	units := unitrepo.NewPostgres(dbConn)
	tasks := taskrepo.NewPostgres(dbConn)
	messages := messagerepo.NewPostgres(dbConn)

	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	var signer taskdomain.UploadSigner
	if cfg.Storage.Enabled() {
		s3Signer, err := storage.NewS3Signer(context.Background(), cfg.Storage)
		if err != nil {
			return nil, err
		}
		signer = s3Signer
	} else {
		log.Warn("app: object storage not configured, upload URLs disabled")
	}

	userService := userdomain.NewService(users, hasher, tokens)
	unitService := unitdomain.NewService(units, &userDirectory{users: users}, mail.NewMailer(cfg.SMTP, log))
	taskService := taskdomain.NewService(tasks, unitService, signer)
	messageService := messagedomain.NewService(messages, unitService)

	handlers := handler.New(userService, unitService, taskService, messageService, log)
	authMiddleware := authmw.NewJWTAuth(tokens, users, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, authMiddleware)

	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// userDirectory adapts the user repository to the membership domain's
// directory, translating not-found sentinels across the boundary.
type userDirectory struct {
	users userdomain.Repository
}

func (d *userDirectory) GetByEmail(ctx context.Context, email string) (*unitdomain.UserSnapshot, error) {
	found, err := d.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return nil, unitdomain.ErrUserNotFound
		}
		return nil, err
	}
	return snapshot(found), nil
}

func (d *userDirectory) GetByID(ctx context.Context, id string) (*unitdomain.UserSnapshot, error) {
	found, err := d.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return nil, unitdomain.ErrUserNotFound
		}
		return nil, err
	}
	return snapshot(found), nil
}

func snapshot(u *userdomain.User) *unitdomain.UserSnapshot {
	return &unitdomain.UserSnapshot{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
