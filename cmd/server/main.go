package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	_ "github.com/lielreyter/IDJ/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/lielreyter/IDJ/internal/auth"
	"github.com/lielreyter/IDJ/internal/cache"
	"github.com/lielreyter/IDJ/internal/config"
	"github.com/lielreyter/IDJ/internal/db"
	"github.com/lielreyter/IDJ/internal/handler"
	"github.com/lielreyter/IDJ/internal/mail"
	"github.com/lielreyter/IDJ/internal/middleware"
	"github.com/lielreyter/IDJ/internal/model"
	"github.com/lielreyter/IDJ/internal/repository"
	"github.com/lielreyter/IDJ/internal/router"
	"github.com/lielreyter/IDJ/internal/service"
)

// @title IDJ API
// @version 1.0
// @description Short-video social backend: video feed, likes, comments, and JWT authentication with email verification.
// @host localhost:3000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Like{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	videoRepo := repository.NewVideoRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	mailer := mail.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom, cfg.FrontendURL)

	authService := service.NewAuthService(userRepo, jwtService, mailer, logger)
	videoService := service.NewVideoService(videoRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService)
	videoHandler := handler.NewVideoHandler(videoService)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, userRepo)

	router.Register(e, cfg, authMiddleware, authHandler, videoHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
