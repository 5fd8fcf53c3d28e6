package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"teamblog/internal/config"
	"teamblog/internal/handlers"
	"teamblog/internal/middleware"
	"teamblog/internal/repo"
	"teamblog/internal/service"
	"teamblog/internal/storage"
	"teamblog/internal/view"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	postRepo := repo.NewPostRepository(gormDB)

	// схема и единственный администратор
	bootstrap := service.NewBootstrap(gormDB, userRepo, cfg.AdminUsername, cfg.AdminPassword, sugar)
	if err := bootstrap.EnsureReady(ctx); err != nil {
		sugar.Fatalw("bootstrap failed", "error", err)
	}

	// бэкенд хранения картинок выбирается один раз на старте
	var store storage.Storage
	if cfg.AssetBackend == "s3" {
		store, err = storage.NewS3(cfg)
	} else {
		store, err = storage.NewDisk(cfg.UploadDir, cfg.StaticPrefix)
	}
	if err != nil {
		sugar.Fatalw("failed to initialize asset storage", "backend", cfg.AssetBackend, "error", err)
	}

	renderer, err := view.NewTemplates(cfg.TemplatesDir)
	if err != nil {
		sugar.Fatalw("failed to parse templates", "dir", cfg.TemplatesDir, "error", err)
	}

	postService := service.NewPostService(postRepo, store, sugar)
	userService := service.NewUserService(userRepo)

	h := handlers.NewHandler(postService, userService, renderer, sugar, cfg)

	sugar.Infow("Starting server",
		"addr", cfg.RunAddr,
		"asset_backend", cfg.AssetBackend,
	)

	if err := http.ListenAndServe(cfg.RunAddr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
