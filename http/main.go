package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/aakash/content-server/config"
	"github.com/aakash/content-server/guard"
	"github.com/aakash/content-server/http/controller"
	routes "github.com/aakash/content-server/http/route"
	infraPkg "github.com/aakash/content-server/infra"
	"github.com/aakash/content-server/repository"
	"github.com/aakash/content-server/service"
	"github.com/aakash/content-server/worker"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra.Postgres.DB)

	if err := infra.ObjectStore.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("Failed to ensure bucket: %v", err)
	}

	profiles, err := config.LoadResizeConfig(cfg.EnvConfig.Images.ResizeConfigFile)
	if err != nil {
		log.Fatalf("Failed to load resize configuration: %v", err)
	}

	pool := worker.NewPool(
		cfg.EnvConfig.WorkerPool.Workers,
		cfg.EnvConfig.WorkerPool.QueueSize,
		time.Duration(cfg.EnvConfig.WorkerPool.TaskTimeout)*time.Second,
	)
	defer pool.Shutdown()

	svc := service.NewService(service.Deps{
		Repo:      repo,
		Store:     infra.ObjectStore,
		Cache:     infra.Redis,
		Publisher: infra.Produce.ContentService,
		Logger:    infra.Logger,
		Pool:      pool,
		Guard:     guard.New(cfg.EnvConfig.RateLimit.PerSecond, cfg.EnvConfig.RateLimit.Burst),
		Profiles:  profiles,
		Bucket:    cfg.EnvConfig.Minio.Bucket,
	})

	ctrl := controller.NewController(cfg, infra, svc)

	router := routes.SetupRouter(ctrl)

	log.Println("HTTP Server started on :" + cfg.EnvConfig.Server.Port)
	if err := router.Run(":" + cfg.EnvConfig.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
