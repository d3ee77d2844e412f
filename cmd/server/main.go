package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/mk23rd/lawata-service/internal/cache"
	"github.com/mk23rd/lawata-service/internal/config"
	"github.com/mk23rd/lawata-service/internal/logger"
	"github.com/mk23rd/lawata-service/internal/notify"
	"github.com/mk23rd/lawata-service/internal/repository"
	"github.com/mk23rd/lawata-service/internal/router"
	"github.com/mk23rd/lawata-service/internal/storage"
	"github.com/mk23rd/lawata-service/internal/task"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	level := logger.ParseLogLevel(cfg.Log.Level)
	if cfg.Log.Output == "file" {
		l, err := logger.NewWithRotation(level, logger.RotationConfig{Filename: cfg.Log.File})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		logger.SetDefaultLogger(l)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := repository.Init(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化redis，连不上降级运行
	cacheClient, err := cache.New(cfg.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, running without cache: %v", err)
		cacheClient = nil
	} else {
		defer cacheClient.Close()
	}

	// 初始化图床客户端
	imageHost := storage.NewImageHost(cfg.ImageHost)

	// 初始化事件推送
	hub := notify.NewHub()
	notifier, err := notify.NewNotifier(hub, cfg.Notify.PoolSize)
	if err != nil {
		log.Fatalf("Failed to initialize notifier: %v", err)
	}
	defer notifier.Close()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, cacheClient, notifier, hub, imageHost, cfg)

	// 启动定时任务
	manager := task.Start(db, notifier, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
