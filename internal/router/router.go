package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mk23rd/lawata-service/internal/auth"
	"github.com/mk23rd/lawata-service/internal/cache"
	"github.com/mk23rd/lawata-service/internal/config"
	"github.com/mk23rd/lawata-service/internal/handler"
	"github.com/mk23rd/lawata-service/internal/metrics"
	"github.com/mk23rd/lawata-service/internal/model"
	"github.com/mk23rd/lawata-service/internal/notify"
	"github.com/mk23rd/lawata-service/internal/storage"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cacheClient *cache.Client, notifier *notify.Notifier, hub *notify.Hub, imageHost *storage.ImageHost, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(metrics.Middleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "lawata-service",
		})
	})
	r.GET("/metrics", metrics.Handler())

	requireAuth := auth.Middleware(cfg.Auth.JWTSecret)
	requireAdmin := auth.RequireRole(string(model.UserRoleAdmin))

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 账号相关路由
		userHandler := handler.NewUserHandler(db, cfg.Auth)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/signup", userHandler.SignUp)
			authGroup.POST("/login", userHandler.Login)
			authGroup.GET("/me", requireAuth, userHandler.Me)
		}

		// 项目相关路由
		projectHandler := handler.NewProjectHandler(db, cacheClient)
		changeRequestHandler := handler.NewChangeRequestHandler(db, cacheClient, notifier)
		rewardHandler := handler.NewRewardHandler(db)
		announcementHandler := handler.NewAnnouncementHandler(db, notifier)
		funderHandler := handler.NewFunderHandler(db, notifier)
		projects := v1.Group("/projects")
		{
			projects.POST("", requireAuth, projectHandler.CreateProject)
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.GET("/:id/stats", projectHandler.GetProjectStats)
			projects.DELETE("/:id", requireAuth, projectHandler.CancelProject)

			// 编辑走变更审核
			projects.POST("/:id/edit", requireAuth, changeRequestHandler.SubmitEdit)
			projects.GET("/:id/change-requests", requireAuth, changeRequestHandler.GetProjectChangeRequests)

			// 直接写入路径
			projects.PUT("/:id/milestones", requireAuth, projectHandler.UpdateMilestones)
			projects.PUT("/:id/images", requireAuth, projectHandler.SetImages)
			projects.PUT("/:id/rewards", requireAuth, rewardHandler.ReplaceRewards)
			projects.GET("/:id/rewards", rewardHandler.GetProjectRewards)
			projects.POST("/:id/announcements", requireAuth, announcementHandler.CreateAnnouncement)
			projects.GET("/:id/announcements", announcementHandler.GetProjectAnnouncements)

			// 支持者
			projects.GET("/:id/funders", funderHandler.GetProjectFunders)
			projects.POST("/:id/contributions", requireAuth, funderHandler.Contribute)
		}

		v1.DELETE("/announcements/:announcementId", requireAuth, announcementHandler.DeleteAnnouncement)
		v1.GET("/me/contributions", requireAuth, funderHandler.GetMyContributions)

		// 图片上传
		uploadHandler := handler.NewUploadHandler(imageHost)
		v1.POST("/uploads/images", requireAuth, uploadHandler.UploadImages)

		// 审核端
		moderation := v1.Group("/moderation", requireAuth, requireAdmin)
		{
			moderation.GET("/change-requests", changeRequestHandler.GetPendingChangeRequests)
			moderation.POST("/change-requests/:requestId/approve", changeRequestHandler.Approve)
			moderation.POST("/change-requests/:requestId/reject", changeRequestHandler.Reject)
		}
	}

	// 实时事件推送
	wsHandler := handler.NewWsHandler(hub)
	r.GET("/ws/projects/:id", wsHandler.Subscribe)

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
