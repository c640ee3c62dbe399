package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cvpress/internal/api/middleware"
	"cvpress/internal/config"
	"cvpress/internal/storage"
)

const defaultMaxResumes = 20

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	asynqClient *asynq.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
	cfg *config.Config,
) {
	resumeHandler := NewResumeHandler(db, asynqClient, storageClient, redisClient, defaultMaxResumes, cfg.API.DebugOverflow)
	wsHandler := NewWsHandler(redisClient, logger, nil)
	identity := middleware.UserIdentityMiddleware()
	internalOnly := middleware.InternalSecretMiddleware(cfg.Worker.InternalSecret)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		resumeGroup := v1.Group("/resume")
		{
			// worker 回源端点走内部密钥，不要求用户身份
			resumeGroup.GET("/:id/print", internalOnly, resumeHandler.PrintDocument)

			authed := resumeGroup.Group("")
			authed.Use(identity)
			{
				authed.POST("", resumeHandler.CreateResume)
				authed.GET("/latest", resumeHandler.GetLatestResume)
				authed.GET("/:id", resumeHandler.GetResume)
				authed.PUT("/:id", resumeHandler.UpdateResume)
				authed.GET("/:id/preview", resumeHandler.PreviewResume)
				authed.POST("/:id/export", resumeHandler.ExportResume)
				authed.GET("/:id/download-link", resumeHandler.GetDownloadLink)
			}
		}
	}
}
