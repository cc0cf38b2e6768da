package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/catalogue/internal/infrastructure/config"
	"github.com/xiebiao/catalogue/internal/interface/http/handler"
	"github.com/xiebiao/catalogue/internal/interface/http/middleware"
	"github.com/xiebiao/catalogue/pkg/jwt"
)

// slowRequestThreshold 慢请求阈值
const slowRequestThreshold = time.Second

// NewEngine 创建Gin引擎并注册全部路由
// 路由与角色:
// - GET  /api/v1/books/healthz                 公开
// - 查询、计数、提交评分                         User, Admin
// - 创建、替换、删除、覆盖评分统计                 Admin
func NewEngine(
	cfg *config.Config,
	logger *zap.Logger,
	bookHandler *handler.BookHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(logger),
		middleware.RequestLogger(logger, slowRequestThreshold),
		middleware.Tracing(),
		middleware.Metrics(),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// 生产环境建议关闭Swagger或加访问控制
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	readers := authMiddleware.RequireRoles(jwt.RoleUser, jwt.RoleAdmin)
	admins := authMiddleware.RequireRoles(jwt.RoleAdmin)

	v1 := r.Group("/api/v1")
	{
		books := v1.Group("/books")

		books.GET("/healthz", bookHandler.Healthz)

		// 查询
		books.GET("", readers, bookHandler.Search)
		books.GET("/isbn/:isbn", readers, bookHandler.GetByISBN)
		books.GET("/featured", readers, bookHandler.Featured)
		books.GET("/latest", readers, bookHandler.Latest)
		books.GET("/stats", readers, bookHandler.Stats)

		// 计数与评分
		books.PATCH("/:isbn/downloads", readers, bookHandler.SetDownloads)
		books.PATCH("/:isbn/readingLists", readers, bookHandler.SetReadingLists)
		books.PATCH("/:isbn/review", readers, bookHandler.SubmitReview)
		books.PATCH("/:isbn/reviewStats", admins, bookHandler.OverwriteReviewStats)

		// 管理
		books.POST("", admins, bookHandler.PublishBook)
		books.PUT("/:isbn", admins, bookHandler.ReplaceBook)
		books.DELETE("/:isbn", admins, bookHandler.DeleteBook)
	}

	return r
}
