//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改Provider后执行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/catalogue/internal/application/book"
	"github.com/xiebiao/catalogue/internal/domain/book"
	"github.com/xiebiao/catalogue/internal/infrastructure/config"
	"github.com/xiebiao/catalogue/internal/infrastructure/coverimage"
	"github.com/xiebiao/catalogue/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/catalogue/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/catalogue/internal/interface/http/handler"
	"github.com/xiebiao/catalogue/internal/interface/http/middleware"
	"github.com/xiebiao/catalogue/internal/interface/http/router"
	"github.com/xiebiao/catalogue/pkg/jwt"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	mysql.NewDB,
	mysql.NewBookRepository,
	mysql.NewTxManager,
	wire.Bind(new(book.Transactor), new(*mysql.TxManager)),
	provideCoverResolver,
	wire.Bind(new(book.CoverResolver), new(*coverimage.Resolver)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewValidator,
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewPublishBookUseCase,
	appbook.NewReplaceBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewQueryBooksUseCase,
	appbook.NewUpdateStatsUseCase,
)

// interfaceSet 接口层依赖
var interfaceSet = wire.NewSet(
	provideJWTManager,
	provideRevocationList,
	middleware.NewAuthMiddleware,
	handler.NewBookHandler,
	router.NewEngine,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenExpire)
}

// provideCoverResolver 从配置创建封面解析器
func provideCoverResolver(cfg *config.Config) *coverimage.Resolver {
	return coverimage.NewResolver(cfg.Cover)
}

// provideRevocationList Token吊销列表
// redis.enabled为false时返回nil接口,认证中间件跳过吊销检查
func provideRevocationList(cfg *config.Config) (middleware.RevocationList, func(), error) {
	if !cfg.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, cleanup, err := redis.NewClient(context.Background(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return redis.NewTokenBlacklist(client), cleanup, nil
}

// InitializeApp 组装整个应用
// 返回的cleanup按创建的逆序关闭Redis与数据库连接
func InitializeApp(cfg *config.Config, logger *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
