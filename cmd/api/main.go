package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "github.com/xiebiao/catalogue/docs"
	"github.com/xiebiao/catalogue/internal/infrastructure/config"
	"github.com/xiebiao/catalogue/pkg/logger"
	"github.com/xiebiao/catalogue/pkg/tracing"
)

// @title                      Catalogue API
// @version                    1.0
// @description                图书目录服务:图书增删改查、搜索、聚合统计与计数维护
// @host                       localhost:8080
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization

// main 主程序入口
// 启动顺序: 配置 → 日志 → 追踪 → 依赖注入(wire) → HTTP服务
// 收到SIGINT/SIGTERM后在shutdown_timeout内优雅退出
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志（替换zap全局Logger）
	zlog, syncLog := logger.MustSetup(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	defer syncLog()

	zlog.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("cover_policy", cfg.Cover.Policy),
	)

	// 3. 分布式追踪（可选）
	if cfg.Tracing.Enabled {
		shutdownTracer, err := tracing.InitTracer(context.Background(), cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			zlog.Fatal("初始化追踪失败", zap.Error(err))
		}
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				zlog.Warn("关闭追踪失败", zap.Error(err))
			}
		}()
		zlog.Info("追踪已启用", zap.String("endpoint", cfg.Tracing.Endpoint))
	}

	// 4. 依赖注入
	engine, cleanup, err := InitializeApp(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化应用失败", zap.Error(err))
	}
	defer cleanup()

	// 5. 启动HTTP服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		zlog.Info("服务启动",
			zap.String("addr", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost%s/swagger/index.html", srv.Addr)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 6. 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		zlog.Info("收到退出信号", zap.String("signal", sig.String()))
	case err, ok := <-serveErr:
		if ok {
			zlog.Error("服务异常退出", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("优雅退出失败", zap.Error(err))
	}
	zlog.Info("服务已停止")
}
