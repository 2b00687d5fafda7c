package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"

	"cv-parser-go/internal/api/handler"
	"cv-parser-go/internal/api/router"
	"cv-parser-go/internal/config"
	"cv-parser-go/internal/logger"
	"cv-parser-go/internal/pipeline"
	"cv-parser-go/internal/storage"
	"cv-parser-go/internal/tracing"
	"cv-parser-go/pkg/ratelimit"
)

var serviceName = "cv-parser"

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}

	initLogger(cfg)
	logger.Info().Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 链路追踪
	shutdownTracing, err := tracing.InitTracerProvider(ctx, cfg.Tracing, serviceName)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化链路追踪失败")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("关闭链路追踪失败")
		}
	}()

	// 存储管理器
	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化存储失败")
	}
	defer storageManager.Close()
	logger.Info().Msg("存储服务初始化成功")

	// 解析流水线
	parsePipeline, err := pipeline.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化解析流水线失败")
	}
	logger.Info().Msg("解析流水线初始化成功")

	resumeHandler := handler.NewResumeHandler(cfg, storageManager, parsePipeline)

	// 启动解析消费者
	var consumerStops []chan struct{}
	if storageManager.RabbitMQ != nil {
		workers := cfg.RabbitMQ.ConsumerWorkers
		if workers <= 0 {
			workers = 1
		}
		for i := 0; i < workers; i++ {
			stopCh, err := resumeHandler.StartParseConsumer()
			if err != nil {
				logger.Fatal().Err(err).Msg("启动解析消费者失败")
			}
			consumerStops = append(consumerStops, stopCh)
		}
		logger.Info().Int("workers", workers).Msg("解析消费者已启动")
	} else {
		logger.Warn().Msg("RabbitMQ不可用, 仅提供同步解析接口")
	}

	// HTTP服务器
	tracer, tracerCfg := hertztracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		tracer,
	)
	h.Use(hertztracing.ServerMiddleware(tracerCfg))

	// 配置了QPM时启用限流
	if cfg.Server.RateLimitQPM > 0 {
		bucket := ratelimit.NewTokenBucket(cfg.Server.RateLimitQPM, 0)
		h.Use(func(c context.Context, ctx *app.RequestContext) {
			if !bucket.Allow() {
				ctx.AbortWithStatusJSON(consts.StatusTooManyRequests, utils.H{"error": "请求过于频繁"})
				return
			}
			ctx.Next(c)
		})
		logger.Info().Int("qpm", cfg.Server.RateLimitQPM).Msg("请求限流已启用")
	}

	// 配置了API Key时启用鉴权
	if cfg.Server.APIKey != "" {
		h.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:X-Api-Key", ""),
			keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
				return key == cfg.Server.APIKey, nil
			}),
			keyauth.WithErrorHandler(func(c context.Context, ctx *app.RequestContext, err error) {
				ctx.AbortWithStatusJSON(consts.StatusUnauthorized, utils.H{"error": "无效的API Key"})
			}),
		))
		logger.Info().Msg("API Key鉴权已启用")
	}

	router.RegisterRoutes(h, resumeHandler)
	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器启动中")

	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	// 等待终止信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号, 正在优雅退出...")

	for _, stopCh := range consumerStops {
		close(stopCh)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP服务器关闭失败")
	}

	logger.Info().Msg("优雅退出完成")
}

// initLogger 按配置初始化zerolog，并把Hertz的日志也接到同一个logger上
func initLogger(cfg *config.Config) {
	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	glog.SetLogger(hertzadapter.From(logger.Logger))
}
