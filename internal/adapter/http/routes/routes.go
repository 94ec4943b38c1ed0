package routes

import (
	"context"
	"net/http"
	"slices"
	"time"

	_ "artisan_escrow/docs" // This will be auto-generated
	"artisan_escrow/internal/config"
	"artisan_escrow/internal/infrastructure/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("invalid configuration", zap.Error(err))
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	router, closeFn, err := NewRouter(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal("failed to wire dependencies", zap.Error(err))
	}
	defer closeFn()

	log.Info("starting server",
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("lock", cfg.Lock.Driver),
		zap.String("notifier", cfg.Notifier.Driver),
	)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("failed to startup the application", zap.Error(err))
	}
}

// NewRouter wires every collaborator named by cfg and returns the HTTP engine
// with its routes. The returned func releases external connections.
func NewRouter(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	log = logger.OrNop(log)

	deps, closeFn, err := buildDeps(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	router := gin.New()
	setMiddlewares(router, cfg, log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	getRoutes(router, deps, log)
	return router, closeFn, nil
}

func setMiddlewares(router *gin.Engine, cfg *config.Config, log *zap.Logger) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("recovered from panic", zap.Any("panic", recovered), zap.String("path", c.FullPath()))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(cors.New(corsConfig(cfg.Server.CORSAllowedOrigins)))
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "X-User-ID")
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}
