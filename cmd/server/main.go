package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rvslm/youtubemobile/internal/config"
	"github.com/rvslm/youtubemobile/internal/handler"
	"github.com/rvslm/youtubemobile/internal/middleware"
	"github.com/rvslm/youtubemobile/internal/service"
	"github.com/rvslm/youtubemobile/internal/store"
	"github.com/rvslm/youtubemobile/internal/youtube"
	"github.com/rvslm/youtubemobile/pkg/logger"
)

const watchlistFile = "watchlist.txt"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if len(cfg.YouTube.APIKeys) == 0 {
		logger.Log.Warn("no API keys configured, every refresh will fail until APP_YOUTUBE_APIKEYS is set")
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		logger.Log.Fatal("failed to open store", zap.Error(err))
	}
	defer db.Close()
	logger.Log.Info("store opened", zap.String("path", cfg.Database.Path))

	repo := store.NewVideoRepository(db)

	if cfg.Database.ClearOnStartup {
		if err := repo.ClearAll(context.Background()); err != nil {
			logger.Log.Warn("startup clear failed", zap.Error(err))
		} else {
			logger.Log.Info("store cleared on startup")
		}
	}

	loc, err := time.LoadLocation(cfg.Display.Timezone)
	if err != nil {
		logger.Log.Warn("unknown display timezone, falling back to UTC",
			zap.String("timezone", cfg.Display.Timezone))
		loc = time.UTC
	}

	rotator := youtube.NewRotator(cfg.YouTube.APIKeys, cfg.YouTube.RequestTimeout)
	client := youtube.NewClient(rotator, cfg.Monitor.ShortsMaxDuration)
	monitor := service.NewMonitor(client, repo, cfg.Monitor.RetentionDays, cfg.Monitor.RefreshTopUp)

	videoHandler := handler.NewVideoHandler(repo, loc)
	refreshHandler := handler.NewRefreshHandler(monitor, cfg.Monitor.Queries)
	pinsHandler := handler.NewPinsHandler(monitor)
	healthHandler := handler.NewHealthHandler(db)

	watchlistHandler, err := handler.NewWatchlistHandler(monitor, watchlistFile)
	if err != nil {
		logger.Log.Fatal("failed to load watchlist", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())

	router.GET("/health", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.GET("/videos", videoHandler.List)
		api.GET("/videos/export", videoHandler.Export)
		api.DELETE("/videos", videoHandler.Clear)

		api.POST("/refresh", refreshHandler.Full)
		api.POST("/refresh/quick", refreshHandler.Quick)

		api.GET("/watchlist", watchlistHandler.List)
		api.PUT("/watchlist", watchlistHandler.Replace)
		api.GET("/watchlist/channels", watchlistHandler.Channels)

		api.GET("/pins", pinsHandler.List)
		api.POST("/pins", pinsHandler.Add)
		api.DELETE("/pins/:id", pinsHandler.Remove)
		api.GET("/pins/videos", pinsHandler.Videos)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // refreshes are synchronous round trips
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("server starting", zap.Int("port", cfg.Server.Port))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	case sig := <-shutdown:
		logger.Log.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Log.Error("graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				logger.Log.Error("failed to close server", zap.Error(err))
			}
			os.Exit(1)
		}

		logger.Log.Info("server stopped gracefully")
	}
}
