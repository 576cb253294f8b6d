package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-ordering-api/cache"
	"food-ordering-api/config"
	"food-ordering-api/logger"
	"food-ordering-api/media"
	"food-ordering-api/middleware"
	"food-ordering-api/notify"
	"food-ordering-api/routes"
	"food-ordering-api/validation"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)
	validation.Register()

	if err := config.InitDB(cfg); err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		created, err := config.SeedAdmin(config.DB, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("seed admin")
		}
		if created {
			log.Info().Str("email", cfg.AdminEmail).Msg("admin account created")
		}
	}

	media.Default = media.NewStore(cfg.UploadDir, cfg.MaxUploadImages, cfg.MaxImageWidth)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RedisAddr != "" {
		menus, err := cache.NewRedisMenuCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.MenuCacheTTL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, menu cache disabled")
		} else {
			cache.Menus = menus
			defer menus.Close()
			log.Info().Str("addr", cfg.RedisAddr).Msg("menu cache enabled")
		}
	}

	go notify.Default.Run(ctx)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Recovery(), middleware.CORS(cfg.CORSOrigins))
	r.MaxMultipartMemory = 16 << 20

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Food Ordering API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "owner", "admin"},
		})
	})

	routes.SetupRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
