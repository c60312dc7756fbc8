// main.go
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

	"github.com/ariebrainware/hospital-management/config"
	"github.com/ariebrainware/hospital-management/docs"
	"github.com/ariebrainware/hospital-management/endpoint"
	"github.com/ariebrainware/hospital-management/middleware"
	"github.com/ariebrainware/hospital-management/model"
	"github.com/ariebrainware/hospital-management/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title           Hospital Management API
// @version         1.0
// @description     REST API for patients, doctors, staff and appointments.
// @host            localhost:8000
// @BasePath        /api
func main() {
	rootCmd := &cobra.Command{
		Use:   "hospital",
		Short: "Hospital management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := bootstrap()
			db, err := config.ConnectDatabase()
			if err != nil {
				return err
			}
			if err := model.AutoMigrate(db); err != nil {
				return fmt.Errorf("auto migrate: %w", err)
			}
			log.Info().Str("driver", cfg.DBDriver).Msg("schema migrated")
			return nil
		},
	}
}

// bootstrap loads the configuration and installs the global logger.
func bootstrap() *config.Config {
	cfg := config.LoadConfig()
	util.InitLogger(cfg.AppName, cfg.AppEnv, cfg.LogLevel)
	return cfg
}

// setupRouter wires middleware and every route onto a new engine.
func setupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode)
	util.RegisterValidators()

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})
	router.GET("/healthz", endpoint.Healthz)

	docs.SwaggerInfo.Host = ""
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	endpoint.RegisterRoutes(router, middleware.RateLimiter(middleware.RateLimitConfig{
		Limit:  cfg.RateLimit,
		Window: cfg.RateLimitWindow,
	}))
	if err := endpoint.RegisterAdminRoutes(router); err != nil {
		return nil, err
	}

	return router, nil
}

func runServer() error {
	cfg := bootstrap()

	db, err := config.ConnectDatabase()
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if _, err := config.ConnectRedis(); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, rate limiting falls back to local memory")
	}

	router, err := setupRouter(cfg, db)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.AppEnv).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("error starting server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
