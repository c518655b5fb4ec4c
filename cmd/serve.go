package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skillhub.com/skillhub/internal/auth"
	config "skillhub.com/skillhub/internal/configs"
	"skillhub.com/skillhub/internal/guard"
	httpapi "skillhub.com/skillhub/internal/http"
	middleware "skillhub.com/skillhub/internal/http/middlewares"
	"skillhub.com/skillhub/internal/logger"
	"skillhub.com/skillhub/internal/realtime"
	repository "skillhub.com/skillhub/internal/repositories"
	"skillhub.com/skillhub/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the SkillHub marketplace HTTP API and realtime chat hub",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer logger.Sync()

		database := config.NewDatabaseClient(cfg.DatabaseDSN)

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()

		profileRepo := repository.NewProfileRepository(database)
		categoryRepo := repository.NewCategoryRepository(database)
		taskRepo := repository.NewTaskRepository(database)
		applicationRepo := repository.NewApplicationRepository(database)
		messageRepo := repository.NewMessageRepository(database)

		hub := realtime.NewHub(redisClient, cfg.ChatChannelPrefix)
		assignGuard := guard.NewRedisAssignGuard(redisClient, cfg.AssignGuardKeyPrefix, cfg.AssignGuardTTLSeconds)
		tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpireHours)

		authService := services.NewAuthService(profileRepo, tokens)
		taskService := services.NewTaskService(taskRepo, applicationRepo)
		applicationService := services.NewApplicationService(applicationRepo, taskRepo, assignGuard)
		categoryService := services.NewCategoryService(categoryRepo)
		profileService := services.NewProfileService(
			profileRepo,
			cfg.ProfileFetchRetries,
			time.Duration(cfg.ProfileRetryBackoffMS)*time.Millisecond,
		)
		chatService := services.NewChatService(messageRepo, taskRepo, hub)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := categoryService.Seed(ctx); err != nil {
			logger.Warn("failed to seed categories", zap.Error(err))
		}

		e := echo.New()
		e.HideBanner = true

		handler := httpapi.NewHandler(
			authService,
			taskService,
			applicationService,
			categoryService,
			profileService,
			chatService,
		)
		httpapi.Register(e, handler, middleware.Auth(tokens), cfg.RateLimit)

		go func() {
			logger.Info("HTTP server listening", zap.String("addr", cfg.AppURL))
			if err := e.Start(cfg.AppURL); err != nil {
				logger.Info("server stopped", zap.Error(err))
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()

		_ = e.Shutdown(shutdownCtx)
		hub.Shutdown(shutdownCtx)

		logger.Info("HTTP server and chat hub shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
