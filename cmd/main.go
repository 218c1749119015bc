// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_4_vocab_sync/internal/config"
	"go_4_vocab_sync/internal/handlers"
	"go_4_vocab_sync/internal/middleware"
	"go_4_vocab_sync/internal/repository"
	"go_4_vocab_sync/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	// Configを読み込み
	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}
	// 開発環境ではtint、それ以外はJSONハンドラ
	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// 2. データベース接続 (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if err := repository.Migrate(db); err != nil {
		slog.Error("Error migrating database schema", slog.Any("error", err))
		os.Exit(1)
	}

	// 3. Dependency Injection
	progressRepo := repository.NewGormProgressRepository()
	exclusionRepo := repository.NewGormExclusionRepository()
	statisticsRepo := repository.NewGormStatisticsRepository()

	mailer := service.NewMailer(&config.Cfg)
	var notifier service.NotificationSender
	if config.Cfg.Mailer.Type == "log" || config.Cfg.Mailer.Type == "" {
		notifier = &service.LogStreakNotifier{}
	} else {
		notifier = &service.MailStreakNotifier{
			Mailer: mailer,
			// ユーザーマスタは別サブシステムのため、宛先は通知用アドレスパターンで解決する
			Resolve: func(ctx context.Context, userID int64) (string, error) {
				return config.Cfg.Mailer.From, nil
			},
		}
	}

	reviewService := service.NewReviewService(db, progressRepo)
	syncService := service.NewSyncService(db, progressRepo, exclusionRepo)
	statisticsService := service.NewStatisticsService(db, statisticsRepo, progressRepo, notifier, config.Cfg.App.StreakMilestones)
	storageSigner := service.NewObjectStorageSigner(&config.Cfg)

	reviewHandler := handlers.NewReviewHandler(reviewService, statisticsService, config.Cfg.App.ReviewLimit)
	syncHandler := handlers.NewSyncHandler(syncService)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService)
	uploadHandler := handlers.NewUploadHandler(storageSigner)

	// 4. ルーター設定
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	// CORS (設定ファイルから読み込んだ値を使用)
	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes (すべて認証必須)
	r.Route("/api/v1", func(r chi.Router) {
		if config.Cfg.Auth.Enabled {
			slog.Info("Applying JWT authentication middleware")
			r.Use(middleware.JWTAuthMiddleware(&config.Cfg))
		} else {
			// 開発用: X-User-ID ヘッダーをそのまま信用する
			slog.Warn("Auth disabled, applying development user-context middleware")
			r.Use(middleware.DevUserContextMiddleware)
		}

		// Review routes
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.GetDueReviews)
			r.Get("/wrong", reviewHandler.GetWrongWords)
			r.Put("/{word_id}/result", reviewHandler.SubmitReviewResult)
		})
		r.Get("/lists/{list_id}/summary", reviewHandler.GetListSummary)

		// Sync routes
		r.Route("/userdata", func(r chi.Router) {
			r.Post("/progress/sync", syncHandler.SyncProgress)
			r.Get("/progress", syncHandler.GetProgress)
			r.Post("/exclusions/sync", syncHandler.SyncExclusions)
			r.Get("/exclusions", syncHandler.GetExclusions)
			r.Delete("/exclusions/{list_id}/{word_id}", syncHandler.RestoreExclusion)

			// Statistics routes
			r.Get("/statistics", statisticsHandler.GetStatistics)
			r.Post("/statistics", statisticsHandler.UpdateStatistics)
			r.Post("/statistics/check-continuous", statisticsHandler.CheckContinuousDays)
			r.Post("/learning/daily", statisticsHandler.RecordDailyLearning)
		})

		// Upload routes
		r.Post("/uploads/sign", uploadHandler.SignUpload)
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sqlDB, err := db.DB()
		if err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 5. サーバー起動
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
