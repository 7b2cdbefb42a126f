package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"psicoagenda/config"
	"psicoagenda/docs"
	"psicoagenda/internal/metrics"
	"psicoagenda/internal/repository"
	"psicoagenda/internal/service"
	"psicoagenda/internal/storage"
	"psicoagenda/internal/transport/rest"
	"psicoagenda/pkg/database"
	"psicoagenda/pkg/logger"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Psicoagenda API
// @version 1.0
// @description API каталога психологов и записи на сессии

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	var (
		s3Storage   *storage.S3Storage
		fileStorage storage.FileStorage
	)
	if cfg.S3.Endpoint != "" {
		s3Storage, err = storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			log.Fatal("Не удалось инициализировать S3 хранилище", zap.Error(err))
		}
		fileStorage = s3Storage
		log.Info("S3 хранилище успешно инициализировано", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 хранилище не настроено, изображения отдаются как есть")
	}

	catalog, err := repository.LoadCatalog(ctx, cfg.Catalog, fileStorage, log)
	if err != nil {
		log.Fatal("Не удалось загрузить каталог специалистов", zap.Error(err))
	}

	kv, closeKV, err := newSessionKV(ctx, cfg, s3Storage, log)
	if err != nil {
		log.Fatal("Не удалось инициализировать хранилище сессий", zap.Error(err))
	}
	defer closeKV()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	repos := repository.NewRepositories(
		catalog,
		repository.NewSessionStore(kv, cfg.Sessions.Key, collector, log),
	)

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      log,
		Config:      cfg,
		FileStorage: fileStorage,
		Metrics:     collector,
	})

	handler := rest.NewHandler(services, log, cfg, collector, registry)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	router.GET("/swagger.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(docs.SwaggerInfo.ReadDoc()))
	})

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	log.Info("Сервер запущен",
		zap.String("addr", srv.Addr),
		zap.String("sessions_backend", cfg.Sessions.Backend),
		zap.String("timezone", cfg.Availability.DefaultTimezone),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Выключение сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Ошибка при остановке сервера", zap.Error(err))
		return
	}

	log.Info("Сервер успешно остановлен")
}

// newSessionKV opens the key-value backend selected by SESSIONS_BACKEND.
// The "none" backend yields a nil store: bookings are accepted and then forgotten.
func newSessionKV(ctx context.Context, cfg *config.Config, s3Storage *storage.S3Storage, log *zap.Logger) (storage.KeyValue, func(), error) {
	noop := func() {}

	switch cfg.Sessions.Backend {
	case config.SessionsBackendMemory:
		return storage.NewMemoryKV(), noop, nil

	case config.SessionsBackendRedis:
		kv, err := storage.NewRedisKV(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return kv, func() { _ = kv.Close() }, nil

	case config.SessionsBackendPostgres:
		db, err := database.NewPostgresDB(ctx, cfg.Postgres, log)
		if err != nil {
			return nil, noop, err
		}

		log.Info("Запуск миграций базы данных")
		if err := database.RunMigrations(ctx, db, cfg.Postgres.MigrationsDir, log); err != nil {
			db.Close()
			return nil, noop, fmt.Errorf("ошибка при выполнении миграций: %w", err)
		}
		log.Info("Миграции успешно выполнены")

		return storage.NewPostgresKV(db), db.Close, nil

	case config.SessionsBackendS3:
		if s3Storage == nil {
			return nil, noop, errors.New("хранилище сессий s3 требует S3_ENDPOINT")
		}
		return s3Storage, noop, nil

	case config.SessionsBackendNone:
		log.Warn("Хранилище сессий отключено, бронирования не сохраняются")
		return nil, noop, nil

	default:
		kv, err := storage.NewFileKV(filepath.Clean(cfg.Sessions.Dir), log)
		if err != nil {
			return nil, noop, err
		}
		return kv, noop, nil
	}
}
