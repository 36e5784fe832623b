package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/cec-hub/cec-timetable-api/api/swagger"
	"github.com/cec-hub/cec-timetable-api/internal/handler"
	"github.com/cec-hub/cec-timetable-api/internal/middleware"
	"github.com/cec-hub/cec-timetable-api/internal/models"
	"github.com/cec-hub/cec-timetable-api/internal/repository"
	"github.com/cec-hub/cec-timetable-api/internal/service"
	"github.com/cec-hub/cec-timetable-api/pkg/cache"
	"github.com/cec-hub/cec-timetable-api/pkg/config"
	"github.com/cec-hub/cec-timetable-api/pkg/database"
	"github.com/cec-hub/cec-timetable-api/pkg/logger"
	corsmiddleware "github.com/cec-hub/cec-timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/cec-hub/cec-timetable-api/pkg/middleware/requestid"
	"github.com/cec-hub/cec-timetable-api/pkg/storage"
)

// @title CEC Timetable API
// @version 1.0.0
// @description Administrative backend for the continuing-education center
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, catalog caching disabled", zap.Error(err))
	} else {
		defer redisClient.Close() //nolint:errcheck
		cacheRepo = repository.NewRedisCacheRepository(redisClient)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Catalog.CacheTTL, logr, cacheRepo != nil)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	weekSvc := service.NewWeekService(logr)
	catalogSvc := service.NewCatalogService(classRepo, teacherRepo, roomRepo, courseRepo, validate, cacheSvc, cfg.Catalog.CacheTTL, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, validate, metrics, logr)
	editorSvc := service.NewEditorService(scheduleSvc, validate, metrics, service.EditorConfig{
		SessionTTL:     cfg.Editor.SessionTTL,
		SweepInterval:  cfg.Editor.SweepInterval,
		MaxSessions:    cfg.Editor.MaxSessions,
		MaxStagedPairs: cfg.Editor.MaxStagedPairs,
	}, logr)
	defer editorSvc.Close()

	exportSvc := service.NewExportService(scheduleSvc, weekSvc, logr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var exportJobSvc *service.ExportJobService
	if cfg.Export.Enabled {
		exportStore, err := storage.NewExportStore(cfg.Export.Dir)
		if err != nil {
			logr.Sugar().Fatalw("failed to prepare export directory", "error", err)
		}
		signer := storage.NewDownloadSigner(cfg.Export.SignSecret, cfg.Export.URLTTL)
		exportJobSvc = service.NewExportJobService(ctx, exportSvc, exportStore, signer, service.ExportJobConfig{
			Workers:       cfg.Export.Workers,
			FileTTL:       cfg.Export.FileTTL,
			SweepInterval: cfg.Export.SweepInterval,
		}, logr)
		defer exportJobSvc.Stop()
	}

	authHandler := handler.NewAuthHandler(authSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc, weekSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, catalogSvc, exportSvc, exportJobSvc)
	editorHandler := handler.NewEditorHandler(editorSvc)
	metricsHandler := handler.NewMetricsHandler(metrics, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))
	authed.GET("/auth/me", authHandler.Me)

	authed.GET("/classes", catalogHandler.ListClasses)
	authed.GET("/teachers", catalogHandler.ListTeachers)
	authed.GET("/facilities", catalogHandler.ListFacilities)
	authed.GET("/rooms", catalogHandler.ListRooms)
	authed.GET("/courses", catalogHandler.ListCourses)
	authed.GET("/weeks", catalogHandler.ListWeeks)

	authed.GET("/schedules", scheduleHandler.List)
	authed.POST("/schedules", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), scheduleHandler.Commit)
	authed.GET("/schedules/:id", scheduleHandler.Get)
	authed.DELETE("/schedules/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), scheduleHandler.Delete)
	if cfg.Export.Enabled {
		api.GET("/schedules/export/download", scheduleHandler.DownloadExport)
		authed.GET("/schedules/export", scheduleHandler.Export)
		authed.POST("/schedules/export/jobs", scheduleHandler.EnqueueExport)
		authed.GET("/schedules/export/jobs/:id", scheduleHandler.ExportJob)
	}

	editor := authed.Group("/editor")
	editor.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleManager))
	editor.POST("/sessions", editorHandler.CreateSession)
	editor.GET("/sessions/:id", editorHandler.State)
	editor.GET("/sessions/:id/preview", editorHandler.Preview)
	editor.DELETE("/sessions/:id", editorHandler.CloseSession)
	editor.POST("/sessions/:id/pairs", editorHandler.StagePair)
	editor.DELETE("/sessions/:id/pairs", editorHandler.RemovePair)
	editor.PUT("/sessions/:id/selection", editorHandler.SetSelection)
	editor.POST("/sessions/:id/click", editorHandler.Click)
	editor.POST("/sessions/:id/confirm", editorHandler.Confirm)
	editor.POST("/sessions/:id/cancel", editorHandler.Cancel)
	editor.POST("/sessions/:id/validate", editorHandler.Validate)
	editor.POST("/sessions/:id/submit", editorHandler.Submit)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
