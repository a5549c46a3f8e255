package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mpadjest/bingeplan-web/internal/handler"
	"github.com/mpadjest/bingeplan-web/internal/middleware"
	"github.com/mpadjest/bingeplan-web/internal/service"
	"github.com/mpadjest/bingeplan-web/internal/session"
	"github.com/mpadjest/bingeplan-web/internal/upstream"
	"github.com/mpadjest/bingeplan-web/internal/view"
	"github.com/mpadjest/bingeplan-web/pkg/cache"
	"github.com/mpadjest/bingeplan-web/pkg/config"
	"github.com/mpadjest/bingeplan-web/pkg/logger"
	corsmiddleware "github.com/mpadjest/bingeplan-web/pkg/middleware/cors"
	reqidmiddleware "github.com/mpadjest/bingeplan-web/pkg/middleware/requestid"
)

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	loc := time.Local
	if cfg.Schedule.TimeZone != "" {
		loc, err = time.LoadLocation(cfg.Schedule.TimeZone)
		if err != nil {
			logr.Sugar().Fatalw("invalid time zone", "zone", cfg.Schedule.TimeZone, "error", err)
		}
	}

	var backend session.Backend = session.NewMemoryBackend()
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
		backend = session.NewRedisBackend(redisClient)
	}
	sessions := session.NewStore(backend, cfg.Session.TTL, logr)

	api := upstream.NewClient(cfg.Upstream, logr)
	validate := validator.New()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	planner := service.NewPlannerService(api, sessions, validate, metrics, logr, loc)
	accounts := service.NewAccountService(api, sessions, validate, metrics, logr)
	exports := service.NewExportService(api, metrics, logr, loc)

	authHandler := handler.NewAuthHandler(accounts, sessions, cfg.Session)
	calendarHandler := handler.NewCalendarHandler(planner, sessions)
	eventHandler := handler.NewEventHandler(planner, sessions, cfg.Schedule.DefaultDurationMinutes)
	profileHandler := handler.NewProfileHandler(accounts, sessions)
	exportHandler := handler.NewExportHandler(exports, sessions)

	tmpl, err := view.Templates()
	if err != nil {
		logr.Sugar().Fatalw("failed to parse templates", "error", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metrics))
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register", authHandler.Register)
	r.POST("/logout", authHandler.Logout)

	authed := r.Group("/")
	authed.Use(middleware.RequireSession(sessions, cfg.Session.CookieName))
	{
		authed.GET("/", calendarHandler.MonthView)

		authed.GET("/events/new", eventHandler.NewForm)
		authed.POST("/events", eventHandler.Create)
		authed.GET("/events/export", exportHandler.Download)
		authed.GET("/events/:id/edit", eventHandler.EditForm)
		authed.POST("/events/:id", eventHandler.Update)
		authed.GET("/events/:id/delete", eventHandler.ConfirmDelete)
		authed.POST("/events/:id/delete", eventHandler.Delete)

		authed.GET("/profile", profileHandler.Page)
		authed.POST("/profile", profileHandler.Update)
		authed.POST("/profile/google/connect", profileHandler.ConnectGoogle)
		authed.GET("/google-callback", profileHandler.GoogleCallback)
		authed.GET("/profile/google/disconnect", profileHandler.ConfirmDisconnect)
		authed.POST("/profile/google/disconnect", profileHandler.DisconnectGoogle)
		authed.POST("/profile/google/sync", profileHandler.SyncGoogle)

		feed := authed.Group("/api")
		feed.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
		feed.GET("/events", calendarHandler.EventsFeed)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
