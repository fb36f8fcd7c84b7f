package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/vndigital/sitehub/internal/cache"
	"github.com/vndigital/sitehub/internal/config"
	"github.com/vndigital/sitehub/internal/http/handlers"
	"github.com/vndigital/sitehub/internal/http/middlewares"
	"github.com/vndigital/sitehub/internal/observability"
	"github.com/vndigital/sitehub/internal/session"
)

// Deps carries everything the router needs, so the memory and postgres
// wirings stay interchangeable and tests can swap in fakes.
type Deps struct {
	Log      *slog.Logger
	Cfg      config.Config
	Users    handlers.UserReader
	Services handlers.ServiceStore
	Team     handlers.TeamStore
	Contacts handlers.ContactStore
	Jobs     handlers.JobEnqueuer
	Sessions session.Store
	Cache    *cache.Cache
	Prom     *observability.Prom
	Registry *prometheus.Registry
	Ping     func() error
}

const maxBodyBytes = 1 << 20 // 1 MiB is plenty for any of our payloads

func NewRouter(d Deps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.Cfg.AllowedOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(otelgin.Middleware("sitehub"))

	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	// health
	h := handlers.NewHealthHandler(d.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	// wire up handlers
	servicesHandler := handlers.NewServicesHandler(d.Services, d.Cache)
	teamHandler := handlers.NewTeamHandler(d.Team, d.Cache)
	contactsHandler := handlers.NewContactsHandler(d.Contacts, d.Jobs)
	authHandler := handlers.NewAuthHandler(d.Users, d.Sessions, d.Cfg)

	auth := middlewares.NewSessionAuth(d.Sessions, d.Users)

	loginLimiter := middlewares.NewRateLimiter(10, time.Minute)
	contactLimiter := middlewares.NewRateLimiter(5, time.Minute)

	api := r.Group("/api")

	// public marketing surface
	api.GET("/services", servicesHandler.ListServices)
	api.GET("/services/:id", servicesHandler.GetServiceByID)
	api.GET("/team", teamHandler.ListMembers)
	api.GET("/team/:id", teamHandler.GetMemberByID)
	api.POST("/contact", contactLimiter.RateLimiterMiddleware(middlewares.KeyByIP), contactsHandler.CreateContact)

	// auth
	api.POST("/auth/login", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/user", authHandler.CurrentUser)

	// dashboard surface, admin only
	admin := api.Group("", auth.RequireAuth(), auth.RequireAdmin())

	admin.POST("/services", servicesHandler.CreateService)
	admin.PUT("/services/:id", servicesHandler.UpdateService)
	admin.DELETE("/services/:id", servicesHandler.DeleteService)

	admin.POST("/team", teamHandler.CreateMember)
	admin.PUT("/team/:id", teamHandler.UpdateMember)
	admin.DELETE("/team/:id", teamHandler.DeleteMember)

	admin.GET("/contacts", contactsHandler.ListContacts)
	admin.GET("/contacts/:id", contactsHandler.GetContactByID)

	return r
}
