package server

import (
	"context"
	"net/http"

	"funnel-billing/internal/handler"
	appmiddleware "funnel-billing/internal/middleware"
	"funnel-billing/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Options struct {
	WebhookSecret string
	JWTSecret     string
	// Gatherer backs /metrics; nil leaves the route out.
	Gatherer prometheus.Gatherer
}

type Server struct {
	echo               *echo.Echo
	webhookHandler     *handler.WebhookHandler
	entitlementHandler *handler.EntitlementHandler
	opts               Options
}

func NewServer(renewalService service.RenewalService, entitlementService service.EntitlementService, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())

	s := &Server{
		echo:               e,
		webhookHandler:     handler.NewWebhookHandler(renewalService),
		entitlementHandler: handler.NewEntitlementHandler(entitlementService),
		opts:               opts,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	if s.opts.Gatherer != nil {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))
	}

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- gateway webhooks --------
	webhooks := api.Group("/webhooks", appmiddleware.WebhookSignature(s.opts.WebhookSecret))
	webhooks.POST("/renewal", s.webhookHandler.RenewalWebhook)

	// -------- entitlements --------
	entitlements := api.Group("/entitlements", appmiddleware.AuthMiddleware(s.opts.JWTSecret))
	entitlements.GET("", s.entitlementHandler.ListEntitlements)
	entitlements.GET("/:dimension", s.entitlementHandler.GetEntitlement)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
