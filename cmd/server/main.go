package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"turn2law_web/config"
	"turn2law_web/handlers"
	"turn2law_web/middleware"
	"turn2law_web/services/i18n"
	"turn2law_web/services/waitlist"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}
	middleware.InitAssetVersions()

	shutdownTracing, err := config.SetupTracing(cfg)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	if shutdownTracing != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(shutdownCtx); err != nil {
				log.Printf("[WARNING] Tracing shutdown: %v", err)
			}
		}()
	}

	// Signup backend client
	client, err := waitlist.NewClient(cfg.SignupAPIBaseURL, waitlist.WithTimeout(cfg.SignupTimeout))
	if err != nil {
		log.Fatalf("Failed to configure signup client: %v", err)
	}
	log.Printf("[INFO] Waitlist submissions go to %s", client.Endpoint())

	// Metrics registry (collectors are only exposed when enabled)
	promRegistry := prometheus.NewRegistry()
	var waitlistMetrics *waitlist.Metrics
	if cfg.MetricsEnabled {
		promRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		waitlistMetrics = waitlist.NewMetrics(promRegistry)
	}

	registry := waitlist.NewRegistry(client, cfg.FormSessionTTL, waitlist.WithMetrics(waitlistMetrics))
	go registry.Run(ctx, time.Minute)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	if cfg.MetricsEnabled {
		middleware.MountMetrics(e, promRegistry, promRegistry)
	}
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(middleware.CSPNonce())
	e.Use(middleware.Locale(cfg))

	// Make config and form registry available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})
	e.Use(handlers.WithRegistry(registry))
	e.Use(middleware.CSRF(cfg))

	// Static files
	e.Static("/static", "static")

	// Public routes
	e.GET("/", handlers.LandingHandler)
	e.GET("/healthz", handlers.HealthHandler)
	e.GET("/sitemap.xml", handlers.GetSitemapHandler)
	e.GET("/robots.txt", handlers.GetRobotsHandler)

	// Waitlist form
	submitLimiter := middleware.NewWaitlistRateLimiter(cfg.SubmitRateLimit, cfg.SubmitRateWindow)
	e.POST("/waitlist", handlers.WaitlistSubmitHandler, submitLimiter.Middleware())
	e.POST("/waitlist/validate", handlers.WaitlistValidateHandler)
	e.POST("/waitlist/reset", handlers.WaitlistResetHandler, submitLimiter.Middleware())

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[INFO] Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARNING] Server shutdown: %v", err)
	}
}
