package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rillid/internal/core/services"
	httphandlers "rillid/internal/handlers/http"
	"rillid/internal/infrastructure/middleware"
	"rillid/internal/infrastructure/monitoring"
	webrtcinfra "rillid/internal/infrastructure/webrtc"
	"rillid/pkg/config"
	"rillid/pkg/logger"
	"rillid/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	startTime := time.Now()

	configPath := "configs/config.yaml"
	if p := os.Getenv("RILLID_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config %s: %v", configPath, err)
	}

	zapLogger, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	sugar := zapLogger.Sugar()
	sugar.Infow("configuration loaded", "path", configPath, "envelope_form", cfg.Envelope.DefaultForm)

	tp, err := tracing.Init(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		JaegerURL:   cfg.Tracing.JaegerURL,
		Environment: cfg.Tracing.Environment,
		SampleRate:  cfg.Tracing.SampleRate,
	})
	if err != nil {
		sugar.Fatalw("failed to initialize tracing", "error", err)
	}

	collector := monitoring.NewCodecCollector(prometheus.DefaultRegisterer)
	healthChecker := monitoring.NewHealthChecker()
	healthChecker.AddCheck("codec", monitoring.CodecSelfCheck, 2*time.Second)

	streamIDService := services.NewStreamIDService(
		services.StreamIDServiceConfig{
			DefaultForm:   cfg.Envelope.DefaultForm,
			AcceptEscaped: cfg.Envelope.AcceptEscaped,
		},
		webrtcinfra.NewTrackMapper(),
		collector,
		zapLogger,
	)
	streamIDHandler := httphandlers.NewStreamIDHandler(streamIDService)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.RecoveryMiddleware(zapLogger),
		middleware.RequestIDMiddleware(),
		middleware.TracingMiddleware(),
		middleware.NewHTTPRateLimitMiddleware(cfg),
		middleware.ErrorHandlerMiddleware(zapLogger),
	)

	streamIDHandler.SetupRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"uptime":    time.Since(startTime).String(),
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		status := healthChecker.CheckAll(c.Request.Context())
		code := http.StatusOK
		if status.Status != "healthy" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})

	if cfg.Monitoring.PrometheusEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
		sugar.Info("Prometheus metrics enabled")
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		sugar.Infof("Starting rillid server on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		sugar.Fatalw("Server failed", "error", err)
	case sig := <-sigChan:
		sugar.Infow("Received shutdown signal", "signal", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Error during server shutdown", "error", err)
		if closeErr := srv.Close(); closeErr != nil {
			sugar.Errorw("Error force closing server", "error", closeErr)
		}
	} else {
		sugar.Info("Server shutdown gracefully")
	}

	if err := tp.Shutdown(shutdownCtx); err != nil {
		zapLogger.Warn("tracer shutdown failed", zap.Error(err))
	}

	sugar.Info("rillid server stopped")
}
