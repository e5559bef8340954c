package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/tracekit/otellink/internal/config"
	"github.com/tracekit/otellink/internal/logging"
	"github.com/tracekit/otellink/internal/monitoring"
	"github.com/tracekit/otellink/splice"
)

func main() {
	cfg := config.LoadOrDefault()

	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}
	defer logger.Sync()

	tp, err := newTracerProvider(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	metrics := monitoring.New(prometheus.DefaultRegisterer)

	splicer := splice.New(
		splice.WithTracerProvider(tp),
		splice.WithSentinelName(cfg.Splice.SentinelName),
		splice.WithLogger(logger.Logger),
		splice.WithObserver(metrics),
	)

	router := newRouter(cfg, splicer, metrics)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	logger.Info("Starting server",
		zap.String("addr", addr),
		zap.Bool("splice_enabled", cfg.Splice.Enabled),
		zap.String("service", cfg.Telemetry.ServiceName),
	)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("Shutting down gracefully...")
	case err := <-errChan:
		logger.Error("Server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	if err := tp.Shutdown(ctx); err != nil {
		logger.Error("Error flushing traces", zap.Error(err))
	}
}

// newTracerProvider builds the demo tracing pipeline. With the stdout
// exporter disabled, spans are still created and sampled, just not exported.
func newTracerProvider(cfg *config.Config) (*sdktrace.TracerProvider, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.Telemetry.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if cfg.Telemetry.StdoutExporter {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	return sdktrace.NewTracerProvider(opts...), nil
}

// newRouter assembles the middleware chain. The splicer must run after
// otelgin so a server span is already active when it inspects the request.
func newRouter(cfg *config.Config, splicer *splice.Splicer, metrics *monitoring.Metrics) *gin.Engine {
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization", "Accept", "Origin"},
		MaxAge:       12 * time.Hour,
	}))
	router.Use(monitoring.Middleware(metrics))
	router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	if cfg.Splice.Enabled {
		router.Use(splice.HTTPMiddleware(splicer))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/orders", func(c *gin.Context) {
		sc := trace.SpanFromContext(c.Request.Context()).SpanContext()
		c.JSON(http.StatusOK, gin.H{
			"orders":   []string{},
			"trace_id": sc.TraceID().String(),
		})
	})

	return router
}
