package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/x/assist"
	"github.com/voidarchive/archive/x/auth"
	"github.com/voidarchive/archive/x/controller"
	"github.com/voidarchive/archive/x/image"
	"github.com/voidarchive/archive/x/util"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/plugin/opentelemetry/tracing"
)

type CustomHandler struct {
	slog.Handler
}

func (h *CustomHandler) Handle(ctx context.Context, r slog.Record) error {

	r.AddAttrs(slog.String("type", "app"))

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		r.AddAttrs(slog.String("traceID", span.SpanContext().TraceID().String()))
		r.AddAttrs(slog.String("spanID", span.SpanContext().SpanID().String()))
	}

	return h.Handler.Handle(ctx, r)
}

func skipOps(c echo.Context) bool {
	return c.Path() == "/metrics" || c.Path() == "/health"
}

func main() {

	fmt.Fprint(os.Stderr, archiveBanner)

	handler := &CustomHandler{Handler: slog.NewJSONHandler(os.Stdout, nil)}
	slogger := slog.New(handler)
	slog.SetDefault(slogger)

	buildInfo := util.GetBuildInfo()
	slog.Info(fmt.Sprintf("archive %s (%s) starting...", buildInfo.Version, buildInfo.GitHash))

	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	config := util.Config{}
	configPath := os.Getenv("ARCHIVE_CONFIG")
	if configPath == "" {
		configPath = "/etc/archive/config.yaml"
	}

	err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("config loaded", slog.String("listen", config.Server.Listen))

	if config.Server.EnableTrace {
		cleanup, err := setupTraceProvider(config.Server.TraceEndpoint, "archive", buildInfo.Version)
		if err != nil {
			panic(err)
		}
		defer cleanup()

		e.Use(otelecho.Middleware("archive", otelecho.WithSkipper(skipOps)))
	}

	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: "archive",
		LabelFuncs: map[string]echoprometheus.LabelValueFunc{
			"url": func(c echo.Context, err error) string {
				return "REDACTED"
			},
		},
		Skipper: skipOps,
	}))

	e.Use(middleware.Recover())

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             300 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(config.Server.Dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		panic("failed to connect database")
	}
	sqlDB, err := db.DB() // for pinging
	if err != nil {
		panic("failed to connect database")
	}
	defer sqlDB.Close()

	err = db.Use(tracing.NewPlugin(
		tracing.WithDBName("postgres"),
	))
	if err != nil {
		panic("failed to setup tracing plugin")
	}

	slog.Info("start migrate")
	err = db.AutoMigrate(core.Tables()...)
	if err != nil {
		panic("failed to migrate schema")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Server.RedisAddr,
		Password: "",
		DB:       config.Server.RedisDB,
	})
	err = redisotel.InstrumentTracing(
		rdb,
		redisotel.WithAttributes(
			attribute.KeyValue{
				Key:   "db.name",
				Value: attribute.StringValue("redis"),
			},
		),
	)
	if err != nil {
		panic("failed to setup tracing plugin")
	}

	mc := memcache.New(config.Server.MemcachedAddr)
	defer mc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	authService := SetupAuthService(db, rdb, config)
	go authService.Watch(ctx)
	authHandler := auth.NewHandler(authService)

	characterService := SetupCharacterService(db, mc, authService)
	logService := SetupLogService(db, mc, authService)
	commentService := SetupCommentService(db, mc, authService)
	profileService := SetupProfileService(db, mc, authService)

	imageService := SetupImageService(config)
	imageHandler := image.NewHandler(imageService)

	assistService, err := assist.NewService(config)
	if err != nil {
		slog.Warn("assist disabled", slog.String("reason", err.Error()))
		assistService = nil
	}

	ctrl := controller.New(characterService, logService, commentService, profileService, authService)
	ctrl.Start(ctx)
	defer ctrl.Stop()

	controllerHandler := controller.NewHandler(ctrl, assistService)
	socketHandler := controller.NewSocketHandler(ctrl)

	registerRoutes(e, controllerHandler, socketHandler, authHandler, imageHandler, authService)

	e.GET("/health", func(c echo.Context) (err error) {
		ctx := c.Request().Context()

		err = sqlDB.Ping()
		if err != nil {
			return c.String(http.StatusInternalServerError, "db error")
		}

		err = rdb.Ping(ctx).Err()
		if err != nil {
			return c.String(http.StatusInternalServerError, "redis error")
		}

		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": buildInfo})
	})

	var resourceCountMetrics = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "archive_resources_count",
			Help: "resources count",
		},
		[]string{"type"},
	)
	prometheus.MustRegister(resourceCountMetrics)

	var socketConnectionMetrics = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "archive_socket_connections",
			Help: "socket connections",
		},
	)
	prometheus.MustRegister(socketConnectionMetrics)

	counters := []struct {
		name  string
		count func(context.Context) (int64, error)
	}{
		{"character", characterService.Count},
		{"log", logService.Count},
		{"comment", commentService.Count},
		{"profile", profileService.Count},
		{"image", imageService.Count},
	}

	go func() {
		for {
			time.Sleep(15 * time.Second)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			for _, counter := range counters {
				count, err := counter.count(ctx)
				if err != nil {
					slog.Error(fmt.Sprintf("failed to count %ss: %v", counter.name, err))
					continue
				}
				resourceCountMetrics.WithLabelValues(counter.name).Set(float64(count))
			}
			cancel()

			socketConnectionMetrics.Set(float64(socketHandler.CurrentConnectionCount()))
		}
	}()

	e.GET("/metrics", echoprometheus.NewHandler())

	e.Logger.Fatal(e.Start(config.Server.Listen))
}

func setupTraceProvider(endpoint string, serviceName string, serviceVersion string) (func(), error) {

	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)

	if err != nil {
		return nil, err
	}

	resource := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(serviceVersion),
	)

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(resource),
	)
	otel.SetTracerProvider(tracerProvider)

	propagator := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
	otel.SetTextMapPropagator(propagator)

	cleanup := func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			slog.Error(fmt.Sprintf("Failed to shutdown tracer provider: %v", err))
		}
	}
	return cleanup, nil
}
