package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dezh-tech/immortal/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"medihub"
	"medihub/config"
	"medihub/internal/application/usecase"
	"medihub/internal/infrastructure/broker"
	"medihub/internal/infrastructure/controlplane"
	"medihub/internal/infrastructure/database"
	"medihub/internal/infrastructure/metrics"
	"medihub/internal/infrastructure/minio"
	"medihub/internal/presentation/handler"
)

const (
	serveUsage = "medihub serve <config>"

	defaultBodyLimit = "1M"
	defaultRateLimit = 20
)

func HandleServe(args []string) {
	cfg := loadConfig(args, serveUsage)
	if err := cfg.CheckServer(); err != nil {
		ExitOnError(err)
	}

	logger.Info("running medihub control plane", "version", medihub.StringVersion())

	brokerClient, err := broker.NewClient(cfg.BrokerConfig)
	if err != nil {
		ExitOnError(err)
	}
	defer brokerClient.Close()

	brokerPublisher := broker.NewPublisher(brokerClient, cfg.PublisherConfig)

	db, err := database.Connect(cfg.DBConfig)
	if err != nil {
		ExitOnError(err)
	}
	defer func() {
		if err := db.Stop(); err != nil {
			logger.Error("couldn't stop the db connection", "err", err)
		}
	}()

	minIOClient, err := minio.New(&cfg.MinIOClient)
	if err != nil {
		ExitOnError(err)
	}

	bucketCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = minIOClient.EnsureBucket(bucketCtx, cfg.MinIOPresigner.Bucket)
	cancel()
	if err != nil {
		ExitOnError(fmt.Errorf("ensure bucket %s: %w", cfg.MinIOPresigner.Bucket, err))
	}

	issuer := usecase.NewIssuer(
		minio.NewPresigner(minIOClient.MinioClient, &cfg.MinIOPresigner),
		database.NewDocumentWriter(db),
		database.NewDocumentRemover(db),
		brokerPublisher,
		cfg.Uploader,
	)
	lister := usecase.NewLister(database.NewDocumentLister(db))

	httpMetrics := metrics.NewHTTPServerMetrics()

	e := newServer(cfg, httpMetrics)
	e.POST(controlplane.PresignedURLPath, handler.NewPresignedURLHandler(issuer, httpMetrics).Handle)
	e.GET("/documents", handler.NewListHandler(lister).HandleList)
	e.GET("/health", handler.NewHealthHandler(map[string]handler.Pinger{
		"database": db,
		"broker":   brokerClient,
	}).HandleHealth)
	e.GET("/metrics", echo.WrapHandler(httpMetrics.Handler()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(cfg.Server.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ExitOnError(fmt.Errorf("shutting down server: %w", err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down medihub control plane")

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		ExitOnError(err)
	}
}

func newServer(cfg *config.Config, httpMetrics *metrics.HTTPServerMetrics) *echo.Echo {
	bodyLimit := cfg.Server.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}
	rateLimit := cfg.Server.RateLimit
	if rateLimit <= 0 {
		rateLimit = defaultRateLimit
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(httpMetrics.Middleware())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderContentLength},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		MaxAge:       86400,
	}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	e.Use(echoMiddleware.BodyLimit(bodyLimit))
	e.Use(echoMiddleware.RateLimiter(echoMiddleware.NewRateLimiterMemoryStore(rate.Limit(rateLimit))))

	return e
}
