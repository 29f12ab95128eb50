package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/getAlby/tahub.go/db"
	"github.com/getAlby/tahub.go/db/migrations"
	"github.com/getAlby/tahub.go/lib"
	"github.com/getAlby/tahub.go/lib/service"
	"github.com/getAlby/tahub.go/lib/transport"
	"github.com/getAlby/tahub.go/rabbitmq"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun/migrate"
)

func main() {

	c := &service.Config{}

	// Load configruation from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configrued log file
	logger := lib.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}
	defer dbConn.Close()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Duration(c.DatabaseTimeout)*time.Second)
	defer cancelStartup()
	if err = db.WaitForConnection(startupCtx, dbConn, time.Duration(c.DatabaseTimeout)*time.Second); err != nil {
		logger.Fatalf("Error connecting to db: %v", err)
	}

	// Migrate the DB
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	_, err = migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}

	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			IgnoreErrors:     []string{"401"},
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	// If no RABBITMQ_URI was provided we will not attempt to create a client
	// Responses are then neither published nor refreshed from other instances.
	var rabbitmqClient rabbitmq.Client
	var publisher service.Publisher
	if c.RabbitMQUri != "" {
		amqpClient, err := rabbitmq.DialAMQP(c.RabbitMQUri, rabbitmq.WithAmqpLogger(logger))
		if err != nil {
			logger.Fatal(err)
		}

		rabbitmqClient, err = rabbitmq.NewClient(amqpClient,
			rabbitmq.WithLogger(logger),
			rabbitmq.WithAssetExchange(c.RabbitMQAssetExchange),
			rabbitmq.WithAssetQueueName(c.RabbitMQAssetQueueName),
		)
		if err != nil {
			logger.Fatal(err)
		}

		// close the connection gently at the end of the runtime
		defer rabbitmqClient.Close()
		publisher = rabbitmqClient
	}

	svc := service.NewLedgerService(c, &service.BunStore{DB: dbConn}, logger, publisher)

	e := transport.InitEcho(c, logger)
	logMw := transport.CreateLoggingMiddleware(logger)
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)
	transport.RegisterV2Endpoints(svc, e, strictRateLimitMiddleware, transport.AdminTokenMiddleware(c.AdminToken), logMw)

	var backgroundWg sync.WaitGroup
	backGroundCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Refresh cached responses from updates published by other instances
	if rabbitmqClient != nil {
		backgroundWg.Add(1)
		go func() {
			err := rabbitmqClient.SubscribeToAssetUpdates(backGroundCtx, svc.HandleAssetUpdate)
			if err != nil && err != context.Canceled {
				svc.Logger.Error(err)
				sentry.CaptureException(err)
			}
			svc.Logger.Info("Asset update consumer done")
			backgroundWg.Done()
		}()
	}

	//Start Prometheus server if necessary
	var echoPrometheus *echo.Echo
	if c.EnablePrometheus {
		echoPrometheus = transport.StartPrometheusEcho(logger, c, e)
	}

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-backGroundCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	if echoPrometheus != nil {
		if err := echoPrometheus.Shutdown(ctx); err != nil {
			e.Logger.Fatal(err)
		}
	}
	//Wait for graceful shutdown of background routines
	backgroundWg.Wait()
	svc.Logger.Info("tahub exiting gracefully. Goodbye.")
}
