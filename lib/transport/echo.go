package transport

import (
	"crypto/subtle"
	"fmt"

	"github.com/getAlby/tahub.go/lib"
	"github.com/getAlby/tahub.go/lib/responses"
	"github.com/getAlby/tahub.go/lib/service"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/ziflex/lecho/v3"
	"golang.org/x/time/rate"
)

func InitEcho(c *service.Config, logger *lecho.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("250K"))
	// set the default rate limit defining the overal max requests/second
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(c.DefaultRateLimit))))

	e.Logger = logger
	e.Use(middleware.RequestID())

	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{}))
	}
	return e
}

func CreateLoggingMiddleware(logger *lecho.Logger) echo.MiddlewareFunc {
	return lecho.Middleware(lecho.Config{
		Logger: logger,
		Enricher: func(c echo.Context, logger zerolog.Context) zerolog.Context {
			return logger.Str("RequestID", c.Response().Header().Get(echo.HeaderXRequestID))
		},
	})
}

func CreateRateLimitMiddleware(requestsPerSecond int, burst int) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(requestsPerSecond), Burst: burst},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
	}

	return middleware.RateLimiterWithConfig(config)
}

// AdminTokenMiddleware guards ledger writes. An empty token disables the check.
func AdminTokenMiddleware(token string) echo.MiddlewareFunc {
	if token == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return middleware.KeyAuth(func(auth string, c echo.Context) (bool, error) {
		return subtle.ConstantTimeCompare([]byte(auth), []byte(token)) == 1, nil
	})
}

// StartPrometheusEcho scrapes e and serves the metrics on a separate port.
func StartPrometheusEcho(logger *lecho.Logger, c *service.Config, e *echo.Echo) *echo.Echo {
	echoPrometheus := echo.New()
	echoPrometheus.HideBanner = true
	prom := prometheus.NewPrometheus("echo", nil)
	// Scrape metrics from Main Server
	e.Use(prom.HandlerFunc)
	// Setup metrics endpoint at another server
	prom.SetMetricsPath(echoPrometheus)
	echoPrometheus.Logger = logger
	go func() {
		echoPrometheus.Logger.Infof("Starting prometheus on port %d", c.PrometheusPort)
		if err := echoPrometheus.Start(fmt.Sprintf(":%d", c.PrometheusPort)); err != nil {
			echoPrometheus.Logger.Info(err)
		}
	}()
	return echoPrometheus
}
