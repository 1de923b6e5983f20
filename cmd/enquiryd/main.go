// Command enquiryd serves the website enquiry form: POST /send-email relays
// a validated enquiry to the configured mail transport and GET /health
// reports liveness.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/infinityconsultancy/enquiry/pkg/clientip"
	"github.com/infinityconsultancy/enquiry/pkg/config"
	"github.com/infinityconsultancy/enquiry/pkg/cors"
	"github.com/infinityconsultancy/enquiry/pkg/enquiry"
	"github.com/infinityconsultancy/enquiry/pkg/environment"
	"github.com/infinityconsultancy/enquiry/pkg/httpserver"
	"github.com/infinityconsultancy/enquiry/pkg/logger"
	"github.com/infinityconsultancy/enquiry/pkg/mailer"
	"github.com/infinityconsultancy/enquiry/pkg/ratelimit"
	"github.com/infinityconsultancy/enquiry/pkg/redis"
	"github.com/infinityconsultancy/enquiry/pkg/requestid"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"enquiry"`
	LogLevel string `env:"LOG_LEVEL"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		app       appConfig
		sentryCfg logger.SentryConfig
		httpCfg   httpserver.Config
		mailCfg   mailer.Config
		enqCfg    enquiry.Config
		limitCfg  ratelimit.Config
		corsCfg   cors.Config
		ipCfg     clientip.Config
	)
	if err := errors.Join(
		config.Load(&app),
		config.Load(&sentryCfg),
		config.Load(&httpCfg),
		config.Load(&mailCfg),
		config.Load(&enqCfg),
		config.Load(&limitCfg),
		config.Load(&corsCfg),
		config.Load(&ipCfg),
	); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := enqCfg.Validate(); err != nil {
		return err
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	}
	if app.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevelName(app.LogLevel))
	}
	log, flush := logger.NewWithSentry(sentryCfg, logOpts...)
	defer flush(2 * time.Second)
	logger.SetAsDefault(log)

	sender, err := mailer.New(mailCfg)
	switch {
	case errors.Is(err, mailer.ErrNotConfigured):
		// Requests are answered with a configuration error until credentials are set.
		log.Warn("mail transport not configured",
			logger.Transport(string(mailCfg.Transport)),
			logger.Error(err),
		)
	case err != nil:
		return fmt.Errorf("mail transport: %w", err)
	default:
		if err := checkSender(log, environment.Parse(app.Env), sender); err != nil {
			return err
		}
	}

	checks := httpserver.Checks{}
	var store ratelimit.Store
	if limitCfg.Backend == ratelimit.BackendRedis {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return fmt.Errorf("load redis config: %w", err)
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		checks["redis"] = redis.Healthcheck(client)
		store, err = ratelimit.NewStore(limitCfg, client)
		if err != nil {
			return err
		}
	} else {
		store, err = ratelimit.NewStore(limitCfg, nil)
		if err != nil {
			return err
		}
	}
	if c, ok := store.(interface{ Close() error }); ok {
		defer c.Close()
	}

	limiter, err := ratelimit.NewFixedWindow(store, limitCfg.MaxRequests, limitCfg.Window)
	if err != nil {
		return err
	}

	svc := enquiry.NewService(sender, enqCfg, enquiry.WithLogger(log))
	if err := svc.Ready(); err != nil {
		log.Warn("enquiries cannot be delivered yet", logger.Error(err))
	}

	router := newRouter(routerDeps{
		log:      log,
		enquiry:  enquiry.NewHandler(svc, limiter, enquiry.WithHandlerLogger(log)),
		resolver: clientip.New(ipCfg),
		cors:     append(cors.FromConfig(corsCfg), cors.WithLogger(log)),
		checks:   checks,
	})

	log.Info("enquiry relay configured",
		slog.String("rate_limit_backend", string(limitCfg.Backend)),
		slog.Int("rate_limit_max", limitCfg.MaxRequests),
		slog.Duration("rate_limit_window", limitCfg.Window),
		slog.String("rate_limit_order", string(svc.Order())),
		slog.Any("allowed_origins", corsCfg.Origins()),
		slog.Bool("trust_proxy", ipCfg.TrustProxy),
		slog.Int("trust_proxy_hops", ipCfg.ProxyHops),
		slog.Bool("trust_cdn_headers", ipCfg.TrustCDNHeaders),
	)

	return httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log)).Run(ctx, router)
}
