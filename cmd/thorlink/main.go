package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vireolabs/thorlink"
	"github.com/vireolabs/thorlink/internal/handlers/cli"
	"github.com/vireolabs/thorlink/internal/pkg/logger"
	"github.com/vireolabs/thorlink/internal/pkg/telemetry"
	"github.com/vireolabs/thorlink/internal/pkg/transport/httpclient"
	"github.com/vireolabs/thorlink/internal/pkg/validator"
	"github.com/vireolabs/thorlink/thorest"

	"github.com/kelseyhightower/envconfig"
)

// config is the CLI's environment configuration.
type config struct {
	NodeURL         string        `envconfig:"NODE_URL" validate:"required,url"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	TelemetryEnable bool          `envconfig:"TELEMETRY_ENABLE" default:"false"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Default logger first so configuration failures are visible; re-run
	// below once the configured level is known.
	_ = logger.Init()

	var cfg config
	if err := envconfig.Process("thorlink", &cfg); err != nil {
		logFatal(ctx, "failed to load configuration", err)
	}
	if err := validator.Validate(cfg); err != nil {
		logFatal(ctx, "invalid configuration", err)
	}

	if cfg.TelemetryEnable {
		shutdown, err := telemetry.Init(ctx, "thorlink")
		if err != nil {
			logFatal(ctx, "failed to initialize telemetry", err)
		}
		defer shutdown(context.Background())
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		logFatal(ctx, "failed to initialize logger", err)
	}
	defer logger.Sync()

	node, err := thorest.New(cfg.NodeURL,
		thorest.WithHTTPClient(httpclient.New(httpclient.WithTimeout(cfg.RequestTimeout))),
	)
	if err != nil {
		logFatal(ctx, "failed to build node client", err)
	}

	client := thorlink.New(node)
	defer client.Close()

	if err := cli.Run(ctx, client); err != nil {
		logFatal(ctx, "command failed", err)
	}
}

func logFatal(ctx context.Context, msg string, err error) {
	logger.Error(ctx, msg, "error", err)
	os.Exit(1)
}
