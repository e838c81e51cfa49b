package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap/zapcore"

	"github.com/stationone-hq/stationone-menu/internal/cli"
	"github.com/stationone-hq/stationone-menu/internal/config"
	"github.com/stationone-hq/stationone-menu/internal/logger"
	"github.com/stationone-hq/stationone-menu/pkg/menuapi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Run(ctx, os.Args[1:], newClient, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// newClient resolves the deployment from config and builds its client.
// Request logs go to stderr so that stdout stays parseable.
func newClient(deployment string) (menuapi.API, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if deployment != "" {
		cfg.Deployment = deployment
	}

	_, clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.ParseLevel(cfg.LogLevel), zapcore.Lock(os.Stderr))
	client, err := menuapi.New(clientCfg, nil, log)
	if err != nil {
		return nil, err
	}
	return client, nil
}
