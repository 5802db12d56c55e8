package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/appdeploykit/compat-framework/config"
	"github.com/appdeploykit/compat-framework/internal/cli"
	"github.com/appdeploykit/compat-framework/pkg/logger"
)

func main() {
	cfg, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "compatctl: loading configuration: %v\n", err)
		os.Exit(1)
	}

	lggr, err := newLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compatctl: initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = lggr.Sync() }()

	app := cli.New(lggr)
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "compatctl: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string) (logger.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		var err error
		lvl, err = zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
	}

	return logger.NewWith(func(cfg *zap.Config) {
		cfg.Level.SetLevel(lvl)
		cfg.Development = true
		cfg.DisableStacktrace = true
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	})
}
