package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"workdesk/internal/config"
	appLog "workdesk/internal/log"
)

const version = "0.1.0"

func main() {
	// .env is optional.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		appLog.Error("workdesk failed", err)
		appLog.Sync()
		os.Exit(1)
	}
	appLog.Sync()
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "workdesk",
		Usage:   "Serve and render the read-only calendar of the workdesk data store.",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "./config.yaml",
				Usage:   "path to config file",
				EnvVars: []string{"WORKDESK_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			renderCommand(),
			snapshotCommand(),
		},
	}
}

// loadConfig reads the config named by --config, applies environment
// overrides and sets the log level.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.ApplyEnv()
	cfg.Normalize()

	if lvl, ok := appLog.ParseLevel(cfg.LogLevel); ok {
		appLog.SetLevel(lvl)
	} else {
		appLog.Error("unknown log level; using info", nil, "log_level", cfg.LogLevel)
	}
	return cfg, nil
}
