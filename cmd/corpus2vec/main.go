package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"corpus2vec/internal/config"
)

const logLevelEnv = "CORPUS2VEC_LOG_LEVEL"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "corpus2vec",
		Usage: "train content-word embeddings per corpus and explore them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to YAML config (default ./corpus2vec.yaml or ~/.config/corpus2vec/config.yaml)",
			},
		},
		Commands: []*cli.Command{
			trainCommand(),
			similarCommand(),
			exploreCommand(),
		},
	}
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "corpus2vec: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	path := c.String("config")
	if path == "" {
		cfg, _, err := config.LoadDefault()
		return cfg, err
	}
	return config.Load(path)
}

// newLogger writes to stderr at the configured level; the environment wins
// over the config file.
func newLogger(cfg *config.AppConfig) (*logrus.Logger, error) {
	level := cfg.LogLevel
	if env := os.Getenv(logLevelEnv); env != "" {
		level = env
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level")
	}
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l, nil
}
