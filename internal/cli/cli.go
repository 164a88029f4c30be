package cli

import (
	"context"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/ytget/ytgrab/internal/config"
)

// Version is set during build via -ldflags "-X github.com/ytget/ytgrab/internal/cli.Version=X.Y.Z"
var Version = "dev"

const (
	AppName = "ytgrab"

	flagConfig = "config"
)

// env carries what the root command prepares for its subcommands
type env struct {
	logger *zap.Logger
	file   *config.File
}

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	var (
		loggerCfg  config.Logger
		configPath string
	)
	e := &env{logger: zap.NewNop()}

	flags := append(loggerCfg.Flags(), &cli.StringFlag{
		Name:        flagConfig,
		Aliases:     []string{"c"},
		Usage:       "Path to a TOML configuration file",
		Destination: &configPath,
		Sources:     cli.EnvVars(config.EnvPrefix + "CONFIG"),
	})

	app := &cli.Command{
		Name:           AppName,
		Usage:          "Download YouTube videos as mp4 or extract their audio",
		Version:        Version,
		Flags:          flags,
		DefaultCommand: "gui",
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			file, err := config.LoadFile(configPath)
			if err != nil {
				return nil, err
			}
			loggerCfg.ApplyFile(file, c.IsSet)

			logger, err := loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			e.logger = logger
			e.file = file
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			_ = e.logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			cmdGUI(e),
			cmdFetch(e, kindVideo),
			cmdFetch(e, kindAudio),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		e.logger.Error("CLI execution failed", zap.Error(err))
		return err
	}

	return nil
}
