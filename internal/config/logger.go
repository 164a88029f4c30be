package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Flag names for logger configuration
const (
	FlagLogLevel = "log-level"
	FlagLogJSON  = "log-json"
)

// Logger holds logger configuration
type Logger struct {
	Level string
	JSON  bool
}

// Flags returns CLI flags for logger configuration
func (c *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        FlagLogLevel,
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &c.Level,
			Sources:     cli.EnvVars(EnvPrefix + "LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:        FlagLogJSON,
			Usage:       "Output logs in JSON format",
			Value:       false,
			Destination: &c.JSON,
			Sources:     cli.EnvVars(EnvPrefix + "LOG_JSON"),
		},
	}
}

// ApplyFile copies the [log] table of f for flags that were not set
func (c *Logger) ApplyFile(f *File, isSet func(name string) bool) {
	if f == nil {
		return
	}
	if f.Log.Level != "" && !isSet(FlagLogLevel) {
		c.Level = f.Log.Level
	}
	if f.Log.JSON != nil && !isSet(FlagLogJSON) {
		c.JSON = *f.Log.JSON
	}
}

// Configure builds a zap logger writing to stderr. The console encoder is
// used unless JSON is set.
func (c *Logger) Configure() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid log level", goerr.V("level", c.Level))
	}

	var cfg zap.Config
	if c.JSON {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build logger")
	}
	return logger, nil
}
