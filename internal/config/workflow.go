package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/ytget/ytgrab/internal/download"
	"github.com/ytget/ytgrab/internal/platform"
	"github.com/ytget/ytgrab/internal/transcode"
)

// EnvPrefix prefixes every environment variable read by the CLI
const EnvPrefix = "YTGRAB_"

// Flag names shared by the video and audio commands
const (
	FlagDir            = "dir"
	FlagYes            = "yes"
	FlagFFmpeg         = "ffmpeg"
	FlagAudioFormat    = "audio-format"
	FlagConfirmTimeout = "confirm-timeout"
	FlagHTTPTimeout    = "http-timeout"
	FlagHTTPRetries    = "http-retries"
	FlagUserAgent      = "user-agent"
)

// Workflow holds the configuration of one headless download
type Workflow struct {
	Dir            string
	Yes            bool
	FFmpeg         string
	AudioFormat    string
	ConfirmTimeout time.Duration
	HTTPTimeout    time.Duration
	HTTPRetries    int
	UserAgent      string
}

// Flags returns CLI flags for workflow configuration
func (c *Workflow) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        FlagDir,
			Aliases:     []string{"d"},
			Usage:       "Destination directory (default: ~/Downloads)",
			Destination: &c.Dir,
			Sources:     cli.EnvVars(EnvPrefix + "DIR"),
		},
		&cli.BoolFlag{
			Name:        FlagYes,
			Aliases:     []string{"y"},
			Usage:       "Skip the confirmation prompt",
			Destination: &c.Yes,
			Sources:     cli.EnvVars(EnvPrefix + "YES"),
		},
		&cli.StringFlag{
			Name:        FlagFFmpeg,
			Usage:       "Path to the ffmpeg executable",
			Value:       transcode.FFmpegCommand,
			Destination: &c.FFmpeg,
			Sources:     cli.EnvVars(EnvPrefix + "FFMPEG"),
		},
		&cli.StringFlag{
			Name:        FlagAudioFormat,
			Usage:       "Audio format (" + strings.Join(transcode.SupportedFormats(), ", ") + ")",
			Value:       transcode.DefaultFormat,
			Destination: &c.AudioFormat,
			Sources:     cli.EnvVars(EnvPrefix + "AUDIO_FORMAT"),
		},
		&cli.DurationFlag{
			Name:        FlagConfirmTimeout,
			Usage:       "Treat an unanswered confirmation as declined after this long (0 waits forever)",
			Destination: &c.ConfirmTimeout,
			Sources:     cli.EnvVars(EnvPrefix + "CONFIRM_TIMEOUT"),
		},
	}
	return append(flags, c.HTTPFlags()...)
}

// HTTPFlags returns the flags of the YouTube source HTTP client
func (c *Workflow) HTTPFlags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        FlagHTTPTimeout,
			Usage:       "HTTP request timeout",
			Value:       download.DefaultHTTPTimeout,
			Destination: &c.HTTPTimeout,
			Sources:     cli.EnvVars(EnvPrefix + "HTTP_TIMEOUT"),
		},
		&cli.IntFlag{
			Name:        FlagHTTPRetries,
			Usage:       "HTTP retries per request",
			Value:       download.DefaultHTTPRetries,
			Destination: &c.HTTPRetries,
			Sources:     cli.EnvVars(EnvPrefix + "HTTP_RETRIES"),
		},
		&cli.StringFlag{
			Name:        FlagUserAgent,
			Usage:       "HTTP User-Agent header",
			Value:       download.DefaultUserAgent,
			Destination: &c.UserAgent,
			Sources:     cli.EnvVars(EnvPrefix + "USER_AGENT"),
		},
	}
}

// ApplyFile copies values from f for every flag that isSet reports as unset
// on the command line and in the environment.
func (c *Workflow) ApplyFile(f *File, isSet func(name string) bool) error {
	if f == nil {
		return nil
	}

	if f.Dir != "" && !isSet(FlagDir) {
		c.Dir = f.Dir
	}
	if f.FFmpeg != "" && !isSet(FlagFFmpeg) {
		c.FFmpeg = f.FFmpeg
	}
	if f.AudioFormat != "" && !isSet(FlagAudioFormat) {
		c.AudioFormat = f.AudioFormat
	}
	if f.ConfirmTimeout != "" && !isSet(FlagConfirmTimeout) {
		d, err := time.ParseDuration(f.ConfirmTimeout)
		if err != nil {
			return goerr.Wrap(err, "invalid confirm_timeout", goerr.V("value", f.ConfirmTimeout))
		}
		c.ConfirmTimeout = d
	}
	if f.HTTP.Timeout != "" && !isSet(FlagHTTPTimeout) {
		d, err := time.ParseDuration(f.HTTP.Timeout)
		if err != nil {
			return goerr.Wrap(err, "invalid http.timeout", goerr.V("value", f.HTTP.Timeout))
		}
		c.HTTPTimeout = d
	}
	if f.HTTP.Retries != nil && !isSet(FlagHTTPRetries) {
		c.HTTPRetries = *f.HTTP.Retries
	}
	if f.HTTP.UserAgent != "" && !isSet(FlagUserAgent) {
		c.UserAgent = f.HTTP.UserAgent
	}
	return nil
}

// Validate fills the default directory and checks value ranges
func (c *Workflow) Validate() error {
	c.AudioFormat = strings.ToLower(strings.TrimSpace(c.AudioFormat))
	if !transcode.IsSupportedFormat(c.AudioFormat) {
		return goerr.New("unsupported audio format", goerr.V("format", c.AudioFormat))
	}
	if c.ConfirmTimeout < 0 {
		return goerr.New("confirm timeout must not be negative", goerr.V("timeout", c.ConfirmTimeout))
	}
	if c.HTTPTimeout <= 0 {
		return goerr.New("HTTP timeout must be positive", goerr.V("timeout", c.HTTPTimeout))
	}
	if c.HTTPRetries < 0 {
		return goerr.New("HTTP retries must not be negative", goerr.V("retries", c.HTTPRetries))
	}

	if strings.TrimSpace(c.Dir) == "" {
		dir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			return goerr.Wrap(err, "failed to resolve default download directory")
		}
		c.Dir = dir
	}
	return nil
}

// SourceConfig returns the HTTP settings of the YouTube source
func (c *Workflow) SourceConfig() download.SourceConfig {
	return download.SourceConfig{
		Timeout:   c.HTTPTimeout,
		Retries:   c.HTTPRetries,
		UserAgent: c.UserAgent,
	}
}

// File is the optional TOML configuration file
type File struct {
	Dir            string   `toml:"dir"`
	FFmpeg         string   `toml:"ffmpeg"`
	AudioFormat    string   `toml:"audio_format"`
	ConfirmTimeout string   `toml:"confirm_timeout"`
	HTTP           FileHTTP `toml:"http"`
	Log            FileLog  `toml:"log"`
}

// FileHTTP is the [http] table of File
type FileHTTP struct {
	Timeout   string `toml:"timeout"`
	Retries   *int   `toml:"retries"`
	UserAgent string `toml:"user_agent"`
}

// FileLog is the [log] table of File
type FileLog struct {
	Level string `toml:"level"`
	JSON  *bool  `toml:"json"`
}

// LoadFile reads a TOML configuration file. An empty path yields nil.
func LoadFile(path string) (*File, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return &f, nil
}

// LoadDotEnv loads environment variables from the given .env files, or from
// ./.env when none are given. Missing files are ignored; variables already
// set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return goerr.Wrap(err, "failed to load env file", goerr.V("path", path))
		}
	}
	return nil
}
