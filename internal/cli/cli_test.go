package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestRun_MissingURL(t *testing.T) {
	err := Run(context.Background(), []string{AppName, "video", "--dir", t.TempDir()})
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("URL argument is required")
}

func TestRun_InvalidLogLevel(t *testing.T) {
	err := Run(context.Background(), []string{AppName, "--log-level", "loud", "video", "https://youtu.be/x"})
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("invalid log level")
}

func TestRun_MissingConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	err := Run(context.Background(), []string{AppName, "--config", path, "video", "https://youtu.be/x"})
	gt.Error(t, err)
}

func TestRun_UnsupportedAudioFormat(t *testing.T) {
	err := Run(context.Background(), []string{AppName, "audio", "--audio-format", "flac", "https://youtu.be/x"})
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("unsupported audio format")
}
