package transcode

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/zap"

	"github.com/ytget/ytgrab/internal/platform"
)

// Audio formats
const (
	FormatMP3  = "mp3"
	FormatM4A  = "m4a"
	FormatOpus = "opus"
)

// DefaultFormat matches the file type the desktop button promises
const DefaultFormat = FormatMP3

// FFmpeg constants
const (
	FFmpegCommand = "ffmpeg"
	NoVideoFlag   = "-vn"
	OverwriteFlag = "-y"

	// MP3 uses VBR quality 2 (~190 kbit/s)
	MP3Codec   = "libmp3lame"
	MP3Quality = "2"

	M4ACodec   = "aac"
	M4ABitrate = "192k"

	OpusCodec   = "libopus"
	OpusBitrate = "128k"

	// stderrTailLimit bounds how much ffmpeg output ends up in error values
	stderrTailLimit = 512
)

// Service runs ffmpeg to extract audio
type Service struct {
	ffmpegPath string
	format     string
	logger     *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithFFmpegPath sets the ffmpeg executable; empty means "ffmpeg" from PATH
func WithFFmpegPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.ffmpegPath = path
		}
	}
}

// WithFormat sets the audio output format (mp3, m4a, opus)
func WithFormat(format string) Option {
	return func(s *Service) {
		if format != "" {
			s.format = strings.ToLower(format)
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new transcoding service
func NewService(opts ...Option) (*Service, error) {
	s := &Service{
		ffmpegPath: FFmpegCommand,
		format:     DefaultFormat,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if !IsSupportedFormat(s.format) {
		return nil, goerr.New("unsupported audio format", goerr.V("format", s.format))
	}
	return s, nil
}

// SupportedFormats lists the audio formats the service can produce
func SupportedFormats() []string {
	return []string{FormatMP3, FormatM4A, FormatOpus}
}

// IsSupportedFormat reports whether format is one of SupportedFormats
func IsSupportedFormat(format string) bool {
	for _, f := range SupportedFormats() {
		if f == format {
			return true
		}
	}
	return false
}

// Format returns the configured output format
func (s *Service) Format() string {
	return s.format
}

// Available checks if ffmpeg is executable
func (s *Service) Available() bool {
	_, err := exec.LookPath(s.ffmpegPath)
	return err == nil
}

// ToAudio extracts the audio track of videoPath into a file with the same
// base name and the configured extension. A partial output file is removed
// on failure.
func (s *Service) ToAudio(ctx context.Context, videoPath string) (string, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return "", goerr.Wrap(err, "input file does not exist", goerr.V("path", videoPath))
	}

	outputPath := generateOutputPath(videoPath, s.format)
	args := s.BuildFFmpegArgs(videoPath, outputPath)

	s.logger.Debug("starting ffmpeg",
		zap.String("ffmpeg", s.ffmpegPath),
		zap.Strings("args", args),
	)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(outputPath)
		return "", goerr.Wrap(err, "ffmpeg failed",
			goerr.V("input", videoPath),
			goerr.V("output", outputPath),
			goerr.V("stderr", tail(stderr.String(), stderrTailLimit)),
		)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return "", goerr.Wrap(err, "ffmpeg produced no output", goerr.V("output", outputPath))
	}
	if info.Size() == 0 {
		os.Remove(outputPath)
		return "", goerr.New("ffmpeg produced an empty file", goerr.V("output", outputPath))
	}

	s.logger.Info("audio extracted",
		zap.String("input", videoPath),
		zap.String("output", outputPath),
		zap.Int64("bytes", info.Size()),
	)
	return outputPath, nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func (s *Service) BuildFFmpegArgs(inputPath, outputPath string) []string {
	args := []string{
		OverwriteFlag,   // Overwrite output file
		"-i", inputPath, // Input file
		NoVideoFlag, // Drop video
	}

	switch s.format {
	case FormatM4A:
		args = append(args, "-c:a", M4ACodec, "-b:a", M4ABitrate)
	case FormatOpus:
		args = append(args, "-c:a", OpusCodec, "-b:a", OpusBitrate)
	default:
		args = append(args, "-acodec", MP3Codec, "-q:a", MP3Quality)
	}

	return append(args, outputPath)
}

// generateOutputPath generates the output path for the audio file
func generateOutputPath(inputPath, format string) string {
	return platform.ReplaceExt(inputPath, "."+format)
}

func tail(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return fmt.Sprintf("...%s", s[len(s)-limit:])
}
