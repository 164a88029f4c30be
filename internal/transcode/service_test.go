package transcode

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// writeFakeFFmpeg creates a shell script standing in for ffmpeg. The script
// writes "audio" to its last argument and exits with exitCode.
func writeFakeFFmpeg(t *testing.T, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake ffmpeg script requires a POSIX shell")
	}

	script := "#!/bin/sh\n" +
		"for last; do :; done\n" +
		"printf audio > \"$last\"\n" +
		"echo 'fake ffmpeg stderr' >&2\n" +
		"exit " + strconv.Itoa(exitCode) + "\n"

	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("Failed to write fake ffmpeg: %v", err)
	}
	return path
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Some Song.mp4")
	if err := os.WriteFile(path, []byte("video bytes"), 0o644); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}
	return path
}

func TestNewService(t *testing.T) {
	service, err := NewService()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if service.ffmpegPath != FFmpegCommand {
		t.Errorf("Expected ffmpeg path %q, got %q", FFmpegCommand, service.ffmpegPath)
	}
	if service.Format() != DefaultFormat {
		t.Errorf("Expected format %q, got %q", DefaultFormat, service.Format())
	}

	if _, err := NewService(WithFormat("flac")); err == nil {
		t.Error("Expected error for unsupported format")
	}

	service, err = NewService(WithFormat("M4A"), WithFFmpegPath("/opt/ffmpeg/bin/ffmpeg"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if service.Format() != FormatM4A || service.ffmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("Options not applied: format=%s ffmpeg=%s", service.Format(), service.ffmpegPath)
	}
}

func TestGenerateOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		format   string
		expected string
	}{
		{"/path/to/video.mp4", FormatMP3, "/path/to/video.mp3"},
		{"/path/to/video.mkv", FormatM4A, "/path/to/video.m4a"},
		{"video.mp4", FormatOpus, "video.opus"},
		{"/no/ext/file", FormatMP3, "/no/ext/file.mp3"},
	}

	for _, test := range tests {
		result := generateOutputPath(test.input, test.format)
		if result != test.expected {
			t.Errorf("generateOutputPath(%s, %s) = %s, expected %s", test.input, test.format, result, test.expected)
		}
	}
}

func TestBuildFFmpegArgs(t *testing.T) {
	tests := []struct {
		format   string
		expected []string
	}{
		{FormatMP3, []string{"-y", "-i", "/in.mp4", "-vn", "-acodec", MP3Codec, "-q:a", MP3Quality, "/out.mp3"}},
		{FormatM4A, []string{"-y", "-i", "/in.mp4", "-vn", "-c:a", M4ACodec, "-b:a", M4ABitrate, "/out.mp3"}},
		{FormatOpus, []string{"-y", "-i", "/in.mp4", "-vn", "-c:a", OpusCodec, "-b:a", OpusBitrate, "/out.mp3"}},
	}

	for _, test := range tests {
		service, err := NewService(WithFormat(test.format))
		if err != nil {
			t.Fatalf("NewService(%s): %v", test.format, err)
		}
		args := service.BuildFFmpegArgs("/in.mp4", "/out.mp3")

		if len(args) != len(test.expected) {
			t.Fatalf("[%s] Expected %d args, got %d: %v", test.format, len(test.expected), len(args), args)
		}
		for i, expected := range test.expected {
			if args[i] != expected {
				t.Errorf("[%s] Arg %d: expected %s, got %s", test.format, i, expected, args[i])
			}
		}
	}
}

func TestToAudio_NonExistentFile(t *testing.T) {
	service, _ := NewService()

	_, err := service.ToAudio(context.Background(), "/path/to/nonexistent/file.mp4")
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}

	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestToAudio_Success(t *testing.T) {
	service, _ := NewService(WithFFmpegPath(writeFakeFFmpeg(t, 0)))
	input := writeInput(t)

	output, err := service.ToAudio(context.Background(), input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if output != strings.TrimSuffix(input, ".mp4")+".mp3" {
		t.Errorf("Unexpected output path: %s", output)
	}
	if data, err := os.ReadFile(output); err != nil || string(data) != "audio" {
		t.Errorf("Expected output file with fake audio, got %q (err=%v)", data, err)
	}
	if _, err := os.Stat(input); err != nil {
		t.Errorf("Input file should be left in place: %v", err)
	}
}

func TestToAudio_FailureRemovesPartialOutput(t *testing.T) {
	service, _ := NewService(WithFFmpegPath(writeFakeFFmpeg(t, 1)))
	input := writeInput(t)

	_, err := service.ToAudio(context.Background(), input)
	if err == nil {
		t.Fatal("Expected error from failing ffmpeg")
	}

	if _, statErr := os.Stat(generateOutputPath(input, FormatMP3)); !os.IsNotExist(statErr) {
		t.Errorf("Partial output should be removed, stat err: %v", statErr)
	}
}

func TestToAudio_MissingExecutable(t *testing.T) {
	service, _ := NewService(WithFFmpegPath(filepath.Join(t.TempDir(), "no-ffmpeg")))
	if service.Available() {
		t.Error("Available() should be false for a missing executable")
	}

	if _, err := service.ToAudio(context.Background(), writeInput(t)); err == nil {
		t.Error("Expected error for missing ffmpeg executable")
	}
}
