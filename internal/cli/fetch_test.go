package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/ytget/ytgrab/internal/download"
	"github.com/ytget/ytgrab/internal/model"
)

type stubPipeline struct {
	video, audio int
}

func (p *stubPipeline) DownloadVideo(context.Context, model.Request) (string, error) {
	p.video++
	return "/tmp/clip.mp4", nil
}

func (p *stubPipeline) DownloadAudio(context.Context, model.Request) (string, error) {
	p.audio++
	return "/tmp/clip.mp3", nil
}

func TestRunKind(t *testing.T) {
	p := &stubPipeline{}
	ctx := context.Background()

	path, err := runKind(ctx, p, kindVideo, model.Request{})
	gt.NoError(t, err)
	gt.Equal(t, path, "/tmp/clip.mp4")

	path, err = runKind(ctx, p, kindAudio, model.Request{})
	gt.NoError(t, err)
	gt.Equal(t, path, "/tmp/clip.mp3")

	_, err = runKind(ctx, p, model.Kind("gif"), model.Request{})
	gt.Error(t, err)

	gt.Equal(t, p.video, 1)
	gt.Equal(t, p.audio, 1)
}

func TestReportFailure(t *testing.T) {
	var out bytes.Buffer
	reportFailure(&out, kindAudio, download.NewUnavailable(download.ReasonPrivate, nil))

	gt.String(t, out.String()).Contains("Error downloading audio.")
	gt.String(t, out.String()).Contains(download.ReasonPrivate.Message())

	out.Reset()
	reportFailure(&out, kindVideo, errors.New("boom"))
	gt.String(t, out.String()).Contains("Error downloading video.")
	gt.String(t, out.String()).Contains("Unexpected error: boom")
}

func TestReportSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	gt.NoError(t, os.WriteFile(path, make([]byte, 2048), 0o644))

	var out bytes.Buffer
	reportSuccess(&out, path)

	gt.String(t, out.String()).Contains("Success!")
	gt.String(t, out.String()).Contains(path)
	gt.String(t, out.String()).Contains("2.0 KiB")
}
