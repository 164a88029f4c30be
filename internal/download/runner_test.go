package download

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/ytget/ytgrab/internal/model"
)

// blockingPipeline holds each call until release is closed
type blockingPipeline struct {
	release chan struct{}
	calls   atomic.Int32
	err     error
}

func (p *blockingPipeline) DownloadVideo(ctx context.Context, req model.Request) (string, error) {
	return p.run(ctx, "/tmp/video.mp4")
}

func (p *blockingPipeline) DownloadAudio(ctx context.Context, req model.Request) (string, error) {
	return p.run(ctx, "/tmp/video.mp3")
}

func (p *blockingPipeline) run(ctx context.Context, path string) (string, error) {
	p.calls.Add(1)
	if observer := observerFromContext(ctx); observer != nil {
		observer(model.StateDownloading)
	}
	<-p.release
	if p.err != nil {
		return "", p.err
	}
	return path, nil
}

func waitDone(t *testing.T, done <-chan model.Run) model.Run {
	t.Helper()
	select {
	case run := <-done:
		return run
	case <-time.After(5 * time.Second):
		t.Fatal("run did not finish")
		return model.Run{}
	}
}

func TestRunner_RejectsWhileBusy(t *testing.T) {
	pipeline := &blockingPipeline{release: make(chan struct{})}
	runner := NewRunner(pipeline, nil)

	done := make(chan model.Run, 2)
	runner.SetDoneCallback(func(run model.Run) { done <- run })

	req := model.NewRequest(testURL, "/tmp")
	first, ok := runner.Start(context.Background(), model.KindVideo, req)
	gt.True(t, ok)
	gt.True(t, strings.HasPrefix(first.ID, RunIDPrefix))
	gt.True(t, runner.Busy())

	_, ok = runner.Start(context.Background(), model.KindAudio, req)
	gt.True(t, !ok)
	_, ok = runner.Start(context.Background(), model.KindVideo, req)
	gt.True(t, !ok)

	close(pipeline.release)
	run := waitDone(t, done)

	gt.Equal(t, run.ID, first.ID)
	gt.Equal(t, run.State, model.StateDone)
	gt.Equal(t, run.Outcome.Path, "/tmp/video.mp4")
	gt.True(t, !run.FinishedAt.IsZero())
	gt.Equal(t, pipeline.calls.Load(), int32(1))
	gt.True(t, !runner.Busy())
}

func TestRunner_ClearsBusyOnFailure(t *testing.T) {
	pipeline := &blockingPipeline{release: make(chan struct{}), err: &DownloadCanceledError{}}
	close(pipeline.release)
	runner := NewRunner(pipeline, nil)

	done := make(chan model.Run, 2)
	runner.SetDoneCallback(func(run model.Run) {
		gt.True(t, !runner.Busy())
		done <- run
	})

	_, ok := runner.Start(context.Background(), model.KindAudio, model.NewRequest(testURL, "/tmp"))
	gt.True(t, ok)
	run := waitDone(t, done)

	gt.Equal(t, run.State, model.StateFailed)
	gt.True(t, errors.Is(run.Outcome.Err, ErrDownloadCanceled))

	// A new run is accepted once the previous one finished
	second, ok := runner.Start(context.Background(), model.KindVideo, model.NewRequest(testURL, "/tmp"))
	gt.True(t, ok)
	gt.True(t, second.ID != run.ID)
	waitDone(t, done)
}

func TestRunner_ReportsStateUpdates(t *testing.T) {
	pipeline := &blockingPipeline{release: make(chan struct{})}
	runner := NewRunner(pipeline, nil)

	updates := make(chan model.Run, 4)
	runner.SetUpdateCallback(func(run model.Run) { updates <- run })
	done := make(chan model.Run, 1)
	runner.SetDoneCallback(func(run model.Run) { done <- run })

	_, ok := runner.Start(context.Background(), model.KindVideo, model.NewRequest(testURL, "/tmp"))
	gt.True(t, ok)

	select {
	case run := <-updates:
		gt.Equal(t, run.State, model.StateDownloading)
	case <-time.After(5 * time.Second):
		t.Fatal("no state update")
	}

	current, ok := runner.Current()
	gt.True(t, ok)
	gt.Equal(t, current.State, model.StateDownloading)

	close(pipeline.release)
	waitDone(t, done)
}

func TestGenerateRunID(t *testing.T) {
	a := generateRunID()
	b := generateRunID()
	gt.True(t, strings.HasPrefix(a, RunIDPrefix))
	gt.True(t, a != b)
}
