package download

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/zap"

	"github.com/ytget/ytgrab/internal/model"
)

// RunIDPrefix prefixes every run ID
const RunIDPrefix = "run-"

// Runner starts workflow invocations in the background and rejects new ones
// while one is in flight.
type Runner struct {
	pipeline Pipeline
	logger   *zap.Logger

	busy atomic.Bool

	mu       sync.Mutex
	current  *model.Run
	onUpdate func(model.Run) // callback for UI updates
	onDone   func(model.Run)
}

// NewRunner creates a runner over pipeline
func NewRunner(pipeline Pipeline, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		pipeline: pipeline,
		logger:   logger,
	}
}

// SetUpdateCallback sets the callback fired on every state transition of a run
func (r *Runner) SetUpdateCallback(callback func(model.Run)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onUpdate = callback
}

// SetDoneCallback sets the callback fired once a run has finished and the
// busy flag is cleared
func (r *Runner) SetDoneCallback(callback func(model.Run)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onDone = callback
}

// Busy reports whether a run is in flight
func (r *Runner) Busy() bool {
	return r.busy.Load()
}

// Current returns a copy of the most recent run
func (r *Runner) Current() (model.Run, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return model.Run{}, false
	}
	return *r.current, true
}

// Start begins a run of the given kind. It returns false without doing
// anything when another run is in flight.
func (r *Runner) Start(ctx context.Context, kind model.Kind, req model.Request) (model.Run, bool) {
	if !r.busy.CompareAndSwap(false, true) {
		r.logger.Debug("run rejected, busy", zap.String("url", req.URL), zap.String("kind", string(kind)))
		return model.Run{}, false
	}

	run := &model.Run{
		ID:        generateRunID(),
		Kind:      kind,
		Request:   req,
		State:     model.StateIdle,
		StartedAt: time.Now(),
	}

	r.mu.Lock()
	r.current = run
	snapshot := *run
	r.mu.Unlock()

	r.logger.Info("run started",
		zap.String("run_id", run.ID),
		zap.String("kind", string(kind)),
		zap.String("url", req.URL),
	)

	go r.execute(ctx, run)
	return snapshot, true
}

func (r *Runner) execute(ctx context.Context, run *model.Run) {
	var outcome model.Outcome

	defer func() {
		r.mu.Lock()
		run.Outcome = outcome
		run.FinishedAt = time.Now()
		if run.State != model.StateDone && run.State != model.StateFailed {
			if outcome.Err != nil {
				run.State = model.StateFailed
			} else {
				run.State = model.StateDone
			}
		}
		snapshot := *run
		onDone := r.onDone
		r.mu.Unlock()

		r.busy.Store(false)

		r.logger.Info("run finished",
			zap.String("run_id", snapshot.ID),
			zap.Stringer("state", snapshot.State),
			zap.String("elapsed", snapshot.GetElapsedString()),
			zap.Error(outcome.Err),
		)
		if onDone != nil {
			onDone(snapshot)
		}
	}()

	ctx = ContextWithObserver(ctx, func(state model.State) {
		r.mu.Lock()
		run.State = state
		snapshot := *run
		onUpdate := r.onUpdate
		r.mu.Unlock()

		if onUpdate != nil {
			onUpdate(snapshot)
		}
	})

	switch run.Kind {
	case model.KindAudio:
		outcome.Path, outcome.Err = r.pipeline.DownloadAudio(ctx, run.Request)
	case model.KindVideo:
		outcome.Path, outcome.Err = r.pipeline.DownloadVideo(ctx, run.Request)
	default:
		outcome.Err = goerr.New("unknown run kind", goerr.V("kind", run.Kind))
	}
}

// generateRunID generates a time ordered run ID
func generateRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(RunIDPrefix+"%d", time.Now().UnixNano())
	}
	return RunIDPrefix + id.String()
}
