package download

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/zap"

	"github.com/ytget/ytgrab/internal/model"
	"github.com/ytget/ytgrab/internal/platform"
	"github.com/ytget/ytgrab/internal/transcode"
)

// PartialSuffix marks a file that is still being written
const PartialSuffix = ".part"

// Workflow runs one download-and-convert invocation at a time. It keeps no
// state between invocations.
type Workflow struct {
	source         Source
	transcoder     transcode.Transcoder
	confirmer      Confirmer
	freeSpace      SpaceChecker
	retry          RetryPolicy
	confirmTimeout time.Duration
	observer       func(model.State)
	logger         *zap.Logger
}

// Option configures a Workflow
type Option func(*Workflow)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(w *Workflow) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithRetryPolicy replaces the stream query retry policy
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(w *Workflow) {
		w.retry = policy
	}
}

// WithSpaceChecker replaces the free space probe
func WithSpaceChecker(checker SpaceChecker) Option {
	return func(w *Workflow) {
		if checker != nil {
			w.freeSpace = checker
		}
	}
}

// WithConfirmTimeout bounds the wait for the user's answer. An unanswered
// prompt counts as a decline. Zero waits forever.
func WithConfirmTimeout(d time.Duration) Option {
	return func(w *Workflow) {
		w.confirmTimeout = d
	}
}

// WithStateObserver registers a callback for every state transition
func WithStateObserver(observer func(model.State)) Option {
	return func(w *Workflow) {
		w.observer = observer
	}
}

// NewWorkflow creates a workflow. transcoder may be nil when only video
// downloads are needed.
func NewWorkflow(source Source, transcoder transcode.Transcoder, confirmer Confirmer, opts ...Option) *Workflow {
	w := &Workflow{
		source:     source,
		transcoder: transcoder,
		confirmer:  confirmer,
		freeSpace:  platform.FreeBytes,
		retry:      DefaultRetryPolicy(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// FetchAndConfirm validates the destination, resolves the URL, selects the
// highest resolution progressive mp4 stream and asks the user to confirm it.
// Nothing is written to disk.
func (w *Workflow) FetchAndConfirm(ctx context.Context, req model.Request) (*model.StreamDescriptor, error) {
	w.report(ctx, model.StateValidating)
	if err := platform.ValidateDirectory(req.DestDir); err != nil {
		return nil, &InvalidPathError{Path: req.DestDir, Cause: err}
	}

	w.report(ctx, model.StateResolving)
	video, err := w.source.Resolve(ctx, req.URL)
	if err != nil {
		if errors.Is(err, ErrVideoUnavailable) {
			return nil, err
		}
		return nil, goerr.Wrap(err, "failed to resolve video", goerr.V("url", req.URL))
	}
	if video.Live {
		return nil, NewUnavailable(ReasonLiveStream, nil)
	}

	var streams model.StreamList
	attempts, err := w.retry.Do(ctx, w.logger, func() error {
		var queryErr error
		streams, queryErr = w.source.Streams(ctx, video)
		return queryErr
	})
	if err != nil {
		if w.retry.retryable(err) {
			return nil, &MetadataQueryError{Attempts: attempts, Cause: err}
		}
		return nil, goerr.Wrap(err, "failed to query streams", goerr.V("video_id", video.ID))
	}

	stream, ok := streams.Progressive().Container(model.ContainerMP4).HighestResolution()
	if !ok {
		return nil, &MetadataQueryError{
			Attempts: attempts,
			Cause:    goerr.New("no progressive mp4 stream", goerr.V("video_id", video.ID), goerr.V("streams", len(streams))),
		}
	}

	desc := &model.StreamDescriptor{Video: *video, Stream: stream}
	w.logger.Info("stream selected",
		zap.String("video_id", video.ID),
		zap.String("title", video.Title),
		zap.Int("itag", stream.Itag),
		zap.String("resolution", stream.Resolution),
		zap.String("size", humanize.IBytes(uint64(stream.FileSize))),
	)

	accepted, timedOut, err := w.confirm(ctx, desc, req.DestDir)
	if err != nil {
		return nil, err
	}
	if !accepted {
		return nil, &DownloadCanceledError{TimedOut: timedOut}
	}
	return desc, nil
}

// Confirm shows the title, size and free space at destDir to the user and
// blocks until they answer.
func (w *Workflow) Confirm(ctx context.Context, desc *model.StreamDescriptor, destDir string) (bool, error) {
	accepted, _, err := w.confirm(ctx, desc, destDir)
	return accepted, err
}

func (w *Workflow) confirm(ctx context.Context, desc *model.StreamDescriptor, destDir string) (accepted, timedOut bool, err error) {
	w.report(ctx, model.StateAwaitingConfirmation)

	free, err := w.freeSpace(destDir)
	if err != nil {
		return false, false, goerr.Wrap(err, "failed to read free space", goerr.V("dir", destDir))
	}
	prompt := model.NewPrompt(desc, free)

	confirmCtx := ctx
	if w.confirmTimeout > 0 {
		var cancel context.CancelFunc
		confirmCtx, cancel = context.WithTimeout(ctx, w.confirmTimeout)
		defer cancel()
	}

	accepted, err = w.confirmer.Confirm(confirmCtx, prompt)
	if err != nil {
		if ctx.Err() == nil && errors.Is(confirmCtx.Err(), context.DeadlineExceeded) {
			w.logger.Info("confirmation timed out", zap.Duration("timeout", w.confirmTimeout))
			return false, true, nil
		}
		return false, false, goerr.Wrap(err, "confirmation failed")
	}

	w.logger.Debug("confirmation answered", zap.Bool("accepted", accepted))
	return accepted, false, nil
}

// DownloadVideo runs the workflow and stores the selected stream as
// <dest>/<title>.mp4, returning its path.
func (w *Workflow) DownloadVideo(ctx context.Context, req model.Request) (string, error) {
	path, err := w.downloadVideo(ctx, req)
	return w.finish(ctx, req, path, err)
}

// DownloadAudio runs DownloadVideo and transcodes the result. The
// intermediate video file is removed whether transcoding succeeds or not.
func (w *Workflow) DownloadAudio(ctx context.Context, req model.Request) (string, error) {
	if w.transcoder == nil {
		return w.finish(ctx, req, "", goerr.New("audio downloads need a transcoder"))
	}

	videoPath, err := w.downloadVideo(ctx, req)
	if err != nil {
		return w.finish(ctx, req, "", err)
	}

	w.report(ctx, model.StateConverting)
	audioPath, err := w.transcoder.ToAudio(ctx, videoPath)
	if removeErr := os.Remove(videoPath); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
		w.logger.Warn("failed to remove intermediate video", zap.String("path", videoPath), zap.Error(removeErr))
	}
	if err != nil {
		return w.finish(ctx, req, "", &ConversionError{Input: videoPath, Cause: err})
	}
	return w.finish(ctx, req, audioPath, nil)
}

func (w *Workflow) downloadVideo(ctx context.Context, req model.Request) (string, error) {
	desc, err := w.FetchAndConfirm(ctx, req)
	if err != nil {
		return "", err
	}

	free, err := w.freeSpace(req.DestDir)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read free space", goerr.V("dir", req.DestDir))
	}
	if size := desc.FileSize(); size > 0 && free < uint64(size) {
		return "", &InsufficientSpaceError{Required: size, Available: free}
	}

	w.report(ctx, model.StateDownloading)
	name := platform.SanitizeFileName(desc.Title(), desc.Video.ID) + "." + model.ContainerMP4
	path := filepath.Join(req.DestDir, name)
	if err := w.transfer(ctx, desc, path); err != nil {
		return "", err
	}
	return path, nil
}

// transfer writes the stream to path+PartialSuffix and renames it into place.
// The partial file never outlives a failure.
func (w *Workflow) transfer(ctx context.Context, desc *model.StreamDescriptor, path string) error {
	partial := path + PartialSuffix

	body, err := w.source.Open(ctx, &desc.Video, desc.Stream)
	if err != nil {
		return goerr.Wrap(err, "failed to open stream", goerr.V("itag", desc.Stream.Itag))
	}
	defer body.Close()

	file, err := os.Create(partial)
	if err != nil {
		return goerr.Wrap(err, "failed to create file", goerr.V("path", partial))
	}

	written, copyErr := io.Copy(file, body)
	closeErr := file.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		os.Remove(partial)
		return goerr.Wrap(err, "failed to write stream", goerr.V("path", partial), goerr.V("written", written))
	}

	if err := os.Rename(partial, path); err != nil {
		os.Remove(partial)
		return goerr.Wrap(err, "failed to move file into place", goerr.V("path", path))
	}

	w.logger.Info("video saved", zap.String("path", path), zap.String("size", humanize.IBytes(uint64(written))))
	return nil
}

func (w *Workflow) finish(ctx context.Context, req model.Request, path string, err error) (string, error) {
	if err != nil {
		w.report(ctx, model.StateFailed)
		w.logger.Warn("workflow failed", zap.String("url", req.URL), zap.Error(err))
		return "", err
	}
	w.report(ctx, model.StateDone)
	w.logger.Info("workflow done", zap.String("url", req.URL), zap.String("path", path))
	return path, nil
}

func (w *Workflow) report(ctx context.Context, state model.State) {
	w.logger.Debug("state", zap.Stringer("state", state))
	if w.observer != nil {
		w.observer(state)
	}
	if observer := observerFromContext(ctx); observer != nil {
		observer(state)
	}
}

type observerKey struct{}

// ContextWithObserver returns a context whose workflow state transitions are
// also reported to observer.
func ContextWithObserver(ctx context.Context, observer func(model.State)) context.Context {
	return context.WithValue(ctx, observerKey{}, observer)
}

func observerFromContext(ctx context.Context) func(model.State) {
	observer, _ := ctx.Value(observerKey{}).(func(model.State))
	return observer
}
