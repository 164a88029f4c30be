package download

import (
	"context"
	"io"

	"github.com/ytget/ytgrab/internal/model"
)

// Source resolves URLs and opens media streams.
type Source interface {
	// Resolve fetches video metadata. Known resolver failures are returned
	// as *VideoUnavailableError.
	Resolve(ctx context.Context, url string) (*model.Video, error)

	// Streams lists the encodings of a resolved video. An empty listing is
	// reported as ErrStreamingDataMissing.
	Streams(ctx context.Context, video *model.Video) (model.StreamList, error)

	// Open starts the transfer of one stream.
	Open(ctx context.Context, video *model.Video, stream model.Stream) (io.ReadCloser, error)
}

// Confirmer asks the user whether a download should proceed.
type Confirmer interface {
	Confirm(ctx context.Context, prompt model.Prompt) (bool, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface
type ConfirmerFunc func(ctx context.Context, prompt model.Prompt) (bool, error)

// Confirm calls f
func (f ConfirmerFunc) Confirm(ctx context.Context, prompt model.Prompt) (bool, error) {
	return f(ctx, prompt)
}

// SpaceChecker reports the free bytes of the filesystem holding dir
type SpaceChecker func(dir string) (uint64, error)

// Pipeline is the part of Workflow that Runner drives
type Pipeline interface {
	DownloadVideo(ctx context.Context, req model.Request) (string, error)
	DownloadAudio(ctx context.Context, req model.Request) (string, error)
}
