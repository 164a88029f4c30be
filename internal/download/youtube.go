package download

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/m-mizutani/goerr/v2"
	"github.com/ytget/ytdlp/v2/client"
	"go.uber.org/zap"

	"github.com/ytget/ytgrab/internal/model"
)

// HTTP defaults for the YouTube source
const (
	DefaultHTTPTimeout = 30 * time.Second
	DefaultHTTPRetries = 2
	DefaultUserAgent   = "ytgrab/1.0"
)

// SourceConfig configures the HTTP client of YouTubeSource
type SourceConfig struct {
	Timeout   time.Duration
	Retries   int
	UserAgent string
}

// YouTubeSource implements Source on top of github.com/kkdai/youtube/v2.
// Resolved videos are cached by ID so Streams and Open reuse the player
// response of Resolve.
type YouTubeSource struct {
	client *youtube.Client
	logger *zap.Logger

	mu     sync.Mutex
	videos map[string]*youtube.Video
}

// NewYouTubeSource creates a source with a retrying HTTP client
func NewYouTubeSource(cfg SourceConfig, logger *zap.Logger) *YouTubeSource {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultHTTPTimeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = DefaultHTTPRetries
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := client.NewWith(client.Config{
		Timeout:   cfg.Timeout,
		Retries:   cfg.Retries,
		UserAgent: cfg.UserAgent,
	})

	return &YouTubeSource{
		client: &youtube.Client{HTTPClient: httpClient.HTTPClient},
		logger: logger,
		videos: make(map[string]*youtube.Video),
	}
}

// Resolve fetches the video behind url
func (s *YouTubeSource) Resolve(ctx context.Context, url string) (*model.Video, error) {
	video, err := s.client.GetVideoContext(ctx, url)
	if err != nil {
		if unavailable := classifyResolveError(err); unavailable != nil {
			s.logger.Debug("video unavailable",
				zap.String("url", url),
				zap.Stringer("reason", unavailable.Reason),
				zap.Error(err),
			)
			return nil, unavailable
		}
		return nil, goerr.Wrap(err, "failed to fetch video", goerr.V("url", url))
	}

	if video.HLSManifestURL != "" {
		return nil, NewUnavailable(ReasonLiveStream, nil)
	}

	s.store(video)
	return toModelVideo(video), nil
}

// Streams lists the formats of a resolved video. The video is fetched again
// when the cache has no entry for it.
func (s *YouTubeSource) Streams(ctx context.Context, video *model.Video) (model.StreamList, error) {
	ytVideo, err := s.lookup(ctx, video.ID)
	if err != nil {
		return nil, err
	}

	if len(ytVideo.Formats) == 0 {
		s.forget(video.ID)
		return nil, goerr.Wrap(ErrStreamingDataMissing, "no formats in player response", goerr.V("video_id", video.ID))
	}

	streams := make(model.StreamList, 0, len(ytVideo.Formats))
	for _, format := range ytVideo.Formats {
		streams = append(streams, toModelStream(format))
	}
	return streams, nil
}

// Open starts downloading one stream
func (s *YouTubeSource) Open(ctx context.Context, video *model.Video, stream model.Stream) (io.ReadCloser, error) {
	ytVideo, err := s.lookup(ctx, video.ID)
	if err != nil {
		return nil, err
	}

	var format *youtube.Format
	for i := range ytVideo.Formats {
		if ytVideo.Formats[i].ItagNo == stream.Itag {
			format = &ytVideo.Formats[i]
			break
		}
	}
	if format == nil {
		return nil, goerr.New("format not found", goerr.V("video_id", video.ID), goerr.V("itag", stream.Itag))
	}

	body, size, err := s.client.GetStreamContext(ctx, ytVideo, format)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open stream", goerr.V("video_id", video.ID), goerr.V("itag", stream.Itag))
	}
	s.logger.Debug("stream opened", zap.String("video_id", video.ID), zap.Int("itag", stream.Itag), zap.Int64("size", size))
	return body, nil
}

func (s *YouTubeSource) lookup(ctx context.Context, id string) (*youtube.Video, error) {
	s.mu.Lock()
	video, ok := s.videos[id]
	s.mu.Unlock()
	if ok {
		return video, nil
	}

	video, err := s.client.GetVideoContext(ctx, id)
	if err != nil {
		if unavailable := classifyResolveError(err); unavailable != nil {
			return nil, unavailable
		}
		return nil, goerr.Wrap(err, "failed to fetch video", goerr.V("video_id", id))
	}
	s.store(video)
	return video, nil
}

func (s *YouTubeSource) store(video *youtube.Video) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos[video.ID] = video
}

func (s *YouTubeSource) forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.videos, id)
}

func toModelVideo(video *youtube.Video) *model.Video {
	return &model.Video{
		ID:       video.ID,
		Title:    video.Title,
		Author:   video.Author,
		Duration: video.Duration,
		Live:     video.HLSManifestURL != "",
	}
}

func toModelStream(format youtube.Format) model.Stream {
	return model.Stream{
		Itag:          format.ItagNo,
		MimeType:      format.MimeType,
		Container:     model.ContainerFromMimeType(format.MimeType),
		Resolution:    format.QualityLabel,
		Height:        format.Height,
		FileSize:      format.ContentLength,
		AudioChannels: format.AudioChannels,
	}
}

// classifyResolveError maps the resolver's failures onto a Reason. It returns
// nil for errors that are not about the video itself, such as network errors.
func classifyResolveError(err error) *VideoUnavailableError {
	switch {
	case errors.Is(err, youtube.ErrLoginRequired):
		return NewUnavailable(ReasonAgeRestricted, err)
	case errors.Is(err, youtube.ErrVideoPrivate):
		return NewUnavailable(ReasonPrivate, err)
	case errors.Is(err, youtube.ErrInvalidCharactersInVideoID),
		errors.Is(err, youtube.ErrVideoIDMinLength):
		return NewUnavailable(ReasonMalformedURL, err)
	case errors.Is(err, youtube.ErrCipherNotFound),
		errors.Is(err, youtube.ErrSignatureTimestampNotFound):
		return NewUnavailable(ReasonExtractError, err)
	case errors.Is(err, youtube.ErrNotPlayableInEmbed):
		return NewUnavailable(ReasonUnavailable, err)
	}

	if status, ok := playabilityStatus(err); ok {
		return NewUnavailable(reasonFromPlayability(status.Status, status.Reason), err)
	}

	var statusCode youtube.ErrUnexpectedStatusCode
	if errors.As(err, &statusCode) {
		return NewUnavailable(ReasonUnavailable, err)
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return NewUnavailable(ReasonParseError, err)
	}
	return nil
}

func playabilityStatus(err error) (youtube.ErrPlayabiltyStatus, bool) {
	var ptr *youtube.ErrPlayabiltyStatus
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	var value youtube.ErrPlayabiltyStatus
	if errors.As(err, &value) {
		return value, true
	}
	return youtube.ErrPlayabiltyStatus{}, false
}

// reasonFromPlayability reads the status and free text reason of a
// playability error.
func reasonFromPlayability(status, reason string) Reason {
	status = strings.ToUpper(status)
	reason = strings.ToLower(reason)

	switch {
	case strings.HasPrefix(status, "LIVE_STREAM"):
		return ReasonLiveStream
	case strings.Contains(reason, "private"):
		return ReasonPrivate
	case strings.Contains(reason, "country"):
		return ReasonRegionBlocked
	case strings.Contains(reason, "member"):
		return ReasonMembersOnly
	case strings.Contains(reason, "your age"),
		strings.Contains(reason, "age-restricted"),
		strings.Contains(reason, "age restricted"):
		return ReasonAgeRestricted
	case strings.Contains(reason, "live"):
		return ReasonLiveStream
	default:
		return ReasonUnavailable
	}
}
