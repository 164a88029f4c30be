package download

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching. Every typed error below matches exactly
// one of them.
var (
	ErrInvalidPath       = errors.New("invalid download path")
	ErrVideoUnavailable  = errors.New("video unavailable")
	ErrMetadataQuery     = errors.New("unable to query video data")
	ErrInsufficientSpace = errors.New("not enough free space")
	ErrDownloadCanceled  = errors.New("download canceled")
	ErrConversion        = errors.New("conversion failed")

	// ErrStreamingDataMissing is the transient failure of a stream query made
	// right after resolution. It is retried by the default RetryPolicy.
	ErrStreamingDataMissing = errors.New("streaming data missing")
)

// InvalidPathError reports a destination directory that does not exist
type InvalidPathError struct {
	Path  string
	Cause error
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("Invalid download path: %q", e.Path)
}

func (e *InvalidPathError) Unwrap() error { return e.Cause }

func (e *InvalidPathError) Is(target error) bool { return target == ErrInvalidPath }

// Reason is the kind of resolver failure behind a VideoUnavailableError
type Reason int

const (
	ReasonUnavailable Reason = iota
	ReasonAgeRestricted
	ReasonRegionBlocked
	ReasonMembersOnly
	ReasonPrivate
	ReasonLiveStream
	ReasonParseError
	ReasonExtractError
	ReasonMalformedURL
)

// String returns the identifier of the reason
func (r Reason) String() string {
	switch r {
	case ReasonAgeRestricted:
		return "age_restricted"
	case ReasonRegionBlocked:
		return "region_blocked"
	case ReasonMembersOnly:
		return "members_only"
	case ReasonPrivate:
		return "private"
	case ReasonLiveStream:
		return "live_stream"
	case ReasonParseError:
		return "parse_error"
	case ReasonExtractError:
		return "extract_error"
	case ReasonMalformedURL:
		return "malformed_url"
	default:
		return "unavailable"
	}
}

// Message returns the text shown to the user for the reason
func (r Reason) Message() string {
	switch r {
	case ReasonAgeRestricted:
		return "Video is age-restricted."
	case ReasonRegionBlocked:
		return "Video is region blocked."
	case ReasonMembersOnly:
		return "Video is set to members only."
	case ReasonPrivate:
		return "Unable to download, video is private."
	case ReasonLiveStream:
		return "Unable to download, video is a livestream."
	case ReasonParseError:
		return "Page's HTML had unexpected changes."
	case ReasonExtractError:
		return "Video extracting error, try again."
	case ReasonMalformedURL:
		return "Unable to validate URL."
	default:
		return "Unable to download, video is unavailable."
	}
}

// AllReasons lists every Reason value
func AllReasons() []Reason {
	return []Reason{
		ReasonUnavailable,
		ReasonAgeRestricted,
		ReasonRegionBlocked,
		ReasonMembersOnly,
		ReasonPrivate,
		ReasonLiveStream,
		ReasonParseError,
		ReasonExtractError,
		ReasonMalformedURL,
	}
}

// VideoUnavailableError collapses the resolver's failure taxonomy into one
// kind. The resolver error is kept as Cause.
type VideoUnavailableError struct {
	Reason Reason
	Cause  error
}

// NewUnavailable creates a VideoUnavailableError
func NewUnavailable(reason Reason, cause error) *VideoUnavailableError {
	return &VideoUnavailableError{Reason: reason, Cause: cause}
}

func (e *VideoUnavailableError) Error() string { return e.Reason.Message() }

func (e *VideoUnavailableError) Unwrap() error { return e.Cause }

func (e *VideoUnavailableError) Is(target error) bool { return target == ErrVideoUnavailable }

// MetadataQueryError reports a stream query that kept failing
type MetadataQueryError struct {
	Attempts int
	Cause    error
}

func (e *MetadataQueryError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("Unable to query specific video data (after %d attempts).", e.Attempts)
	}
	return "Unable to query specific video data."
}

func (e *MetadataQueryError) Unwrap() error { return e.Cause }

func (e *MetadataQueryError) Is(target error) bool { return target == ErrMetadataQuery }

// InsufficientSpaceError reports a destination without room for the stream
type InsufficientSpaceError struct {
	Required  int64
	Available uint64
}

func (e *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("Not enough memory available: need %d bytes, %d free.", e.Required, e.Available)
}

func (e *InsufficientSpaceError) Is(target error) bool { return target == ErrInsufficientSpace }

// DownloadCanceledError reports that the user declined the confirmation
type DownloadCanceledError struct {
	TimedOut bool
}

func (e *DownloadCanceledError) Error() string {
	if e.TimedOut {
		return "Download canceled: no answer to the confirmation."
	}
	return "Download canceled."
}

func (e *DownloadCanceledError) Is(target error) bool { return target == ErrDownloadCanceled }

// ConversionError reports a failed transcoding step
type ConversionError struct {
	Input string
	Cause error
}

func (e *ConversionError) Error() string {
	return "Something went wrong while converting to audio."
}

func (e *ConversionError) Unwrap() error { return e.Cause }

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// UserMessage returns the text a front end shows for err. Workflow errors
// render their own message; anything else is prefixed.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, sentinel := range []error{
		ErrInvalidPath, ErrVideoUnavailable, ErrMetadataQuery,
		ErrInsufficientSpace, ErrDownloadCanceled, ErrConversion,
	} {
		if errors.Is(err, sentinel) {
			return workflowMessage(err)
		}
	}
	return "Unexpected error: " + err.Error()
}

func workflowMessage(err error) string {
	var (
		pathErr        *InvalidPathError
		unavailableErr *VideoUnavailableError
		queryErr       *MetadataQueryError
		spaceErr       *InsufficientSpaceError
		canceledErr    *DownloadCanceledError
		conversionErr  *ConversionError
	)
	switch {
	case errors.As(err, &pathErr):
		return pathErr.Error()
	case errors.As(err, &unavailableErr):
		return unavailableErr.Error()
	case errors.As(err, &queryErr):
		return queryErr.Error()
	case errors.As(err, &spaceErr):
		return spaceErr.Error()
	case errors.As(err, &canceledErr):
		return canceledErr.Error()
	case errors.As(err, &conversionErr):
		return conversionErr.Error()
	}
	return err.Error()
}
