package download

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/kkdai/youtube/v2"
	"github.com/m-mizutani/gt"

	"github.com/ytget/ytgrab/internal/model"
)

func TestClassifyResolveError(t *testing.T) {
	var syntaxErr error = &json.SyntaxError{Offset: 3}

	tests := []struct {
		name     string
		err      error
		expected Reason
	}{
		{"login required", youtube.ErrLoginRequired, ReasonAgeRestricted},
		{"private", youtube.ErrVideoPrivate, ReasonPrivate},
		{"invalid characters", youtube.ErrInvalidCharactersInVideoID, ReasonMalformedURL},
		{"short id", youtube.ErrVideoIDMinLength, ReasonMalformedURL},
		{"cipher", youtube.ErrCipherNotFound, ReasonExtractError},
		{"signature timestamp", youtube.ErrSignatureTimestampNotFound, ReasonExtractError},
		{"not embeddable", youtube.ErrNotPlayableInEmbed, ReasonUnavailable},
		{"status code", youtube.ErrUnexpectedStatusCode(410), ReasonUnavailable},
		{"json syntax", syntaxErr, ReasonParseError},
		{"wrapped", fmt.Errorf("get video: %w", youtube.ErrVideoPrivate), ReasonPrivate},
		{
			"region",
			&youtube.ErrPlayabiltyStatus{Status: "UNPLAYABLE", Reason: "The uploader has not made this video available in your country"},
			ReasonRegionBlocked,
		},
		{
			"members",
			&youtube.ErrPlayabiltyStatus{Status: "UNPLAYABLE", Reason: "Join this channel to get access to members-only content"},
			ReasonMembersOnly,
		},
		{
			"age",
			&youtube.ErrPlayabiltyStatus{Status: "LOGIN_REQUIRED", Reason: "Sign in to confirm your age"},
			ReasonAgeRestricted,
		},
		{
			"private status",
			&youtube.ErrPlayabiltyStatus{Status: "LOGIN_REQUIRED", Reason: "This video is private"},
			ReasonPrivate,
		},
		{
			"live",
			&youtube.ErrPlayabiltyStatus{Status: "LIVE_STREAM_OFFLINE", Reason: "This live event will begin in 3 hours"},
			ReasonLiveStream,
		},
		{
			"generic",
			&youtube.ErrPlayabiltyStatus{Status: "ERROR", Reason: "Video unavailable"},
			ReasonUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unavailable := classifyResolveError(tt.err)
			gt.V(t, unavailable).NotNil()
			gt.Equal(t, unavailable.Reason, tt.expected)
			gt.True(t, errors.Is(unavailable, ErrVideoUnavailable))
			gt.True(t, errors.Is(unavailable, tt.err))
		})
	}
}

func TestClassifyResolveError_Unknown(t *testing.T) {
	gt.V(t, classifyResolveError(errors.New("dial tcp: i/o timeout"))).Nil()
}

func TestReasonMessages(t *testing.T) {
	seen := make(map[string]Reason)
	for _, reason := range AllReasons() {
		msg := reason.Message()
		gt.Number(t, len(msg)).Greater(0)
		if other, ok := seen[msg]; ok {
			t.Errorf("reasons %s and %s share message %q", other, reason, msg)
		}
		seen[msg] = reason
	}
	gt.Equal(t, ReasonRegionBlocked.Message(), "Video is region blocked.")
}

func TestToModelStream(t *testing.T) {
	stream := toModelStream(youtube.Format{
		ItagNo:        22,
		MimeType:      `video/mp4; codecs="avc1.64001F, mp4a.40.2"`,
		QualityLabel:  "720p",
		Height:        720,
		Width:         1280,
		ContentLength: 1234,
		AudioChannels: 2,
	})

	gt.Equal(t, stream, model.Stream{
		Itag:          22,
		MimeType:      `video/mp4; codecs="avc1.64001F, mp4a.40.2"`,
		Container:     "mp4",
		Resolution:    "720p",
		Height:        720,
		FileSize:      1234,
		AudioChannels: 2,
	})
	gt.True(t, stream.IsProgressive())
}

func TestToModelVideo(t *testing.T) {
	video := toModelVideo(&youtube.Video{ID: "abc", Title: "T", Author: "A"})
	gt.Equal(t, video.ID, "abc")
	gt.True(t, !video.Live)

	live := toModelVideo(&youtube.Video{ID: "abc", HLSManifestURL: "https://example.com/live.m3u8"})
	gt.True(t, live.Live)
}
