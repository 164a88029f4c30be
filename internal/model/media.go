package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Size units used by the confirmation prompt
const (
	BytesPerMB = 1 << 20
	BytesPerGB = 1 << 30
)

// ContainerMP4 is the only container the workflow downloads
const ContainerMP4 = "mp4"

// Video is the metadata resolved from a URL
type Video struct {
	ID       string
	Title    string
	Author   string
	Duration time.Duration
	Live     bool // video is a live stream
}

// Stream is one encoded rendition of a video
type Stream struct {
	Itag          int
	MimeType      string // e.g. `video/mp4; codecs="avc1.42001E, mp4a.40.2"`
	Container     string // file extension derived from MimeType, e.g. "mp4"
	Resolution    string // quality label, e.g. "720p"; empty for audio-only
	Height        int
	FileSize      int64 // bytes, 0 when unknown
	AudioChannels int
}

// HasVideo reports whether the stream carries a video track
func (s Stream) HasVideo() bool {
	return strings.HasPrefix(s.MimeType, "video/")
}

// HasAudio reports whether the stream carries an audio track
func (s Stream) HasAudio() bool {
	return s.AudioChannels > 0
}

// IsProgressive reports whether audio and video are muxed in one stream
func (s Stream) IsProgressive() bool {
	return s.HasVideo() && s.HasAudio()
}

// StreamList is a filterable list of streams
type StreamList []Stream

// Progressive returns the streams that carry both audio and video
func (l StreamList) Progressive() StreamList {
	var out StreamList
	for _, s := range l {
		if s.IsProgressive() {
			out = append(out, s)
		}
	}
	return out
}

// Container returns the streams with the given container extension
func (l StreamList) Container(ext string) StreamList {
	var out StreamList
	for _, s := range l {
		if strings.EqualFold(s.Container, ext) {
			out = append(out, s)
		}
	}
	return out
}

// HighestResolution returns the stream with the greatest height. Ties keep
// the first stream in list order.
func (l StreamList) HighestResolution() (Stream, bool) {
	if len(l) == 0 {
		return Stream{}, false
	}
	sorted := make(StreamList, len(l))
	copy(sorted, l)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Height > sorted[j].Height
	})
	return sorted[0], true
}

// ContainerFromMimeType extracts the subtype of a MIME type, e.g. "mp4" from
// `video/mp4; codecs="..."`.
func ContainerFromMimeType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	_, sub, ok := strings.Cut(strings.TrimSpace(base), "/")
	if !ok {
		return ""
	}
	return strings.ToLower(sub)
}

// StreamDescriptor is the stream chosen for one workflow invocation
type StreamDescriptor struct {
	Video  Video
	Stream Stream
}

// Title returns the video title
func (d *StreamDescriptor) Title() string {
	return d.Video.Title
}

// FileSize returns the stream size in bytes
func (d *StreamDescriptor) FileSize() int64 {
	return d.Stream.FileSize
}

// SizeMB returns the stream size in megabytes
func (d *StreamDescriptor) SizeMB() float64 {
	return float64(d.Stream.FileSize) / BytesPerMB
}

// Prompt is what the user sees before a download starts
type Prompt struct {
	Title  string
	SizeMB float64
	FreeGB float64
}

// NewPrompt builds a prompt from a descriptor and the free bytes at the destination
func NewPrompt(desc *StreamDescriptor, freeBytes uint64) Prompt {
	return Prompt{
		Title:  desc.Title(),
		SizeMB: desc.SizeMB(),
		FreeGB: float64(freeBytes) / BytesPerGB,
	}
}

// Message renders the prompt body
func (p Prompt) Message() string {
	return fmt.Sprintf("Title: %s\nSize: %.1f MB\nAvailable: %.1f GB", p.Title, p.SizeMB, p.FreeGB)
}
