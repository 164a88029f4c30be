package model

import "testing"

func testStreams() StreamList {
	return StreamList{
		{Itag: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, Container: "mp4", Resolution: "360p", Height: 360, AudioChannels: 2, FileSize: 10 << 20},
		{Itag: 22, MimeType: `video/mp4; codecs="avc1.64001F, mp4a.40.2"`, Container: "mp4", Resolution: "720p", Height: 720, AudioChannels: 2, FileSize: 50 << 20},
		{Itag: 137, MimeType: `video/mp4; codecs="avc1.640028"`, Container: "mp4", Resolution: "1080p", Height: 1080},
		{Itag: 43, MimeType: `video/webm; codecs="vp8.0, vorbis"`, Container: "webm", Resolution: "360p", Height: 360, AudioChannels: 2},
		{Itag: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, Container: "mp4", AudioChannels: 2},
	}
}

func TestStreamList_HighestResolutionProgressiveMP4(t *testing.T) {
	stream, ok := testStreams().Progressive().Container(ContainerMP4).HighestResolution()
	if !ok {
		t.Fatal("expected a stream")
	}
	if stream.Itag != 22 {
		t.Errorf("expected itag 22, got %d", stream.Itag)
	}
}

func TestStreamList_Filters(t *testing.T) {
	streams := testStreams()

	if n := len(streams.Progressive()); n != 3 {
		t.Errorf("Progressive() returned %d streams, expected 3", n)
	}
	if n := len(streams.Container("MP4")); n != 4 {
		t.Errorf("Container(MP4) returned %d streams, expected 4", n)
	}
	if _, ok := StreamList(nil).HighestResolution(); ok {
		t.Error("HighestResolution() on an empty list should report false")
	}
}

func TestContainerFromMimeType(t *testing.T) {
	tests := []struct {
		mime     string
		expected string
	}{
		{`video/mp4; codecs="avc1.42001E, mp4a.40.2"`, "mp4"},
		{`audio/webm; codecs="opus"`, "webm"},
		{"video/3gpp", "3gpp"},
		{"garbage", ""},
		{"", ""},
	}

	for _, test := range tests {
		if result := ContainerFromMimeType(test.mime); result != test.expected {
			t.Errorf("ContainerFromMimeType(%q) = %q, expected %q", test.mime, result, test.expected)
		}
	}
}

func TestPrompt_Message(t *testing.T) {
	desc := &StreamDescriptor{
		Video:  Video{Title: "Some Song"},
		Stream: Stream{FileSize: 50 * BytesPerMB},
	}
	prompt := NewPrompt(desc, 10*BytesPerGB)

	expected := "Title: Some Song\nSize: 50.0 MB\nAvailable: 10.0 GB"
	if prompt.Message() != expected {
		t.Errorf("Message() = %q, expected %q", prompt.Message(), expected)
	}
}
