package transcode

import "context"

// Transcoder turns a downloaded video file into an audio-only file.
type Transcoder interface {
	// ToAudio writes the audio track of videoPath next to it and returns the
	// new file's path. The input file is left in place.
	ToAudio(ctx context.Context, videoPath string) (string, error)
}
