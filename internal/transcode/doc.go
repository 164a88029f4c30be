package transcode

// Package transcode extracts the audio track of a downloaded video with the
// ffmpeg command line tool.
