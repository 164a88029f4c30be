package ui

import (
	"context"
	"io"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/ytgrab/internal/download"
	"github.com/ytget/ytgrab/internal/model"
)

type nopSource struct{}

func (nopSource) Resolve(context.Context, string) (*model.Video, error) {
	return nil, download.NewUnavailable(download.ReasonMalformedURL, nil)
}

func (nopSource) Streams(context.Context, *model.Video) (model.StreamList, error) {
	return nil, nil
}

func (nopSource) Open(context.Context, *model.Video, model.Stream) (io.ReadCloser, error) {
	return nil, io.EOF
}

func newTestRootUI(t *testing.T) *RootUI {
	t.Helper()

	app := test.NewApp()
	t.Cleanup(app.Quit)
	window := test.NewWindow(nil)
	t.Cleanup(window.Close)

	return NewRootUI(context.Background(), window, app, nopSource{}, nil)
}

func TestNewRootUI(t *testing.T) {
	ui := newTestRootUI(t)

	if ui.header.Text != "YouTube Downloader" {
		t.Errorf("Unexpected header %q", ui.header.Text)
	}
	if ui.audioBtn.Text != "Download Audio → .mp3" {
		t.Errorf("Unexpected audio button %q", ui.audioBtn.Text)
	}
	if ui.videoBtn.Text != "Download Video → .mp4" {
		t.Errorf("Unexpected video button %q", ui.videoBtn.Text)
	}
	if ui.pathEntry.Text == "" {
		t.Error("Path entry should be prefilled with the download directory")
	}
	if ui.runner.Busy() {
		t.Error("Runner should start idle")
	}
}

func TestApplyBusy(t *testing.T) {
	ui := newTestRootUI(t)

	ui.applyBusy(true)
	if !ui.audioBtn.Disabled() || !ui.videoBtn.Disabled() || !ui.browseBtn.Disabled() {
		t.Error("Buttons should be disabled while busy")
	}
	if !ui.pathEntry.Disabled() {
		t.Error("Path entry should be disabled while busy")
	}

	ui.applyBusy(false)
	if ui.audioBtn.Disabled() || ui.videoBtn.Disabled() || ui.browseBtn.Disabled() {
		t.Error("Buttons should be enabled when idle")
	}
	if ui.pathEntry.Disabled() {
		t.Error("Path entry should be enabled when idle")
	}
}

func TestDownloadClickWithoutURL(t *testing.T) {
	ui := newTestRootUI(t)

	ui.urlEntry.SetText("   ")
	ui.onDownloadClick(model.KindVideo)

	if ui.runner.Busy() {
		t.Error("An empty URL should not start a run")
	}
	if ui.audioBtn.Disabled() {
		t.Error("Controls should stay enabled")
	}
}

func TestSubmitWhileBusy(t *testing.T) {
	ui := newTestRootUI(t)

	// the runner is idle but the previous run has not been reported yet
	ui.applyBusy(true)
	ui.urlEntry.SetText("https://www.youtube.com/watch?v=abc")
	ui.urlEntry.OnSubmitted(ui.urlEntry.Text)
	ui.onDownloadClick(model.KindAudio)

	if ui.runner.Busy() {
		t.Error("A submit while the shell is busy should not start a run")
	}
	if _, ok := ui.runner.Current(); ok {
		t.Error("No run should have been recorded")
	}

	ui.applyBusy(false)
	if ui.busy {
		t.Error("Busy flag should be cleared")
	}
}

func TestLanguageChange(t *testing.T) {
	ui := newTestRootUI(t)

	ui.onLanguageChange("ru")
	if ui.urlLabel.Text != "URL YouTube:" {
		t.Errorf("Unexpected label after language change %q", ui.urlLabel.Text)
	}
	if ui.settings.GetLanguage() != "ru" {
		t.Errorf("Language should be persisted, got %s", ui.settings.GetLanguage())
	}
}

func TestProgressText(t *testing.T) {
	l := NewLocalization()

	tests := []struct {
		name  string
		value float64
		done  bool
		state string
		want  string
	}{
		{"start", 0, false, "", "Download progress: 0.00%"},
		{"with state", 52, false, "Downloading", "Download progress: 52.00% · Downloading"},
		{"fraction", 95.1, false, "", "Download progress: 95.10%"},
		{"done", 100, true, "Done", "Download complete!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := progressText(l, tt.value, tt.done, tt.state); got != tt.want {
				t.Errorf("progressText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"https://www.youtube.com/watch?v=abc", false},
		{"http://youtu.be/abc", false},
		{"ftp://example.com/file", true},
		{"youtube.com/watch?v=abc", true},
	}

	for _, tt := range tests {
		err := validateURL(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestSettingsDialogSave(t *testing.T) {
	ui := newTestRootUI(t)

	sd := NewSettingsDialog(ui.settings, ui.localization, ui.window, nil)
	sd.loadCurrentSettings()

	sd.downloadDirEntry.SetText("/tmp/videos")
	sd.ffmpegEntry.SetText("/opt/ffmpeg")
	sd.formatSelect.SetSelected("opus")
	sd.revealCheck.SetChecked(true)
	sd.languageSelect.SetSelected("Português")
	sd.save()

	if got := ui.settings.GetDownloadDirectory(); got != "/tmp/videos" {
		t.Errorf("Unexpected directory %s", got)
	}
	if got := ui.settings.GetFFmpegPath(); got != "/opt/ffmpeg" {
		t.Errorf("Unexpected ffmpeg path %s", got)
	}
	if got := ui.settings.GetAudioFormat(); got != "opus" {
		t.Errorf("Unexpected audio format %s", got)
	}
	if !ui.settings.GetAutoRevealOnComplete() {
		t.Error("Reveal should be enabled")
	}
	if got := ui.settings.GetLanguage(); got != "pt" {
		t.Errorf("Unexpected language %s", got)
	}
}

func TestSettingsPipelineWorkflow(t *testing.T) {
	ui := newTestRootUI(t)

	p := &settingsPipeline{settings: ui.settings, source: nopSource{}, logger: ui.logger}
	ui.settings.SetAudioFormat("m4a")

	wf, err := p.workflow()
	if err != nil {
		t.Fatalf("workflow() error = %v", err)
	}
	if wf == nil {
		t.Fatal("workflow() returned nil")
	}
}
