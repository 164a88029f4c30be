package ui

import (
	"context"
	"fmt"
	"image/color"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/ytgrab/internal/config"
	"github.com/ytget/ytgrab/internal/download"
	"github.com/ytget/ytgrab/internal/model"
	"github.com/ytget/ytgrab/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	ctx          context.Context
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	runner       *download.Runner
	logger       *zap.Logger
	mobile       *MobileUI

	header        *widget.Label
	urlLabel      *widget.Label
	pathLabel     *widget.Label
	urlEntry      *widget.Entry
	pathEntry     *widget.Entry
	browseBtn     *widget.Button
	audioBtn      *widget.Button
	videoBtn      *widget.Button
	progressBar   *widget.ProgressBar
	progressLabel *widget.Label
	progress      *ProgressAnimator

	// written on the UI goroutine only
	busy          bool
	progressValue float64
	stateText     string
	finished      bool
}

// NewRootUI creates and initializes the main UI. Runs are executed through
// source; the process context ends in-flight runs on shutdown.
func NewRootUI(ctx context.Context, window fyne.Window, app fyne.App, source download.Source, logger *zap.Logger) *RootUI {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		ctx:          ctx,
		window:       window,
		settings:     settings,
		localization: localization,
		logger:       logger,
		mobile:       NewMobileUI(app),
	}

	pipeline := &settingsPipeline{
		settings:  settings,
		source:    source,
		confirmer: NewDialogConfirmer(window, localization),
		logger:    logger,
	}
	ui.runner = download.NewRunner(pipeline, logger.Named("runner"))
	ui.runner.SetUpdateCallback(ui.onRunUpdate)
	ui.runner.SetDoneCallback(ui.onRunDone)

	ui.progress = NewProgressAnimator(ProgressTick, func(value float64, done bool) {
		fyne.Do(func() {
			ui.progressValue = value
			ui.finished = done
			ui.refreshProgress()
		})
	})

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()

	logger.Debug("root UI initialized", zap.String("language", localization.GetCurrentLanguage()))
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.header = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	ui.urlLabel = widget.NewLabel("")
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.Validator = validateURL

	ui.pathLabel = widget.NewLabel("")
	ui.pathEntry = widget.NewEntry()
	ui.pathEntry.SetText(ui.settings.GetDownloadDirectory())
	ui.browseBtn = widget.NewButton(IconFolder, ui.onBrowse)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.audioBtn = widget.NewButton("", func() { ui.onDownloadClick(model.KindAudio) })
	ui.videoBtn = widget.NewButton("", func() { ui.onDownloadClick(model.KindVideo) })
	ui.audioBtn.Importance = widget.HighImportance

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Max = ProgressMax
	ui.progressBar.TextFormatter = func() string { return "" }
	ui.progressLabel = widget.NewLabel("")

	ui.urlEntry.OnSubmitted = func(string) { ui.onDownloadClick(model.KindVideo) }

	form := container.New(
		layout.NewFormLayout(),
		ui.urlLabel, ui.urlEntry,
		ui.pathLabel, container.NewBorder(nil, nil, nil, ui.browseBtn, ui.pathEntry),
	)

	progressBox := container.NewVBox(ui.progressLabel, ui.progressBar)
	gap := canvas.NewRectangle(color.Transparent)
	gap.SetMinSize(fyne.NewSize(0, ui.mobile.GetMobileSpacing()))
	buttons := ui.mobile.CreateAdaptiveContainer(1, ui.mobile.WrapButton(ui.audioBtn), ui.mobile.WrapButton(ui.videoBtn))

	content := container.NewVBox(
		container.NewBorder(nil, nil, nil, settingsBtn, ui.header),
		form,
		gap,
		ui.mobile.CreateAdaptiveContainer(2, progressBox, buttons),
	)

	ui.refreshUITexts()
	ui.window.SetContent(container.NewPadded(content))
	ui.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	// Settings menu item
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.header.SetText(ui.localization.GetText(KeyHeader))
	ui.urlLabel.SetText(ui.localization.GetText(KeyURLLabel))
	ui.pathLabel.SetText(ui.localization.GetText(KeyPathLabel))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.pathEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterPath))
	ui.audioBtn.SetText(ui.localization.Format(KeyDownloadAudio, ui.settings.GetAudioFormat()))
	ui.videoBtn.SetText(ui.localization.GetText(KeyDownloadVideo))
	ui.refreshProgress()
}

// validateURL validates the entered URL
func validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	return nil
}

// onDownloadClick hands the current inputs to the runner. A click while a
// run is in flight does nothing.
func (ui *RootUI) onDownloadClick(kind model.Kind) {
	req := model.NewRequest(ui.urlEntry.Text, ui.pathEntry.Text)
	if req.URL == "" {
		dialog.ShowInformation(ui.localization.GetText(KeyInvalidURL), ui.localization.GetText(KeyPleaseEnterURL), ui.window)
		return
	}

	if ui.busy || ui.runner.Busy() {
		ui.logger.Debug("click ignored, run in flight", zap.String("kind", string(kind)))
		return
	}

	// the animation starts first so a run that fails at once still ends it
	ui.stateText = ui.localization.StateText(model.StateIdle)
	ui.applyBusy(true)
	ui.progress.Start()

	run, ok := ui.runner.Start(ui.ctx, kind, req)
	if !ok {
		return
	}
	ui.settings.SetDownloadDirectory(req.DestDir)
	ui.logger.Info("run accepted", zap.String("run_id", run.ID), zap.String("kind", string(kind)))
}

// applyBusy toggles the controls that start a run. Submitting the URL entry
// is gated by the same flag.
func (ui *RootUI) applyBusy(busy bool) {
	ui.busy = busy
	for _, btn := range []*widget.Button{ui.audioBtn, ui.videoBtn, ui.browseBtn} {
		if busy {
			btn.Disable()
		} else {
			btn.Enable()
		}
	}
	if busy {
		ui.pathEntry.Disable()
	} else {
		ui.pathEntry.Enable()
	}
}

// onRunUpdate is called by the runner on every state transition
func (ui *RootUI) onRunUpdate(run model.Run) {
	fyne.Do(func() {
		ui.stateText = ui.localization.StateText(run.State)
		ui.refreshProgress()
	})
}

// onRunDone is called by the runner once its busy flag is cleared. The
// shell stays busy until this callback reaches the UI goroutine.
func (ui *RootUI) onRunDone(run model.Run) {
	ui.progress.Finish()

	fyne.Do(func() {
		ui.stateText = ui.localization.StateText(run.State)
		ui.applyBusy(false)
		ui.refreshProgress()
		ui.showOutcome(run)
	})
}

// refreshProgress renders the progress bar and its label
func (ui *RootUI) refreshProgress() {
	if ui.progressBar == nil || ui.progressLabel == nil {
		return
	}
	ui.progressBar.SetValue(ui.progressValue)
	ui.progressLabel.SetText(progressText(ui.localization, ui.progressValue, ui.finished, ui.stateText))
}

// progressText renders the label shown above the progress bar
func progressText(l *Localization, value float64, done bool, state string) string {
	if done {
		return l.GetText(KeyProgressComplete)
	}
	text := fmt.Sprintf(ProgressLabelFormat, l.GetText(KeyProgress), value)
	if state != "" {
		text = fmt.Sprintf(StateLabelFormat, text, state)
	}
	return text
}

// showOutcome reports a finished run to the user
func (ui *RootUI) showOutcome(run model.Run) {
	if run.Outcome.Err != nil {
		title := ui.localization.GetText(KeyErrorVideo)
		if run.Kind == model.KindAudio {
			title = ui.localization.GetText(KeyErrorAudio)
		}
		dialog.ShowError(fmt.Errorf("%s\n%s", title, download.UserMessage(run.Outcome.Err)), ui.window)
		return
	}

	dialog.ShowInformation(
		ui.localization.GetText(KeySuccessTitle),
		ui.localization.Format(KeyDownloadedTo, run.Outcome.Path),
		ui.window,
	)
	ui.urlEntry.SetText("")

	if ui.settings.GetAutoRevealOnComplete() {
		ui.onRevealFile(run.Outcome.Path)
	}
}

// onRevealFile shows the file in the OS file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := platform.OpenFileInManager(filePath); err != nil {
		ui.logger.Warn("failed to reveal file", zap.String("path", filePath), zap.Error(err))
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err), ui.window)
	}
}

// onBrowse lets the user pick the destination folder
func (ui *RootUI) onBrowse() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.pathEntry.SetText(uri.Path())
		ui.settings.SetDownloadDirectory(uri.Path())
	}, ui.window)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.pathEntry.SetText(ui.settings.GetDownloadDirectory())
		ui.refreshUITexts()
		ui.createMenu()
	})
}
