package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires the URL and destination inputs to the download runner, shows the
// confirmation dialog, animates the progress bar while a run is in flight and
// reports the outcome. All UI strings are localized via Localization.
