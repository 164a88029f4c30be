package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconArrow    = "→"
)

// Window sizing
const (
	WindowWidth  float32 = 700
	WindowHeight float32 = 350

	// Mobile-specific sizing
	MobileSpacing  float32 = 16
	DesktopSpacing float32 = 8
	MobileButtonH  float32 = 48
)

// Progress bar behavior
const (
	ProgressTick = time.Second
	ProgressMax  = 100.0
)

// Text fragments
const (
	ProgressLabelFormat = "%s: %.2f%%"
	StateLabelFormat    = "%s · %s"
)
