package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MobileUI adapts the single-window layout to touch devices
type MobileUI struct {
	app    fyne.App
	mobile bool
}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI(app fyne.App) *MobileUI {
	return &MobileUI{app: app, mobile: fyne.CurrentDevice().IsMobile()}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return m.mobile
}

// CreateAdaptiveContainer lays objects out in columns on desktop and in a
// single column on mobile
func (m *MobileUI) CreateAdaptiveContainer(columns int, objects ...fyne.CanvasObject) *fyne.Container {
	if m.mobile {
		columns = 1
	}
	return container.NewAdaptiveGrid(columns, objects...)
}

// GetMobileSpacing returns appropriate spacing for the device
func (m *MobileUI) GetMobileSpacing() float32 {
	if m.mobile {
		return MobileSpacing
	}
	return DesktopSpacing
}

// WrapButton gives a button a touch-sized row on mobile
func (m *MobileUI) WrapButton(btn *widget.Button) fyne.CanvasObject {
	if !m.mobile {
		return btn
	}
	target := canvas.NewRectangle(color.Transparent)
	target.SetMinSize(fyne.NewSize(0, MobileButtonH))
	return container.NewStack(target, btn)
}
