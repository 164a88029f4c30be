package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/ytget/ytgrab/internal/model"
)

// DialogConfirmer asks for confirmation with a modal dialog. Confirm is
// called from the run goroutine and blocks until the user answers.
type DialogConfirmer struct {
	window       fyne.Window
	localization *Localization
}

// NewDialogConfirmer creates a confirmer bound to window
func NewDialogConfirmer(window fyne.Window, localization *Localization) *DialogConfirmer {
	return &DialogConfirmer{window: window, localization: localization}
}

// Confirm shows the prompt and waits for an answer or the end of ctx
func (c *DialogConfirmer) Confirm(ctx context.Context, prompt model.Prompt) (bool, error) {
	answer := make(chan bool, 1)
	var confirm *dialog.ConfirmDialog

	fyne.Do(func() {
		confirm = dialog.NewConfirm(
			c.localization.GetText(KeyConfirmTitle),
			c.localization.PromptText(prompt),
			func(ok bool) {
				select {
				case answer <- ok:
				default:
				}
			},
			c.window,
		)
		confirm.Show()
	})

	select {
	case ok := <-answer:
		return ok, nil
	case <-ctx.Done():
		fyne.Do(func() {
			if confirm != nil {
				confirm.Hide()
			}
		})
		return false, ctx.Err()
	}
}
