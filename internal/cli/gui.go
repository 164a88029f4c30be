package cli

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/ytget/ytgrab/internal/config"
	"github.com/ytget/ytgrab/internal/download"
	"github.com/ytget/ytgrab/internal/ui"
)

// AppID identifies the application to Fyne; preferences are stored under it
const AppID = "com.ytget.ytgrab"

func cmdGUI(e *env) *cli.Command {
	var cfg config.Workflow

	return &cli.Command{
		Name:  "gui",
		Usage: "Open the desktop window (default)",
		Flags: cfg.HTTPFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := cfg.ApplyFile(e.file, c.IsSet); err != nil {
				return err
			}

			e.logger.Info("Starting GUI", zap.String("version", Version))

			a := app.NewWithID(AppID)
			a.Settings().SetTheme(ui.NewCompactTheme())

			w := a.NewWindow(fmt.Sprintf("%s v%s", AppName, Version))
			source := download.NewYouTubeSource(cfg.SourceConfig(), e.logger.Named("source"))
			ui.NewRootUI(ctx, w, a, source, e.logger.Named("ui"))

			closed := make(chan struct{})
			defer close(closed)

			// Ctrl-C closes the window like the close button
			go func() {
				select {
				case <-ctx.Done():
					fyne.Do(a.Quit)
				case <-closed:
				}
			}()

			w.ShowAndRun()
			return nil
		},
	}
}
