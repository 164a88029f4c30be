package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/ytget/ytgrab/internal/config"
	"github.com/ytget/ytgrab/internal/download"
	"github.com/ytget/ytgrab/internal/model"
	"github.com/ytget/ytgrab/internal/transcode"
)

const (
	kindVideo = model.KindVideo
	kindAudio = model.KindAudio
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	failureColor = color.New(color.FgRed, color.Bold)
)

func cmdFetch(e *env, kind model.Kind) *cli.Command {
	var cfg config.Workflow

	usage := "Download the video as mp4"
	if kind == kindAudio {
		usage = "Download the video and extract its audio track"
	}

	return &cli.Command{
		Name:      string(kind),
		Usage:     usage,
		ArgsUsage: "URL",
		Flags:     cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := cfg.ApplyFile(e.file, c.IsSet); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			url := c.Args().First()
			if url == "" {
				return goerr.New("URL argument is required")
			}

			root := c.Root()
			return fetch(ctx, e.logger, &cfg, kind, model.NewRequest(url, cfg.Dir), root.Reader, root.Writer)
		},
	}
}

// fetch runs one workflow with a terminal prompt and spinner
func fetch(ctx context.Context, logger *zap.Logger, cfg *config.Workflow, kind model.Kind, req model.Request, in io.Reader, out io.Writer) error {
	source := download.NewYouTubeSource(cfg.SourceConfig(), logger.Named("source"))

	transcoder, err := transcode.NewService(
		transcode.WithFFmpegPath(cfg.FFmpeg),
		transcode.WithFormat(cfg.AudioFormat),
		transcode.WithLogger(logger.Named("transcode")),
	)
	if err != nil {
		return err
	}

	spin := newSpinner(out)
	defer spin.finish()

	wf := download.NewWorkflow(source, transcoder, newTerminalConfirmer(in, out, cfg.Yes),
		download.WithLogger(logger.Named("workflow")),
		download.WithConfirmTimeout(cfg.ConfirmTimeout),
		download.WithStateObserver(spin.onState),
	)

	path, err := runKind(ctx, wf, kind, req)
	spin.finish()

	if err != nil {
		reportFailure(out, kind, err)
		return err
	}
	reportSuccess(out, path)
	return nil
}

func runKind(ctx context.Context, p download.Pipeline, kind model.Kind, req model.Request) (string, error) {
	switch kind {
	case kindAudio:
		return p.DownloadAudio(ctx, req)
	case kindVideo:
		return p.DownloadVideo(ctx, req)
	}
	return "", goerr.New("unknown run kind", goerr.V("kind", kind))
}

func reportSuccess(out io.Writer, path string) {
	size := ""
	if info, err := os.Stat(path); err == nil {
		size = " (" + humanize.IBytes(uint64(info.Size())) + ")"
	}
	successColor.Fprint(out, "Success! ")
	fmt.Fprintf(out, "File has been downloaded to: %s%s\n", path, size)
}

func reportFailure(out io.Writer, kind model.Kind, err error) {
	title := "Error downloading video."
	if kind == kindAudio {
		title = "Error downloading audio."
	}
	failureColor.Fprintln(out, title)
	fmt.Fprintln(out, download.UserMessage(err))
}
