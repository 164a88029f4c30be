package ui

import (
	"context"

	"go.uber.org/zap"

	"github.com/ytget/ytgrab/internal/config"
	"github.com/ytget/ytgrab/internal/download"
	"github.com/ytget/ytgrab/internal/model"
	"github.com/ytget/ytgrab/internal/transcode"
)

// settingsPipeline builds a workflow from the saved settings for every run,
// so changes made in the settings dialog apply to the next click.
type settingsPipeline struct {
	settings  *config.Settings
	source    download.Source
	confirmer download.Confirmer
	logger    *zap.Logger
}

func (p *settingsPipeline) workflow() (*download.Workflow, error) {
	transcoder, err := transcode.NewService(
		transcode.WithFFmpegPath(p.settings.GetFFmpegPath()),
		transcode.WithFormat(p.settings.GetAudioFormat()),
		transcode.WithLogger(p.logger.Named("transcode")),
	)
	if err != nil {
		return nil, err
	}

	return download.NewWorkflow(p.source, transcoder, p.confirmer,
		download.WithLogger(p.logger.Named("workflow")),
	), nil
}

func (p *settingsPipeline) DownloadVideo(ctx context.Context, req model.Request) (string, error) {
	wf, err := p.workflow()
	if err != nil {
		return "", err
	}
	return wf.DownloadVideo(ctx, req)
}

func (p *settingsPipeline) DownloadAudio(ctx context.Context, req model.Request) (string, error) {
	wf, err := p.workflow()
	if err != nil {
		return "", err
	}
	return wf.DownloadAudio(ctx, req)
}
