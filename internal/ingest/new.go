package ingest

import (
	"github.com/meetpilot/meetpilot/internal/config"
	"github.com/meetpilot/meetpilot/internal/issuesync"
	"github.com/meetpilot/meetpilot/internal/logger"
	"github.com/meetpilot/meetpilot/internal/pipeline"
	"github.com/meetpilot/meetpilot/internal/report"
)

type implHandler struct {
	cfg      *config.Config
	pipeline pipeline.Service
	syncer   issuesync.Syncer
	report   report.Writer
	logger   logger.Logger
}

// New creates a drop-folder Handler.
func New(cfg *config.Config, pipe pipeline.Service, syncer issuesync.Syncer, reporter report.Writer, log logger.Logger) Handler {
	return &implHandler{
		cfg:      cfg,
		pipeline: pipe,
		syncer:   syncer,
		report:   reporter,
		logger:   log,
	}
}
