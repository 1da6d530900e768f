package issuesync

import (
	"github.com/meetpilot/meetpilot/internal/llm"
	"github.com/meetpilot/meetpilot/internal/logger"
	"github.com/meetpilot/meetpilot/internal/tracker"
)

type implSyncer struct {
	tracker tracker.Tracker
	llm     llm.Service
	logger  logger.Logger
}

// New creates a Syncer.
func New(tr tracker.Tracker, language llm.Service, log logger.Logger) Syncer {
	return &implSyncer{
		tracker: tr,
		llm:     language,
		logger:  log,
	}
}
