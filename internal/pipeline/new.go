package pipeline

import (
	"sync"

	"github.com/meetpilot/meetpilot/internal/llm"
	"github.com/meetpilot/meetpilot/internal/logger"
	"github.com/meetpilot/meetpilot/internal/speech"
	"github.com/meetpilot/meetpilot/internal/store"
)

type implService struct {
	store  store.RecordStore
	speech speech.Transcriber
	llm    llm.Service
	logger logger.Logger
	wg     sync.WaitGroup
}

// New creates the pipeline Service.
func New(recordStore store.RecordStore, transcriber speech.Transcriber, language llm.Service, log logger.Logger) Service {
	return &implService{
		store:  recordStore,
		speech: transcriber,
		llm:    language,
		logger: log,
	}
}
