package llm

import (
	"fmt"
	"sync"

	"github.com/meetpilot/meetpilot/internal/config"
	"github.com/meetpilot/meetpilot/internal/logger"
)

type implGemini struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	// mu guards currentKey: one Service instance is shared by every
	// concurrently running stage sequence.
	mu         sync.Mutex
	currentKey int
}

// New creates a Service backed by Gemini, rotating through the supplied
// API keys when one hits its quota.
func New(cfg config.GeminiConfig, log logger.Logger) (Service, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, fmt.Errorf("at least one Gemini API key is required")
	}
	return &implGemini{
		apiKeys: cfg.APIKeys,
		model:   cfg.Model,
		logger:  log,
	}, nil
}
