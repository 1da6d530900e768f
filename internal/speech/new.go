package speech

import (
	"fmt"

	"github.com/meetpilot/meetpilot/internal/config"
	"github.com/meetpilot/meetpilot/internal/logger"
	"github.com/meetpilot/meetpilot/pkg/executor"
)

// New selects a transcription backend based on configuration.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	switch cfg.Speech.Provider {
	case "whisper":
		return NewWhisper(cfg.Speech.Whisper, exec, log), nil
	case "openai":
		return NewOpenAI(cfg.Speech.OpenAI, log), nil
	default:
		return nil, fmt.Errorf("speech provider %q is not supported", cfg.Speech.Provider)
	}
}
