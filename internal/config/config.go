package config

import "fmt"

type Config struct {
	Speech      SpeechConfig      `yaml:"speech"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	GitHub      GitHubConfig      `yaml:"github"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type SpeechConfig struct {
	// Provider selects the transcription backend: "whisper" or "openai".
	Provider string        `yaml:"provider"`
	Whisper  WhisperConfig `yaml:"whisper"`
	OpenAI   OpenAIConfig  `yaml:"openai"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type OpenAIConfig struct {
	Model string `yaml:"model"`
	// APIKey is resolved from OPENAI_API_KEY, not from the config file.
	APIKey string `yaml:"-"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
	// APIKeys is resolved from GEMINI_API_KEYS (comma separated), not
	// from the config file. Multiple keys are rotated on quota errors.
	APIKeys []string `yaml:"-"`
}

type GitHubConfig struct {
	Owner            string   `yaml:"owner"`
	Repo             string   `yaml:"repo"`
	AutoSync         bool     `yaml:"auto_sync"`
	DefaultMilestone string   `yaml:"default_milestone"`
	DefaultLabels    []string `yaml:"default_labels"`
	// Token is resolved from GITHUB_TOKEN, not from the config file.
	Token string `yaml:"-"`
}

// Configured reports whether a target repository has been set up.
func (g GitHubConfig) Configured() bool {
	return g.Owner != "" && g.Repo != ""
}

type PathsConfig struct {
	Input   string `yaml:"input"`
	Output  string `yaml:"output"`
	Archive string `yaml:"archive"`
	Store   string `yaml:"store"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	switch c.Speech.Provider {
	case "", "whisper":
		c.Speech.Provider = "whisper"
		if c.Speech.Whisper.BinaryPath == "" {
			return fmt.Errorf("speech.whisper.binary_path is required")
		}
		if c.Speech.Whisper.ModelPath == "" {
			return fmt.Errorf("speech.whisper.model_path is required")
		}
	case "openai":
		if c.Speech.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai speech provider")
		}
	default:
		return fmt.Errorf("speech.provider %q is not supported", c.Speech.Provider)
	}

	if len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("GEMINI_API_KEYS is required")
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.GitHub.Configured() && c.GitHub.Token == "" {
		return fmt.Errorf("GITHUB_TOKEN is required when a github repository is configured")
	}

	if c.Paths.Archive == "" {
		c.Paths.Archive = "data/archive"
	}
	if c.Paths.Store == "" {
		c.Paths.Store = "data/store"
	}
	if c.Speech.Whisper.Language == "" {
		c.Speech.Whisper.Language = "en"
	}
	if c.Speech.Whisper.Threads == 0 {
		c.Speech.Whisper.Threads = 4
	}
	if c.Speech.OpenAI.Model == "" {
		c.Speech.OpenAI.Model = "whisper-1"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
