package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/meetpilot/meetpilot/internal/config"
	"github.com/meetpilot/meetpilot/internal/logger"
)

const openAITranscriptionURL = "https://api.openai.com/v1/audio/transcriptions"

type implOpenAI struct {
	cfg    config.OpenAIConfig
	url    string
	client *http.Client
	logger logger.Logger
}

// NewOpenAI creates a Transcriber backed by the OpenAI
// audio/transcriptions endpoint.
func NewOpenAI(cfg config.OpenAIConfig, log logger.Logger) Transcriber {
	return &implOpenAI{
		cfg:    cfg,
		url:    openAITranscriptionURL,
		client: &http.Client{Timeout: 10 * time.Minute},
		logger: log,
	}
}

type openAIResponse struct {
	Text string `json:"text"`
}

func (o *implOpenAI) Transcribe(ctx context.Context, audio io.Reader, fileName string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("model", o.cfg.Model); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(fileName))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, audio); err != nil {
		return "", fmt.Errorf("buffer audio stream: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, &body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	o.logger.Debug(ctx, "Sending %s to OpenAI transcription (%s)", fileName, o.cfg.Model)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai http %d: %s", resp.StatusCode, string(b))
	}

	var out openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}

	return strings.TrimSpace(out.Text), nil
}

func (o *implOpenAI) TranscribeFromURL(ctx context.Context, audioURL string) (string, error) {
	body, name, err := fetchAudio(ctx, audioURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	return o.Transcribe(ctx, body, name)
}
