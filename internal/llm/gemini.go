package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/meetpilot/meetpilot/internal/models"
)

func (g *implGemini) Summarize(ctx context.Context, transcript string) (string, error) {
	text, err := g.generate(ctx, fmt.Sprintf(summarizePrompt, transcript))
	if err != nil {
		return "", fmt.Errorf("summarize meeting: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (g *implGemini) ExtractTasks(ctx context.Context, transcript, summary string) ([]models.TaskItem, error) {
	text, err := g.generate(ctx, fmt.Sprintf(extractTasksPrompt, summary, transcript))
	if err != nil {
		return nil, fmt.Errorf("extract tasks: %w", err)
	}

	tasks, err := parseTasks(text)
	if err != nil {
		return nil, fmt.Errorf("parse extracted tasks: %w", err)
	}

	g.logger.Info(ctx, "Extracted %d tasks from meeting content", len(tasks))
	return tasks, nil
}

func (g *implGemini) GenerateIssueTitle(ctx context.Context, taskDescription string) (string, error) {
	text, err := g.generate(ctx, fmt.Sprintf(issueTitlePrompt, taskDescription))
	if err != nil {
		return "", fmt.Errorf("generate issue title: %w", err)
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(text), `"`)), nil
}

func (g *implGemini) GenerateIssueBody(ctx context.Context, taskDescription, meetingContext string) (string, error) {
	text, err := g.generate(ctx, fmt.Sprintf(issueBodyPrompt, meetingContext, taskDescription))
	if err != nil {
		return "", fmt.Errorf("generate issue body: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// generate sends the prompt to Gemini and returns the response text.
// Rotates API keys on 429 / quota errors.
func (g *implGemini) generate(ctx context.Context, prompt string) (string, error) {
	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		idx, key := g.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			if isQuotaError(err) {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// activeKey returns the index and value of the key in rotation.
func (g *implGemini) activeKey() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

func (g *implGemini) rotateKey() {
	g.mu.Lock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	g.mu.Unlock()
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
