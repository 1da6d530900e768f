package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
)

// fetchAudio downloads a remote audio file and returns its body together
// with a file name derived from the URL path.
func fetchAudio(ctx context.Context, audioURL string) (io.ReadCloser, string, error) {
	parsed, err := url.Parse(audioURL)
	if err != nil {
		return nil, "", fmt.Errorf("parse audio url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download audio: %w", err)
	}
	if resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, "", fmt.Errorf("download audio: http %d", resp.StatusCode)
	}

	name := path.Base(parsed.Path)
	if name == "" || name == "/" || name == "." {
		name = "audio"
	}
	return resp.Body, name, nil
}
