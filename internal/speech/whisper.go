package speech

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/meetpilot/meetpilot/internal/config"
	"github.com/meetpilot/meetpilot/internal/logger"
	"github.com/meetpilot/meetpilot/pkg/executor"
)

type implWhisper struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisper creates a Transcriber backed by a local whisper.cpp binary.
func NewWhisper(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) Transcriber {
	return &implWhisper{cfg: cfg, executor: exec, logger: log}
}

// Transcribe writes the stream to a temp file, normalizes it to 16kHz
// mono WAV with ffmpeg, and runs whisper.cpp over the result.
func (w *implWhisper) Transcribe(ctx context.Context, audio io.Reader, fileName string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "transcribe-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	srcPath := filepath.Join(tmpDir, filepath.Base(fileName))
	src, err := os.Create(srcPath)
	if err != nil {
		return "", fmt.Errorf("create temp audio: %w", err)
	}
	if _, err := io.Copy(src, audio); err != nil {
		src.Close()
		return "", fmt.Errorf("buffer audio stream: %w", err)
	}
	if err := src.Close(); err != nil {
		return "", fmt.Errorf("close temp audio: %w", err)
	}

	wavPath, err := w.toWav(ctx, srcPath)
	if err != nil {
		return "", err
	}

	return w.run(ctx, wavPath)
}

// TranscribeFromURL downloads the audio and transcribes it.
func (w *implWhisper) TranscribeFromURL(ctx context.Context, audioURL string) (string, error) {
	body, name, err := fetchAudio(ctx, audioURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	return w.Transcribe(ctx, body, name)
}

// toWav converts arbitrary input audio to 16kHz mono PCM WAV, the
// format whisper.cpp expects.
func (w *implWhisper) toWav(ctx context.Context, srcPath string) (string, error) {
	wavPath := strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + "_16k.wav"

	args := []string{
		"-i", srcPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}

	if _, err := w.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg convert audio: %w", err)
	}
	return wavPath, nil
}

func (w *implWhisper) run(ctx context.Context, wavPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))

	w.logger.Info(ctx, "Transcribing with whisper (%d threads): %s", w.cfg.Threads, wavPath)

	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", wavPath,
		"-otxt",
		"-l", w.cfg.Language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"--output-file", outputPrefix,
	}

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	text, err := os.ReadFile(outputPrefix + ".txt")
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	return strings.TrimSpace(string(text)), nil
}
