package watcher

import "context"

// Watcher monitors the audio drop directory.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one detected audio file.
type EventHandler func(ctx context.Context, filePath string) error
