package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/meetpilot/meetpilot/internal/models"
)

// implFile persists one JSON document per record under baseDir.
// Writes go through a temp file plus rename so readers never observe a
// partially written record.
type implFile struct {
	mu      sync.Mutex
	baseDir string
}

// NewFile creates a RecordStore backed by a directory of JSON files.
func NewFile(baseDir string) (RecordStore, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("baseDir is required")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &implFile{baseDir: baseDir}, nil
}

func (s *implFile) path(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *implFile) read(id string) (*models.Transcription, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read record %s: %w", id, err)
	}
	var rec models.Transcription
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	return &rec, nil
}

func (s *implFile) write(rec *models.Transcription) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record %s: %w", rec.ID, err)
	}

	tmp, err := os.CreateTemp(s.baseDir, "record-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write record %s: %w", rec.ID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp record: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(rec.ID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("persist record %s: %w", rec.ID, err)
	}
	return nil
}

func (s *implFile) Get(ctx context.Context, id string) (*models.Transcription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read(id)
}

func (s *implFile) List(ctx context.Context, skip, take int) ([]*models.Transcription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("list store dir: %w", err)
	}

	all := make([]*models.Transcription, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		rec, err := s.read(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return page(all, skip, take), nil
}

func (s *implFile) Add(ctx context.Context, rec *models.Transcription) (*models.Transcription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(rec); err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

func (s *implFile) Update(ctx context.Context, rec *models.Transcription) (*models.Transcription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.read(rec.ID); err != nil {
		return nil, err
	}
	if err := s.write(rec); err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

func (s *implFile) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}
