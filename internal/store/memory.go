package store

import (
	"context"
	"sort"
	"sync"

	"github.com/meetpilot/meetpilot/internal/models"
)

type implMemory struct {
	mu      sync.RWMutex
	records map[string]*models.Transcription
}

// NewMemory creates an in-memory RecordStore.
func NewMemory() RecordStore {
	return &implMemory{records: make(map[string]*models.Transcription)}
}

func (s *implMemory) Get(ctx context.Context, id string) (*models.Transcription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *implMemory) List(ctx context.Context, skip, take int) ([]*models.Transcription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*models.Transcription, 0, len(s.records))
	for _, rec := range s.records {
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return page(all, skip, take), nil
}

func (s *implMemory) Add(ctx context.Context, rec *models.Transcription) (*models.Transcription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.ID] = rec.Clone()
	return rec.Clone(), nil
}

func (s *implMemory) Update(ctx context.Context, rec *models.Transcription) (*models.Transcription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.ID]; !ok {
		return nil, ErrNotFound
	}
	s.records[rec.ID] = rec.Clone()
	return rec.Clone(), nil
}

func (s *implMemory) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// page applies skip/take to an already sorted slice, cloning each
// returned record.
func page(all []*models.Transcription, skip, take int) []*models.Transcription {
	if skip < 0 {
		skip = 0
	}
	if take < 0 {
		take = 0
	}
	if skip >= len(all) {
		return []*models.Transcription{}
	}
	end := skip + take
	if end > len(all) {
		end = len(all)
	}

	out := make([]*models.Transcription, 0, end-skip)
	for _, rec := range all[skip:end] {
		out = append(out, rec.Clone())
	}
	return out
}
