package funddata

import (
	"context"
	"sync"
	"time"
)

// CachedSource хранит результат вложенного источника в памяти в течение ttl
type CachedSource struct {
	source Source
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	rows     []Observation
	loadedAt time.Time
}

func NewCachedSource(source Source, ttl time.Duration) *CachedSource {
	return &CachedSource{source: source, ttl: ttl, now: time.Now}
}

func (s *CachedSource) Name() string { return "cached:" + s.source.Name() }

// LoadAll возвращает копию кэша или перезагружает данные, если срок истек
func (s *CachedSource) LoadAll(ctx context.Context) ([]Observation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rows != nil && s.now().Sub(s.loadedAt) < s.ttl {
		return cloneRows(s.rows), nil
	}

	rows, err := s.source.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	s.rows = rows
	s.loadedAt = s.now()
	return cloneRows(rows), nil
}

// Invalidate сбрасывает кэш
func (s *CachedSource) Invalidate() {
	s.mu.Lock()
	s.rows = nil
	s.mu.Unlock()
}

func cloneRows(rows []Observation) []Observation {
	out := make([]Observation, len(rows))
	copy(out, rows)
	return out
}
