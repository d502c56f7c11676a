package funddata

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"
)

type invalidator interface {
	Invalidate()
}

// Store отдает актуальный Dataset. Срок жизни данных определяет источник
// (например CachedSource), Store пересобирает набор только при смене строк.
type Store struct {
	source Source
	logger *zap.Logger

	mu      sync.RWMutex
	rows    []Observation
	dataset *Dataset
}

func NewStore(source Source, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{source: source, logger: logger}
}

// Dataset читает строки из источника и возвращает соответствующий им набор.
// Если источник недоступен, а набор уже загружался, отдается прежний набор.
func (s *Store) Dataset(ctx context.Context) (*Dataset, error) {
	rows, err := s.source.LoadAll(ctx)
	if err != nil {
		s.mu.RLock()
		stale := s.dataset
		s.mu.RUnlock()
		if stale == nil {
			return nil, err
		}
		s.logger.Warn("fund source unavailable, serving previous dataset",
			zap.String("op", "funddata.Store.Dataset"),
			zap.String("source", s.source.Name()),
			zap.Error(err),
		)
		return stale, nil
	}

	s.mu.RLock()
	ds := s.dataset
	same := ds != nil && slices.Equal(s.rows, rows)
	s.mu.RUnlock()
	if same {
		return ds, nil
	}
	return s.replace(rows)
}

// Refresh сбрасывает кэш источника (если он есть) и перечитывает данные
func (s *Store) Refresh(ctx context.Context) (*Dataset, error) {
	if inv, ok := s.source.(invalidator); ok {
		inv.Invalidate()
	}

	rows, err := s.source.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.replace(rows)
}

func (s *Store) replace(rows []Observation) (*Dataset, error) {
	ds, err := NewDataset(rows)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.rows = rows
	s.dataset = ds
	s.mu.Unlock()

	s.logger.Info("fund dataset loaded",
		zap.String("op", "funddata.Store.replace"),
		zap.String("source", s.source.Name()),
		zap.Int("funds", ds.Len()),
	)
	return ds, nil
}

// Lookup ищет фонд в текущем наборе
func (s *Store) Lookup(ctx context.Context, code string) (Observation, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return Observation{}, err
	}
	return ds.Lookup(code)
}
