package funddata

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cloud-ru/deposit-fund-compare-go/internal/metrics"
)

// FallbackSource опрашивает источники по порядку и возвращает первый непустой результат
type FallbackSource struct {
	sources []Source
	logger  *zap.Logger
}

func NewFallbackSource(logger *zap.Logger, sources ...Source) *FallbackSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackSource{sources: sources, logger: logger}
}

func (s *FallbackSource) Name() string { return "fallback" }

func (s *FallbackSource) LoadAll(ctx context.Context) ([]Observation, error) {
	var errs []error

	for _, src := range s.sources {
		rows, err := src.LoadAll(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			metrics.FundDataLoads.WithLabelValues(src.Name(), "error").Inc()
			s.logger.Warn("fund source failed, trying next",
				zap.String("op", "funddata.FallbackSource.LoadAll"),
				zap.String("source", src.Name()),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		if len(rows) == 0 {
			metrics.FundDataLoads.WithLabelValues(src.Name(), "empty").Inc()
			s.logger.Warn("fund source returned no rows, trying next",
				zap.String("op", "funddata.FallbackSource.LoadAll"),
				zap.String("source", src.Name()),
			)
			continue
		}

		metrics.FundDataLoads.WithLabelValues(src.Name(), "success").Inc()
		s.logger.Debug("fund data loaded",
			zap.String("op", "funddata.FallbackSource.LoadAll"),
			zap.String("source", src.Name()),
			zap.Int("funds", len(rows)),
		)
		return rows, nil
	}

	if len(errs) == 0 {
		return nil, ErrNoData
	}
	return nil, fmt.Errorf("%w: %w", ErrNoData, errors.Join(errs...))
}
