package funddata

import (
	"context"
	"fmt"
	"net/http"
	"os"
)

// Source - источник данных фондов
type Source interface {
	Name() string
	LoadAll(ctx context.Context) ([]Observation, error)
}

// HTTPSource загружает CSV по HTTP
type HTTPSource struct {
	httpClient *http.Client
	url        string
}

// NewHTTPSource создает источник, читающий CSV по указанному адресу
func NewHTTPSource(httpClient *http.Client, url string) *HTTPSource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPSource{httpClient: httpClient, url: url}
}

func (s *HTTPSource) Name() string { return "http" }

func (s *HTTPSource) LoadAll(ctx context.Context) ([]Observation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building fund csv request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fund csv http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fund csv request: unexpected status %d", resp.StatusCode)
	}

	return ParseCSV(resp.Body)
}

// FileSource читает CSV с локального диска
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) LoadAll(ctx context.Context) ([]Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening fund csv %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	return ParseCSV(f)
}

// StaticSource возвращает заранее заданный набор, последний рубеж цепочки источников
type StaticSource struct {
	rows []Observation
}

func NewStaticSource(rows ...Observation) *StaticSource {
	return &StaticSource{rows: rows}
}

// DefaultStaticSource - минимальный набор из одного фонда денежного рынка
func DefaultStaticSource() *StaticSource {
	return NewStaticSource(Observation{
		Code:        "PPF",
		Name:        "Para Piyasası Fonu",
		DailyReturn: 0.0012,
	})
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) LoadAll(_ context.Context) ([]Observation, error) {
	out := make([]Observation, len(s.rows))
	copy(out, s.rows)
	return out, nil
}
