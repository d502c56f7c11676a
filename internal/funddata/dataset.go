package funddata

import (
	"fmt"
	"sort"
	"strings"
)

// Dataset - неизменяемый набор фондов с уникальными кодами, порядок как в источнике
type Dataset struct {
	rows   []Observation
	byCode map[string]int
}

// NewDataset проверяет уникальность кодов и строит индекс
func NewDataset(rows []Observation) (*Dataset, error) {
	ds := &Dataset{
		rows:   make([]Observation, 0, len(rows)),
		byCode: make(map[string]int, len(rows)),
	}
	for _, row := range rows {
		code := strings.TrimSpace(row.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: empty fund code", ErrMalformedData)
		}
		if _, dup := ds.byCode[code]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFund, code)
		}
		row.Code = code
		ds.byCode[code] = len(ds.rows)
		ds.rows = append(ds.rows, row)
	}
	return ds, nil
}

// Lookup возвращает фонд по коду или *MissingFundError
func (d *Dataset) Lookup(code string) (Observation, error) {
	i, ok := d.byCode[strings.TrimSpace(code)]
	if !ok {
		return Observation{}, &MissingFundError{Code: code}
	}
	return d.rows[i], nil
}

func (d *Dataset) Len() int { return len(d.rows) }

func (d *Dataset) All() []Observation {
	return cloneRows(d.rows)
}

func (d *Dataset) Codes() []string {
	codes := make([]string, len(d.rows))
	for i, r := range d.rows {
		codes[i] = r.Code
	}
	return codes
}

// Top возвращает n фондов с наибольшей дневной доходностью.
// При равной доходности сохраняется порядок источника.
func (d *Dataset) Top(n int) []Observation {
	if n <= 0 {
		return nil
	}
	sorted := cloneRows(d.rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DailyReturn > sorted[j].DailyReturn
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
