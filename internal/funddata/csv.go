package funddata

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

const (
	columnCode   = "code"
	columnName   = "name"
	columnDate   = "date"
	columnChange = "change"
)

// headerAliases сопоставляет допустимые заголовки с внутренними именами колонок
var headerAliases = map[string]string{
	"fon kodu":     columnCode,
	"kod":          columnCode,
	"code":         columnCode,
	"fon adı":      columnName,
	"fon adi":      columnName,
	"name":         columnName,
	"tarih":        columnDate,
	"date":         columnDate,
	"as_of":        columnDate,
	"değişim":      columnChange,
	"degisim":      columnChange,
	"daily_return": columnChange,
}

var dateLayouts = []string{"2006-01-02", "02.01.2006", "02/01/2006"}

// ParseCSV читает данные фондов из CSV. Разделитель (запятая или точка с запятой)
// определяется по строке заголовка. Колонки кода, названия и изменения обязательны,
// колонка даты - нет.
func ParseCSV(r io.Reader) ([]Observation, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("reading fund csv: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = detectDelimiter(string(head))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty csv", ErrMalformedData)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrMalformedData, err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if col, ok := headerAliases[key]; ok {
			idx[col] = i
		}
	}
	for _, required := range []string{columnCode, columnName, columnChange} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%w: missing %s column", ErrMalformedData, required)
		}
	}

	var out []Observation
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedData, line, err)
		}

		code := strings.TrimSpace(field(record, idx[columnCode]))
		if code == "" {
			continue
		}

		change, err := ParseChange(field(record, idx[columnChange]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: fund %s: %v", ErrMalformedData, line, code, err)
		}

		obs := Observation{
			Code:        code,
			Name:        strings.TrimSpace(field(record, idx[columnName])),
			DailyReturn: change,
		}
		if i, ok := idx[columnDate]; ok {
			if raw := strings.TrimSpace(field(record, i)); raw != "" {
				d, err := parseDate(raw)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: fund %s: %v", ErrMalformedData, line, code, err)
				}
				obs.AsOf = d
			}
		}
		out = append(out, obs)
	}

	return out, nil
}

// ParseChange переводит значение дневного изменения в доли.
// Допускается десятичная запятая ("0,00154"). Знак процента означает, что значение
// указано в процентах: "%0,154" и "0,154%" дают 0.00154.
func ParseChange(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	percent := strings.Contains(s, "%")
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, fmt.Errorf("empty change value")
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid change value %q: %w", raw, err)
	}
	if percent {
		d = d.Div(decimal.NewFromInt(100))
	}
	return d.InexactFloat64(), nil
}

func parseDate(raw string) (civil.Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return civil.DateOf(t), nil
		}
	}
	return civil.Date{}, fmt.Errorf("invalid date %q", raw)
}

func detectDelimiter(head string) rune {
	first := head
	if i := strings.IndexByte(head, '\n'); i >= 0 {
		first = head[:i]
	}
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
