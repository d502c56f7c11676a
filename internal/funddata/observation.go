// Package funddata загружает данные фондов (код, название, дата, последняя
// дневная доходность) из удаленного или локального CSV и предоставляет их
// как набор, индексированный по коду фонда.
package funddata

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/cloud-ru/deposit-fund-compare-go/internal/calculations"
)

var (
	// ErrFundNotFound - фонда с таким кодом нет в наборе
	ErrFundNotFound = errors.New("фонд не найден")
	// ErrDuplicateFund - код фонда встречается в наборе дважды
	ErrDuplicateFund = errors.New("duplicate fund code")
	// ErrMalformedData - CSV не удалось разобрать
	ErrMalformedData = errors.New("malformed fund data")
	// ErrNoData - ни один источник не вернул данных
	ErrNoData = errors.New("no fund data available")
)

// MissingFundError сообщает о запрошенном коде фонда, которого нет в наборе
type MissingFundError struct {
	Code string
}

func (e *MissingFundError) Error() string {
	return fmt.Sprintf("фонд %q не найден", e.Code)
}

func (e *MissingFundError) Unwrap() error { return ErrFundNotFound }

// Observation - последнее известное состояние фонда
type Observation struct {
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	AsOf        civil.Date `json:"as_of"`
	DailyReturn float64    `json:"daily_return"`
}

// Fund преобразует наблюдение во входные данные калькулятора
func (o Observation) Fund() calculations.Fund {
	return calculations.Fund{
		Code:        o.Code,
		Name:        o.Name,
		DailyReturn: o.DailyReturn,
	}
}
