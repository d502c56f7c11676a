package calculations

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при неверных входных данных расчета
	ErrInvalidInput = errors.New("неверные входные данные")

	// ErrInvalidRate возвращается при неверной ставке (отрицательной или не числе)
	ErrInvalidRate = fmt.Errorf("%w: неверная ставка", ErrInvalidInput)
)

// InputError описывает конкретный неверный параметр
type InputError struct {
	Field  string
	Value  float64
	Reason string
	rate   bool
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s (получено %v)", e.Field, e.Reason, e.Value)
}

// Unwrap позволяет сопоставлять ошибку с ErrInvalidInput и ErrInvalidRate через errors.Is
func (e *InputError) Unwrap() error {
	if e.rate {
		return ErrInvalidRate
	}
	return ErrInvalidInput
}

func inputError(field string, value float64, reason string) error {
	return &InputError{Field: field, Value: value, Reason: reason}
}

func rateError(field string, value float64, reason string) error {
	return &InputError{Field: field, Value: value, Reason: reason, rate: true}
}
