package calculations

import (
	"fmt"

	"github.com/cloud-ru/deposit-fund-compare-go/pkg/utils"
)

const (
	// DaysPerYear используется для перевода годовой простой ставки в дневную
	DaysPerYear = 365.0

	// TransactionTaxRate - БСМВ, 5% от комиссии
	TransactionTaxRate = 0.05

	// Рекомендуемые (интерфейсные) верхние границы ставок в процентах
	AdvisoryMaxInterestPercent    = 90.0
	AdvisoryMaxCommissionPercent  = 5.0
	AdvisoryMaxWithholdingPercent = 50.0
)

// RateModel хранит параметры ставок одного инструмента с фиксированной доходностью.
// БСМВ не настраивается и всегда равен TransactionTaxRate.
type RateModel struct {
	AnnualInterestRatePercent   float64 `json:"annual_interest_rate_percent"`
	AnnualCommissionRatePercent float64 `json:"annual_commission_rate_percent"`
	WithholdingTaxRatePercent   float64 `json:"withholding_tax_rate_percent"`
}

// NewRateModel создает модель ставок. Отрицательные значения недопустимы,
// верхние границы не проверяются (см. AdvisoryWarnings).
func NewRateModel(annualInterestPercent, annualCommissionPercent, withholdingTaxPercent float64) (RateModel, error) {
	m := RateModel{
		AnnualInterestRatePercent:   annualInterestPercent,
		AnnualCommissionRatePercent: annualCommissionPercent,
		WithholdingTaxRatePercent:   withholdingTaxPercent,
	}
	if err := m.Validate(); err != nil {
		return RateModel{}, err
	}
	return m, nil
}

// Validate проверяет, что все ставки конечны и неотрицательны
func (m RateModel) Validate() error {
	inputs := []struct {
		field string
		value float64
	}{
		{"annual_interest_rate_percent", m.AnnualInterestRatePercent},
		{"annual_commission_rate_percent", m.AnnualCommissionRatePercent},
		{"withholding_tax_rate_percent", m.WithholdingTaxRatePercent},
	}
	for _, in := range inputs {
		if !utils.IsFinite(in.value) {
			return rateError(in.field, in.value, "значение не является конечным числом")
		}
		if in.value < 0 {
			return rateError(in.field, in.value, "значение не должно быть отрицательным")
		}
	}
	return nil
}

// DailyInterestRate возвращает дневную ставку процента в долях
func (m RateModel) DailyInterestRate() float64 {
	return m.AnnualInterestRatePercent / 100.0 / DaysPerYear
}

// DailyCommissionRate возвращает дневную ставку комиссии в долях
func (m RateModel) DailyCommissionRate() float64 {
	return m.AnnualCommissionRatePercent / 100.0 / DaysPerYear
}

// WithholdingTaxRate возвращает ставку стопажа в долях
func (m RateModel) WithholdingTaxRate() float64 {
	return m.WithholdingTaxRatePercent / 100.0
}

// AdvisoryWarnings перечисляет превышения рекомендуемых границ
func (m RateModel) AdvisoryWarnings() []string {
	var warnings []string
	if m.AnnualInterestRatePercent > AdvisoryMaxInterestPercent {
		warnings = append(warnings, fmt.Sprintf("annual interest rate %.2f%% exceeds %.0f%%",
			m.AnnualInterestRatePercent, AdvisoryMaxInterestPercent))
	}
	if m.AnnualCommissionRatePercent > AdvisoryMaxCommissionPercent {
		warnings = append(warnings, fmt.Sprintf("annual commission rate %.2f%% exceeds %.0f%%",
			m.AnnualCommissionRatePercent, AdvisoryMaxCommissionPercent))
	}
	if m.WithholdingTaxRatePercent > AdvisoryMaxWithholdingPercent {
		warnings = append(warnings, fmt.Sprintf("withholding tax rate %.2f%% exceeds %.0f%%",
			m.WithholdingTaxRatePercent, AdvisoryMaxWithholdingPercent))
	}
	return warnings
}
