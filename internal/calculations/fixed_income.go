package calculations

import (
	"math"

	"github.com/cloud-ru/deposit-fund-compare-go/pkg/utils"
)

// ComputeFixedIncome рассчитывает доходность депозита или репо с ежедневной капитализацией.
//
// Проценты капитализируются ежедневно, комиссия начисляется линейно, БСМВ берется
// с комиссии, а стопаж - с валовой доходности до вычета комиссии.
func ComputeFixedIncome(principal float64, durationDays int, model RateModel) (FixedIncomeResult, error) {
	if err := checkPrincipal(principal); err != nil {
		return FixedIncomeResult{}, err
	}
	if err := checkDuration(durationDays); err != nil {
		return FixedIncomeResult{}, err
	}
	if err := model.Validate(); err != nil {
		return FixedIncomeResult{}, err
	}

	n := float64(durationDays)
	futureValue := principal * math.Pow(1.0+model.DailyInterestRate(), n)

	gross := futureValue - principal
	commission := principal * model.DailyCommissionRate() * n
	transactionTax := commission * TransactionTaxRate
	withholding := gross * model.WithholdingTaxRate()
	net := gross - commission - transactionTax - withholding

	return FixedIncomeResult{
		Principal:      principal,
		DurationDays:   durationDays,
		GrossReturn:    gross,
		CommissionCost: commission,
		TransactionTax: transactionTax,
		WithholdingTax: withholding,
		NetReturn:      net,
		FinalBalance:   principal + net,
	}, nil
}

func checkPrincipal(principal float64) error {
	if !utils.IsFinite(principal) {
		return inputError("principal", principal, "значение не является конечным числом")
	}
	if principal <= 0 {
		return inputError("principal", principal, "значение должно быть больше нуля")
	}
	return nil
}

func checkDuration(durationDays int) error {
	if durationDays < 0 {
		return inputError("duration_days", float64(durationDays), "значение не должно быть отрицательным")
	}
	return nil
}
