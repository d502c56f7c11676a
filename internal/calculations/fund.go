package calculations

import (
	"math"

	"github.com/cloud-ru/deposit-fund-compare-go/pkg/utils"
)

// ComputeFund рассчитывает доходность фонда по последней дневной доходности.
// Доходность фонда считается уже очищенной от комиссий и налогов.
func ComputeFund(principal float64, durationDays int, dailyReturn float64) (FundResult, error) {
	if err := checkPrincipal(principal); err != nil {
		return FundResult{}, err
	}
	if err := checkDuration(durationDays); err != nil {
		return FundResult{}, err
	}
	if err := checkDailyReturn(dailyReturn); err != nil {
		return FundResult{}, err
	}

	finalAmount := principal * math.Pow(1.0+dailyReturn, float64(durationDays))

	return FundResult{
		Principal:         principal,
		DurationDays:      durationDays,
		DailyReturn:       dailyReturn,
		DailyReturnAmount: principal * dailyReturn,
		FinalAmount:       finalAmount,
		TotalReturn:       finalAmount - principal,
		TotalReturnRate:   (finalAmount/principal - 1.0) * 100,
	}, nil
}

func checkDailyReturn(dailyReturn float64) error {
	if !utils.IsFinite(dailyReturn) {
		return inputError("daily_return", dailyReturn, "значение не является конечным числом")
	}
	return nil
}
