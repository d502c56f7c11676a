package validators

import (
	"fmt"
	"regexp"

	"github.com/cloud-ru/deposit-fund-compare-go/internal/calculations"
	"github.com/cloud-ru/deposit-fund-compare-go/internal/config"
	"github.com/cloud-ru/deposit-fund-compare-go/pkg/utils"
)

var fundCodePattern = regexp.MustCompile(`^[A-Z0-9]{2,8}$`)

// ValidateNumberRange проверяет, что число конечно и лежит в [min; max]
func ValidateNumberRange(name string, value float64, minInclusive, maxInclusive float64) error {
	return numberRange(calculations.ErrInvalidInput, name, value, minInclusive, maxInclusive)
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%w: %s: значение должно быть в диапазоне [%d; %d], получено %d",
			calculations.ErrInvalidInput, name, minInclusive, maxInclusive, value)
	}
	return nil
}

func numberRange(sentinel error, name string, value, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%w: %s: значение не является конечным числом", sentinel, name)
	}
	if value < minInclusive {
		return fmt.Errorf("%w: %s: значение должно быть ≥ %g, получено %g", sentinel, name, minInclusive, value)
	}
	if value > maxInclusive {
		return fmt.Errorf("%w: %s: значение слишком велико (>%g), получено %g", sentinel, name, maxInclusive, value)
	}
	return nil
}

// CheckPrincipal проверяет сумму вложения
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidateNumberRange("principal", principal, cfg.MinPrincipal, cfg.MaxPrincipal)
}

// CheckDurationDays проверяет срок в днях
func CheckDurationDays(cfg *config.Config, days int) error {
	return ValidateIntRange("duration_days", days, 0, cfg.MaxDurationDays)
}

// CheckSimulationDays проверяет срок, для которого строится график роста
func CheckSimulationDays(cfg *config.Config, days int) error {
	return ValidateIntRange("duration_days", days, 0, cfg.SimulationDayLimit)
}

// CheckInterestRate проверяет годовую процентную ставку
func CheckInterestRate(cfg *config.Config, rate float64) error {
	return numberRange(calculations.ErrInvalidRate, "annual_interest_rate_percent", rate, 0, cfg.MaxInterestRate)
}

// CheckCommissionRate проверяет годовую комиссию
func CheckCommissionRate(cfg *config.Config, rate float64) error {
	return numberRange(calculations.ErrInvalidRate, "annual_commission_rate_percent", rate, 0, cfg.MaxCommissionRate)
}

// CheckWithholdingRate проверяет ставку стопажа
func CheckWithholdingRate(cfg *config.Config, rate float64) error {
	return numberRange(calculations.ErrInvalidRate, "withholding_tax_rate_percent", rate, 0, cfg.MaxWithholdingRate)
}

// CheckRateModel проверяет все ставки инструмента
func CheckRateModel(cfg *config.Config, m calculations.RateModel) error {
	if err := CheckInterestRate(cfg, m.AnnualInterestRatePercent); err != nil {
		return err
	}
	if err := CheckCommissionRate(cfg, m.AnnualCommissionRatePercent); err != nil {
		return err
	}
	return CheckWithholdingRate(cfg, m.WithholdingTaxRatePercent)
}

// CheckDailyReturn проверяет дневную доходность фонда (в долях, может быть отрицательной)
func CheckDailyReturn(dailyReturn float64) error {
	if !utils.IsFinite(dailyReturn) {
		return fmt.Errorf("%w: daily_return: значение не является конечным числом", calculations.ErrInvalidInput)
	}
	if dailyReturn <= -1 {
		return fmt.Errorf("%w: daily_return: значение должно быть больше -1, получено %g", calculations.ErrInvalidInput, dailyReturn)
	}
	return nil
}

// IsFundCode проверяет формат кода фонда (заглавные латинские буквы и цифры)
func IsFundCode(code string) bool {
	return fundCodePattern.MatchString(code)
}

// CheckFundCode проверяет код фонда
func CheckFundCode(code string) error {
	if !IsFundCode(code) {
		return fmt.Errorf("%w: fund_code %q: ожидается от 2 до 8 заглавных латинских букв или цифр", calculations.ErrInvalidInput, code)
	}
	return nil
}
