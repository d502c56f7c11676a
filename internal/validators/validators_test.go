package validators

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cloud-ru/deposit-fund-compare-go/internal/calculations"
	"github.com/cloud-ru/deposit-fund-compare-go/internal/config"
)

func TestValidators(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name      string
		validator func(*config.Config, interface{}) error
		value     interface{}
		wantError bool
		wantRate  bool
	}{
		{
			name:      "valid principal",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     10000.0,
			wantError: false,
		},
		{
			name:      "principal below minimum",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     0.5,
			wantError: true,
		},
		{
			name:      "principal above maximum",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     2e7,
			wantError: true,
		},
		{
			name:      "principal NaN",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     math.NaN(),
			wantError: true,
		},
		{
			name:      "zero duration",
			validator: func(cfg *config.Config, v interface{}) error { return CheckDurationDays(cfg, v.(int)) },
			value:     0,
			wantError: false,
		},
		{
			name:      "negative duration",
			validator: func(cfg *config.Config, v interface{}) error { return CheckDurationDays(cfg, v.(int)) },
			value:     -1,
			wantError: true,
		},
		{
			name:      "duration above maximum",
			validator: func(cfg *config.Config, v interface{}) error { return CheckDurationDays(cfg, v.(int)) },
			value:     3651,
			wantError: true,
		},
		{
			name:      "simulation within limit",
			validator: func(cfg *config.Config, v interface{}) error { return CheckSimulationDays(cfg, v.(int)) },
			value:     365,
			wantError: false,
		},
		{
			name:      "simulation beyond limit",
			validator: func(cfg *config.Config, v interface{}) error { return CheckSimulationDays(cfg, v.(int)) },
			value:     366,
			wantError: true,
		},
		{
			name:      "valid interest rate",
			validator: func(cfg *config.Config, v interface{}) error { return CheckInterestRate(cfg, v.(float64)) },
			value:     45.5,
			wantError: false,
		},
		{
			name:      "interest rate above bound",
			validator: func(cfg *config.Config, v interface{}) error { return CheckInterestRate(cfg, v.(float64)) },
			value:     91.0,
			wantError: true,
			wantRate:  true,
		},
		{
			name:      "negative commission",
			validator: func(cfg *config.Config, v interface{}) error { return CheckCommissionRate(cfg, v.(float64)) },
			value:     -0.1,
			wantError: true,
			wantRate:  true,
		},
		{
			name:      "withholding at bound",
			validator: func(cfg *config.Config, v interface{}) error { return CheckWithholdingRate(cfg, v.(float64)) },
			value:     50.0,
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(cfg, tt.value)
			if (err != nil) != tt.wantError {
				t.Fatalf("validator error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, calculations.ErrInvalidInput) {
				t.Errorf("expected error to wrap ErrInvalidInput, got %v", err)
			}
			if tt.wantRate && !errors.Is(err, calculations.ErrInvalidRate) {
				t.Errorf("expected error to wrap ErrInvalidRate, got %v", err)
			}
		})
	}
}

func TestCheckRateModel(t *testing.T) {
	cfg := config.Default()

	if err := CheckRateModel(cfg, cfg.RepoDefaults); err != nil {
		t.Errorf("default repo model rejected: %v", err)
	}

	bad := cfg.DepositDefaults
	bad.AnnualCommissionRatePercent = 6
	if err := CheckRateModel(cfg, bad); !errors.Is(err, calculations.ErrInvalidRate) {
		t.Errorf("expected ErrInvalidRate, got %v", err)
	}
}

func TestCheckDailyReturn(t *testing.T) {
	tests := []struct {
		value     float64
		wantError bool
	}{
		{value: 0.0012},
		{value: 0},
		{value: -0.02},
		{value: -1, wantError: true},
		{value: math.Inf(1), wantError: true},
	}

	for _, tt := range tests {
		if err := CheckDailyReturn(tt.value); (err != nil) != tt.wantError {
			t.Errorf("CheckDailyReturn(%v) error = %v, wantError %v", tt.value, err, tt.wantError)
		}
	}
}

func TestCheckFundCode(t *testing.T) {
	valid := []string{"AFT", "PPF", "TI1", "IPB12"}
	invalid := []string{"", "a", "aft", "AF-T", "TOOLONGCODE"}

	for _, code := range valid {
		if err := CheckFundCode(code); err != nil {
			t.Errorf("CheckFundCode(%q) unexpected error: %v", code, err)
		}
	}
	for _, code := range invalid {
		if err := CheckFundCode(code); err == nil {
			t.Errorf("CheckFundCode(%q) expected error", code)
		}
	}
}

func TestValidatorMessages(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"below minimum", CheckPrincipal(cfg, 0), "principal: значение должно быть ≥ 1, получено 0"},
		{"above maximum", CheckInterestRate(cfg, 500), "annual_interest_rate_percent: значение слишком велико"},
		{"not finite", CheckWithholdingRate(cfg, math.Inf(1)), "значение не является конечным числом"},
		{"int range", CheckSimulationDays(cfg, 400), "duration_days: значение должно быть в диапазоне [0; 365], получено 400"},
		{"daily return", CheckDailyReturn(-1), "daily_return: значение должно быть больше -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(tt.err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", tt.err.Error(), tt.want)
			}
		})
	}
}
