package calculations

import (
	"errors"
	"math"
	"testing"

	"github.com/cloud-ru/deposit-fund-compare-go/pkg/utils"
)

func mustRateModel(t *testing.T, interest, commission, withholding float64) RateModel {
	t.Helper()
	m, err := NewRateModel(interest, commission, withholding)
	if err != nil {
		t.Fatalf("NewRateModel(%v, %v, %v) error = %v", interest, commission, withholding, err)
	}
	return m
}

func TestComputeFixedIncome(t *testing.T) {
	tests := []struct {
		name         string
		principal    float64
		durationDays int
		model        RateModel
		wantError    bool
		checkResult  func(*testing.T, FixedIncomeResult)
	}{
		{
			name:         "one day reference scenario",
			principal:    10000,
			durationDays: 1,
			model:        RateModel{AnnualInterestRatePercent: 45.5, AnnualCommissionRatePercent: 1.5, WithholdingTaxRatePercent: 15},
			checkResult: func(t *testing.T, r FixedIncomeResult) {
				checks := []struct {
					field string
					got   float64
					want  float64
				}{
					{"gross_return", r.GrossReturn, 12.4658},
					{"commission_cost", r.CommissionCost, 0.4110},
					{"transaction_tax", r.TransactionTax, 0.02055},
					{"withholding_tax", r.WithholdingTax, 1.8699},
					{"net_return", r.NetReturn, 10.164},
					{"final_balance", r.FinalBalance, 10010.164},
				}
				for _, c := range checks {
					if !utils.WithinTolerance(c.got, c.want, 0.01) {
						t.Errorf("%s = %f, want %f", c.field, c.got, c.want)
					}
				}
			},
		},
		{
			name:         "zero duration is identity",
			principal:    25000,
			durationDays: 0,
			model:        RateModel{AnnualInterestRatePercent: 50, AnnualCommissionRatePercent: 5, WithholdingTaxRatePercent: 15},
			checkResult: func(t *testing.T, r FixedIncomeResult) {
				if r.GrossReturn != 0 || r.CommissionCost != 0 || r.NetReturn != 0 {
					t.Errorf("expected zero returns, got gross=%f commission=%f net=%f", r.GrossReturn, r.CommissionCost, r.NetReturn)
				}
				if r.FinalBalance != 25000 {
					t.Errorf("expected final balance 25000, got %f", r.FinalBalance)
				}
			},
		},
		{
			name:         "daily compounding beats simple interest",
			principal:    100000,
			durationDays: 365,
			model:        RateModel{AnnualInterestRatePercent: 40},
			checkResult: func(t *testing.T, r FixedIncomeResult) {
				want := 100000 * (math.Pow(1+0.40/365, 365) - 1)
				if !utils.WithinRelative(r.GrossReturn, want, 1e-12) {
					t.Errorf("gross return = %f, want %f", r.GrossReturn, want)
				}
				if r.GrossReturn <= 40000 {
					t.Errorf("compounded gross return %f should exceed simple interest 40000", r.GrossReturn)
				}
			},
		},
		{
			name:         "commission accrues linearly",
			principal:    50000,
			durationDays: 90,
			model:        RateModel{AnnualInterestRatePercent: 30, AnnualCommissionRatePercent: 2},
			checkResult: func(t *testing.T, r FixedIncomeResult) {
				want := 50000 * 0.02 / 365 * 90
				if !utils.WithinRelative(r.CommissionCost, want, 1e-12) {
					t.Errorf("commission = %f, want %f", r.CommissionCost, want)
				}
				if !utils.WithinRelative(r.TransactionTax, want*0.05, 1e-12) {
					t.Errorf("transaction tax = %f, want %f", r.TransactionTax, want*0.05)
				}
			},
		},
		{
			name:         "withholding is levied on gross return",
			principal:    10000,
			durationDays: 30,
			model:        RateModel{AnnualInterestRatePercent: 45, AnnualCommissionRatePercent: 3, WithholdingTaxRatePercent: 10},
			checkResult: func(t *testing.T, r FixedIncomeResult) {
				if !utils.WithinRelative(r.WithholdingTax, r.GrossReturn*0.10, 1e-12) {
					t.Errorf("withholding = %f, want %f", r.WithholdingTax, r.GrossReturn*0.10)
				}
				onNet := (r.GrossReturn - r.CommissionCost - r.TransactionTax) * 0.10
				if r.WithholdingTax <= onNet {
					t.Errorf("withholding %f must not be reduced by commission (net-based would be %f)", r.WithholdingTax, onNet)
				}
			},
		},
		{
			name:         "negative net return is not clamped",
			principal:    10000,
			durationDays: 10,
			model:        RateModel{AnnualInterestRatePercent: 1, AnnualCommissionRatePercent: 5, WithholdingTaxRatePercent: 15},
			checkResult: func(t *testing.T, r FixedIncomeResult) {
				if r.NetReturn >= 0 {
					t.Errorf("expected negative net return, got %f", r.NetReturn)
				}
				if r.FinalBalance >= r.Principal {
					t.Errorf("final balance %f should be below principal", r.FinalBalance)
				}
			},
		},
		{
			name:         "rates above advisory bounds are accepted",
			principal:    1000,
			durationDays: 7,
			model:        RateModel{AnnualInterestRatePercent: 150, AnnualCommissionRatePercent: 10, WithholdingTaxRatePercent: 60},
			checkResult: func(t *testing.T, r FixedIncomeResult) {
				if r.GrossReturn <= 0 {
					t.Errorf("expected positive gross return, got %f", r.GrossReturn)
				}
			},
		},
		{
			name:         "zero principal",
			principal:    0,
			durationDays: 30,
			model:        RateModel{AnnualInterestRatePercent: 45},
			wantError:    true,
		},
		{
			name:         "negative duration",
			principal:    1000,
			durationDays: -1,
			model:        RateModel{AnnualInterestRatePercent: 45},
			wantError:    true,
		},
		{
			name:         "negative rate in literal model",
			principal:    1000,
			durationDays: 1,
			model:        RateModel{AnnualInterestRatePercent: 45, AnnualCommissionRatePercent: -1},
			wantError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeFixedIncome(tt.principal, tt.durationDays, tt.model)
			if (err != nil) != tt.wantError {
				t.Errorf("ComputeFixedIncome() error = %v, wantError %v", err, tt.wantError)
				return
			}
			if tt.wantError {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if tt.checkResult != nil {
				tt.checkResult(t, result)
			}
		})
	}
}

func TestComputeFixedIncomeZeroDurationIdentity(t *testing.T) {
	principals := []float64{1, 1000, 10000, 1234567.89}
	models := []RateModel{
		{},
		{AnnualInterestRatePercent: 45.5, AnnualCommissionRatePercent: 1.5, WithholdingTaxRatePercent: 15},
		{AnnualInterestRatePercent: 90, AnnualCommissionRatePercent: 5, WithholdingTaxRatePercent: 50},
	}

	for _, p := range principals {
		for _, m := range models {
			r, err := ComputeFixedIncome(p, 0, m)
			if err != nil {
				t.Fatalf("ComputeFixedIncome(%v, 0, %+v) error = %v", p, m, err)
			}
			if r.NetReturn != 0 {
				t.Errorf("principal %v model %+v: net return = %v, want 0", p, m, r.NetReturn)
			}
			if r.FinalBalance != p {
				t.Errorf("principal %v model %+v: final balance = %v, want %v", p, m, r.FinalBalance, p)
			}
		}
	}
}

func TestComputeFixedIncomeGrossIncreasesWithDuration(t *testing.T) {
	model := mustRateModel(t, 45.5, 1.5, 15)

	prev := -1.0
	for days := 0; days <= 400; days++ {
		r, err := ComputeFixedIncome(10000, days, model)
		if err != nil {
			t.Fatalf("ComputeFixedIncome() error = %v", err)
		}
		if r.GrossReturn <= prev {
			t.Fatalf("gross return not strictly increasing at day %d: %f <= %f", days, r.GrossReturn, prev)
		}
		prev = r.GrossReturn
	}
}

func TestComputeFixedIncomeNetComposition(t *testing.T) {
	model := mustRateModel(t, 42, 2.5, 15)

	r, err := ComputeFixedIncome(75000, 45, model)
	if err != nil {
		t.Fatalf("ComputeFixedIncome() error = %v", err)
	}

	want := r.GrossReturn - r.CommissionCost - r.TransactionTax - r.WithholdingTax
	if r.NetReturn != want {
		t.Errorf("net return = %f, want %f", r.NetReturn, want)
	}
	if r.FinalBalance != r.Principal+r.NetReturn {
		t.Errorf("final balance = %f, want %f", r.FinalBalance, r.Principal+r.NetReturn)
	}
}
