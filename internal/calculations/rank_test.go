package calculations

import (
	"errors"
	"testing"

	"github.com/cloud-ru/deposit-fund-compare-go/pkg/utils"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name        string
		returns     []InstrumentReturn
		wantBest    string
		wantError   bool
		checkResult func(*testing.T, ComparisonResult)
	}{
		{
			name: "positive returns",
			returns: []InstrumentReturn{
				{ID: InstrumentDeposit, NetReturn: 100},
				{ID: InstrumentRepo, NetReturn: 80},
				{ID: InstrumentFund, NetReturn: 120},
			},
			wantBest: InstrumentFund,
			checkResult: func(t *testing.T, r ComparisonResult) {
				want := map[string]float64{InstrumentDeposit: 100.0 / 120 * 100, InstrumentRepo: 80.0 / 120 * 100, InstrumentFund: 100}
				for _, inst := range r.Instruments {
					if !utils.WithinTolerance(inst.RelativePercent, want[inst.ID], 1e-9) {
						t.Errorf("%s relative = %f, want %f", inst.ID, inst.RelativePercent, want[inst.ID])
					}
					if !utils.WithinTolerance(inst.DifferenceFromBestPercent, want[inst.ID]-100, 1e-9) {
						t.Errorf("%s difference = %f, want %f", inst.ID, inst.DifferenceFromBestPercent, want[inst.ID]-100)
					}
				}
				if r.BestNetReturn != 120 {
					t.Errorf("best net return = %f, want 120", r.BestNetReturn)
				}
			},
		},
		{
			name: "tie goes to first seen",
			returns: []InstrumentReturn{
				{ID: InstrumentRepo, NetReturn: 50},
				{ID: InstrumentDeposit, NetReturn: 75},
				{ID: InstrumentFund, NetReturn: 75},
			},
			wantBest: InstrumentDeposit,
			checkResult: func(t *testing.T, r ComparisonResult) {
				bestCount := 0
				for _, inst := range r.Instruments {
					if inst.IsBest {
						bestCount++
					}
				}
				if bestCount != 1 {
					t.Errorf("expected exactly one best instrument, got %d", bestCount)
				}
				fund, _ := r.Relative(InstrumentFund)
				if fund.RelativePercent != 100 || fund.IsBest {
					t.Errorf("tied fund should be 100%% but not best, got %+v", fund)
				}
			},
		},
		{
			name: "all negative falls back to 100 percent",
			returns: []InstrumentReturn{
				{ID: InstrumentDeposit, NetReturn: -10},
				{ID: InstrumentRepo, NetReturn: -2},
				{ID: InstrumentFund, NetReturn: -30},
			},
			wantBest: InstrumentRepo,
			checkResult: func(t *testing.T, r ComparisonResult) {
				for _, inst := range r.Instruments {
					if inst.RelativePercent != 100 {
						t.Errorf("%s relative = %f, want 100", inst.ID, inst.RelativePercent)
					}
				}
			},
		},
		{
			name: "best is zero",
			returns: []InstrumentReturn{
				{ID: InstrumentDeposit, NetReturn: 0},
				{ID: InstrumentFund, NetReturn: -5},
			},
			wantBest: InstrumentDeposit,
			checkResult: func(t *testing.T, r ComparisonResult) {
				for _, inst := range r.Instruments {
					if inst.RelativePercent != 100 || inst.DifferenceFromBestPercent != 0 {
						t.Errorf("%s: relative = %f difference = %f, want 100 and 0", inst.ID, inst.RelativePercent, inst.DifferenceFromBestPercent)
					}
				}
			},
		},
		{
			name: "mixed signs keep negative relative",
			returns: []InstrumentReturn{
				{ID: InstrumentDeposit, NetReturn: 200},
				{ID: InstrumentFund, NetReturn: -50},
			},
			wantBest: InstrumentDeposit,
			checkResult: func(t *testing.T, r ComparisonResult) {
				fund, ok := r.Relative(InstrumentFund)
				if !ok {
					t.Fatal("fund missing from ranking")
				}
				if fund.RelativePercent != -25 {
					t.Errorf("fund relative = %f, want -25", fund.RelativePercent)
				}
			},
		},
		{
			name:      "empty input",
			returns:   nil,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Rank(tt.returns)
			if (err != nil) != tt.wantError {
				t.Fatalf("Rank() error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if result.BestInstrumentID != tt.wantBest {
				t.Errorf("best = %s, want %s", result.BestInstrumentID, tt.wantBest)
			}
			if len(result.Instruments) != len(tt.returns) {
				t.Fatalf("expected %d ranked instruments, got %d", len(tt.returns), len(result.Instruments))
			}
			for i, inst := range result.Instruments {
				if inst.ID != tt.returns[i].ID {
					t.Errorf("instrument %d = %s, want input order %s", i, inst.ID, tt.returns[i].ID)
				}
			}
			if tt.checkResult != nil {
				tt.checkResult(t, result)
			}
		})
	}
}
