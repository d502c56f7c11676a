package tools

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/deposit-fund-compare-go/internal/calculations"
	"github.com/cloud-ru/deposit-fund-compare-go/internal/config"
	"github.com/cloud-ru/deposit-fund-compare-go/internal/funddata"
	"github.com/cloud-ru/deposit-fund-compare-go/internal/validators"
	"github.com/cloud-ru/deposit-fund-compare-go/pkg/utils"
)

// customFundCode - код фонда, заданного дневной доходностью без справочника
const customFundCode = "CUSTOM"

// FixedIncomeResponse - результат инструмента fixed_income_return
type FixedIncomeResponse struct {
	Instrument string                 `json:"instrument"`
	Rates      calculations.RateModel `json:"rates"`
	calculations.FixedIncomeResult
	Warnings []string `json:"warnings,omitempty"`
}

// FundResponse - результат инструмента fund_return
type FundResponse struct {
	Fund calculations.Fund `json:"fund"`
	calculations.FundResult
}

// GrowthResponse - результат инструмента growth_simulation
type GrowthResponse struct {
	Instrument string                     `json:"instrument"`
	Points     []calculations.GrowthPoint `json:"points"`
}

// InstrumentComparisonResponse - результат инструмента compare_instruments
type InstrumentComparisonResponse struct {
	*calculations.InstrumentComparison
	Warnings []string `json:"warnings,omitempty"`
}

// FundListResponse - результат инструмента list_funds
type FundListResponse struct {
	Count int                    `json:"count"`
	Funds []funddata.Observation `json:"funds"`
}

// FixedIncomeReturnHandler считает доходность овернайт-депозита или репо
func FixedIncomeReturnHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, c := startCall(ctx, tracer, ToolFixedIncomeReturn)
		defer c.end()

		instrument, err := optionalStringParam(params, "instrument")
		if err != nil {
			return nil, c.invalid(err)
		}
		if instrument == "" {
			instrument = calculations.InstrumentDeposit
		}
		base, err := defaultsFor(cfg, instrument)
		if err != nil {
			return nil, c.invalid(err)
		}
		principal, err := floatParam(params, "principal")
		if err != nil {
			return nil, c.invalid(err)
		}
		days, err := intParam(params, "duration_days")
		if err != nil {
			return nil, c.invalid(err)
		}
		model, err := rateParams(params, base)
		if err != nil {
			return nil, c.invalid(err)
		}

		c.span.SetAttributes(
			attribute.String("instrument", instrument),
			attribute.Float64("principal", principal),
			attribute.Int("duration_days", days),
			attribute.Float64("annual_interest_rate_percent", model.AnnualInterestRatePercent),
			attribute.Float64("annual_commission_rate_percent", model.AnnualCommissionRatePercent),
			attribute.Float64("withholding_tax_rate_percent", model.WithholdingTaxRatePercent),
		)

		if err := validators.CheckPrincipal(cfg, principal); err != nil {
			return nil, c.invalid(err)
		}
		if err := validators.CheckDurationDays(cfg, days); err != nil {
			return nil, c.invalid(err)
		}
		if err := validators.CheckRateModel(cfg, model); err != nil {
			return nil, c.invalid(err)
		}

		result, err := calculations.ComputeFixedIncome(principal, days, model)
		if err != nil {
			return nil, c.failed(err)
		}

		c.succeeded(
			attribute.Float64("gross_return", utils.Round2(result.GrossReturn)),
			attribute.Float64("net_return", utils.Round2(result.NetReturn)),
		)

		return FixedIncomeResponse{
			Instrument:        instrument,
			Rates:             model,
			FixedIncomeResult: result,
			Warnings:          model.AdvisoryWarnings(),
		}, nil
	}
}

// FundReturnHandler считает доходность фонда по коду или по заданной дневной доходности
func FundReturnHandler(cfg *config.Config, tracer trace.Tracer, store *funddata.Store) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, c := startCall(ctx, tracer, ToolFundReturn)
		defer c.end()

		principal, err := floatParam(params, "principal")
		if err != nil {
			return nil, c.invalid(err)
		}
		days, err := intParam(params, "duration_days")
		if err != nil {
			return nil, c.invalid(err)
		}

		c.span.SetAttributes(
			attribute.Float64("principal", principal),
			attribute.Int("duration_days", days),
		)

		if err := validators.CheckPrincipal(cfg, principal); err != nil {
			return nil, c.invalid(err)
		}
		if err := validators.CheckDurationDays(cfg, days); err != nil {
			return nil, c.invalid(err)
		}

		fund, err := resolveFund(ctx, store, params)
		if err != nil {
			return nil, c.fundError(err)
		}
		c.span.SetAttributes(
			attribute.String("fund_code", fund.Code),
			attribute.Float64("daily_return", fund.DailyReturn),
		)

		result, err := calculations.ComputeFund(principal, days, fund.DailyReturn)
		if err != nil {
			return nil, c.failed(err)
		}

		c.succeeded(attribute.Float64("total_return", utils.Round2(result.TotalReturn)))
		return FundResponse{Fund: fund, FundResult: result}, nil
	}
}

// GrowthSimulationHandler строит график роста счета одного инструмента
func GrowthSimulationHandler(cfg *config.Config, tracer trace.Tracer, store *funddata.Store) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, c := startCall(ctx, tracer, ToolGrowthSimulation)
		defer c.end()

		instrument, err := optionalStringParam(params, "instrument")
		if err != nil {
			return nil, c.invalid(err)
		}
		principal, err := floatParam(params, "principal")
		if err != nil {
			return nil, c.invalid(err)
		}
		days, err := intParam(params, "duration_days")
		if err != nil {
			return nil, c.invalid(err)
		}

		c.span.SetAttributes(
			attribute.String("instrument", instrument),
			attribute.Float64("principal", principal),
			attribute.Int("duration_days", days),
		)

		if err := validators.CheckPrincipal(cfg, principal); err != nil {
			return nil, c.invalid(err)
		}
		if err := validators.CheckSimulationDays(cfg, days); err != nil {
			return nil, c.invalid(err)
		}

		var inst calculations.Instrument
		if instrument == calculations.InstrumentFund {
			fund, err := resolveFund(ctx, store, params)
			if err != nil {
				return nil, c.fundError(err)
			}
			inst = calculations.FundInstrument{Code: fund.Code, DailyReturn: fund.DailyReturn}
		} else {
			if instrument == "" {
				instrument = calculations.InstrumentDeposit
			}
			base, err := defaultsFor(cfg, instrument)
			if err != nil {
				return nil, c.invalid(err)
			}
			model, err := rateParams(params, base)
			if err != nil {
				return nil, c.invalid(err)
			}
			if err := validators.CheckRateModel(cfg, model); err != nil {
				return nil, c.invalid(err)
			}
			inst = calculations.FixedIncomeInstrument{Name: instrument, Model: model}
		}

		points, err := calculations.Simulate(principal, days, inst)
		if err != nil {
			return nil, c.failed(err)
		}

		c.succeeded(attribute.Int("points", len(points)))
		return GrowthResponse{Instrument: inst.ID(), Points: points}, nil
	}
}

// CompareInstrumentsHandler сравнивает депозит, репо и фонд
func CompareInstrumentsHandler(cfg *config.Config, tracer trace.Tracer, store *funddata.Store) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, c := startCall(ctx, tracer, ToolCompareInstruments)
		defer c.end()

		principal, err := floatParam(params, "principal")
		if err != nil {
			return nil, c.invalid(err)
		}
		days, err := intParam(params, "duration_days")
		if err != nil {
			return nil, c.invalid(err)
		}
		deposit, err := nestedRateParams(params, calculations.InstrumentDeposit, cfg.DepositDefaults)
		if err != nil {
			return nil, c.invalid(err)
		}
		repo, err := nestedRateParams(params, calculations.InstrumentRepo, cfg.RepoDefaults)
		if err != nil {
			return nil, c.invalid(err)
		}
		includeGrowth, err := optionalBoolParam(params, "include_growth")
		if err != nil {
			return nil, c.invalid(err)
		}

		c.span.SetAttributes(
			attribute.Float64("principal", principal),
			attribute.Int("duration_days", days),
			attribute.Bool("include_growth", includeGrowth),
		)

		if err := validators.CheckPrincipal(cfg, principal); err != nil {
			return nil, c.invalid(err)
		}
		if err := validators.CheckDurationDays(cfg, days); err != nil {
			return nil, c.invalid(err)
		}
		if err := validators.CheckRateModel(cfg, deposit); err != nil {
			return nil, c.invalid(err)
		}
		if err := validators.CheckRateModel(cfg, repo); err != nil {
			return nil, c.invalid(err)
		}

		fund, err := resolveFund(ctx, store, params)
		if err != nil {
			return nil, c.fundError(err)
		}
		c.span.SetAttributes(attribute.String("fund_code", fund.Code))

		result, err := calculations.CompareInstruments(calculations.InstrumentComparisonRequest{
			Principal:     principal,
			DurationDays:  days,
			Deposit:       deposit,
			Repo:          repo,
			Fund:          fund,
			IncludeGrowth: includeGrowth && days <= cfg.SimulationDayLimit,
		})
		if err != nil {
			return nil, c.failed(err)
		}

		c.succeeded(
			attribute.String("best_instrument", result.Ranking.BestInstrumentID),
			attribute.Float64("best_net_return", utils.Round2(result.Ranking.BestNetReturn)),
		)

		warnings := append(deposit.AdvisoryWarnings(), repo.AdvisoryWarnings()...)
		return InstrumentComparisonResponse{InstrumentComparison: result, Warnings: warnings}, nil
	}
}

// CompareFundsHandler сравнивает выбранные фонды по кодам
func CompareFundsHandler(cfg *config.Config, tracer trace.Tracer, store *funddata.Store) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, c := startCall(ctx, tracer, ToolCompareFunds)
		defer c.end()

		principal, err := floatParam(params, "principal")
		if err != nil {
			return nil, c.invalid(err)
		}
		days, err := intParam(params, "duration_days")
		if err != nil {
			return nil, c.invalid(err)
		}
		codes, err := stringListParam(params, "fund_codes")
		if err != nil {
			return nil, c.invalid(err)
		}

		c.span.SetAttributes(
			attribute.Float64("principal", principal),
			attribute.Int("duration_days", days),
			attribute.StringSlice("fund_codes", codes),
		)

		if err := validators.CheckPrincipal(cfg, principal); err != nil {
			return nil, c.invalid(err)
		}
		if err := validators.CheckDurationDays(cfg, days); err != nil {
			return nil, c.invalid(err)
		}
		if len(codes) == 0 {
			return nil, c.invalid(paramError("fund_codes", "не должен быть пустым"))
		}

		funds := make([]calculations.Fund, 0, len(codes))
		for _, code := range codes {
			if err := validators.CheckFundCode(code); err != nil {
				return nil, c.invalid(err)
			}
			obs, err := store.Lookup(ctx, code)
			if err != nil {
				return nil, c.failed(err)
			}
			funds = append(funds, obs.Fund())
		}

		result, err := calculations.CompareFunds(principal, days, funds)
		if err != nil {
			return nil, c.failed(err)
		}

		c.succeeded(attribute.String("best_fund", result.Ranking.BestInstrumentID))
		return result, nil
	}
}

// ListFundsHandler возвращает доступные фонды; с параметром top - лучшие по дневной доходности
func ListFundsHandler(tracer trace.Tracer, store *funddata.Store) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, c := startCall(ctx, tracer, ToolListFunds)
		defer c.end()

		top, err := optionalIntParam(params, "top", 0)
		if err != nil {
			return nil, c.invalid(err)
		}
		if top < 0 {
			return nil, c.invalid(paramError("top", "не должен быть отрицательным"))
		}
		c.span.SetAttributes(attribute.Int("top", top))

		ds, err := store.Dataset(ctx)
		if err != nil {
			return nil, c.failed(err)
		}

		funds := ds.All()
		if top > 0 {
			funds = ds.Top(top)
		}

		c.succeeded(attribute.Int("funds", len(funds)))
		return FundListResponse{Count: len(funds), Funds: funds}, nil
	}
}

// resolveFund находит фонд по fund_code или строит его из daily_return
func resolveFund(ctx context.Context, store *funddata.Store, params map[string]interface{}) (calculations.Fund, error) {
	code, err := optionalStringParam(params, "fund_code")
	if err != nil {
		return calculations.Fund{}, err
	}
	if code != "" {
		if err := validators.CheckFundCode(code); err != nil {
			return calculations.Fund{}, err
		}
		obs, err := store.Lookup(ctx, code)
		if err != nil {
			return calculations.Fund{}, err
		}
		return obs.Fund(), nil
	}

	if _, ok := params["daily_return"]; !ok {
		return calculations.Fund{}, paramError("fund_code", "или daily_return обязателен")
	}
	daily, err := floatParam(params, "daily_return")
	if err != nil {
		return calculations.Fund{}, err
	}
	if err := validators.CheckDailyReturn(daily); err != nil {
		return calculations.Fund{}, err
	}
	return calculations.Fund{Code: customFundCode, DailyReturn: daily}, nil
}
