package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/deposit-fund-compare-go/internal/calculations"
	"github.com/cloud-ru/deposit-fund-compare-go/internal/config"
	"github.com/cloud-ru/deposit-fund-compare-go/internal/funddata"
	"github.com/cloud-ru/deposit-fund-compare-go/internal/metrics"
)

const (
	ToolFixedIncomeReturn  = "fixed_income_return"
	ToolFundReturn         = "fund_return"
	ToolGrowthSimulation   = "growth_simulation"
	ToolCompareInstruments = "compare_instruments"
	ToolCompareFunds       = "compare_funds"
	ToolListFunds          = "list_funds"
)

// ToolHandler представляет обработчик инструмента
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// ToolInfo - описание инструмента для списка
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var descriptions = map[string]string{
	ToolFixedIncomeReturn:  "Net return of an overnight deposit or repo after commission, transaction tax and withholding tax",
	ToolFundReturn:         "Return of an investment fund compounding its latest daily return",
	ToolGrowthSimulation:   "Day-by-day account value of one instrument",
	ToolCompareInstruments: "Compare deposit, repo and a fund over the same principal and duration",
	ToolCompareFunds:       "Compare selected funds by total return",
	ToolListFunds:          "List available funds, optionally the top N by daily return",
}

// Registry возвращает все инструменты по имени
func Registry(cfg *config.Config, tracer trace.Tracer, store *funddata.Store) map[string]ToolHandler {
	return map[string]ToolHandler{
		ToolFixedIncomeReturn:  FixedIncomeReturnHandler(cfg, tracer),
		ToolFundReturn:         FundReturnHandler(cfg, tracer, store),
		ToolGrowthSimulation:   GrowthSimulationHandler(cfg, tracer, store),
		ToolCompareInstruments: CompareInstrumentsHandler(cfg, tracer, store),
		ToolCompareFunds:       CompareFundsHandler(cfg, tracer, store),
		ToolListFunds:          ListFundsHandler(tracer, store),
	}
}

// List возвращает описания инструментов в алфавитном порядке
func List() []ToolInfo {
	out := make([]ToolInfo, 0, len(descriptions))
	for name, desc := range descriptions {
		out = append(out, ToolInfo{Name: name, Description: desc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// call сопровождает один вызов инструмента: спан и счетчики
type call struct {
	name string
	span trace.Span
}

func startCall(ctx context.Context, tracer trace.Tracer, name string) (context.Context, *call) {
	ctx, span := tracer.Start(ctx, name)
	metrics.APICalls.WithLabelValues("api", name, "started").Inc()
	return ctx, &call{name: name, span: span}
}

func (c *call) end() { c.span.End() }

// invalid отмечает ошибку валидации параметров
func (c *call) invalid(err error) error {
	c.record("validation_error", "validation", err)
	return fmt.Errorf("неверные параметры: %w", err)
}

// failed отмечает ошибку расчета или загрузки данных
func (c *call) failed(err error) error {
	errorType := "calculation"
	switch {
	case errors.Is(err, calculations.ErrInvalidInput):
		errorType = "validation"
	case errors.Is(err, funddata.ErrFundNotFound):
		errorType = "fund_not_found"
	case errors.Is(err, funddata.ErrNoData), errors.Is(err, funddata.ErrMalformedData), errors.Is(err, funddata.ErrDuplicateFund):
		errorType = "fund_data"
	}
	c.record("error", errorType, err)
	return fmt.Errorf("ошибка при выполнении расчета: %w", err)
}

// fundError разделяет неверные параметры фонда и ошибки справочника фондов
func (c *call) fundError(err error) error {
	if errors.Is(err, calculations.ErrInvalidInput) {
		return c.invalid(err)
	}
	return c.failed(err)
}

func (c *call) record(status, errorType string, err error) {
	c.span.SetAttributes(attribute.String("error", errorType+"_error"))
	c.span.RecordError(err)
	c.span.SetStatus(codes.Error, err.Error())
	metrics.ToolCalls.WithLabelValues(c.name, status).Inc()
	metrics.CalculationErrors.WithLabelValues(c.name, errorType).Inc()
	metrics.APICalls.WithLabelValues("api", c.name, "error").Inc()
}

func (c *call) succeeded(attrs ...attribute.KeyValue) {
	c.span.SetAttributes(append(attrs, attribute.Bool("success", true))...)
	metrics.ToolCalls.WithLabelValues(c.name, "success").Inc()
	metrics.APICalls.WithLabelValues("api", c.name, "success").Inc()
}

func paramError(name, reason string) error {
	return fmt.Errorf("%w: параметр %s %s", calculations.ErrInvalidInput, name, reason)
}

func floatParam(params map[string]interface{}, name string) (float64, error) {
	switch v := params[name].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case nil:
		return 0, paramError(name, "обязателен")
	default:
		return 0, paramError(name, "должен быть числом")
	}
}

func optionalFloatParam(params map[string]interface{}, name string, defaultValue float64) (float64, error) {
	if _, ok := params[name]; !ok {
		return defaultValue, nil
	}
	return floatParam(params, name)
}

func intParam(params map[string]interface{}, name string) (int, error) {
	switch v := params[name].(type) {
	case int:
		return v, nil
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return 0, paramError(name, "должен быть целым числом")
		}
		return int(v), nil
	case nil:
		return 0, paramError(name, "обязателен")
	default:
		return 0, paramError(name, "должен быть целым числом")
	}
}

func optionalIntParam(params map[string]interface{}, name string, defaultValue int) (int, error) {
	if _, ok := params[name]; !ok {
		return defaultValue, nil
	}
	return intParam(params, name)
}

func optionalBoolParam(params map[string]interface{}, name string) (bool, error) {
	switch v := params[name].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	default:
		return false, paramError(name, "должен быть логическим значением")
	}
}

func optionalStringParam(params map[string]interface{}, name string) (string, error) {
	switch v := params[name].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", paramError(name, "должен быть строкой")
	}
}

func stringListParam(params map[string]interface{}, name string) ([]string, error) {
	switch v := params[name].(type) {
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, paramError(name, "должен содержать только строки")
			}
			out = append(out, s)
		}
		return out, nil
	case nil:
		return nil, paramError(name, "обязателен")
	default:
		return nil, paramError(name, "должен быть списком строк")
	}
}

// rateParams накладывает переданные ставки на значения по умолчанию
func rateParams(params map[string]interface{}, base calculations.RateModel) (calculations.RateModel, error) {
	m := base
	var err error
	if m.AnnualInterestRatePercent, err = optionalFloatParam(params, "annual_interest_rate_percent", base.AnnualInterestRatePercent); err != nil {
		return m, err
	}
	if m.AnnualCommissionRatePercent, err = optionalFloatParam(params, "annual_commission_rate_percent", base.AnnualCommissionRatePercent); err != nil {
		return m, err
	}
	if m.WithholdingTaxRatePercent, err = optionalFloatParam(params, "withholding_tax_rate_percent", base.WithholdingTaxRatePercent); err != nil {
		return m, err
	}
	return m, nil
}

// nestedRateParams читает ставки из вложенного объекта params[name], если он передан
func nestedRateParams(params map[string]interface{}, name string, base calculations.RateModel) (calculations.RateModel, error) {
	switch v := params[name].(type) {
	case nil:
		return base, nil
	case map[string]interface{}:
		return rateParams(v, base)
	default:
		return base, paramError(name, "должен быть объектом")
	}
}

// defaultsFor возвращает ставки по умолчанию для депозита или репо
func defaultsFor(cfg *config.Config, instrument string) (calculations.RateModel, error) {
	switch instrument {
	case "", calculations.InstrumentDeposit:
		return cfg.DepositDefaults, nil
	case calculations.InstrumentRepo:
		return cfg.RepoDefaults, nil
	default:
		return calculations.RateModel{}, paramError("instrument", "должен быть deposit или repo")
	}
}
