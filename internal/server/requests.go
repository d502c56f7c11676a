package server

import "github.com/cloud-ru/deposit-fund-compare-go/internal/calculations"

// RatesRequest - необязательные ставки депозита или репо; пропущенные берутся из конфигурации
type RatesRequest struct {
	AnnualInterestRatePercent   *float64 `json:"annual_interest_rate_percent" binding:"omitempty,gte=0"`
	AnnualCommissionRatePercent *float64 `json:"annual_commission_rate_percent" binding:"omitempty,gte=0"`
	WithholdingTaxRatePercent   *float64 `json:"withholding_tax_rate_percent" binding:"omitempty,gte=0"`
}

func (r *RatesRequest) fill(params map[string]interface{}) {
	if r == nil {
		return
	}
	if r.AnnualInterestRatePercent != nil {
		params["annual_interest_rate_percent"] = *r.AnnualInterestRatePercent
	}
	if r.AnnualCommissionRatePercent != nil {
		params["annual_commission_rate_percent"] = *r.AnnualCommissionRatePercent
	}
	if r.WithholdingTaxRatePercent != nil {
		params["withholding_tax_rate_percent"] = *r.WithholdingTaxRatePercent
	}
}

func (r *RatesRequest) nested() map[string]interface{} {
	params := map[string]interface{}{}
	r.fill(params)
	return params
}

// FundSelection - фонд по коду из справочника или произвольная дневная доходность
type FundSelection struct {
	FundCode    string   `json:"fund_code" binding:"required_without=DailyReturn,omitempty,fund_code"`
	DailyReturn *float64 `json:"daily_return" binding:"required_without=FundCode,omitempty,gt=-1"`
}

func (f FundSelection) fill(params map[string]interface{}) {
	if f.FundCode != "" {
		params["fund_code"] = f.FundCode
	}
	if f.DailyReturn != nil {
		params["daily_return"] = *f.DailyReturn
	}
}

// FixedIncomeRequest - запрос расчета депозита или репо
type FixedIncomeRequest struct {
	Instrument   string  `json:"instrument" binding:"omitempty,oneof=deposit repo"`
	Principal    float64 `json:"principal" binding:"required,gt=0"`
	DurationDays *int    `json:"duration_days" binding:"required,gte=0"`
	RatesRequest
}

func (r FixedIncomeRequest) params() map[string]interface{} {
	params := map[string]interface{}{
		"principal":     r.Principal,
		"duration_days": *r.DurationDays,
	}
	if r.Instrument != "" {
		params["instrument"] = r.Instrument
	}
	r.RatesRequest.fill(params)
	return params
}

// FundRequest - запрос расчета доходности фонда
type FundRequest struct {
	Principal    float64 `json:"principal" binding:"required,gt=0"`
	DurationDays *int    `json:"duration_days" binding:"required,gte=0"`
	FundSelection
}

func (r FundRequest) params() map[string]interface{} {
	params := map[string]interface{}{
		"principal":     r.Principal,
		"duration_days": *r.DurationDays,
	}
	r.FundSelection.fill(params)
	return params
}

// GrowthRequest - запрос графика роста одного инструмента
type GrowthRequest struct {
	Instrument   string   `json:"instrument" binding:"omitempty,oneof=deposit repo fund"`
	Principal    float64  `json:"principal" binding:"required,gt=0"`
	DurationDays *int     `json:"duration_days" binding:"required,gte=0"`
	FundCode     string   `json:"fund_code" binding:"omitempty,fund_code"`
	DailyReturn  *float64 `json:"daily_return" binding:"omitempty,gt=-1"`
	RatesRequest
}

func (r GrowthRequest) params() map[string]interface{} {
	params := map[string]interface{}{
		"principal":     r.Principal,
		"duration_days": *r.DurationDays,
	}
	if r.Instrument != "" {
		params["instrument"] = r.Instrument
	}
	FundSelection{FundCode: r.FundCode, DailyReturn: r.DailyReturn}.fill(params)
	r.RatesRequest.fill(params)
	return params
}

// CompareRequest - запрос сравнения депозита, репо и фонда
type CompareRequest struct {
	Principal     float64       `json:"principal" binding:"required,gt=0"`
	DurationDays  *int          `json:"duration_days" binding:"required,gte=0"`
	Deposit       *RatesRequest `json:"deposit"`
	Repo          *RatesRequest `json:"repo"`
	IncludeGrowth bool          `json:"include_growth"`
	FundSelection
}

func (r CompareRequest) params() map[string]interface{} {
	params := map[string]interface{}{
		"principal":      r.Principal,
		"duration_days":  *r.DurationDays,
		"include_growth": r.IncludeGrowth,
	}
	if r.Deposit != nil {
		params[calculations.InstrumentDeposit] = r.Deposit.nested()
	}
	if r.Repo != nil {
		params[calculations.InstrumentRepo] = r.Repo.nested()
	}
	r.FundSelection.fill(params)
	return params
}

// CompareFundsRequest - запрос сравнения нескольких фондов
type CompareFundsRequest struct {
	Principal    float64  `json:"principal" binding:"required,gt=0"`
	DurationDays *int     `json:"duration_days" binding:"required,gte=0"`
	FundCodes    []string `json:"fund_codes" binding:"required,min=1,max=20,dive,fund_code"`
}

func (r CompareFundsRequest) params() map[string]interface{} {
	return map[string]interface{}{
		"principal":     r.Principal,
		"duration_days": *r.DurationDays,
		"fund_codes":    r.FundCodes,
	}
}

// ListFundsQuery - параметры списка фондов
type ListFundsQuery struct {
	Top int `form:"top" binding:"omitempty,gte=0,lte=1000"`
}
