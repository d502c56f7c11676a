package calculations

// FixedIncomeResult представляет результат расчета депозита или репо
type FixedIncomeResult struct {
	Principal      float64 `json:"principal"`
	DurationDays   int     `json:"duration_days"`
	GrossReturn    float64 `json:"gross_return"`
	CommissionCost float64 `json:"commission_cost"`
	TransactionTax float64 `json:"transaction_tax"`
	WithholdingTax float64 `json:"withholding_tax"`
	NetReturn      float64 `json:"net_return"`
	FinalBalance   float64 `json:"final_balance"`
}

// FundResult представляет результат расчета фонда
type FundResult struct {
	Principal         float64 `json:"principal"`
	DurationDays      int     `json:"duration_days"`
	DailyReturn       float64 `json:"daily_return"`
	DailyReturnAmount float64 `json:"daily_return_amount"`
	FinalAmount       float64 `json:"final_amount"`
	TotalReturn       float64 `json:"total_return"`
	TotalReturnRate   float64 `json:"total_return_rate"`
}

// GrowthPoint - значение счета на конкретный день
type GrowthPoint struct {
	Day   int     `json:"day"`
	Value float64 `json:"value"`
}

// InstrumentReturn - чистая доходность инструмента для ранжирования
type InstrumentReturn struct {
	ID        string  `json:"id"`
	NetReturn float64 `json:"net_return"`
}

// RankedInstrument - инструмент с относительной доходностью
type RankedInstrument struct {
	ID                        string  `json:"id"`
	NetReturn                 float64 `json:"net_return"`
	RelativePercent           float64 `json:"relative_percent"`
	DifferenceFromBestPercent float64 `json:"difference_from_best_percent"`
	IsBest                    bool    `json:"is_best"`
}

// ComparisonResult представляет результат ранжирования инструментов
type ComparisonResult struct {
	BestInstrumentID string             `json:"best_instrument_id"`
	BestNetReturn    float64            `json:"best_net_return"`
	Instruments      []RankedInstrument `json:"instruments"`
}

// Relative возвращает запись по идентификатору инструмента
func (c ComparisonResult) Relative(id string) (RankedInstrument, bool) {
	for _, inst := range c.Instruments {
		if inst.ID == id {
			return inst, true
		}
	}
	return RankedInstrument{}, false
}
