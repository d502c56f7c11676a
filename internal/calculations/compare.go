package calculations

const (
	InstrumentDeposit = "deposit"
	InstrumentRepo    = "repo"
	InstrumentFund    = "fund"
)

// Fund - выбранный фонд и его последняя дневная доходность (в долях)
type Fund struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	DailyReturn float64 `json:"daily_return"`
}

// InstrumentComparisonRequest - параметры сравнения депозита, репо и фонда
type InstrumentComparisonRequest struct {
	Principal     float64
	DurationDays  int
	Deposit       RateModel
	Repo          RateModel
	Fund          Fund
	IncludeGrowth bool
}

// InstrumentComparison представляет результат сравнения трех инструментов
type InstrumentComparison struct {
	Principal    float64                  `json:"principal"`
	DurationDays int                      `json:"duration_days"`
	Deposit      FixedIncomeResult        `json:"deposit"`
	Repo         FixedIncomeResult        `json:"repo"`
	Fund         FundResult               `json:"fund"`
	FundCode     string                   `json:"fund_code"`
	FundName     string                   `json:"fund_name"`
	Ranking      ComparisonResult         `json:"ranking"`
	Growth       map[string][]GrowthPoint `json:"growth,omitempty"`
}

// CompareInstruments сравнивает овернайт-депозит, овернайт-репо и фонд на одном сроке.
// Графики роста строятся только если они запрошены и срок не превышает SimulationDayLimit.
func CompareInstruments(req InstrumentComparisonRequest) (*InstrumentComparison, error) {
	deposit, err := ComputeFixedIncome(req.Principal, req.DurationDays, req.Deposit)
	if err != nil {
		return nil, err
	}
	repo, err := ComputeFixedIncome(req.Principal, req.DurationDays, req.Repo)
	if err != nil {
		return nil, err
	}
	fund, err := ComputeFund(req.Principal, req.DurationDays, req.Fund.DailyReturn)
	if err != nil {
		return nil, err
	}

	ranking, err := Rank([]InstrumentReturn{
		{ID: InstrumentDeposit, NetReturn: deposit.NetReturn},
		{ID: InstrumentRepo, NetReturn: repo.NetReturn},
		{ID: InstrumentFund, NetReturn: fund.TotalReturn},
	})
	if err != nil {
		return nil, err
	}

	result := &InstrumentComparison{
		Principal:    req.Principal,
		DurationDays: req.DurationDays,
		Deposit:      deposit,
		Repo:         repo,
		Fund:         fund,
		FundCode:     req.Fund.Code,
		FundName:     req.Fund.Name,
		Ranking:      ranking,
	}

	if req.IncludeGrowth && req.DurationDays <= SimulationDayLimit {
		instruments := []Instrument{
			FixedIncomeInstrument{Name: InstrumentDeposit, Model: req.Deposit},
			FixedIncomeInstrument{Name: InstrumentRepo, Model: req.Repo},
			FundInstrument{Code: InstrumentFund, DailyReturn: req.Fund.DailyReturn},
		}
		result.Growth = make(map[string][]GrowthPoint, len(instruments))
		for _, inst := range instruments {
			points, err := Simulate(req.Principal, req.DurationDays, inst)
			if err != nil {
				return nil, err
			}
			result.Growth[inst.ID()] = points
		}
	}

	return result, nil
}

// FundComparison представляет результат сравнения нескольких фондов
type FundComparison struct {
	Principal    float64          `json:"principal"`
	DurationDays int              `json:"duration_days"`
	Funds        []FundEntry      `json:"funds"`
	Ranking      ComparisonResult `json:"ranking"`
}

// FundEntry - фонд и его рассчитанная доходность
type FundEntry struct {
	Fund   Fund       `json:"fund"`
	Result FundResult `json:"result"`
}

// CompareFunds сравнивает выбранные фонды по общей доходности в порядке выбора.
// Один и тот же фонд может быть выбран несколько раз; ранжирование идет по позиции.
func CompareFunds(principal float64, durationDays int, funds []Fund) (*FundComparison, error) {
	if len(funds) == 0 {
		return nil, inputError("funds", 0, "нужен хотя бы один фонд")
	}

	entries := make([]FundEntry, 0, len(funds))
	returns := make([]InstrumentReturn, 0, len(funds))
	for _, f := range funds {
		res, err := ComputeFund(principal, durationDays, f.DailyReturn)
		if err != nil {
			return nil, err
		}
		entries = append(entries, FundEntry{Fund: f, Result: res})
		returns = append(returns, InstrumentReturn{ID: f.Code, NetReturn: res.TotalReturn})
	}

	ranking, err := Rank(returns)
	if err != nil {
		return nil, err
	}

	return &FundComparison{
		Principal:    principal,
		DurationDays: durationDays,
		Funds:        entries,
		Ranking:      ranking,
	}, nil
}
