package calculations

// SimulationDayLimit - срок, после которого график роста не показывается.
// Simulate сам этот предел не проверяет.
const SimulationDayLimit = 365

// Instrument - инструмент, для которого можно посчитать стоимость счета на любой день
type Instrument interface {
	ID() string
	Validate() error
	ValueAt(principal float64, days int) (float64, error)
}

// FixedIncomeInstrument - депозит или репо с моделью ставок
type FixedIncomeInstrument struct {
	Name  string
	Model RateModel
}

func (i FixedIncomeInstrument) ID() string { return i.Name }

func (i FixedIncomeInstrument) Validate() error { return i.Model.Validate() }

// ValueAt возвращает итоговый баланс после вычета всех расходов
func (i FixedIncomeInstrument) ValueAt(principal float64, days int) (float64, error) {
	res, err := ComputeFixedIncome(principal, days, i.Model)
	if err != nil {
		return 0, err
	}
	return res.FinalBalance, nil
}

// FundInstrument - фонд с фиксированной дневной доходностью
type FundInstrument struct {
	Code        string
	DailyReturn float64
}

func (i FundInstrument) ID() string { return i.Code }

func (i FundInstrument) Validate() error { return checkDailyReturn(i.DailyReturn) }

func (i FundInstrument) ValueAt(principal float64, days int) (float64, error) {
	res, err := ComputeFund(principal, days, i.DailyReturn)
	if err != nil {
		return 0, err
	}
	return res.FinalAmount, nil
}

// Simulate строит по дням (0..durationDays включительно) стоимость счета.
// Каждая точка пересчитывается с нуля, поэтому последняя точка совпадает
// с результатом ComputeFixedIncome/ComputeFund за весь срок.
func Simulate(principal float64, durationDays int, inst Instrument) ([]GrowthPoint, error) {
	if err := checkPrincipal(principal); err != nil {
		return nil, err
	}
	if err := checkDuration(durationDays); err != nil {
		return nil, err
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	points := make([]GrowthPoint, 0, durationDays+1)
	points = append(points, GrowthPoint{Day: 0, Value: principal})

	for day := 1; day <= durationDays; day++ {
		value, err := inst.ValueAt(principal, day)
		if err != nil {
			return nil, err
		}
		points = append(points, GrowthPoint{Day: day, Value: value})
	}

	return points, nil
}
