package calculations

// Rank определяет лучший инструмент и относительную доходность остальных.
//
// При равенстве побеждает инструмент, встретившийся первым. Если лучшая чистая
// доходность не положительна, относительная доходность каждого инструмента равна 100%.
func Rank(returns []InstrumentReturn) (ComparisonResult, error) {
	if len(returns) == 0 {
		return ComparisonResult{}, inputError("instruments", 0, "нужен хотя бы один инструмент")
	}

	bestIdx := 0
	for i, r := range returns {
		if r.NetReturn > returns[bestIdx].NetReturn {
			bestIdx = i
		}
	}
	best := returns[bestIdx]

	ranked := make([]RankedInstrument, 0, len(returns))
	for i, r := range returns {
		relative := 100.0
		if best.NetReturn > 0 {
			relative = r.NetReturn / best.NetReturn * 100
		}
		ranked = append(ranked, RankedInstrument{
			ID:                        r.ID,
			NetReturn:                 r.NetReturn,
			RelativePercent:           relative,
			DifferenceFromBestPercent: relative - 100,
			IsBest:                    i == bestIdx,
		})
	}

	return ComparisonResult{
		BestInstrumentID: best.ID,
		BestNetReturn:    best.NetReturn,
		Instruments:      ranked,
	}, nil
}
