package simulation

import "math"

// unfold folds step over months 1..n, threading state through each call and
// collecting the snapshot each month emits. A non-positive n yields an empty series.
func unfold[S any](n int, state S, step func(month int, s S) (S, MonthlyDataPoint)) []MonthlyDataPoint {
	if n <= 0 {
		return []MonthlyDataPoint{}
	}
	points := make([]MonthlyDataPoint, 0, n)
	for m := 1; m <= n; m++ {
		var p MonthlyDataPoint
		state, p = step(m, state)
		points = append(points, p)
	}
	return points
}

// monthlyRate converts an annual percentage into the simple monthly fraction
// used throughout the engine (rate/100/12).
func monthlyRate(annualPercent float64) float64 {
	return annualPercent / 100 / 12
}

// deflate brings a nominal value at month m back to present-value terms.
func deflate(value, monthlyInflation float64, month int) float64 {
	return value / math.Pow(1+monthlyInflation, float64(month))
}

// AnnualizedReturn is the compound annual growth rate, in percent, implied by
// growing totalInvested into finalValue over years.
//
// Degenerate inputs fall back to defined values instead of NaN or Inf:
// years <= 0 or totalInvested == 0 yield 0, and a non-positive ratio yields -100.
func AnnualizedReturn(finalValue, totalInvested float64, years int) float64 {
	if years <= 0 || totalInvested == 0 {
		return 0
	}
	ratio := finalValue / totalInvested
	if ratio <= 0 {
		return -100
	}
	return (math.Pow(ratio, 1/float64(years)) - 1) * 100
}

// finish fills the summary fields of r from its last monthly point.
func finish(r SimulationResult, totalInvested float64, years int) SimulationResult {
	r.TotalInvested = totalInvested
	if n := len(r.MonthlyData); n > 0 {
		r.FinalValue = r.MonthlyData[n-1].NetValue
		r.TotalInvested = r.MonthlyData[n-1].Invested
	}
	r.TotalReturn = r.FinalValue - r.TotalInvested
	r.ReturnPercentage = AnnualizedReturn(r.FinalValue, r.TotalInvested, years)
	return r
}

func ptr(v float64) *float64 { return &v }
