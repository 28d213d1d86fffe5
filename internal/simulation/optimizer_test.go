package simulation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticResult(name string, returnPct float64, months int, value float64) SimulationResult {
	data := make([]MonthlyDataPoint, months)
	for i := range data {
		data[i] = MonthlyDataPoint{
			Month:      i + 1,
			Invested:   1000,
			GrossValue: value,
			NetValue:   value,
			Taxes:      10,
		}
	}
	return SimulationResult{
		ID:               name,
		Name:             name + " - 1 anos",
		Type:             TypeFixedIncome,
		FinalValue:       value,
		TotalInvested:    1000,
		ReturnPercentage: returnPct,
		MonthlyData:      data,
	}
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func TestOptimize_WeightsNormalized(t *testing.T) {
	inputs := []SimulationResult{
		ProjectFixedIncome(cdiParams()),
		ProjectRealEstate(propertyParams()),
		ProjectMixed(mixedParams()),
	}
	c := Constraints{TargetReturn: 10, RiskTolerance: 70, MaxAllocation: 60}

	r, err := Optimize(inputs, c)
	require.NoError(t, err)

	params, ok := r.Parameters.(OptimizationParameters)
	require.True(t, ok)
	assert.InDelta(t, 1, sum(params.Weights), 1e-9)

	minReturn, maxReturn := math.Inf(1), math.Inf(-1)
	for _, in := range inputs {
		minReturn = math.Min(minReturn, in.ReturnPercentage)
		maxReturn = math.Max(maxReturn, in.ReturnPercentage)
	}
	assert.GreaterOrEqual(t, r.ReturnPercentage, minReturn)
	assert.LessOrEqual(t, r.ReturnPercentage, maxReturn)

	assert.Equal(t, TypeOptimized, r.Type)
	assert.Len(t, r.MonthlyData, 240)
	assert.InDelta(t, r.FinalValue-r.TotalInvested, r.TotalReturn, tolerance)
	assert.Equal(t, 10.0, params.TargetReturn)
	assert.Equal(t, 70.0, params.RiskTolerance)
}

func TestWeights_CappedThenNormalized(t *testing.T) {
	inputs := []SimulationResult{
		syntheticResult("A", 0, 12, 1000),
		syntheticResult("B", 5, 12, 1000),
		syntheticResult("C", 10, 12, 1000),
	}

	weights := Weights(inputs, Constraints{RiskTolerance: 100, MaxAllocation: 30})

	// raw 0, 0.5, 1 capped to 0, 0.3, 0.3
	assert.InDeltaSlice(t, []float64{0, 0.5, 0.5}, weights, 1e-12)
}

func TestWeights_EqualReturnsFallBackToEqualShares(t *testing.T) {
	inputs := []SimulationResult{
		syntheticResult("A", 8, 12, 1000),
		syntheticResult("B", 8, 12, 2000),
		syntheticResult("C", 8, 12, 3000),
		syntheticResult("D", 8, 12, 4000),
	}

	weights := Weights(inputs, Constraints{RiskTolerance: 50, MaxAllocation: 100})

	for _, w := range weights {
		assert.False(t, math.IsNaN(w))
		assert.InDelta(t, 0.25, w, 1e-12)
	}

	r, err := Optimize(inputs, Constraints{RiskTolerance: 50, MaxAllocation: 100})
	require.NoError(t, err)
	assert.InDelta(t, 2500, r.FinalValue, 1e-9)
	assert.InDelta(t, 8, r.ReturnPercentage, 1e-9)
}

func TestWeights_ZeroRiskToleranceFallsBackToEqualShares(t *testing.T) {
	inputs := []SimulationResult{
		syntheticResult("A", 2, 12, 1000),
		syntheticResult("B", 9, 12, 1000),
	}

	weights := Weights(inputs, Constraints{RiskTolerance: 0, MaxAllocation: 100})

	assert.InDeltaSlice(t, []float64{0.5, 0.5}, weights, 1e-12)
}

func TestOptimize_InsufficientInputs(t *testing.T) {
	_, err := Optimize(nil, Constraints{RiskTolerance: 50, MaxAllocation: 100})
	assert.True(t, errors.Is(err, ErrInsufficientInputs))

	_, err = Optimize([]SimulationResult{syntheticResult("A", 5, 12, 1000)}, Constraints{})
	assert.True(t, errors.Is(err, ErrInsufficientInputs))
}

func TestOptimize_ShorterSeriesContributesZero(t *testing.T) {
	short := syntheticResult("Short", 0, 12, 1000)
	long := syntheticResult("Long", 10, 24, 3000)

	r, err := Optimize([]SimulationResult{short, long}, Constraints{RiskTolerance: 50, MaxAllocation: 100})
	require.NoError(t, err)
	require.Len(t, r.MonthlyData, 24)

	// short has normalized return 0, so everything goes to long
	weights := r.Parameters.(OptimizationParameters).Weights
	assert.InDeltaSlice(t, []float64{0, 1}, weights, 1e-12)

	r, err = Optimize([]SimulationResult{short, long}, Constraints{RiskTolerance: 0, MaxAllocation: 100})
	require.NoError(t, err)

	assert.InDelta(t, 0.5*1000+0.5*3000, r.MonthlyData[11].NetValue, 1e-9)
	assert.InDelta(t, 0.5*3000, r.MonthlyData[12].NetValue, 1e-9)
	assert.InDelta(t, 0.5*1000, r.MonthlyData[12].Invested, 1e-9)
	assert.Equal(t, r.MonthlyData[12].NetValue, r.MonthlyData[12].GrossValue)
	assert.Equal(t, 13, r.MonthlyData[12].Month)
}

func TestOptimize_Name(t *testing.T) {
	inputs := []SimulationResult{
		syntheticResult("CDI 12.0%", 0, 12, 1000),
		syntheticResult("Imobiliário Pronto", 10, 12, 1000),
	}

	r, err := Optimize(inputs, Constraints{RiskTolerance: 0, MaxAllocation: 100})
	require.NoError(t, err)

	assert.Equal(t, "Portfólio Otimizado (CDI 12.0%: 50.0%, Imobiliário Pronto: 50.0%)", r.Name)
	assert.Equal(t, []string{"CDI 12.0%", "Imobiliário Pronto"}, r.Parameters.(OptimizationParameters).SourceIDs)
}

func TestOptimize_Idempotent(t *testing.T) {
	inputs := []SimulationResult{ProjectFixedIncome(cdiParams()), ProjectRealEstate(propertyParams())}
	c := Constraints{RiskTolerance: 80, MaxAllocation: 70}

	a, errA := Optimize(inputs, c)
	b, errB := Optimize(inputs, c)

	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a.MonthlyData, b.MonthlyData)
	assert.Equal(t, a, b)
}

func TestAnnualizedReturn(t *testing.T) {
	tests := []struct {
		name     string
		final    float64
		invested float64
		years    int
		want     float64
	}{
		{"doubling in one year", 2000, 1000, 1, 100},
		{"doubling in two years", 2000, 1000, 2, (math.Sqrt(2) - 1) * 100},
		{"zero years", 2000, 1000, 0, 0},
		{"nothing invested", 2000, 0, 5, 0},
		{"total loss", 0, 1000, 5, -100},
		{"negative equity", -500, 1000, 5, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AnnualizedReturn(tt.final, tt.invested, tt.years), 1e-9)
		})
	}
}
