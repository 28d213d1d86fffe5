package simulation

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInsufficientInputs is returned by Optimize when fewer than two results
// are supplied. Blending a single series is a usage error, not a numeric edge case.
var ErrInsufficientInputs = errors.New("at least two simulation results are required to optimize")

// MinOptimizeInputs is the smallest number of results Optimize accepts.
const MinOptimizeInputs = 2

// Weights computes the normalized allocation for each result.
//
// Each result is weighted by its min-max normalized return scaled by
// RiskTolerance, capped at MaxAllocation, then all weights are normalized to
// sum to one. When every return is equal the normalized returns are all zero,
// and when the weights sum to zero every result gets an equal share.
func Weights(results []SimulationResult, c Constraints) []float64 {
	n := len(results)
	if n == 0 {
		return []float64{}
	}

	maxReturn, minReturn := math.Inf(-1), math.Inf(1)
	for _, r := range results {
		maxReturn = math.Max(maxReturn, r.ReturnPercentage)
		minReturn = math.Min(minReturn, r.ReturnPercentage)
	}
	spread := maxReturn - minReturn

	weights := make([]float64, n)
	var total float64
	for i, r := range results {
		var normalized float64
		if spread != 0 {
			normalized = (r.ReturnPercentage - minReturn) / spread
		}
		weights[i] = math.Min(normalized*(c.RiskTolerance/100), c.MaxAllocation/100)
		total += weights[i]
	}

	for i := range weights {
		if total == 0 {
			weights[i] = 1 / float64(n)
			continue
		}
		weights[i] /= total
	}
	return weights
}

// Optimize blends results into a single optimized series using Weights.
//
// Scalar metrics are weighted sums of the inputs. The monthly series runs to the
// longest input; past the end of a shorter input that input contributes zero and
// the remaining weights are not rescaled.
func Optimize(results []SimulationResult, c Constraints) (SimulationResult, error) {
	if len(results) < MinOptimizeInputs {
		return SimulationResult{}, fmt.Errorf("%w: got %d", ErrInsufficientInputs, len(results))
	}

	weights := Weights(results, c)

	var finalValue, invested, returnPct float64
	maxMonths := 0
	ids := make([]string, 0, len(results))
	for i, r := range results {
		w := weights[i]
		finalValue += r.FinalValue * w
		invested += r.TotalInvested * w
		returnPct += r.ReturnPercentage * w
		maxMonths = max(maxMonths, len(r.MonthlyData))
		if r.ID != "" {
			ids = append(ids, r.ID)
		}
	}

	data := unfold(maxMonths, struct{}{}, func(m int, s struct{}) (struct{}, MonthlyDataPoint) {
		p := MonthlyDataPoint{Month: m}
		for i, r := range results {
			if m > len(r.MonthlyData) {
				continue
			}
			point := r.MonthlyData[m-1]
			p.NetValue += point.NetValue * weights[i]
			p.Invested += point.Invested * weights[i]
			p.Taxes += point.Taxes * weights[i]
		}
		p.GrossValue = p.NetValue
		return s, p
	})

	return SimulationResult{
		Name:             OptimizedName(results, weights),
		Type:             TypeOptimized,
		FinalValue:       finalValue,
		TotalInvested:    invested,
		TotalReturn:      finalValue - invested,
		ReturnPercentage: returnPct,
		MonthlyData:      data,
		Parameters: OptimizationParameters{
			SourceIDs:     ids,
			Weights:       weights,
			TargetReturn:  c.TargetReturn,
			RiskTolerance: c.RiskTolerance,
			MaxAllocation: c.MaxAllocation,
		},
	}, nil
}

// OptimizedName lists every input label with its weight, e.g.
// "Portfólio Otimizado (CDI 12.0%: 60.0%, Imobiliário Pronto: 40.0%)".
func OptimizedName(results []SimulationResult, weights []float64) string {
	parts := make([]string, len(results))
	for i, r := range results {
		label, _, _ := strings.Cut(r.Name, " - ")
		parts[i] = fmt.Sprintf("%s: %.1f%%", label, weights[i]*100)
	}
	return fmt.Sprintf("Portfólio Otimizado (%s)", strings.Join(parts, ", "))
}
