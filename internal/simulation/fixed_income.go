package simulation

import "fmt"

type fixedIncomeState struct {
	value    float64
	invested float64
	taxes    float64
}

// ProjectFixedIncome projects a recurring-contribution instrument compounding
// monthly at InterestRate/12.
//
// CDI pays tax every month on that month's interest. IPCA+ defers tax to the
// final month, where it is charged on the whole gain accumulated to date.
// The running value starts at InitialAmount, which also counts as invested.
func ProjectFixedIncome(p FixedIncomeParameters) SimulationResult {
	months := p.Years * 12
	rate := monthlyRate(p.InterestRate)
	inflation := monthlyRate(p.InflationRate)
	taxRate := p.TaxRate / 100

	start := fixedIncomeState{value: p.InitialAmount, invested: p.InitialAmount}

	data := unfold(months, start, func(m int, s fixedIncomeState) (fixedIncomeState, MonthlyDataPoint) {
		s.value += p.MonthlyContribution
		s.invested += p.MonthlyContribution

		interest := s.value * rate

		var tax float64
		switch p.Type {
		case CDI:
			tax = interest * taxRate
		case IPCAPlus:
			if m == months {
				tax = (s.value + interest - s.invested) * taxRate
			}
		}

		s.value += interest - tax
		s.taxes += tax

		return s, MonthlyDataPoint{
			Month:      m,
			Invested:   s.invested,
			GrossValue: s.value + tax,
			NetValue:   deflate(s.value, inflation, m),
			Taxes:      s.taxes,
		}
	})

	return finish(SimulationResult{
		Name:        FixedIncomeName(p),
		Type:        TypeFixedIncome,
		MonthlyData: data,
		Parameters:  p,
	}, p.InitialAmount, p.Years)
}

// FixedIncomeName is the default label for a fixed income result.
func FixedIncomeName(p FixedIncomeParameters) string {
	return fmt.Sprintf("%s %.1f%% - %d anos", p.Type, p.InterestRate, p.Years)
}
