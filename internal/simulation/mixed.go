package simulation

import "fmt"

type mixedState struct {
	property float64
	debt     float64
	balance  float64
	invested float64
	taxes    float64
}

// ProjectMixed projects a financed property bought alongside a CDI account
// that receives MonthlyContribution every month.
//
// The property and mortgage follow ProjectRealEstate without rent. The CDI
// balance earns interest only once it is positive, taxed monthly at TaxRate,
// and the month's contribution lands after interest is credited.
func ProjectMixed(p MixedParameters) SimulationResult {
	months := p.Years * 12
	financed := p.PropertyValue - p.DownPayment
	appreciation := p.AppreciationRate / 100
	cdi := monthlyRate(p.CDIRate)
	taxRate := p.TaxRate / 100
	inflation := monthlyRate(p.InflationRate)
	loan := newSAC(financed, months, p.FinancingRate)

	start := mixedState{property: p.PropertyValue, debt: financed, invested: p.DownPayment}

	data := unfold(months, start, func(m int, s mixedState) (mixedState, MonthlyDataPoint) {
		s.property *= 1 + appreciation
		_, _, s.debt = loan.step(s.debt)

		if s.balance > 0 {
			interest := s.balance * cdi
			tax := interest * taxRate
			s.balance += interest - tax
			s.taxes += tax
		}
		s.balance += p.MonthlyContribution
		s.invested += p.MonthlyContribution

		equity := s.property - s.debt + s.balance

		return s, MonthlyDataPoint{
			Month:         m,
			Invested:      s.invested,
			GrossValue:    equity + s.taxes,
			NetValue:      deflate(equity, inflation, m),
			Taxes:         s.taxes,
			PropertyValue: ptr(s.property),
			Debt:          ptr(s.debt),
			RentIncome:    ptr(0),
		}
	})

	return finish(SimulationResult{
		Name:        MixedName(p),
		Type:        TypeMixed,
		MonthlyData: data,
		Parameters:  p,
	}, p.DownPayment, p.Years)
}

// MixedName is the default label for a mixed-strategy result.
func MixedName(p MixedParameters) string {
	return fmt.Sprintf("Misto CDI %.1f%% - %d anos", p.CDIRate, p.Years)
}
