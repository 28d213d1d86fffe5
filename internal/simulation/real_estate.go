package simulation

import (
	"fmt"
	"math"
)

type realEstateState struct {
	property float64
	debt     float64
	rent     float64
}

// ProjectRealEstate projects a financed property purchase under a SAC mortgage.
//
// The property appreciates by AppreciationRate every month. Rent starts after
// ConstructionYears*12 months, grows with inflation and is taxed at
// RentalIncomeTaxRate. Collected rent is added to equity without reinvestment,
// and the invested capital stays at DownPayment for the whole horizon.
func ProjectRealEstate(p RealEstateParameters) SimulationResult {
	months := p.Years * 12
	constructionMonths := p.ConstructionYears * 12
	financed := p.PropertyValue - p.DownPayment
	appreciation := p.AppreciationRate / 100
	inflation := monthlyRate(p.InflationRate)
	loan := newSAC(financed, months, p.FinancingRate)

	start := realEstateState{property: p.PropertyValue, debt: financed}

	data := unfold(months, start, func(m int, s realEstateState) (realEstateState, MonthlyDataPoint) {
		s.property *= 1 + appreciation
		_, _, s.debt = loan.step(s.debt)

		if m > constructionMonths {
			grossRent := p.MonthlyRent * math.Pow(1+inflation, float64(m))
			s.rent += grossRent * (1 - RentalIncomeTaxRate)
		}

		equity := s.property - s.debt + s.rent

		return s, MonthlyDataPoint{
			Month:         m,
			Invested:      p.DownPayment,
			GrossValue:    equity,
			NetValue:      deflate(equity, inflation, m),
			Taxes:         0,
			PropertyValue: ptr(s.property),
			Debt:          ptr(s.debt),
			RentIncome:    ptr(s.rent),
		}
	})

	return finish(SimulationResult{
		Name:        RealEstateName(p),
		Type:        TypeRealEstate,
		MonthlyData: data,
		Parameters:  p,
	}, p.DownPayment, p.Years)
}

// RealEstateName labels a property result as off-plan ("Planta") when it has
// a construction period, or ready ("Pronto") otherwise.
func RealEstateName(p RealEstateParameters) string {
	stage := "Pronto"
	if p.ConstructionYears > 0 {
		stage = "Planta"
	}
	return fmt.Sprintf("Imobiliário %s - %d anos", stage, p.Years)
}
