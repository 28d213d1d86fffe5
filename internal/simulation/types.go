// Package simulation implements the projection and optimization engine.
//
// Every function in this package is pure: it reads its arguments, allocates a
// fresh result and keeps no state between calls. Identifiers and timestamps on
// SimulationResult are left empty for the caller to stamp.
package simulation

import "time"

// SimulationType tags the strategy that produced a SimulationResult.
type SimulationType string

const (
	TypeFixedIncome SimulationType = "fixed-income"
	TypeRealEstate  SimulationType = "real-estate"
	TypeMixed       SimulationType = "mixed"
	TypeOptimized   SimulationType = "optimized"
)

// Valid reports whether t is one of the known simulation types.
func (t SimulationType) Valid() bool {
	switch t {
	case TypeFixedIncome, TypeRealEstate, TypeMixed, TypeOptimized:
		return true
	}
	return false
}

// FixedIncomeType selects the tax timing of a fixed income instrument.
type FixedIncomeType string

const (
	// CDI is taxed every month on that month's interest.
	CDI FixedIncomeType = "CDI"
	// IPCAPlus is taxed once, at maturity, on the whole accumulated gain.
	IPCAPlus FixedIncomeType = "IPCA+"
)

// RentalIncomeTaxRate is the flat tax withheld from gross rent.
const RentalIncomeTaxRate = 0.275

// Parameters is the closed set of inputs a SimulationResult can echo.
// Only the parameter types declared in this package implement it.
type Parameters interface {
	SimulationType() SimulationType
}

// InvestmentParameters are the inputs shared by recurring-contribution strategies.
// All rates are annual percentages.
type InvestmentParameters struct {
	InitialAmount       float64 `json:"initialAmount"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	InterestRate        float64 `json:"interestRate"`
	Years               int     `json:"years"`
	InflationRate       float64 `json:"inflationRate"`
}

// FixedIncomeParameters describe a CDI or IPCA+ instrument.
type FixedIncomeParameters struct {
	InvestmentParameters
	Type    FixedIncomeType `json:"type"`
	TaxRate float64         `json:"taxRate"` // % of gains
}

func (FixedIncomeParameters) SimulationType() SimulationType { return TypeFixedIncome }

// RealEstateParameters describe a financed property purchase.
//
// AppreciationRate is a MONTHLY percentage; FinancingRate and InflationRate are annual.
type RealEstateParameters struct {
	PropertyValue     float64 `json:"propertyValue"`
	DownPayment       float64 `json:"downPayment"`
	FinancingRate     float64 `json:"financingRate"`
	AppreciationRate  float64 `json:"appreciationRate"`
	MonthlyRent       float64 `json:"monthlyRent"`
	ConstructionYears int     `json:"constructionYears"`
	Years             int     `json:"years"`
	InflationRate     float64 `json:"inflationRate"`
}

func (RealEstateParameters) SimulationType() SimulationType { return TypeRealEstate }

// MixedParameters describe a financed property purchase combined with a
// monthly CDI investment. The property carries no rent in this strategy.
type MixedParameters struct {
	PropertyValue       float64 `json:"propertyValue"`
	DownPayment         float64 `json:"downPayment"`
	FinancingRate       float64 `json:"financingRate"`
	AppreciationRate    float64 `json:"appreciationRate"` // monthly %
	CDIRate             float64 `json:"cdiRate"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	TaxRate             float64 `json:"taxRate"`
	Years               int     `json:"years"`
	InflationRate       float64 `json:"inflationRate"`
}

func (MixedParameters) SimulationType() SimulationType { return TypeMixed }

// OptimizationParameters record how an optimized result was blended.
type OptimizationParameters struct {
	SourceIDs     []string  `json:"sourceIds,omitempty"`
	Weights       []float64 `json:"weights"`
	TargetReturn  float64   `json:"targetReturn"`
	RiskTolerance float64   `json:"riskTolerance"`
	MaxAllocation float64   `json:"maxAllocation"`
}

func (OptimizationParameters) SimulationType() SimulationType { return TypeOptimized }

// MonthlyDataPoint is one month of a projected series.
// PropertyValue, Debt and RentIncome are only set by property strategies.
type MonthlyDataPoint struct {
	Month         int      `json:"month"`
	Invested      float64  `json:"invested"`
	GrossValue    float64  `json:"grossValue"`
	NetValue      float64  `json:"netValue"`
	Taxes         float64  `json:"taxes"`
	PropertyValue *float64 `json:"propertyValue,omitempty"`
	Debt          *float64 `json:"debt,omitempty"`
	RentIncome    *float64 `json:"rentIncome,omitempty"`
}

// SimulationResult is the common output of every projector and of Optimize.
type SimulationResult struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Type             SimulationType     `json:"type"`
	FinalValue       float64            `json:"finalValue"`
	TotalInvested    float64            `json:"totalInvested"`
	TotalReturn      float64            `json:"totalReturn"`
	ReturnPercentage float64            `json:"returnPercentage"`
	MonthlyData      []MonthlyDataPoint `json:"monthlyData"`
	Parameters       Parameters         `json:"parameters"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// Constraints steer the portfolio blend. RiskTolerance and MaxAllocation are
// percentages in [0,100]. TargetReturn is echoed but does not affect weights.
type Constraints struct {
	TargetReturn  float64 `json:"targetReturn"`
	RiskTolerance float64 `json:"riskTolerance"`
	MaxAllocation float64 `json:"maxAllocation"`
}
