package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/model"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
)

// Input bounds. Rates are percentages.
const (
	MaxYears             = 50
	MaxConstructionYears = 10
	MaxLumpSum           = 1e12
	MaxMonthlyAmount     = 1e9
	MaxUserIDLength      = 100
	MaxBatchScenarios    = 50
	MaxListLimit         = 1000

	// MaxRate caps annual interest, CDI, financing and inflation rates.
	MaxRate = 50
	// MaxMonthlyAppreciation caps the monthly property appreciation rate.
	MaxMonthlyAppreciation = 5

	// Monthly rent above this share of the property value is rejected.
	maxRentRatio = 0.05
)

func horizon(f fields, field string, years int) {
	switch {
	case years <= 0:
		f.fail(field, "%s must be greater than zero", field)
	case years > MaxYears:
		f.fail(field, "%s must be %d or less", field, MaxYears)
	}
}

// ValidateFixedIncome checks the inputs of a CDI or IPCA+ projection.
func ValidateFixedIncome(p simulation.FixedIncomeParameters) error {
	f := fields{}

	if p.Type != simulation.CDI && p.Type != simulation.IPCAPlus {
		f.fail("type", "type must be %q or %q", simulation.CDI, simulation.IPCAPlus)
	}
	f.amount("initialAmount", p.InitialAmount, MaxLumpSum)
	f.amount("monthlyContribution", p.MonthlyContribution, MaxMonthlyAmount)
	f.rate("interestRate", p.InterestRate, MaxRate)
	f.between("taxRate", p.TaxRate, 0, 100)
	f.between("inflationRate", p.InflationRate, 0, MaxRate)
	horizon(f, "years", p.Years)

	return f.err()
}

// ValidateRealEstate checks the inputs of a financed property projection.
// A down payment equal to the property value is a cash purchase and allowed.
func ValidateRealEstate(p simulation.RealEstateParameters) error {
	f := fields{}

	f.amount("propertyValue", p.PropertyValue, MaxLumpSum)
	if p.PropertyValue == 0 {
		f.fail("propertyValue", "propertyValue must be greater than zero")
	}
	f.amount("downPayment", p.DownPayment, MaxLumpSum)
	if p.DownPayment > p.PropertyValue {
		f.fail("downPayment", "downPayment cannot exceed propertyValue")
	}
	f.between("financingRate", p.FinancingRate, 0, MaxRate)
	f.between("appreciationRate", p.AppreciationRate, 0, MaxMonthlyAppreciation)
	f.amount("monthlyRent", p.MonthlyRent, MaxMonthlyAmount)
	if p.PropertyValue > 0 && p.MonthlyRent > p.PropertyValue*maxRentRatio {
		f.fail("monthlyRent", "monthlyRent is too high relative to propertyValue")
	}
	switch {
	case p.ConstructionYears < 0:
		f.fail("constructionYears", "constructionYears cannot be negative")
	case p.ConstructionYears > MaxConstructionYears:
		f.fail("constructionYears", "constructionYears must be %d or less", MaxConstructionYears)
	}
	f.between("inflationRate", p.InflationRate, 0, MaxRate)
	horizon(f, "years", p.Years)

	return f.err()
}

// ValidateMixed checks the inputs of a property plus CDI projection.
func ValidateMixed(p simulation.MixedParameters) error {
	f := fields{}

	f.amount("propertyValue", p.PropertyValue, MaxLumpSum)
	if p.PropertyValue == 0 {
		f.fail("propertyValue", "propertyValue must be greater than zero")
	}
	f.amount("downPayment", p.DownPayment, MaxLumpSum)
	if p.DownPayment > p.PropertyValue {
		f.fail("downPayment", "downPayment cannot exceed propertyValue")
	}
	f.between("financingRate", p.FinancingRate, 0, MaxRate)
	f.between("appreciationRate", p.AppreciationRate, 0, MaxMonthlyAppreciation)
	f.rate("cdiRate", p.CDIRate, MaxRate)
	f.amount("monthlyContribution", p.MonthlyContribution, MaxMonthlyAmount)
	f.between("taxRate", p.TaxRate, 0, 100)
	f.between("inflationRate", p.InflationRate, 0, MaxRate)
	horizon(f, "years", p.Years)

	return f.err()
}

// ValidateParameters dispatches on the concrete parameter type.
// Optimization parameters are produced by the engine and never accepted as input.
func ValidateParameters(p simulation.Parameters) error {
	switch v := p.(type) {
	case simulation.FixedIncomeParameters:
		return ValidateFixedIncome(v)
	case simulation.RealEstateParameters:
		return ValidateRealEstate(v)
	case simulation.MixedParameters:
		return ValidateMixed(v)
	case nil:
		return &Error{Fields: map[string]string{"parameters": "parameters are required"}}
	default:
		return &Error{Fields: map[string]string{"type": fmt.Sprintf("%s cannot be projected directly", p.SimulationType())}}
	}
}

// ValidateConstraints checks the blend constraints.
func ValidateConstraints(c simulation.Constraints) error {
	f := fields{}

	f.between("targetReturn", c.TargetReturn, -100, 1000)
	f.between("riskTolerance", c.RiskTolerance, 0, 100)
	f.between("maxAllocation", c.MaxAllocation, 0, 100)
	if c.MaxAllocation == 0 {
		f.fail("maxAllocation", "maxAllocation must be greater than zero")
	}

	return f.err()
}

// ValidateUserID checks the optional owner tag.
func ValidateUserID(userID string) error {
	f := fields{}
	userID = strings.TrimSpace(userID)
	if len(userID) > MaxUserIDLength {
		f.fail("userId", "userId must be %d characters or less", MaxUserIDLength)
	}
	return f.err()
}

// ValidateCreate checks a single projection request.
func ValidateCreate(userID string, p simulation.Parameters) error {
	f := fields{}
	f.merge("", ValidateParameters(p))
	f.merge("", ValidateUserID(userID))
	return f.err()
}

// ValidateFilter checks the query of a simulation listing.
func ValidateFilter(filter model.SimulationFilter) error {
	f := fields{}

	if filter.Type != "" && !filter.Type.Valid() {
		f.fail("type", "unknown simulation type %q", filter.Type)
	}
	if filter.Limit < 0 || filter.Limit > MaxListLimit {
		f.fail("limit", "limit must be between 0 and %d", MaxListLimit)
	}
	f.merge("", ValidateUserID(filter.UserID))

	return f.err()
}

// ValidateOptimize checks an optimize request. Whether enough blendable
// simulations remain is decided by the service once they are loaded.
func ValidateOptimize(req request.OptimizeRequest) error {
	f := fields{}

	if len(req.SimulationIDs) == 0 {
		f.fail("simulationIds", "simulationIds is required")
	}
	seen := make(map[string]bool, len(req.SimulationIDs))
	for _, id := range req.SimulationIDs {
		if err := ValidateUUID(id); err != nil {
			f.fail("simulationIds", "%s", err.Error())
			continue
		}
		if seen[id] {
			f.fail("simulationIds", "duplicate simulation id %s", id)
		}
		seen[id] = true
	}
	f.merge("", ValidateConstraints(req.Constraints))
	f.merge("", ValidateUserID(req.UserID))

	return f.err()
}

// ValidateBatch checks every scenario of a batch request. Field errors are
// reported as "scenarios[i].field".
func ValidateBatch(req request.BatchRequest) error {
	f := fields{}

	switch {
	case len(req.Scenarios) == 0:
		f.fail("scenarios", "scenarios is required")
	case len(req.Scenarios) > MaxBatchScenarios:
		f.fail("scenarios", "at most %d scenarios are allowed", MaxBatchScenarios)
	}

	for i, sc := range req.Scenarios {
		prefix := fmt.Sprintf("scenarios[%d].", i)
		params, err := sc.Decode()
		if err != nil {
			f.fail(prefix+"parameters", "%s", err.Error())
			continue
		}
		f.merge(prefix, ValidateParameters(params))
	}

	if req.Optimize != nil {
		f.merge("optimize.", ValidateConstraints(*req.Optimize))
	}
	f.merge("", ValidateUserID(req.UserID))

	return f.err()
}
