package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/model"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/repository"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
)

// DefaultFixedIncome returns a ten year CDI scenario used across tests.
func DefaultFixedIncome() simulation.FixedIncomeParameters {
	return simulation.FixedIncomeParameters{
		InvestmentParameters: simulation.InvestmentParameters{
			InitialAmount:       10000,
			MonthlyContribution: 500,
			InterestRate:        12,
			Years:               10,
			InflationRate:       4,
		},
		Type:    simulation.CDI,
		TaxRate: 15,
	}
}

// DefaultRealEstate returns a twenty year financed property scenario used across tests.
func DefaultRealEstate() simulation.RealEstateParameters {
	return simulation.RealEstateParameters{
		PropertyValue:     500000,
		DownPayment:       150000,
		FinancingRate:     10,
		AppreciationRate:  0.5,
		MonthlyRent:       2500,
		ConstructionYears: 0,
		Years:             20,
		InflationRate:     4,
	}
}

// DefaultMixed returns a twenty year mixed scenario used across tests.
func DefaultMixed() simulation.MixedParameters {
	return simulation.MixedParameters{
		PropertyValue:       400000,
		DownPayment:         100000,
		FinancingRate:       9,
		AppreciationRate:    0.4,
		CDIRate:             11,
		MonthlyContribution: 1500,
		TaxRate:             15,
		Years:               20,
		InflationRate:       4,
	}
}

// SimulationBuilder provides a fluent interface for creating test simulations.
//
// Example usage:
//
//	// Simple creation with defaults (fixed income)
//	sim := testutil.NewSimulation().Build(t, db)
//
//	// Customized simulation
//	sim := testutil.NewSimulation().
//	    WithRealEstate(testutil.DefaultRealEstate()).
//	    WithUserID("alice").
//	    WithCreatedAt(time.Now().AddDate(0, 0, -40)).
//	    Build(t, db)
type SimulationBuilder struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	project   func() simulation.SimulationResult
}

// NewSimulation creates a SimulationBuilder with sensible defaults.
func NewSimulation() *SimulationBuilder {
	return &SimulationBuilder{
		ID:        MakeID(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		project: func() simulation.SimulationResult {
			return simulation.ProjectFixedIncome(DefaultFixedIncome())
		},
	}
}

// WithID sets a custom ID.
func (b *SimulationBuilder) WithID(id string) *SimulationBuilder {
	b.ID = id
	return b
}

// WithUserID sets the owning user.
func (b *SimulationBuilder) WithUserID(userID string) *SimulationBuilder {
	b.UserID = userID
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *SimulationBuilder) WithCreatedAt(t time.Time) *SimulationBuilder {
	b.CreatedAt = t.UTC().Truncate(time.Microsecond)
	return b
}

// WithFixedIncome projects the given fixed income parameters.
func (b *SimulationBuilder) WithFixedIncome(p simulation.FixedIncomeParameters) *SimulationBuilder {
	b.project = func() simulation.SimulationResult { return simulation.ProjectFixedIncome(p) }
	return b
}

// WithRealEstate projects the given real estate parameters.
func (b *SimulationBuilder) WithRealEstate(p simulation.RealEstateParameters) *SimulationBuilder {
	b.project = func() simulation.SimulationResult { return simulation.ProjectRealEstate(p) }
	return b
}

// WithMixed projects the given mixed parameters.
func (b *SimulationBuilder) WithMixed(p simulation.MixedParameters) *SimulationBuilder {
	b.project = func() simulation.SimulationResult { return simulation.ProjectMixed(p) }
	return b
}

// WithResult stores a precomputed result, e.g. an optimized blend.
func (b *SimulationBuilder) WithResult(r simulation.SimulationResult) *SimulationBuilder {
	b.project = func() simulation.SimulationResult { return r }
	return b
}

// Model returns the simulation without persisting it.
func (b *SimulationBuilder) Model() model.Simulation {
	r := b.project()
	r.ID = b.ID
	r.CreatedAt = b.CreatedAt
	return model.Simulation{SimulationResult: r, UserID: b.UserID}
}

// Build creates the simulation in the database and returns it.
func (b *SimulationBuilder) Build(t *testing.T, db *sql.DB) model.Simulation {
	t.Helper()

	s := b.Model()
	if err := repository.NewSimulationRepository(db).InsertSimulation(context.Background(), s); err != nil {
		t.Fatalf("Failed to create test simulation: %v", err)
	}

	return s
}

// Convenience functions

// CreateSimulation creates a default fixed income simulation.
//
// Example usage:
//
//	sim := testutil.CreateSimulation(t, db)
func CreateSimulation(t *testing.T, db *sql.DB) model.Simulation {
	t.Helper()
	return NewSimulation().Build(t, db)
}

// CreateSimulations creates one simulation of each projector type.
//
// Example usage:
//
//	sims := testutil.CreateSimulations(t, db)
//	// fixed income, real estate, mixed
func CreateSimulations(t *testing.T, db *sql.DB) []model.Simulation {
	t.Helper()

	return []model.Simulation{
		NewSimulation().Build(t, db),
		NewSimulation().WithRealEstate(DefaultRealEstate()).Build(t, db),
		NewSimulation().WithMixed(DefaultMixed()).Build(t, db),
	}
}
