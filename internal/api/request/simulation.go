// Package request holds the JSON bodies accepted by the simulation API.
package request

import (
	"encoding/json"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
)

// CreateFixedIncomeRequest is the body of POST /api/simulation/fixed-income.
type CreateFixedIncomeRequest struct {
	UserID string `json:"userId,omitempty"`
	simulation.FixedIncomeParameters
}

// CreateRealEstateRequest is the body of POST /api/simulation/real-estate.
type CreateRealEstateRequest struct {
	UserID string `json:"userId,omitempty"`
	simulation.RealEstateParameters
}

// CreateMixedRequest is the body of POST /api/simulation/mixed.
type CreateMixedRequest struct {
	UserID string `json:"userId,omitempty"`
	simulation.MixedParameters
}

// OptimizeRequest blends previously stored simulations.
type OptimizeRequest struct {
	UserID        string   `json:"userId,omitempty"`
	SimulationIDs []string `json:"simulationIds"`
	simulation.Constraints
}

// Scenario is one projection inside a batch, tagged by type.
type Scenario struct {
	Type       simulation.SimulationType `json:"type"`
	Parameters json.RawMessage           `json:"parameters"`
}

// Decode returns the typed parameters of the scenario.
func (s Scenario) Decode() (simulation.Parameters, error) {
	return simulation.DecodeParameters(s.Type, s.Parameters)
}

// BatchRequest runs several projections at once. When Optimize is set the
// projected results are also blended into one optimized simulation.
type BatchRequest struct {
	UserID    string                  `json:"userId,omitempty"`
	Scenarios []Scenario              `json:"scenarios"`
	Optimize  *simulation.Constraints `json:"optimize,omitempty"`
}
