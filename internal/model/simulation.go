package model

import (
	"encoding/json"
	"time"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
)

// Simulation is a persisted projection together with the user it belongs to.
// UserID is empty for anonymous simulations.
type Simulation struct {
	simulation.SimulationResult
	UserID string `json:"userId,omitempty"`
}

// UnmarshalJSON decodes the embedded result and the owner separately, since the
// embedded result's own UnmarshalJSON would otherwise swallow the whole payload.
func (s *Simulation) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &s.SimulationResult); err != nil {
		return err
	}
	var owner struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(data, &owner); err != nil {
		return err
	}
	s.UserID = owner.UserID
	return nil
}

// SimulationSummary is the list view of a simulation, without the monthly series.
type SimulationSummary struct {
	ID               string                    `json:"id"`
	UserID           string                    `json:"userId,omitempty"`
	Name             string                    `json:"name"`
	Type             simulation.SimulationType `json:"type"`
	FinalValue       float64                   `json:"finalValue"`
	TotalInvested    float64                   `json:"totalInvested"`
	TotalReturn      float64                   `json:"totalReturn"`
	ReturnPercentage float64                   `json:"returnPercentage"`
	CreatedAt        time.Time                 `json:"createdAt"`
}

// SimulationFilter narrows a simulation listing. Zero values match everything;
// Limit <= 0 means no limit.
type SimulationFilter struct {
	UserID string
	Type   simulation.SimulationType
	Limit  int
}
