package simulation

import (
	"encoding/json"
	"fmt"
)

// DecodeParameters decodes raw JSON into the parameter struct matching t.
// An empty or null payload decodes to nil.
func DecodeParameters(t SimulationType, raw []byte) (Parameters, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var (
		p   Parameters
		err error
	)
	switch t {
	case TypeFixedIncome:
		var v FixedIncomeParameters
		err = json.Unmarshal(raw, &v)
		p = v
	case TypeRealEstate:
		var v RealEstateParameters
		err = json.Unmarshal(raw, &v)
		p = v
	case TypeMixed:
		var v MixedParameters
		err = json.Unmarshal(raw, &v)
		p = v
	case TypeOptimized:
		var v OptimizationParameters
		err = json.Unmarshal(raw, &v)
		p = v
	default:
		return nil, fmt.Errorf("unknown simulation type %q", t)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s parameters: %w", t, err)
	}
	return p, nil
}

// UnmarshalJSON restores the concrete Parameters type from the result's Type tag.
func (r *SimulationResult) UnmarshalJSON(data []byte) error {
	type alias SimulationResult
	aux := struct {
		*alias
		Parameters json.RawMessage `json:"parameters"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	params, err := DecodeParameters(r.Type, aux.Parameters)
	if err != nil {
		return err
	}
	r.Parameters = params
	return nil
}
