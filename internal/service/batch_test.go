package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/service"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/testutil"
)

func scenario(t *testing.T, p simulation.Parameters) request.Scenario {
	t.Helper()

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Failed to encode scenario: %v", err)
	}
	return request.Scenario{Type: p.SimulationType(), Parameters: raw}
}

// TestProjectConcurrently tests that concurrent projection keeps request order.
func TestProjectConcurrently(t *testing.T) {
	t.Run("results follow parameter order", func(t *testing.T) {
		// Setup
		params := []simulation.Parameters{
			testutil.DefaultMixed(),
			testutil.DefaultFixedIncome(),
			testutil.DefaultRealEstate(),
			testutil.DefaultFixedIncome(),
		}

		// Execute
		results, err := service.ProjectConcurrently(context.Background(), params, 2)

		// Assert
		if err != nil {
			t.Fatalf("ProjectConcurrently() returned unexpected error: %v", err)
		}
		want := []simulation.SimulationType{
			simulation.TypeMixed, simulation.TypeFixedIncome, simulation.TypeRealEstate, simulation.TypeFixedIncome,
		}
		for i, r := range results {
			if r.Type != want[i] {
				t.Errorf("result %d: expected %s, got %s", i, want[i], r.Type)
			}
		}
	})

	t.Run("fails on parameters that cannot be projected", func(t *testing.T) {
		// Setup
		params := []simulation.Parameters{
			testutil.DefaultFixedIncome(),
			simulation.OptimizationParameters{},
		}

		// Execute
		_, err := service.ProjectConcurrently(context.Background(), params, 4)

		// Assert
		if !errors.Is(err, apperrors.ErrInvalidSimulationType) {
			t.Errorf("Expected ErrInvalidSimulationType, got %v", err)
		}
	})
}

// TestSimulationService_RunBatch tests batch projection and storage.
//
// WHY: A batch is stored in one transaction. A failure anywhere must leave
// nothing behind, and a blend must reference the ids the batch just stored.
func TestSimulationService_RunBatch(t *testing.T) {
	t.Run("stores every scenario", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSimulationService(t, db)
		req := request.BatchRequest{
			UserID: "alice",
			Scenarios: []request.Scenario{
				scenario(t, testutil.DefaultFixedIncome()),
				scenario(t, testutil.DefaultRealEstate()),
			},
		}

		// Execute
		res, err := svc.RunBatch(context.Background(), req)

		// Assert
		if err != nil {
			t.Fatalf("RunBatch() returned unexpected error: %v", err)
		}
		if len(res.Simulations) != 2 {
			t.Fatalf("Expected 2 simulations, got %d", len(res.Simulations))
		}
		if res.Optimized != nil {
			t.Error("Expected no optimized simulation")
		}
		if res.Simulations[1].Type != simulation.TypeRealEstate || res.Simulations[1].UserID != "alice" {
			t.Errorf("Unexpected second simulation: %s owned by %q", res.Simulations[1].Type, res.Simulations[1].UserID)
		}
		testutil.AssertRowCount(t, db, "simulation", 2)
	})

	t.Run("blends the stored scenarios when asked", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSimulationService(t, db)
		req := request.BatchRequest{
			Scenarios: []request.Scenario{
				scenario(t, testutil.DefaultFixedIncome()),
				scenario(t, testutil.DefaultRealEstate()),
				scenario(t, testutil.DefaultMixed()),
			},
			Optimize: &simulation.Constraints{RiskTolerance: 50, MaxAllocation: 60},
		}

		// Execute
		res, err := svc.RunBatch(context.Background(), req)

		// Assert
		if err != nil {
			t.Fatalf("RunBatch() returned unexpected error: %v", err)
		}
		if res.Optimized == nil {
			t.Fatal("Expected an optimized simulation")
		}
		sources := res.Optimized.Parameters.(simulation.OptimizationParameters).SourceIDs
		for i, sim := range res.Simulations {
			if sources[i] != sim.ID {
				t.Errorf("source %d: expected %s, got %s", i, sim.ID, sources[i])
			}
		}
		testutil.AssertRowCount(t, db, "simulation", 4)

		stored, err := svc.GetSimulation(context.Background(), res.Optimized.ID)
		if err != nil {
			t.Fatalf("GetSimulation() returned unexpected error: %v", err)
		}
		if stored.Type != simulation.TypeOptimized {
			t.Errorf("Expected stored optimized simulation, got %s", stored.Type)
		}
	})

	t.Run("stores nothing when the blend fails", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSimulationService(t, db)
		req := request.BatchRequest{
			Scenarios: []request.Scenario{scenario(t, testutil.DefaultFixedIncome())},
			Optimize:  &simulation.Constraints{RiskTolerance: 50, MaxAllocation: 60},
		}

		// Execute
		_, err := svc.RunBatch(context.Background(), req)

		// Assert
		if !errors.Is(err, simulation.ErrInsufficientInputs) {
			t.Errorf("Expected ErrInsufficientInputs, got %v", err)
		}
		testutil.AssertRowCount(t, db, "simulation", 0)
	})

	t.Run("rejects empty batch", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSimulationService(t, db)

		// Execute
		_, err := svc.RunBatch(context.Background(), request.BatchRequest{})

		// Assert
		if !errors.Is(err, apperrors.ErrEmptyBatch) {
			t.Errorf("Expected ErrEmptyBatch, got %v", err)
		}
	})

	t.Run("rejects unknown scenario type", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSimulationService(t, db)
		req := request.BatchRequest{
			Scenarios: []request.Scenario{{Type: "bonds", Parameters: json.RawMessage(`{}`)}},
		}

		// Execute
		_, err := svc.RunBatch(context.Background(), req)

		// Assert
		if !errors.Is(err, apperrors.ErrInvalidSimulationType) {
			t.Errorf("Expected ErrInvalidSimulationType, got %v", err)
		}
		testutil.AssertRowCount(t, db, "simulation", 0)
	})
}
