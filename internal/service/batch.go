package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/model"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
)

// BatchResult holds the simulations stored by RunBatch, in request order.
// Optimized is set when the request asked for a blend.
type BatchResult struct {
	Simulations []model.Simulation `json:"simulations"`
	Optimized   *model.Simulation  `json:"optimized,omitempty"`
}

// ProjectConcurrently runs every projection with at most limit running at
// once. Results keep the order of params. The first failure cancels the rest.
func ProjectConcurrently(ctx context.Context, params []simulation.Parameters, limit int) ([]simulation.SimulationResult, error) {
	results := make([]simulation.SimulationResult, len(params))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for i, p := range params {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := Project(p)
			if err != nil {
				return fmt.Errorf("scenario %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RunBatch projects every scenario concurrently and stores all results in a
// single transaction, so a batch is either fully stored or not at all.
func (s *SimulationService) RunBatch(ctx context.Context, req request.BatchRequest) (BatchResult, error) {
	if len(req.Scenarios) == 0 {
		return BatchResult{}, apperrors.ErrEmptyBatch
	}

	params := make([]simulation.Parameters, len(req.Scenarios))
	for i, sc := range req.Scenarios {
		p, err := sc.Decode()
		if err != nil {
			return BatchResult{}, fmt.Errorf("%w: scenario %d: %w", apperrors.ErrInvalidSimulationType, i, err)
		}
		params[i] = p
	}

	projected, err := ProjectConcurrently(ctx, params, s.opts.BatchConcurrency)
	if err != nil {
		return BatchResult{}, err
	}

	out := BatchResult{Simulations: make([]model.Simulation, len(projected))}
	for i, r := range projected {
		out.Simulations[i] = s.stamp(r, req.UserID)
	}

	if req.Optimize != nil {
		blended, err := s.blend(projected, *req.Optimize)
		if err != nil {
			return BatchResult{}, err
		}
		// the blend references the stamped ids, not the engine's empty ones
		params := blended.Parameters.(simulation.OptimizationParameters)
		params.SourceIDs = make([]string, len(out.Simulations))
		for i, sim := range out.Simulations {
			params.SourceIDs[i] = sim.ID
		}
		blended.Parameters = params

		opt := s.stamp(blended, req.UserID)
		out.Optimized = &opt
	}

	if err := s.saveAll(ctx, out); err != nil {
		return BatchResult{}, err
	}

	for _, sim := range out.Simulations {
		s.cacheSimulation(ctx, sim)
	}
	if out.Optimized != nil {
		s.cacheSimulation(ctx, *out.Optimized)
	}

	s.logger.Info("batch stored",
		zap.Int("scenarios", len(out.Simulations)),
		zap.Bool("optimized", out.Optimized != nil),
	)
	return out, nil
}

func (s *SimulationService) saveAll(ctx context.Context, batch BatchResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", apperrors.ErrFailedToSaveSimulation, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	repo := s.simRepo.WithTx(tx)
	for _, sim := range batch.Simulations {
		if err := repo.InsertSimulation(ctx, sim); err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveSimulation, err)
		}
	}
	if batch.Optimized != nil {
		if err := repo.InsertSimulation(ctx, *batch.Optimized); err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveSimulation, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", apperrors.ErrFailedToSaveSimulation, err)
	}
	return nil
}
