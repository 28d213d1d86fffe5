package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/cache"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/model"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/repository"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
)

// SimulationOptions tune a SimulationService.
type SimulationOptions struct {
	CacheTTL         time.Duration
	ShareKey         *fernet.Key
	ShareTokenTTL    time.Duration
	BatchConcurrency int
	// Clock stamps creation times and share tokens. Nil means time.Now.
	Clock            func() time.Time
}

// SimulationService handles simulation business logic: it runs projections,
// stamps and stores their results, blends stored results and shares them.
//
// The engine itself is pure; everything with an identity or a clock lives here.
type SimulationService struct {
	db      *sql.DB
	simRepo *repository.SimulationRepository
	cache   cache.Cache
	logger  *zap.Logger
	opts    SimulationOptions
	now     func() time.Time
	newID   func() string
}

// NewSimulationService creates a new SimulationService with the provided dependencies.
// A nil cache disables caching.
func NewSimulationService(
	db *sql.DB,
	simRepo *repository.SimulationRepository,
	c cache.Cache,
	logger *zap.Logger,
	opts SimulationOptions,
) *SimulationService {
	if opts.BatchConcurrency < 1 {
		opts.BatchConcurrency = 1
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &SimulationService{
		db:      db,
		simRepo: simRepo,
		cache:   c,
		logger:  logger,
		opts:    opts,
		now:     func() time.Time { return clock().UTC() },
		newID:   func() string { return uuid.New().String() },
	}
}

// CreateFixedIncome projects a CDI or IPCA+ investment and stores the result.
func (s *SimulationService) CreateFixedIncome(ctx context.Context, req request.CreateFixedIncomeRequest) (model.Simulation, error) {
	return s.create(ctx, req.UserID, req.FixedIncomeParameters)
}

// CreateRealEstate projects a financed property purchase and stores the result.
func (s *SimulationService) CreateRealEstate(ctx context.Context, req request.CreateRealEstateRequest) (model.Simulation, error) {
	return s.create(ctx, req.UserID, req.RealEstateParameters)
}

// CreateMixed projects a financed property combined with a CDI investment and stores the result.
func (s *SimulationService) CreateMixed(ctx context.Context, req request.CreateMixedRequest) (model.Simulation, error) {
	return s.create(ctx, req.UserID, req.MixedParameters)
}

func (s *SimulationService) create(ctx context.Context, userID string, p simulation.Parameters) (model.Simulation, error) {
	result, err := s.project(ctx, p)
	if err != nil {
		return model.Simulation{}, err
	}

	sim := s.stamp(result, userID)
	if err := s.simRepo.InsertSimulation(ctx, sim); err != nil {
		return model.Simulation{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveSimulation, err)
	}
	s.cacheSimulation(ctx, sim)

	s.logger.Info("simulation created",
		zap.String("id", sim.ID),
		zap.String("type", string(sim.Type)),
		zap.Float64("final_value", sim.FinalValue),
	)
	return sim, nil
}

// project runs the engine for p. Identical parameters are memoized in the
// cache under a fingerprint of their JSON encoding.
func (s *SimulationService) project(ctx context.Context, p simulation.Parameters) (simulation.SimulationResult, error) {
	encoded, err := json.Marshal(p)
	if err != nil {
		return simulation.SimulationResult{}, fmt.Errorf("failed to encode parameters: %w", err)
	}
	key := cache.ProjectionKey(p.SimulationType(), encoded)

	var cached simulation.SimulationResult
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	result, err := Project(p)
	if err != nil {
		return simulation.SimulationResult{}, err
	}
	s.cacheSet(ctx, key, result)
	return result, nil
}

// Project dispatches p to the matching projector.
func Project(p simulation.Parameters) (simulation.SimulationResult, error) {
	switch v := p.(type) {
	case simulation.FixedIncomeParameters:
		return simulation.ProjectFixedIncome(v), nil
	case simulation.RealEstateParameters:
		return simulation.ProjectRealEstate(v), nil
	case simulation.MixedParameters:
		return simulation.ProjectMixed(v), nil
	case nil:
		return simulation.SimulationResult{}, fmt.Errorf("%w: no parameters", apperrors.ErrInvalidSimulationType)
	default:
		return simulation.SimulationResult{}, fmt.Errorf("%w: %s cannot be projected", apperrors.ErrInvalidSimulationType, p.SimulationType())
	}
}

// stamp assigns identity and creation time to an engine result.
func (s *SimulationService) stamp(r simulation.SimulationResult, userID string) model.Simulation {
	r.ID = s.newID()
	r.CreatedAt = s.now().Truncate(time.Microsecond)
	return model.Simulation{SimulationResult: r, UserID: userID}
}

// Optimize blends stored simulations into a new optimized simulation.
//
// Simulations that are themselves optimized blends are dropped before
// blending. Returns simulation.ErrInsufficientInputs when fewer than two
// remain, and apperrors.ErrSimulationNotFound when an id is unknown.
func (s *SimulationService) Optimize(ctx context.Context, req request.OptimizeRequest) (model.Simulation, error) {
	inputs := make([]simulation.SimulationResult, 0, len(req.SimulationIDs))
	for _, id := range req.SimulationIDs {
		sim, err := s.GetSimulation(ctx, id)
		if err != nil {
			return model.Simulation{}, err
		}
		inputs = append(inputs, sim.SimulationResult)
	}

	blended, err := s.blend(inputs, req.Constraints)
	if err != nil {
		return model.Simulation{}, err
	}

	sim := s.stamp(blended, req.UserID)
	if err := s.simRepo.InsertSimulation(ctx, sim); err != nil {
		return model.Simulation{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveSimulation, err)
	}
	s.cacheSimulation(ctx, sim)

	s.logger.Info("simulation optimized",
		zap.String("id", sim.ID),
		zap.Strings("sources", sim.Parameters.(simulation.OptimizationParameters).SourceIDs),
		zap.Float64("return_percentage", sim.ReturnPercentage),
	)
	return sim, nil
}

// blend drops optimized inputs and runs the optimizer on the rest.
func (s *SimulationService) blend(inputs []simulation.SimulationResult, c simulation.Constraints) (simulation.SimulationResult, error) {
	blendable := make([]simulation.SimulationResult, 0, len(inputs))
	for _, in := range inputs {
		if in.Type == simulation.TypeOptimized {
			s.logger.Info("skipping optimized simulation as blend input", zap.String("id", in.ID))
			continue
		}
		blendable = append(blendable, in)
	}
	return simulation.Optimize(blendable, c)
}

// GetSimulation retrieves a simulation, reading through the cache.
func (s *SimulationService) GetSimulation(ctx context.Context, id string) (model.Simulation, error) {
	var sim model.Simulation
	if s.cacheGet(ctx, cache.SimulationKey(id), &sim) {
		return sim, nil
	}

	sim, err := s.simRepo.GetSimulation(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrSimulationNotFound) {
			return model.Simulation{}, err
		}
		return model.Simulation{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveSimulation, err)
	}

	s.cacheSimulation(ctx, sim)
	return sim, nil
}

// ListSimulations retrieves simulation summaries matching the filter, newest first.
func (s *SimulationService) ListSimulations(ctx context.Context, filter model.SimulationFilter) ([]model.SimulationSummary, error) {
	list, err := s.simRepo.GetSimulations(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveSimulations, err)
	}
	return list, nil
}

// DeleteSimulation removes a simulation and its cache entry.
// Returns apperrors.ErrSimulationNotFound if it does not exist.
func (s *SimulationService) DeleteSimulation(ctx context.Context, id string) error {
	if err := s.simRepo.DeleteSimulation(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrSimulationNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToDeleteSimulation, err)
	}
	s.cacheDelete(ctx, cache.SimulationKey(id))
	return nil
}

// PurgeExpired deletes simulations older than retention and returns how many
// were removed.
func (s *SimulationService) PurgeExpired(ctx context.Context, retention time.Duration) (int, error) {
	ids, err := s.simRepo.DeleteSimulationsOlderThan(ctx, s.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrFailedToDeleteSimulation, err)
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cache.SimulationKey(id)
	}
	s.cacheDelete(ctx, keys...)

	return len(ids), nil
}

func (s *SimulationService) cacheSimulation(ctx context.Context, sim model.Simulation) {
	s.cacheSet(ctx, cache.SimulationKey(sim.ID), sim)
}

// cacheGet decodes key into dst. Misses and failures both report false;
// failures are logged.
func (s *SimulationService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Warn("cache entry undecodable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *SimulationService) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("cache entry unencodable", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.opts.CacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *SimulationService) cacheDelete(ctx context.Context, keys ...string) {
	if s.cache == nil || len(keys) == 0 {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
