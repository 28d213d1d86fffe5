package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/model"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/report"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/service"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/validation"
)

// SimulationHandler handles simulation-related HTTP requests
type SimulationHandler struct {
	simulationService *service.SimulationService
}

// NewSimulationHandler creates a new SimulationHandler
func NewSimulationHandler(simulationService *service.SimulationService) *SimulationHandler {
	return &SimulationHandler{
		simulationService: simulationService,
	}
}

// FixedIncome handles POST requests to project a CDI or IPCA+ investment.
//
// Endpoint: POST /api/simulation/fixed-income
// Request Body: CreateFixedIncomeRequest
// Response: 201 Created with Simulation
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the simulation cannot be stored
func (h *SimulationHandler) FixedIncome(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateFixedIncomeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreate(req.UserID, req.FixedIncomeParameters); err != nil {
		respondValidation(w, err)
		return
	}

	sim, err := h.simulationService.CreateFixedIncome(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create simulation", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, sim)
}

// RealEstate handles POST requests to project a financed property purchase.
//
// Endpoint: POST /api/simulation/real-estate
// Request Body: CreateRealEstateRequest
// Response: 201 Created with Simulation
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the simulation cannot be stored
func (h *SimulationHandler) RealEstate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateRealEstateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreate(req.UserID, req.RealEstateParameters); err != nil {
		respondValidation(w, err)
		return
	}

	sim, err := h.simulationService.CreateRealEstate(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create simulation", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, sim)
}

// Mixed handles POST requests to project a property purchase combined with a CDI investment.
//
// Endpoint: POST /api/simulation/mixed
// Request Body: CreateMixedRequest
// Response: 201 Created with Simulation
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the simulation cannot be stored
func (h *SimulationHandler) Mixed(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateMixedRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreate(req.UserID, req.MixedParameters); err != nil {
		respondValidation(w, err)
		return
	}

	sim, err := h.simulationService.CreateMixed(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create simulation", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, sim)
}

// Optimize handles POST requests to blend stored simulations into an optimized portfolio.
// Optimized simulations among the inputs are ignored.
//
// Endpoint: POST /api/simulation/optimize
// Request Body: OptimizeRequest (simulationIds, targetReturn, riskTolerance, maxAllocation)
// Response: 201 Created with Simulation
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if any simulation id is unknown
// Error: 422 Unprocessable Entity if fewer than two blendable simulations remain
// Error: 500 Internal Server Error if the blend cannot be stored
func (h *SimulationHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.OptimizeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateOptimize(req); err != nil {
		respondValidation(w, err)
		return
	}

	sim, err := h.simulationService.Optimize(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSimulationNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSimulationNotFound.Error(), err.Error())
		case errors.Is(err, simulation.ErrInsufficientInputs):
			response.RespondError(w, http.StatusUnprocessableEntity, simulation.ErrInsufficientInputs.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to optimize simulations", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, sim)
}

// Batch handles POST requests to run several projections at once, optionally
// blending them. Either every result is stored or none is.
//
// Endpoint: POST /api/simulation/batch
// Request Body: BatchRequest (scenarios[], optional optimize constraints)
// Response: 201 Created with BatchResult
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 422 Unprocessable Entity if a blend is requested over fewer than two scenarios
// Error: 500 Internal Server Error if the batch cannot be stored
func (h *SimulationHandler) Batch(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.BatchRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateBatch(req); err != nil {
		respondValidation(w, err)
		return
	}

	res, err := h.simulationService.RunBatch(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, simulation.ErrInsufficientInputs):
			response.RespondError(w, http.StatusUnprocessableEntity, simulation.ErrInsufficientInputs.Error(), err.Error())
		case errors.Is(err, apperrors.ErrEmptyBatch), errors.Is(err, apperrors.ErrInvalidSimulationType):
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to run batch", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, res)
}

// Simulations handles GET requests to list stored simulations, newest first.
//
// Endpoint: GET /api/simulation
// Query Parameters: user_id, type, limit (all optional)
// Response: 200 OK with array of SimulationSummary
// Error: 400 Bad Request if a query parameter is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *SimulationHandler) Simulations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.SimulationFilter{
		UserID: q.Get("user_id"),
		Type:   simulation.SimulationType(q.Get("type")),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "validation failed", map[string]string{"limit": "limit must be an integer"})
			return
		}
		filter.Limit = limit
	}

	if err := validation.ValidateFilter(filter); err != nil {
		respondValidation(w, err)
		return
	}

	list, err := h.simulationService.ListSimulations(r.Context(), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSimulations.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, list)
}

// Simulation handles GET requests to retrieve a single simulation with its monthly series.
//
// Endpoint: GET /api/simulation/{uuid}
// Response: 200 OK with Simulation
// Error: 400 Bad Request if the id is invalid (validated by middleware)
// Error: 404 Not Found if the simulation does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *SimulationHandler) Simulation(w http.ResponseWriter, r *http.Request) {
	sim, ok := h.load(w, r)
	if !ok {
		return
	}

	response.RespondJSON(w, http.StatusOK, sim)
}

// DeleteSimulation handles DELETE requests to remove a simulation.
//
// Endpoint: DELETE /api/simulation/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if the id is invalid (validated by middleware)
// Error: 404 Not Found if the simulation does not exist
// Error: 500 Internal Server Error if deletion fails
func (h *SimulationHandler) DeleteSimulation(w http.ResponseWriter, r *http.Request) {
	simulationID := chi.URLParam(r, "uuid")

	if err := h.simulationService.DeleteSimulation(r.Context(), simulationID); err != nil {
		if errors.Is(err, apperrors.ErrSimulationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSimulationNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDeleteSimulation.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Export handles GET requests to download the monthly series of a simulation as CSV.
//
// Endpoint: GET /api/simulation/{uuid}/export
// Response: 200 OK with text/csv attachment
// Error: 400 Bad Request if the id is invalid (validated by middleware)
// Error: 404 Not Found if the simulation does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *SimulationHandler) Export(w http.ResponseWriter, r *http.Request) {
	sim, ok := h.load(w, r)
	if !ok {
		return
	}

	response.RespondFile(w, "text/csv", sim.ID+".csv", func(out io.Writer) error {
		return report.WriteCSV(out, sim.SimulationResult)
	})
}

// Share handles POST requests to issue an expiring share token for a simulation.
//
// Endpoint: POST /api/simulation/{uuid}/share
// Response: 201 Created with ShareToken
// Error: 400 Bad Request if the id is invalid (validated by middleware)
// Error: 404 Not Found if the simulation does not exist
// Error: 500 Internal Server Error if the token cannot be issued
func (h *SimulationHandler) Share(w http.ResponseWriter, r *http.Request) {
	simulationID := chi.URLParam(r, "uuid")

	tok, err := h.simulationService.ShareSimulation(r.Context(), simulationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSimulationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSimulationNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to share simulation", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, tok)
}

// Shared handles GET requests to resolve a share token into the simulation it points to.
// Invalid, expired and dangling tokens are indistinguishable to the caller.
//
// Endpoint: GET /api/simulation/shared/{token}
// Response: 200 OK with Simulation
// Error: 404 Not Found if the token is invalid, expired or its simulation was deleted
// Error: 500 Internal Server Error if retrieval fails
func (h *SimulationHandler) Shared(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	sim, err := h.simulationService.ResolveSharedSimulation(r.Context(), token)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidShareToken) || errors.Is(err, apperrors.ErrSimulationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvalidShareToken.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSimulation.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, sim)
}

// load fetches the simulation named by the uuid URL parameter, writing the
// error response itself when it fails.
func (h *SimulationHandler) load(w http.ResponseWriter, r *http.Request) (model.Simulation, bool) {
	simulationID := chi.URLParam(r, "uuid")

	sim, err := h.simulationService.GetSimulation(r.Context(), simulationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSimulationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSimulationNotFound.Error(), err.Error())
			return model.Simulation{}, false
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSimulation.Error(), err.Error())
		return model.Simulation{}, false
	}

	return sim, true
}
