package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Investment-Simulator-Backend/internal/api/middleware"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/config"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	simulationService *service.SimulationService,
	logger *zap.Logger,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/simulation", func(r chi.Router) {
			simulationHandler := handlers.NewSimulationHandler(simulationService)
			r.Get("/", simulationHandler.Simulations)
			r.Post("/fixed-income", simulationHandler.FixedIncome)
			r.Post("/real-estate", simulationHandler.RealEstate)
			r.Post("/mixed", simulationHandler.Mixed)
			r.Post("/optimize", simulationHandler.Optimize)
			r.Post("/batch", simulationHandler.Batch)
			r.Get("/shared/{token}", simulationHandler.Shared)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", simulationHandler.Simulation)
				r.Delete("/", simulationHandler.DeleteSimulation)
				r.Get("/export", simulationHandler.Export)
				r.Post("/share", simulationHandler.Share)
			})
		})
	})

	return r
}
