package rest

import (
	"net/http"

	"fraudgraph/application/commands/bus"
	"fraudgraph/application/ports"
	querybus "fraudgraph/application/queries/bus"
	"fraudgraph/infrastructure/config"
	"fraudgraph/interfaces/http/rest/handlers"
	"fraudgraph/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg        *config.Config
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	admin      ports.StoreAdmin
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	admin ports.StoreAdmin,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:        cfg,
		commandBus: commandBus,
		queryBus:   queryBus,
		admin:      admin,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	var metrics *middleware.MetricsCollector
	if rt.cfg.EnableMetrics {
		metrics = middleware.NewMetricsCollector("fraudgraph")
		router.Use(metrics.Middleware)
	}

	// CORS configuration
	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if metrics != nil {
		router.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	// User endpoints
	router.Route("/users", func(r chi.Router) {
		userHandler := handlers.NewUserHandler(rt.commandBus, rt.queryBus, rt.logger)
		r.Get("/", userHandler.ListUsers)
		r.Post("/", userHandler.UpsertUser)
		r.Get("/{userID}", userHandler.GetUser)
	})

	// Transaction endpoints
	router.Route("/transactions", func(r chi.Router) {
		transactionHandler := handlers.NewTransactionHandler(rt.commandBus, rt.queryBus, rt.logger)
		r.Get("/", transactionHandler.ListTransactions)
		r.Post("/", transactionHandler.CreateTransaction)
		r.Get("/{transactionID}", transactionHandler.GetTransaction)
	})

	// Relationship view endpoints
	router.Route("/relationships", func(r chi.Router) {
		relationshipHandler := handlers.NewRelationshipHandler(rt.queryBus, rt.logger)
		r.Get("/user/{userID}", relationshipHandler.GetUserNetwork)
		r.Get("/transaction/{transactionID}", relationshipHandler.GetTransactionNetwork)
		r.Get("/graph", relationshipHandler.GetFullGraph)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests. Ready means the graph
// store answers.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := rt.admin.Ping(req.Context()); err != nil {
		rt.logger.Warn("Readiness check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
