package handlers

import (
	"net/http"

	"fraudgraph/application/queries"
	querybus "fraudgraph/application/queries/bus"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RelationshipHandler serves the assembled graph views. All three endpoints
// return {nodes, edges} payloads ready for the visualization frontend.
type RelationshipHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewRelationshipHandler creates a new relationship handler
func NewRelationshipHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *RelationshipHandler {
	return &RelationshipHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// GetUserNetwork handles GET /relationships/user/{userID}
func (h *RelationshipHandler) GetUserNetwork(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "User ID is required")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetUserNetworkQuery{UserID: userID})
	if err != nil {
		h.logger.Error("Failed to get user network",
			zap.String("userID", userID),
			zap.Error(err),
		)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to retrieve user network")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// GetTransactionNetwork handles GET /relationships/transaction/{transactionID}
func (h *RelationshipHandler) GetTransactionNetwork(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")
	if transactionID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Transaction ID is required")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetTransactionNetworkQuery{TransactionID: transactionID})
	if err != nil {
		h.logger.Error("Failed to get transaction network",
			zap.String("transactionID", transactionID),
			zap.Error(err),
		)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to retrieve transaction network")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// GetFullGraph handles GET /relationships/graph
func (h *RelationshipHandler) GetFullGraph(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetFullGraphQuery{})
	if err != nil {
		h.logger.Error("Failed to get full graph", zap.Error(err))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to retrieve graph")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}
