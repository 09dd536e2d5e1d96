package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"fraudgraph/application/commands"
	"fraudgraph/application/commands/bus"
	"fraudgraph/application/queries"
	querybus "fraudgraph/application/queries/bus"
	apperrors "fraudgraph/pkg/errors"
	"fraudgraph/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateTransactionRequest represents the request body for creating a transaction
type CreateTransactionRequest struct {
	ID         string    `json:"id,omitempty"` // generated when absent
	Amount     float64   `json:"amount" validate:"required,gt=0"`
	SenderID   string    `json:"senderId" validate:"required"`
	ReceiverID string    `json:"receiverId" validate:"required"`
	IP         string    `json:"ip,omitempty" validate:"omitempty,max=100"`
	DeviceID   string    `json:"deviceId,omitempty" validate:"omitempty,max=200"`
	Timestamp  time.Time `json:"timestamp,omitempty"`
}

// CreateTransactionResponse represents the response for creating a transaction
type CreateTransactionResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// CreateTransaction handles POST /transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	cmd := commands.CreateTransactionCommand{
		TransactionID: req.ID,
		Amount:        req.Amount,
		SenderID:      req.SenderID,
		ReceiverID:    req.ReceiverID,
		IP:            req.IP,
		DeviceID:      req.DeviceID,
		Timestamp:     req.Timestamp,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to create transaction",
			zap.String("transactionID", req.ID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err, "Failed to create transaction")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, CreateTransactionResponse{
		ID:        req.ID,
		Message:   "Transaction created successfully",
		CreatedAt: utils.NowRFC3339(),
	})
}

// GetTransaction handles GET /transactions/{transactionID}
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")
	if transactionID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Transaction ID is required")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetTransactionQuery{TransactionID: transactionID})
	if err != nil {
		if apperrors.IsNotFound(err) {
			respondError(w, h.logger, http.StatusNotFound, "Transaction not found")
			return
		}
		h.logger.Error("Failed to get transaction",
			zap.String("transactionID", transactionID),
			zap.Error(err),
		)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to retrieve transaction")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// ListTransactions handles GET /transactions
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	query := queries.ListTransactionsQuery{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "limit", 10),
		IP:       r.URL.Query().Get("ip"),
		DeviceID: r.URL.Query().Get("deviceId"),
		SortBy:   r.URL.Query().Get("sortField"),
		Order:    r.URL.Query().Get("sortOrder"),
	}

	if raw := r.URL.Query().Get("minAmount"); raw != "" {
		if amount, err := strconv.ParseFloat(raw, 64); err == nil {
			query.MinAmount = &amount
		}
	}
	if raw := r.URL.Query().Get("maxAmount"); raw != "" {
		if amount, err := strconv.ParseFloat(raw, 64); err == nil {
			query.MaxAmount = &amount
		}
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to list transactions", zap.Error(err))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}
