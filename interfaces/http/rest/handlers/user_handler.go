package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"fraudgraph/application/commands"
	"fraudgraph/application/commands/bus"
	"fraudgraph/application/queries"
	querybus "fraudgraph/application/queries/bus"
	apperrors "fraudgraph/pkg/errors"
	"fraudgraph/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *UserHandler {
	return &UserHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// UpsertUserRequest represents the request body for creating or updating a user
type UpsertUserRequest struct {
	ID            string `json:"id" validate:"required"`
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address       string `json:"address,omitempty" validate:"omitempty,max=500"`
	PaymentMethod string `json:"paymentMethod,omitempty" validate:"omitempty,max=200"`
}

// UpsertUserResponse represents the response for creating or updating a user
type UpsertUserResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	UpdatedAt string `json:"updatedAt"`
}

// UpsertUser handles POST /users
func (h *UserHandler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	var req UpsertUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	cmd := commands.UpsertUserCommand{
		UserID:        req.ID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to upsert user",
			zap.String("userID", req.ID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err, "Failed to upsert user")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, UpsertUserResponse{
		ID:        req.ID,
		Message:   "User created or updated successfully",
		UpdatedAt: utils.NowRFC3339(),
	})
}

// GetUser handles GET /users/{userID}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "User ID is required")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetUserQuery{UserID: userID})
	if err != nil {
		if apperrors.IsNotFound(err) {
			respondError(w, h.logger, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("Failed to get user",
			zap.String("userID", userID),
			zap.Error(err),
		)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to retrieve user")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	query := queries.ListUsersQuery{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "limit", 10),
		Name:     r.URL.Query().Get("name"),
		Email:    r.URL.Query().Get("email"),
		Phone:    r.URL.Query().Get("phone"),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to list users")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// queryInt reads an integer query parameter with a default value.
func queryInt(r *http.Request, key string, defaultValue int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
