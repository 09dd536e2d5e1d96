package handlers

import (
	"context"
	"fmt"

	"fraudgraph/application/ports"
	"fraudgraph/application/queries"
	"fraudgraph/pkg/common"
	apperrors "fraudgraph/pkg/errors"

	"go.uber.org/zap"
)

// ListUsersHandler serves the paged user listing.
type ListUsersHandler struct {
	users  ports.UserRepository
	logger *zap.Logger
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(users ports.UserRepository, logger *zap.Logger) *ListUsersHandler {
	return &ListUsersHandler{users: users, logger: logger}
}

// Handle executes the query
func (h *ListUsersHandler) Handle(ctx context.Context, query queries.ListUsersQuery) (*common.PaginatedResult, error) {
	page, pageSize := common.NormalizePage(query.Page, query.PageSize)

	criteria := ports.UserListCriteria{
		Page:     page,
		PageSize: pageSize,
		Name:     query.Name,
		Email:    query.Email,
		Phone:    query.Phone,
	}

	users, total, err := h.users.List(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return common.NewPaginatedResult(users, page, pageSize, total), nil
}

// GetUserHandler serves a single user lookup.
type GetUserHandler struct {
	users  ports.UserRepository
	logger *zap.Logger
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(users ports.UserRepository, logger *zap.Logger) *GetUserHandler {
	return &GetUserHandler{users: users, logger: logger}
}

// Handle executes the query
func (h *GetUserHandler) Handle(ctx context.Context, query queries.GetUserQuery) (interface{}, error) {
	user, err := h.users.GetByID(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user")
	}
	return user, nil
}
