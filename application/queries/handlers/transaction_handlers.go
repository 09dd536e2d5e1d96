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

// ListTransactionsHandler serves the paged transaction listing.
type ListTransactionsHandler struct {
	transactions ports.TransactionRepository
	logger       *zap.Logger
}

// NewListTransactionsHandler creates a new list transactions handler
func NewListTransactionsHandler(transactions ports.TransactionRepository, logger *zap.Logger) *ListTransactionsHandler {
	return &ListTransactionsHandler{transactions: transactions, logger: logger}
}

// Handle executes the query
func (h *ListTransactionsHandler) Handle(ctx context.Context, query queries.ListTransactionsQuery) (*common.PaginatedResult, error) {
	page, pageSize := common.NormalizePage(query.Page, query.PageSize)

	criteria := ports.TransactionListCriteria{
		Page:      page,
		PageSize:  pageSize,
		MinAmount: query.MinAmount,
		MaxAmount: query.MaxAmount,
		IP:        query.IP,
		DeviceID:  query.DeviceID,
		SortBy:    query.SortBy,
		Order:     query.Order,
	}

	txns, total, err := h.transactions.List(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return common.NewPaginatedResult(txns, page, pageSize, total), nil
}

// GetTransactionHandler serves a single transaction lookup.
type GetTransactionHandler struct {
	transactions ports.TransactionRepository
	logger       *zap.Logger
}

// NewGetTransactionHandler creates a new get transaction handler
func NewGetTransactionHandler(transactions ports.TransactionRepository, logger *zap.Logger) *GetTransactionHandler {
	return &GetTransactionHandler{transactions: transactions, logger: logger}
}

// Handle executes the query
func (h *GetTransactionHandler) Handle(ctx context.Context, query queries.GetTransactionQuery) (interface{}, error) {
	txn, err := h.transactions.GetByID(ctx, query.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if txn == nil {
		return nil, apperrors.NewNotFoundError("transaction")
	}
	return txn, nil
}
