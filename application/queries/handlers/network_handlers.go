package handlers

import (
	"context"
	"fmt"

	"fraudgraph/application/ports"
	"fraudgraph/application/queries"
	"fraudgraph/domain/graph"

	"go.uber.org/zap"
)

// GetUserNetworkHandler assembles the neighborhood view around one user.
type GetUserNetworkHandler struct {
	relationships ports.RelationshipRepository
	logger        *zap.Logger
}

// NewGetUserNetworkHandler creates a new user network handler
func NewGetUserNetworkHandler(relationships ports.RelationshipRepository, logger *zap.Logger) *GetUserNetworkHandler {
	return &GetUserNetworkHandler{relationships: relationships, logger: logger}
}

// Handle executes the query. A user with no matches comes back as an empty
// graph rather than an error.
func (h *GetUserNetworkHandler) Handle(ctx context.Context, query queries.GetUserNetworkQuery) (graph.Graph, error) {
	neighborhood, err := h.relationships.UserNeighborhood(ctx, query.UserID)
	if err != nil {
		return graph.Graph{}, fmt.Errorf("failed to query user neighborhood: %w", err)
	}

	view := graph.AssembleUserView(neighborhood)

	h.logger.Debug("User network assembled",
		zap.String("userID", query.UserID),
		zap.Int("nodeCount", len(view.Nodes)),
		zap.Int("edgeCount", len(view.Edges)),
	)
	return view, nil
}

// GetTransactionNetworkHandler assembles the neighborhood view around one
// transaction.
type GetTransactionNetworkHandler struct {
	relationships ports.RelationshipRepository
	logger        *zap.Logger
}

// NewGetTransactionNetworkHandler creates a new transaction network handler
func NewGetTransactionNetworkHandler(relationships ports.RelationshipRepository, logger *zap.Logger) *GetTransactionNetworkHandler {
	return &GetTransactionNetworkHandler{relationships: relationships, logger: logger}
}

// Handle executes the query
func (h *GetTransactionNetworkHandler) Handle(ctx context.Context, query queries.GetTransactionNetworkQuery) (graph.Graph, error) {
	neighborhood, err := h.relationships.TransactionNeighborhood(ctx, query.TransactionID)
	if err != nil {
		return graph.Graph{}, fmt.Errorf("failed to query transaction neighborhood: %w", err)
	}

	view := graph.AssembleTransactionView(neighborhood)

	h.logger.Debug("Transaction network assembled",
		zap.String("transactionID", query.TransactionID),
		zap.Int("nodeCount", len(view.Nodes)),
		zap.Int("edgeCount", len(view.Edges)),
	)
	return view, nil
}

// GetFullGraphHandler assembles the whole store into one view graph.
type GetFullGraphHandler struct {
	relationships ports.RelationshipRepository
	logger        *zap.Logger
}

// NewGetFullGraphHandler creates a new full graph handler
func NewGetFullGraphHandler(relationships ports.RelationshipRepository, logger *zap.Logger) *GetFullGraphHandler {
	return &GetFullGraphHandler{relationships: relationships, logger: logger}
}

// Handle executes the query
func (h *GetFullGraphHandler) Handle(ctx context.Context, query queries.GetFullGraphQuery) (graph.Graph, error) {
	snapshot, err := h.relationships.Snapshot(ctx)
	if err != nil {
		return graph.Graph{}, fmt.Errorf("failed to query graph snapshot: %w", err)
	}

	view := graph.AssembleFullGraph(snapshot)

	h.logger.Debug("Full graph assembled",
		zap.Int("nodeCount", len(view.Nodes)),
		zap.Int("edgeCount", len(view.Edges)),
	)
	return view, nil
}
