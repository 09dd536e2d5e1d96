package handlers

import (
	"context"
	"fmt"

	"fraudgraph/application/commands"
	"fraudgraph/application/ports"
	"fraudgraph/domain/model"

	"go.uber.org/zap"
)

// UpsertUserHandler writes a user and re-derives its shared-attribute edges.
type UpsertUserHandler struct {
	users  ports.UserRepository
	logger *zap.Logger
}

// NewUpsertUserHandler creates a new upsert user handler
func NewUpsertUserHandler(users ports.UserRepository, logger *zap.Logger) *UpsertUserHandler {
	return &UpsertUserHandler{users: users, logger: logger}
}

// Handle executes the command
func (h *UpsertUserHandler) Handle(ctx context.Context, cmd commands.UpsertUserCommand) error {
	user := &model.User{
		ID:            cmd.UserID,
		Name:          cmd.Name,
		Email:         cmd.Email,
		Phone:         cmd.Phone,
		Address:       cmd.Address,
		PaymentMethod: cmd.PaymentMethod,
	}

	stored, err := h.users.Upsert(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	// Linking happens after the write so the new attribute values are visible
	// to the match. Failures here leave the user stored but under-linked, which
	// the next upsert repairs.
	if err := h.users.LinkSharedAttributes(ctx, stored); err != nil {
		h.logger.Error("Failed to link shared attributes",
			zap.String("userID", stored.ID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to link shared attributes: %w", err)
	}

	h.logger.Debug("User upserted", zap.String("userID", stored.ID))
	return nil
}
