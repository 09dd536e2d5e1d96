package handlers

import (
	"context"
	"fmt"
	"time"

	"fraudgraph/application/commands"
	"fraudgraph/application/ports"
	"fraudgraph/domain/model"

	"go.uber.org/zap"
)

// CreateTransactionHandler writes a transaction, links its parties and marks
// IP/device reuse against existing transactions.
type CreateTransactionHandler struct {
	transactions ports.TransactionRepository
	logger       *zap.Logger
}

// NewCreateTransactionHandler creates a new create transaction handler
func NewCreateTransactionHandler(transactions ports.TransactionRepository, logger *zap.Logger) *CreateTransactionHandler {
	return &CreateTransactionHandler{transactions: transactions, logger: logger}
}

// Handle executes the command
func (h *CreateTransactionHandler) Handle(ctx context.Context, cmd commands.CreateTransactionCommand) error {
	ts := cmd.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	txn := &model.Transaction{
		ID:         cmd.TransactionID,
		Amount:     cmd.Amount,
		SenderID:   cmd.SenderID,
		ReceiverID: cmd.ReceiverID,
		IP:         cmd.IP,
		DeviceID:   cmd.DeviceID,
		Timestamp:  ts,
	}

	stored, err := h.transactions.Create(ctx, txn)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := h.transactions.LinkParties(ctx, stored.ID, stored.SenderID, stored.ReceiverID); err != nil {
		return fmt.Errorf("failed to link transaction parties: %w", err)
	}

	if err := h.transactions.LinkSharedAttributes(ctx, stored.ID, stored.IP, stored.DeviceID); err != nil {
		return fmt.Errorf("failed to link shared transaction attributes: %w", err)
	}

	h.logger.Debug("Transaction created",
		zap.String("transactionID", stored.ID),
		zap.String("senderID", stored.SenderID),
		zap.String("receiverID", stored.ReceiverID),
	)
	return nil
}
