package commands

import (
	"errors"
	"time"
)

// CreateTransactionCommand records a transaction between two users and links
// it to its parties and to any transactions sharing its IP or device.
type CreateTransactionCommand struct {
	TransactionID string    `json:"id"`
	Amount        float64   `json:"amount"`
	SenderID      string    `json:"senderId"`
	ReceiverID    string    `json:"receiverId"`
	IP            string    `json:"ip"`
	DeviceID      string    `json:"deviceId"`
	Timestamp     time.Time `json:"timestamp"`
}

// Validate validates the command
func (c CreateTransactionCommand) Validate() error {
	if c.TransactionID == "" {
		return errors.New("transaction id is required")
	}
	if c.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if c.SenderID == "" || c.ReceiverID == "" {
		return errors.New("senderId and receiverId are required")
	}
	if c.SenderID == c.ReceiverID {
		return errors.New("sender and receiver must differ")
	}
	return nil
}
