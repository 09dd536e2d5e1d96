package queries

import "errors"

// GetUserNetworkQuery asks for the assembled neighborhood view of one user:
// their transactions, counterparties and shared-attribute connections.
type GetUserNetworkQuery struct {
	UserID string `json:"user_id"`
}

// Validate validates the query
func (q GetUserNetworkQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("userID is required")
	}
	return nil
}

// GetTransactionNetworkQuery asks for the assembled neighborhood view of one
// transaction: its parties and related transactions with theirs.
type GetTransactionNetworkQuery struct {
	TransactionID string `json:"transaction_id"`
}

// Validate validates the query
func (q GetTransactionNetworkQuery) Validate() error {
	if q.TransactionID == "" {
		return errors.New("transactionID is required")
	}
	return nil
}

// GetFullGraphQuery asks for the whole store rendered as one view graph.
type GetFullGraphQuery struct{}

// Validate validates the query
func (q GetFullGraphQuery) Validate() error {
	return nil
}
