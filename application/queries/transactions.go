package queries

import "errors"

// ListTransactionsQuery pages through transactions with optional filters and
// a whitelisted sort.
type ListTransactionsQuery struct {
	Page      int      `json:"page"`
	PageSize  int      `json:"page_size"`
	MinAmount *float64 `json:"min_amount,omitempty"`
	MaxAmount *float64 `json:"max_amount,omitempty"`
	IP        string   `json:"ip,omitempty"`
	DeviceID  string   `json:"device_id,omitempty"`
	SortBy    string   `json:"sort_by,omitempty"`
	Order     string   `json:"order,omitempty"`
}

// Validate validates the query
func (q ListTransactionsQuery) Validate() error {
	if q.Page < 0 || q.PageSize < 0 {
		return errors.New("page and page_size must not be negative")
	}
	if q.MinAmount != nil && q.MaxAmount != nil && *q.MinAmount > *q.MaxAmount {
		return errors.New("min_amount must not exceed max_amount")
	}
	return nil
}

// GetTransactionQuery fetches a single transaction by ID.
type GetTransactionQuery struct {
	TransactionID string `json:"transaction_id"`
}

// Validate validates the query
func (q GetTransactionQuery) Validate() error {
	if q.TransactionID == "" {
		return errors.New("transactionID is required")
	}
	return nil
}
