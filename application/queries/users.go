package queries

import "errors"

// ListUsersQuery pages through users with optional attribute filters.
type ListUsersQuery struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Validate validates the query
func (q ListUsersQuery) Validate() error {
	if q.Page < 0 || q.PageSize < 0 {
		return errors.New("page and page_size must not be negative")
	}
	return nil
}

// GetUserQuery fetches a single user by ID.
type GetUserQuery struct {
	UserID string `json:"user_id"`
}

// Validate validates the query
func (q GetUserQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("userID is required")
	}
	return nil
}
