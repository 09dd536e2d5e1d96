package commands

import "errors"

// UpsertUserCommand creates a user or replaces an existing user's profile
// attributes. Shared-attribute edges are re-derived from the new values.
type UpsertUserCommand struct {
	UserID        string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"paymentMethod"`
}

// Validate validates the command
func (c UpsertUserCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user id is required")
	}
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
