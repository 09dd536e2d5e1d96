package model

import "time"

// User is a person node in the fraud graph. The ID is assigned once and never
// changes; profile attributes may be updated and re-linked afterwards.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// Transaction is a money-movement node between two users. All fields are fixed
// at creation time.
type Transaction struct {
	ID         string    `json:"id"`
	Amount     float64   `json:"amount"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	IP         string    `json:"ip,omitempty"`
	DeviceID   string    `json:"deviceId,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}
