package graph

import "fraudgraph/domain/model"

// The types below are the query-result contract between the persistence layer
// and the assembler. Every entity reference is a pointer: a nil pointer means
// the OPTIONAL MATCH that would have produced it found nothing, which is an
// expected outcome, not an error.

// SentBundle pairs one outgoing transaction of the focal user with the user
// who received it.
type SentBundle struct {
	Transaction  *model.Transaction
	Counterparty *model.User
}

// ReceivedBundle pairs one incoming transaction of the focal user with the
// user who sent it.
type ReceivedBundle struct {
	Transaction  *model.Transaction
	Counterparty *model.User
}

// SharedUserBundle pairs a user connected to the focal user through a shared
// attribute with the relationship type that links them.
type SharedUserBundle struct {
	User             *model.User
	RelationshipType string
}

// UserNeighborhood is everything a single user-centric query returns.
type UserNeighborhood struct {
	User      *model.User
	Sent      []SentBundle
	Received  []ReceivedBundle
	Connected []SharedUserBundle
}

// RelatedTransactionBundle is one transaction connected to the focal
// transaction, together with its own parties and the linking relationship.
type RelatedTransactionBundle struct {
	Transaction      *model.Transaction
	Sender           *model.User
	Receiver         *model.User
	RelationshipType string
}

// TransactionNeighborhood is everything a single transaction-centric query
// returns.
type TransactionNeighborhood struct {
	Transaction *model.Transaction
	Sender      *model.User
	Receiver    *model.User
	Related     []RelatedTransactionBundle
}

// DebitRelationship records a user paying into a transaction.
type DebitRelationship struct {
	Sender      *model.User
	Transaction *model.Transaction
}

// CreditRelationship records a user receiving from a transaction.
type CreditRelationship struct {
	Receiver    *model.User
	Transaction *model.Transaction
}

// UserLink is a typed user-to-user shared-attribute relationship.
type UserLink struct {
	From *model.User
	To   *model.User
	Type string
}

// TransactionLink is a typed transaction-to-transaction relationship
// (RELATED_TO, SHARED_IP or SHARED_DEVICE).
type TransactionLink struct {
	From *model.Transaction
	To   *model.Transaction
	Type string
}

// Snapshot is the bulk dump of the whole store used for the full-graph view.
type Snapshot struct {
	Users            []*model.User
	Transactions     []*model.Transaction
	Debits           []DebitRelationship
	Credits          []CreditRelationship
	UserLinks        []UserLink
	TransactionLinks []TransactionLink
}
