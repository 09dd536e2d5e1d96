package ports

import (
	"context"

	"fraudgraph/domain/graph"
	"fraudgraph/domain/model"
)

// UserListCriteria filters and pages the user listing. String filters are
// case-insensitive substring matches.
type UserListCriteria struct {
	Page     int
	PageSize int
	Name     string
	Email    string
	Phone    string
}

// TransactionListCriteria filters, sorts and pages the transaction listing.
// Nil amount bounds mean unbounded. SortBy is a caller-facing field name that
// the store maps onto a whitelisted property; unknown names fall back to the
// timestamp.
type TransactionListCriteria struct {
	Page      int
	PageSize  int
	MinAmount *float64
	MaxAmount *float64
	IP        string
	DeviceID  string
	SortBy    string
	Order     string
}

// UserRepository persists and queries user nodes.
//
// GetByID returns (nil, nil) when no user exists with that ID; absence is a
// domain outcome, not a storage failure.
type UserRepository interface {
	// Upsert creates or fully replaces the user's mutable attributes and
	// returns the stored entity.
	Upsert(ctx context.Context, user *model.User) (*model.User, error)

	GetByID(ctx context.Context, id string) (*model.User, error)

	// List returns one page of users plus the unpaged total.
	List(ctx context.Context, criteria UserListCriteria) ([]model.User, int, error)

	// BulkUpsert writes users in batches; used by the seeder.
	BulkUpsert(ctx context.Context, users []model.User) error

	// LinkSharedAttributes merges SHARED_* edges from this user to every other
	// user holding one of the same attribute values.
	LinkSharedAttributes(ctx context.Context, user *model.User) error

	// ListIDs returns every user ID ordered by ID.
	ListIDs(ctx context.Context) ([]string, error)
}

// TransactionRepository persists and queries transaction nodes.
//
// GetByID returns (nil, nil) when no transaction exists with that ID.
type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)

	GetByID(ctx context.Context, id string) (*model.Transaction, error)

	// List returns one page of transactions plus the unpaged total.
	List(ctx context.Context, criteria TransactionListCriteria) ([]model.Transaction, int, error)

	// BulkCreate writes transactions and their DEBIT/CREDIT party edges in
	// batches; used by the seeder.
	BulkCreate(ctx context.Context, txns []model.Transaction) error

	// LinkParties merges the DEBIT/CREDIT edges between a transaction and its
	// sender and receiver.
	LinkParties(ctx context.Context, txnID, senderID, receiverID string) error

	// LinkSharedAttributes merges SHARED_IP/SHARED_DEVICE edges from this
	// transaction to every other transaction reusing the same IP or device.
	LinkSharedAttributes(ctx context.Context, txnID, ip, deviceID string) error

	// LinkSharedAttributesBulk merges SHARED_IP/SHARED_DEVICE edges across the
	// whole store in one pass; used by the seeder after bulk inserts.
	LinkSharedAttributesBulk(ctx context.Context, edgeLimit int) error
}

// RelationshipRepository runs the neighborhood and snapshot pattern queries
// whose typed results feed the graph assembler. A missing focal entity yields
// a result with a nil focal pointer, not an error.
type RelationshipRepository interface {
	UserNeighborhood(ctx context.Context, userID string) (*graph.UserNeighborhood, error)
	TransactionNeighborhood(ctx context.Context, txnID string) (*graph.TransactionNeighborhood, error)
	Snapshot(ctx context.Context) (*graph.Snapshot, error)
}

// StoreAdmin exposes maintenance operations on the graph store.
type StoreAdmin interface {
	// Ping verifies store connectivity; used by the readiness endpoint.
	Ping(ctx context.Context) error

	// Reset deletes every node and relationship. The seeder calls this before
	// repopulating.
	Reset(ctx context.Context) error

	// LinkSharedUserAttributes merges SHARED_* user edges across the whole
	// store in one pass; used by the seeder after bulk inserts.
	LinkSharedUserAttributes(ctx context.Context, edgeLimit int) error
}
