package services

import (
	"context"
	"fmt"

	"fraudgraph/application/ports"
	"fraudgraph/domain/model"
	"fraudgraph/domain/synth"

	"go.uber.org/zap"
)

// SeederConfig bounds one seeding run.
type SeederConfig struct {
	UserCount                int
	TransactionCount         int
	MaxTransactionsPerUser   int
	MaxCounterpartiesPerUser int
	BatchSize                int
	AttributeEdgeLimit       int
}

// Seeder wipes the store and repopulates it with a synthetic fraud graph:
// users with colliding attributes, degree-bounded transactions, and the
// derived shared-attribute edges.
type Seeder struct {
	users        ports.UserRepository
	transactions ports.TransactionRepository
	admin        ports.StoreAdmin
	generator    *synth.Generator
	logger       *zap.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(
	users ports.UserRepository,
	transactions ports.TransactionRepository,
	admin ports.StoreAdmin,
	generator *synth.Generator,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{
		users:        users,
		transactions: transactions,
		admin:        admin,
		generator:    generator,
		logger:       logger,
	}
}

// Run executes a full seed. The store is cleared first; a failed run can
// simply be re-run.
func (s *Seeder) Run(ctx context.Context, cfg SeederConfig) error {
	s.logger.Info("Clearing existing data")
	if err := s.admin.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}

	s.logger.Info("Generating users", zap.Int("count", cfg.UserCount))
	users := s.generator.GenerateUsers(cfg.UserCount)
	for _, batch := range chunkUsers(users, cfg.BatchSize) {
		if err := s.users.BulkUpsert(ctx, batch); err != nil {
			return fmt.Errorf("failed to insert users: %w", err)
		}
	}

	if err := s.admin.LinkSharedUserAttributes(ctx, cfg.AttributeEdgeLimit); err != nil {
		return fmt.Errorf("failed to link shared user attributes: %w", err)
	}

	ids, err := s.users.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list user ids: %w", err)
	}

	result, err := s.generator.Generate(ids, synth.Params{
		DesiredCount:             cfg.TransactionCount,
		MaxTransactionsPerUser:   cfg.MaxTransactionsPerUser,
		MaxCounterpartiesPerUser: cfg.MaxCounterpartiesPerUser,
	})
	if err != nil {
		return fmt.Errorf("failed to generate transactions: %w", err)
	}
	if result.Shortfall > 0 {
		s.logger.Warn("Transaction volume constrained below request",
			zap.Int("requested", cfg.TransactionCount),
			zap.Int("generated", len(result.Transactions)),
			zap.Int("shortfall", result.Shortfall),
		)
	}

	s.logger.Info("Inserting transactions", zap.Int("count", len(result.Transactions)))
	for _, batch := range chunkTransactions(result.Transactions, cfg.BatchSize) {
		if err := s.transactions.BulkCreate(ctx, batch); err != nil {
			return fmt.Errorf("failed to insert transactions: %w", err)
		}
	}

	if err := s.transactions.LinkSharedAttributesBulk(ctx, cfg.AttributeEdgeLimit); err != nil {
		return fmt.Errorf("failed to link shared transaction attributes: %w", err)
	}

	s.logger.Info("Seed complete",
		zap.Int("users", len(users)),
		zap.Int("transactions", len(result.Transactions)),
	)
	return nil
}

func chunkUsers(users []model.User, size int) [][]model.User {
	if size <= 0 {
		return [][]model.User{users}
	}
	var batches [][]model.User
	for start := 0; start < len(users); start += size {
		end := start + size
		if end > len(users) {
			end = len(users)
		}
		batches = append(batches, users[start:end])
	}
	return batches
}

func chunkTransactions(txns []model.Transaction, size int) [][]model.Transaction {
	if size <= 0 {
		return [][]model.Transaction{txns}
	}
	var batches [][]model.Transaction
	for start := 0; start < len(txns); start += size {
		end := start + size
		if end > len(txns) {
			end = len(txns)
		}
		batches = append(batches, txns[start:end])
	}
	return batches
}
