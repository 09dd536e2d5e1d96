package main

import (
	"context"
	"flag"
	"log"
	"time"

	"fraudgraph/application/services"
	"fraudgraph/infrastructure/config"
	"fraudgraph/infrastructure/di"

	"go.uber.org/zap"
)

// Wipes the graph store and repopulates it with synthetic users, degree-bounded
// transactions and the derived shared-attribute edges. Flags override the
// environment defaults.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	users := flag.Int("users", cfg.SeedUserCount, "number of users to generate")
	transactions := flag.Int("transactions", cfg.SeedTransactionCount, "number of transactions to generate")
	maxTxns := flag.Int("max-transactions", cfg.SeedMaxTransactions, "per-user transaction cap")
	maxCounterparties := flag.Int("max-counterparties", cfg.SeedMaxCounterparties, "per-user distinct counterparty cap")
	batchSize := flag.Int("batch-size", cfg.SeedBatchSize, "bulk insert batch size")
	edgeLimit := flag.Int("edge-limit", cfg.SeedAttributeEdgeLimit, "per-attribute shared edge cap")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer func() {
		if err := container.Shutdown(context.Background()); err != nil {
			container.Logger.Warn("Shutdown error", zap.Error(err))
		}
		container.Logger.Sync()
	}()

	seedCfg := services.SeederConfig{
		UserCount:                *users,
		TransactionCount:         *transactions,
		MaxTransactionsPerUser:   *maxTxns,
		MaxCounterpartiesPerUser: *maxCounterparties,
		BatchSize:                *batchSize,
		AttributeEdgeLimit:       *edgeLimit,
	}

	if err := container.Seeder.Run(ctx, seedCfg); err != nil {
		container.Logger.Fatal("Seed failed", zap.Error(err))
	}
}
