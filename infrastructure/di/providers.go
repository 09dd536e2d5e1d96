package di

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"fraudgraph/application/commands"
	"fraudgraph/application/commands/bus"
	commands_handlers "fraudgraph/application/commands/handlers"
	"fraudgraph/application/ports"
	"fraudgraph/application/queries"
	querybus "fraudgraph/application/queries/bus"
	queries_handlers "fraudgraph/application/queries/handlers"
	"fraudgraph/application/services"
	"fraudgraph/domain/synth"
	"fraudgraph/infrastructure/cache"
	"fraudgraph/infrastructure/config"
	neo4jstore "fraudgraph/infrastructure/persistence/neo4j"

	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideNeo4jClient creates the shared Neo4j client
func ProvideNeo4jClient(ctx context.Context, cfg *config.Config) (*neo4jstore.Client, error) {
	return neo4jstore.NewClient(ctx, cfg.Neo4jURI, cfg.Neo4jUsername, cfg.Neo4jPassword, cfg.Neo4jDatabase)
}

// ProvideUserRepository creates a user repository
func ProvideUserRepository(client *neo4jstore.Client, logger *zap.Logger) ports.UserRepository {
	return neo4jstore.NewUserRepository(client, logger)
}

// ProvideTransactionRepository creates a transaction repository
func ProvideTransactionRepository(client *neo4jstore.Client, logger *zap.Logger) ports.TransactionRepository {
	return neo4jstore.NewTransactionRepository(client, logger)
}

// ProvideRelationshipRepository creates a relationship repository
func ProvideRelationshipRepository(client *neo4jstore.Client, logger *zap.Logger) ports.RelationshipRepository {
	return neo4jstore.NewRelationshipRepository(client, logger)
}

// ProvideStoreAdmin creates the store admin repository
func ProvideStoreAdmin(client *neo4jstore.Client, logger *zap.Logger) ports.StoreAdmin {
	return neo4jstore.NewAdminRepository(client, logger)
}

// ProvideCache creates the Redis-backed query cache
func ProvideCache(cfg *config.Config, logger *zap.Logger) *cache.RedisCache {
	return cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
}

// ProvideGenerator creates the synthetic data generator
func ProvideGenerator() *synth.Generator {
	return synth.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// ProvideSeeder creates the seeding service
func ProvideSeeder(
	users ports.UserRepository,
	transactions ports.TransactionRepository,
	admin ports.StoreAdmin,
	generator *synth.Generator,
	logger *zap.Logger,
) *services.Seeder {
	return services.NewSeeder(users, transactions, admin, generator, logger)
}

// CommandHandlerAdapter adapts specific command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, bus.Command) error
}

func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) error {
	return a.handler(ctx, cmd)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	users ports.UserRepository,
	transactions ports.TransactionRepository,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus()
	logging := bus.LoggingMiddleware(logger)

	upsertUserHandler := commands_handlers.NewUpsertUserHandler(users, logger)
	commandBus.Register(commands.UpsertUserCommand{}, logging(&CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			upsertCmd, ok := cmd.(commands.UpsertUserCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return upsertUserHandler.Handle(ctx, upsertCmd)
		},
	}))

	createTransactionHandler := commands_handlers.NewCreateTransactionHandler(transactions, logger)
	commandBus.Register(commands.CreateTransactionCommand{}, logging(&CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			createCmd, ok := cmd.(commands.CreateTransactionCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return createTransactionHandler.Handle(ctx, createCmd)
		},
	}))

	return commandBus
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with registered handlers. The full-graph
// query is the only cached one; the neighborhood queries are cheap enough to
// hit the store every time.
func ProvideQueryBus(
	users ports.UserRepository,
	transactions ports.TransactionRepository,
	relationships ports.RelationshipRepository,
	queryCache *cache.RedisCache,
	cfg *config.Config,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	listUsersHandler := queries_handlers.NewListUsersHandler(users, logger)
	queryBus.Register(queries.ListUsersQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListUsersQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listUsersHandler.Handle(ctx, listQuery)
		},
	})

	getUserHandler := queries_handlers.NewGetUserHandler(users, logger)
	queryBus.Register(queries.GetUserQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetUserQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getUserHandler.Handle(ctx, getQuery)
		},
	})

	listTransactionsHandler := queries_handlers.NewListTransactionsHandler(transactions, logger)
	queryBus.Register(queries.ListTransactionsQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListTransactionsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listTransactionsHandler.Handle(ctx, listQuery)
		},
	})

	getTransactionHandler := queries_handlers.NewGetTransactionHandler(transactions, logger)
	queryBus.Register(queries.GetTransactionQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetTransactionQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getTransactionHandler.Handle(ctx, getQuery)
		},
	})

	userNetworkHandler := queries_handlers.NewGetUserNetworkHandler(relationships, logger)
	queryBus.Register(queries.GetUserNetworkQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			networkQuery, ok := query.(queries.GetUserNetworkQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return userNetworkHandler.Handle(ctx, networkQuery)
		},
	})

	transactionNetworkHandler := queries_handlers.NewGetTransactionNetworkHandler(relationships, logger)
	queryBus.Register(queries.GetTransactionNetworkQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			networkQuery, ok := query.(queries.GetTransactionNetworkQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return transactionNetworkHandler.Handle(ctx, networkQuery)
		},
	})

	fullGraphHandler := queries_handlers.NewGetFullGraphHandler(relationships, logger)
	caching := querybus.NewCachingMiddleware(queryCache, cfg.GraphCacheTTL)
	queryBus.Register(queries.GetFullGraphQuery{}, caching.Wrap(&QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			graphQuery, ok := query.(queries.GetFullGraphQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return fullGraphHandler.Handle(ctx, graphQuery)
		},
	}))

	return queryBus
}
