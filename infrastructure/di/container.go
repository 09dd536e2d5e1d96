package di

import (
	"context"

	"fraudgraph/application/commands/bus"
	"fraudgraph/application/ports"
	querybus "fraudgraph/application/queries/bus"
	"fraudgraph/application/services"
	"fraudgraph/infrastructure/cache"
	"fraudgraph/infrastructure/config"
	neo4jstore "fraudgraph/infrastructure/persistence/neo4j"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *zap.Logger
	Neo4j            *neo4jstore.Client
	UserRepo         ports.UserRepository
	TransactionRepo  ports.TransactionRepository
	RelationshipRepo ports.RelationshipRepository
	StoreAdmin       ports.StoreAdmin
	Cache            *cache.RedisCache
	CommandBus       *bus.CommandBus
	QueryBus         *querybus.QueryBus
	Seeder           *services.Seeder
}

// Shutdown releases the container's external connections.
func (c *Container) Shutdown(ctx context.Context) error {
	if err := c.Cache.Close(); err != nil {
		c.Logger.Warn("Failed to close cache", zap.Error(err))
	}
	return c.Neo4j.Close(ctx)
}
