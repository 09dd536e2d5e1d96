package neo4j

import (
	"context"
	"fmt"

	"fraudgraph/domain/model"

	"go.uber.org/zap"
)

// AdminRepository implements ports.StoreAdmin on Neo4j.
type AdminRepository struct {
	client *Client
	logger *zap.Logger
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(client *Client, logger *zap.Logger) *AdminRepository {
	return &AdminRepository{client: client, logger: logger}
}

// Ping verifies store connectivity.
func (r *AdminRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

// Reset deletes every node and relationship.
func (r *AdminRepository) Reset(ctx context.Context) error {
	if err := r.client.write(ctx, "MATCH (n) DETACH DELETE n", nil); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}
	r.logger.Info("Store reset")
	return nil
}

// LinkSharedUserAttributes chains users that share an attribute value into
// SHARED_* edges, capped at edgeLimit per attribute.
func (r *AdminRepository) LinkSharedUserAttributes(ctx context.Context, edgeLimit int) error {
	for attribute, relType := range model.SharedUserAttributes {
		query := fmt.Sprintf(`
			MATCH (u:User)
			WHERE u.%s IS NOT NULL
			WITH u.%s AS value, collect(u) AS users
			WHERE size(users) > 1
			UNWIND range(0, size(users) - 2) AS idx
			WITH value, users, idx
			LIMIT $edgeLimit
			WITH users, idx
			WITH users[idx] AS source, users[idx + 1] AS target
			MERGE (source)-[:%s]->(target)
		`, attribute, attribute, relType)
		if err := r.client.write(ctx, query, map[string]any{"edgeLimit": edgeLimit}); err != nil {
			return fmt.Errorf("failed to bulk link shared %s: %w", attribute, err)
		}
	}
	return nil
}
