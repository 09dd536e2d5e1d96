package neo4j

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fraudgraph/application/ports"
	"fraudgraph/domain/model"

	"go.uber.org/zap"
)

// UserRepository implements ports.UserRepository on Neo4j.
type UserRepository struct {
	client *Client
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(client *Client, logger *zap.Logger) *UserRepository {
	return &UserRepository{client: client, logger: logger}
}

// Upsert creates or updates the user node. The id is the merge key; createdAt
// is set only on first creation, updatedAt on every later write.
func (r *UserRepository) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		MERGE (u:User {id: $id})
		ON CREATE SET u.name = $name, u.email = $email, u.phone = $phone,
			u.address = $address, u.paymentMethod = $paymentMethod, u.createdAt = $now
		ON MATCH SET u.name = $name, u.email = $email, u.phone = $phone,
			u.address = $address, u.paymentMethod = $paymentMethod, u.updatedAt = $now
		RETURN u
	`
	params := map[string]any{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"phone":         user.Phone,
		"address":       user.Address,
		"paymentMethod": user.PaymentMethod,
		"now":           time.Now().UTC().Format(timeLayout),
	}

	records, err := r.client.writeRecords(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("upsert returned no record for user %s", user.ID)
	}
	return userNode(nodeValue(records[0], "u")), nil
}

// GetByID returns (nil, nil) when the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	records, err := r.client.readRecords(ctx, "MATCH (u:User {id: $id}) RETURN u", map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return userNode(nodeValue(records[0], "u")), nil
}

// List returns one page of users ordered by id, plus the unpaged total.
func (r *UserRepository) List(ctx context.Context, criteria ports.UserListCriteria) ([]model.User, int, error) {
	params := map[string]any{
		"skip":  (criteria.Page - 1) * criteria.PageSize,
		"limit": criteria.PageSize,
	}

	var conditions []string
	if criteria.Name != "" {
		conditions = append(conditions, "u.name =~ $namePattern")
		params["namePattern"] = containsPattern(criteria.Name)
	}
	if criteria.Email != "" {
		conditions = append(conditions, "u.email =~ $emailPattern")
		params["emailPattern"] = containsPattern(criteria.Email)
	}
	if criteria.Phone != "" {
		conditions = append(conditions, "u.phone =~ $phonePattern")
		params["phonePattern"] = containsPattern(criteria.Phone)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ") + " "
	}

	query := "MATCH (u:User) " + where + "RETURN u ORDER BY u.id SKIP $skip LIMIT $limit"
	records, err := r.client.readRecords(ctx, query, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]model.User, 0, len(records))
	for _, record := range records {
		if u := userNode(nodeValue(record, "u")); u != nil {
			users = append(users, *u)
		}
	}

	countQuery := "MATCH (u:User) " + where + "RETURN count(u) AS total"
	countRecords, err := r.client.readRecords(ctx, countQuery, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	total := recordInt(countRecords, "total")

	return users, total, nil
}

// BulkUpsert writes one batch of users in a single UNWIND statement.
func (r *UserRepository) BulkUpsert(ctx context.Context, users []model.User) error {
	if len(users) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, map[string]any{
			"id":            u.ID,
			"name":          u.Name,
			"email":         u.Email,
			"phone":         u.Phone,
			"address":       u.Address,
			"paymentMethod": u.PaymentMethod,
		})
	}

	query := `
		UNWIND $users AS user
		MERGE (u:User {id: user.id})
		SET u.name = user.name,
			u.email = user.email,
			u.phone = user.phone,
			u.address = user.address,
			u.paymentMethod = user.paymentMethod
	`
	if err := r.client.write(ctx, query, map[string]any{"users": rows}); err != nil {
		return fmt.Errorf("failed to bulk upsert users: %w", err)
	}

	r.logger.Debug("Bulk upserted users", zap.Int("count", len(users)))
	return nil
}

// LinkSharedAttributes merges one SHARED_* edge per attribute from this user
// to every other user holding the same value. Empty attributes are skipped.
func (r *UserRepository) LinkSharedAttributes(ctx context.Context, user *model.User) error {
	attributes := map[string]string{
		"email":         user.Email,
		"phone":         user.Phone,
		"address":       user.Address,
		"paymentMethod": user.PaymentMethod,
	}

	for attribute, value := range attributes {
		if value == "" {
			continue
		}
		relType := model.SharedUserAttributes[attribute]
		query := fmt.Sprintf(`
			MATCH (u1:User {id: $userId})
			MATCH (u2:User {%s: $value})
			WHERE u1.id <> u2.id
			MERGE (u1)-[:%s]->(u2)
		`, attribute, relType)
		if err := r.client.write(ctx, query, map[string]any{"userId": user.ID, "value": value}); err != nil {
			return fmt.Errorf("failed to link shared %s: %w", attribute, err)
		}
	}
	return nil
}

// ListIDs returns every user id ordered by id.
func (r *UserRepository) ListIDs(ctx context.Context) ([]string, error) {
	records, err := r.client.readRecords(ctx, "MATCH (u:User) RETURN u.id AS id ORDER BY u.id", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}

	ids := make([]string, 0, len(records))
	for _, record := range records {
		if id, ok := nodeValue(record, "id").(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// containsPattern builds a case-insensitive substring regex for Cypher =~.
func containsPattern(value string) string {
	return "(?i).*" + value + ".*"
}
