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

// transactionSortMap whitelists the sortable properties. Anything else falls
// back to the timestamp.
var transactionSortMap = map[string]string{
	"id":         "t.id",
	"amount":     "t.amount",
	"senderid":   "t.senderId",
	"receiverid": "t.receiverId",
	"ip":         "t.ip",
	"deviceid":   "t.deviceId",
	"timestamp":  "t.timestamp",
	"createdat":  "t.createdAt",
}

// TransactionRepository implements ports.TransactionRepository on Neo4j.
type TransactionRepository struct {
	client *Client
	logger *zap.Logger
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(client *Client, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{client: client, logger: logger}
}

// Create writes the transaction node. Party and shared-attribute edges are
// linked separately so a partial failure is visible in the logs.
func (r *TransactionRepository) Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	query := `
		CREATE (t:Transaction {
			id: $id,
			amount: $amount,
			timestamp: $timestamp,
			ip: $ip,
			deviceId: $deviceId,
			senderId: $senderId,
			receiverId: $receiverId,
			createdAt: $now
		})
		RETURN t
	`
	params := map[string]any{
		"id":         txn.ID,
		"amount":     txn.Amount,
		"timestamp":  txn.Timestamp.UTC().Format(timeLayout),
		"ip":         txn.IP,
		"deviceId":   txn.DeviceID,
		"senderId":   txn.SenderID,
		"receiverId": txn.ReceiverID,
		"now":        time.Now().UTC().Format(timeLayout),
	}

	records, err := r.client.writeRecords(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("create returned no record for transaction %s", txn.ID)
	}
	return transactionNode(nodeValue(records[0], "t")), nil
}

// GetByID returns (nil, nil) when the transaction does not exist.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*model.Transaction, error) {
	records, err := r.client.readRecords(ctx, "MATCH (t:Transaction {id: $id}) RETURN t", map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return transactionNode(nodeValue(records[0], "t")), nil
}

// List returns one page of transactions plus the unpaged total. Sorting is
// whitelisted; a secondary id sort keeps paging stable when the primary sort
// has duplicates.
func (r *TransactionRepository) List(ctx context.Context, criteria ports.TransactionListCriteria) ([]model.Transaction, int, error) {
	params := map[string]any{
		"skip":  (criteria.Page - 1) * criteria.PageSize,
		"limit": criteria.PageSize,
	}

	var conditions []string
	if criteria.MinAmount != nil {
		conditions = append(conditions, "t.amount >= $minAmount")
		params["minAmount"] = *criteria.MinAmount
	}
	if criteria.MaxAmount != nil {
		conditions = append(conditions, "t.amount <= $maxAmount")
		params["maxAmount"] = *criteria.MaxAmount
	}
	if criteria.IP != "" {
		conditions = append(conditions, "t.ip = $ip")
		params["ip"] = criteria.IP
	}
	if criteria.DeviceID != "" {
		conditions = append(conditions, "t.deviceId = $deviceId")
		params["deviceId"] = criteria.DeviceID
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ") + " "
	}

	sortField, direction := resolveTransactionSort(criteria.SortBy, criteria.Order)
	orderClauses := []string{sortField + " " + direction}
	if sortField != "t.id" {
		orderClauses = append(orderClauses, "t.id ASC")
	}

	query := "MATCH (t:Transaction) " + where +
		"RETURN t ORDER BY " + strings.Join(orderClauses, ", ") + " SKIP $skip LIMIT $limit"
	records, err := r.client.readRecords(ctx, query, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	txns := make([]model.Transaction, 0, len(records))
	for _, record := range records {
		if t := transactionNode(nodeValue(record, "t")); t != nil {
			txns = append(txns, *t)
		}
	}

	countQuery := "MATCH (t:Transaction) " + where + "RETURN count(t) AS total"
	countRecords, err := r.client.readRecords(ctx, countQuery, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	total := recordInt(countRecords, "total")

	return txns, total, nil
}

// BulkCreate writes one batch of transactions and their DEBIT/CREDIT party
// edges in a single UNWIND statement.
func (r *TransactionRepository) BulkCreate(ctx context.Context, txns []model.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, map[string]any{
			"id":         t.ID,
			"amount":     t.Amount,
			"timestamp":  t.Timestamp.UTC().Format(timeLayout),
			"ip":         t.IP,
			"deviceId":   t.DeviceID,
			"senderId":   t.SenderID,
			"receiverId": t.ReceiverID,
			"createdAt":  t.CreatedAt.UTC().Format(timeLayout),
		})
	}

	query := `
		UNWIND $transactions AS tx
		MATCH (sender:User {id: tx.senderId})
		MATCH (receiver:User {id: tx.receiverId})
		MERGE (t:Transaction {id: tx.id})
		SET t.amount = tx.amount,
			t.timestamp = tx.timestamp,
			t.ip = tx.ip,
			t.deviceId = tx.deviceId,
			t.senderId = tx.senderId,
			t.receiverId = tx.receiverId,
			t.createdAt = tx.createdAt
		MERGE (sender)-[:DEBIT]->(t)
		MERGE (receiver)-[:CREDIT]->(t)
	`
	if err := r.client.write(ctx, query, map[string]any{"transactions": rows}); err != nil {
		return fmt.Errorf("failed to bulk create transactions: %w", err)
	}

	r.logger.Debug("Bulk created transactions", zap.Int("count", len(txns)))
	return nil
}

// LinkParties merges the DEBIT edge from the sender and the CREDIT edge from
// the receiver.
func (r *TransactionRepository) LinkParties(ctx context.Context, txnID, senderID, receiverID string) error {
	senderQuery := `
		MATCH (u:User {id: $senderId})
		MATCH (t:Transaction {id: $transactionId})
		MERGE (u)-[:DEBIT]->(t)
	`
	if err := r.client.write(ctx, senderQuery, map[string]any{"senderId": senderID, "transactionId": txnID}); err != nil {
		return fmt.Errorf("failed to link sender: %w", err)
	}

	receiverQuery := `
		MATCH (u:User {id: $receiverId})
		MATCH (t:Transaction {id: $transactionId})
		MERGE (u)-[:CREDIT]->(t)
	`
	if err := r.client.write(ctx, receiverQuery, map[string]any{"receiverId": receiverID, "transactionId": txnID}); err != nil {
		return fmt.Errorf("failed to link receiver: %w", err)
	}
	return nil
}

// LinkSharedAttributes merges SHARED_IP/SHARED_DEVICE edges from this
// transaction to every other one reusing the same value.
func (r *TransactionRepository) LinkSharedAttributes(ctx context.Context, txnID, ip, deviceID string) error {
	attributes := map[string]string{
		"ip":       ip,
		"deviceId": deviceID,
	}

	for attribute, value := range attributes {
		if value == "" {
			continue
		}
		relType := model.SharedTransactionAttributes[attribute]
		query := fmt.Sprintf(`
			MATCH (t1:Transaction {id: $transactionId})
			MATCH (t2:Transaction {%s: $value})
			WHERE t1.id <> t2.id
			MERGE (t1)-[:%s]->(t2)
		`, attribute, relType)
		if err := r.client.write(ctx, query, map[string]any{"transactionId": txnID, "value": value}); err != nil {
			return fmt.Errorf("failed to link shared %s: %w", attribute, err)
		}
	}
	return nil
}

// LinkSharedAttributesBulk chains transactions that share an ip or deviceId
// into SHARED_IP/SHARED_DEVICE edges, capped at edgeLimit per attribute.
func (r *TransactionRepository) LinkSharedAttributesBulk(ctx context.Context, edgeLimit int) error {
	for attribute, relType := range model.SharedTransactionAttributes {
		query := fmt.Sprintf(`
			MATCH (t:Transaction)
			WHERE t.%s IS NOT NULL
			WITH t.%s AS value, collect(t) AS txs
			WHERE size(txs) > 1
			UNWIND range(0, size(txs) - 2) AS idx
			WITH value, txs, idx
			LIMIT $edgeLimit
			WITH txs, idx
			WITH txs[idx] AS source, txs[idx + 1] AS target
			MERGE (source)-[:%s]->(target)
		`, attribute, attribute, relType)
		if err := r.client.write(ctx, query, map[string]any{"edgeLimit": edgeLimit}); err != nil {
			return fmt.Errorf("failed to bulk link shared %s: %w", attribute, err)
		}
	}
	return nil
}

func resolveTransactionSort(sortBy, order string) (field, direction string) {
	field, ok := transactionSortMap[strings.ToLower(strings.TrimSpace(sortBy))]
	if !ok {
		field = transactionSortMap["timestamp"]
	}
	if strings.EqualFold(strings.TrimSpace(order), "asc") {
		return field, "ASC"
	}
	return field, "DESC"
}
