package neo4j

import (
	"context"
	"fmt"

	"fraudgraph/domain/graph"

	"go.uber.org/zap"
)

const (
	sharedUserRelTypes        = "SHARED_EMAIL|SHARED_PHONE|SHARED_ADDRESS|SHARED_PAYMENT_METHOD"
	sharedTransactionRelTypes = "RELATED_TO|SHARED_IP|SHARED_DEVICE"
)

// RelationshipRepository implements ports.RelationshipRepository on Neo4j. It
// runs the neighborhood pattern queries and maps their collected rows onto the
// typed bundles the assembler consumes.
type RelationshipRepository struct {
	client *Client
	logger *zap.Logger
}

// NewRelationshipRepository creates a new relationship repository
func NewRelationshipRepository(client *Client, logger *zap.Logger) *RelationshipRepository {
	return &RelationshipRepository{client: client, logger: logger}
}

// UserNeighborhood returns the focal user plus its transactions, their
// counterparties and the users linked through shared attributes. A missing
// user yields a neighborhood with a nil User.
func (r *RelationshipRepository) UserNeighborhood(ctx context.Context, userID string) (*graph.UserNeighborhood, error) {
	query := `
		MATCH (u:User {id: $userId})
		OPTIONAL MATCH (u)-[:DEBIT]->(sent:Transaction)
		OPTIONAL MATCH (sent)<-[:CREDIT]-(sentReceiver:User)
		WITH u, collect(distinct {transaction: sent, counterparty: sentReceiver}) AS sentTransactions

		OPTIONAL MATCH (sender:User)-[:DEBIT]->(received:Transaction)<-[:CREDIT]-(u)
		WITH u, sentTransactions, collect(distinct {transaction: received, counterparty: sender}) AS receivedTransactions

		OPTIONAL MATCH (u)-[sharedRel:` + sharedUserRelTypes + `]->(other:User)
		WITH u, sentTransactions, receivedTransactions,
			collect(distinct {user: other, relationshipType: type(sharedRel)}) AS connectedUsers

		RETURN u, sentTransactions, receivedTransactions, connectedUsers
	`

	records, err := r.client.readRecords(ctx, query, map[string]any{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query user neighborhood: %w", err)
	}
	if len(records) == 0 {
		return &graph.UserNeighborhood{}, nil
	}

	record := records[0]
	neighborhood := &graph.UserNeighborhood{
		User: userNode(nodeValue(record, "u")),
	}

	for _, entry := range listValue(record, "sentTransactions") {
		neighborhood.Sent = append(neighborhood.Sent, graph.SentBundle{
			Transaction:  transactionNode(entry["transaction"]),
			Counterparty: userNode(entry["counterparty"]),
		})
	}
	for _, entry := range listValue(record, "receivedTransactions") {
		neighborhood.Received = append(neighborhood.Received, graph.ReceivedBundle{
			Transaction:  transactionNode(entry["transaction"]),
			Counterparty: userNode(entry["counterparty"]),
		})
	}
	for _, entry := range listValue(record, "connectedUsers") {
		neighborhood.Connected = append(neighborhood.Connected, graph.SharedUserBundle{
			User:             userNode(entry["user"]),
			RelationshipType: stringValue(entry["relationshipType"]),
		})
	}

	return neighborhood, nil
}

// TransactionNeighborhood returns the focal transaction, its parties and the
// transactions linked through shared attributes, each with its own parties.
func (r *RelationshipRepository) TransactionNeighborhood(ctx context.Context, txnID string) (*graph.TransactionNeighborhood, error) {
	query := `
		MATCH (t:Transaction {id: $transactionId})
		OPTIONAL MATCH (sender:User)-[:DEBIT]->(t)
		OPTIONAL MATCH (receiver:User)-[:CREDIT]->(t)
		WITH t, sender, receiver

		OPTIONAL MATCH (t)-[rel:` + sharedTransactionRelTypes + `]-(related:Transaction)
		OPTIONAL MATCH (relatedSender:User)-[:DEBIT]->(related)
		OPTIONAL MATCH (relatedReceiver:User)-[:CREDIT]->(related)
		WITH t, sender, receiver,
			collect(distinct {
				transaction: related,
				sender: relatedSender,
				receiver: relatedReceiver,
				relationshipType: type(rel)
			}) AS connectedTransactions

		RETURN t, sender, receiver, connectedTransactions
	`

	records, err := r.client.readRecords(ctx, query, map[string]any{"transactionId": txnID})
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction neighborhood: %w", err)
	}
	if len(records) == 0 {
		return &graph.TransactionNeighborhood{}, nil
	}

	record := records[0]
	neighborhood := &graph.TransactionNeighborhood{
		Transaction: transactionNode(nodeValue(record, "t")),
		Sender:      userNode(nodeValue(record, "sender")),
		Receiver:    userNode(nodeValue(record, "receiver")),
	}

	for _, entry := range listValue(record, "connectedTransactions") {
		neighborhood.Related = append(neighborhood.Related, graph.RelatedTransactionBundle{
			Transaction:      transactionNode(entry["transaction"]),
			Sender:           userNode(entry["sender"]),
			Receiver:         userNode(entry["receiver"]),
			RelationshipType: stringValue(entry["relationshipType"]),
		})
	}

	return neighborhood, nil
}

// Snapshot dumps every node and typed relationship in the store.
func (r *RelationshipRepository) Snapshot(ctx context.Context) (*graph.Snapshot, error) {
	snapshot := &graph.Snapshot{}

	records, err := r.client.readRecords(ctx, "MATCH (u:User) RETURN u", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	for _, record := range records {
		if u := userNode(nodeValue(record, "u")); u != nil {
			snapshot.Users = append(snapshot.Users, u)
		}
	}

	records, err = r.client.readRecords(ctx, "MATCH (t:Transaction) RETURN t", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	for _, record := range records {
		if t := transactionNode(nodeValue(record, "t")); t != nil {
			snapshot.Transactions = append(snapshot.Transactions, t)
		}
	}

	records, err = r.client.readRecords(ctx, "MATCH (u:User)-[:DEBIT]->(t:Transaction) RETURN u, t", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load debit relationships: %w", err)
	}
	for _, record := range records {
		snapshot.Debits = append(snapshot.Debits, graph.DebitRelationship{
			Sender:      userNode(nodeValue(record, "u")),
			Transaction: transactionNode(nodeValue(record, "t")),
		})
	}

	records, err = r.client.readRecords(ctx, "MATCH (u:User)-[:CREDIT]->(t:Transaction) RETURN u, t", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load credit relationships: %w", err)
	}
	for _, record := range records {
		snapshot.Credits = append(snapshot.Credits, graph.CreditRelationship{
			Receiver:    userNode(nodeValue(record, "u")),
			Transaction: transactionNode(nodeValue(record, "t")),
		})
	}

	records, err = r.client.readRecords(ctx,
		"MATCH (a:User)-[rel:"+sharedUserRelTypes+"]->(b:User) RETURN a, b, type(rel) AS relType", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load user links: %w", err)
	}
	for _, record := range records {
		snapshot.UserLinks = append(snapshot.UserLinks, graph.UserLink{
			From: userNode(nodeValue(record, "a")),
			To:   userNode(nodeValue(record, "b")),
			Type: stringValue(nodeValue(record, "relType")),
		})
	}

	records, err = r.client.readRecords(ctx,
		"MATCH (a:Transaction)-[rel:"+sharedTransactionRelTypes+"]->(b:Transaction) RETURN a, b, type(rel) AS relType", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction links: %w", err)
	}
	for _, record := range records {
		snapshot.TransactionLinks = append(snapshot.TransactionLinks, graph.TransactionLink{
			From: transactionNode(nodeValue(record, "a")),
			To:   transactionNode(nodeValue(record, "b")),
			Type: stringValue(nodeValue(record, "relType")),
		})
	}

	r.logger.Debug("Loaded graph snapshot",
		zap.Int("users", len(snapshot.Users)),
		zap.Int("transactions", len(snapshot.Transactions)),
	)
	return snapshot, nil
}
