package neo4j

import (
	"time"

	"fraudgraph/domain/model"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// Timestamps are stored as RFC3339 strings so the properties stay readable in
// the Neo4j browser.
const timeLayout = time.RFC3339

func userFromProps(props map[string]any) *model.User {
	return &model.User{
		ID:            propString(props, "id"),
		Name:          propString(props, "name"),
		Email:         propString(props, "email"),
		Phone:         propString(props, "phone"),
		Address:       propString(props, "address"),
		PaymentMethod: propString(props, "paymentMethod"),
		CreatedAt:     propTime(props, "createdAt"),
		UpdatedAt:     propTime(props, "updatedAt"),
	}
}

func transactionFromProps(props map[string]any) *model.Transaction {
	return &model.Transaction{
		ID:         propString(props, "id"),
		Amount:     propFloat(props, "amount"),
		SenderID:   propString(props, "senderId"),
		ReceiverID: propString(props, "receiverId"),
		IP:         propString(props, "ip"),
		DeviceID:   propString(props, "deviceId"),
		Timestamp:  propTime(props, "timestamp"),
		CreatedAt:  propTime(props, "createdAt"),
	}
}

// userNode converts a nullable node value from a record. OPTIONAL MATCH
// misses come back as nil.
func userNode(value any) *model.User {
	node, ok := value.(dbtype.Node)
	if !ok {
		return nil
	}
	return userFromProps(node.Props)
}

func transactionNode(value any) *model.Transaction {
	node, ok := value.(dbtype.Node)
	if !ok {
		return nil
	}
	return transactionFromProps(node.Props)
}

func nodeValue(record *neo4j.Record, key string) any {
	value, ok := record.Get(key)
	if !ok {
		return nil
	}
	return value
}

// listValue reads a collected list of maps from a record, as produced by
// Cypher collect({...}).
func listValue(record *neo4j.Record, key string) []map[string]any {
	raw, ok := nodeValue(record, key).([]any)
	if !ok {
		return nil
	}
	entries := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if entry, ok := item.(map[string]any); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

func stringValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

// recordInt reads an integer aggregate (count) from the first record.
func recordInt(records []*neo4j.Record, key string) int {
	if len(records) == 0 {
		return 0
	}
	if v, ok := nodeValue(records[0], key).(int64); ok {
		return int(v)
	}
	return 0
}

func propString(props map[string]any, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

func propFloat(props map[string]any, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

func propTime(props map[string]any, key string) time.Time {
	switch v := props[key].(type) {
	case string:
		if t, err := time.Parse(timeLayout, v); err == nil {
			return t
		}
	case time.Time:
		return v
	case dbtype.LocalDateTime:
		return v.Time()
	}
	return time.Time{}
}
