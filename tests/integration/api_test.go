package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"fraudgraph/application/ports"
	"fraudgraph/domain/graph"
	"fraudgraph/domain/model"
	"fraudgraph/infrastructure/cache"
	"fraudgraph/infrastructure/config"
	"fraudgraph/infrastructure/di"
	"fraudgraph/interfaces/http/rest"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryStore backs the full repository surface with maps so the HTTP stack
// can be exercised without Neo4j. Shared-attribute linking is derived on read:
// two users are connected when they hold the same non-empty email.
type memoryStore struct {
	mu      sync.Mutex
	users   map[string]*model.User
	userIDs []string
	txns    map[string]*model.Transaction
	txnIDs  []string
	pingErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users: make(map[string]*model.User),
		txns:  make(map[string]*model.Transaction),
	}
}

func (s *memoryStore) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *user
	if _, ok := s.users[user.ID]; !ok {
		s.userIDs = append(s.userIDs, user.ID)
	}
	s.users[user.ID] = &stored
	return &stored, nil
}

func (s *memoryStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id], nil
}

func (s *memoryStore) List(ctx context.Context, criteria ports.UserListCriteria) ([]model.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []model.User
	for _, id := range s.userIDs {
		u := s.users[id]
		if criteria.Name != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(criteria.Name)) {
			continue
		}
		matched = append(matched, *u)
	}
	total := len(matched)
	start := (criteria.Page - 1) * criteria.PageSize
	if start > total {
		start = total
	}
	end := start + criteria.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *memoryStore) BulkUpsert(ctx context.Context, users []model.User) error {
	for i := range users {
		if _, err := s.Upsert(ctx, &users[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *memoryStore) LinkSharedAttributes(ctx context.Context, user *model.User) error { return nil }

func (s *memoryStore) ListIDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(s.userIDs))
	copy(ids, s.userIDs)
	sort.Strings(ids)
	return ids, nil
}

func (s *memoryStore) Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *txn
	if _, ok := s.txns[txn.ID]; !ok {
		s.txnIDs = append(s.txnIDs, txn.ID)
	}
	s.txns[txn.ID] = &stored
	return &stored, nil
}

func (s *memoryStore) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txns[id], nil
}

func (s *memoryStore) ListTransactions(ctx context.Context, criteria ports.TransactionListCriteria) ([]model.Transaction, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []model.Transaction
	for _, id := range s.txnIDs {
		t := s.txns[id]
		if criteria.MinAmount != nil && t.Amount < *criteria.MinAmount {
			continue
		}
		if criteria.MaxAmount != nil && t.Amount > *criteria.MaxAmount {
			continue
		}
		matched = append(matched, *t)
	}
	total := len(matched)
	start := (criteria.Page - 1) * criteria.PageSize
	if start > total {
		start = total
	}
	end := start + criteria.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *memoryStore) BulkCreate(ctx context.Context, txns []model.Transaction) error {
	for i := range txns {
		if _, err := s.Create(ctx, &txns[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *memoryStore) UserNeighborhood(ctx context.Context, userID string) (*graph.UserNeighborhood, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	focal, ok := s.users[userID]
	if !ok {
		return &graph.UserNeighborhood{}, nil
	}
	n := &graph.UserNeighborhood{User: focal}
	for _, id := range s.txnIDs {
		t := s.txns[id]
		switch userID {
		case t.SenderID:
			n.Sent = append(n.Sent, graph.SentBundle{Transaction: t, Counterparty: s.users[t.ReceiverID]})
		case t.ReceiverID:
			n.Received = append(n.Received, graph.ReceivedBundle{Transaction: t, Counterparty: s.users[t.SenderID]})
		}
	}
	for _, id := range s.userIDs {
		other := s.users[id]
		if other.ID == userID || focal.Email == "" || other.Email != focal.Email {
			continue
		}
		n.Connected = append(n.Connected, graph.SharedUserBundle{User: other, RelationshipType: model.RelSharedEmail})
	}
	return n, nil
}

func (s *memoryStore) TransactionNeighborhood(ctx context.Context, txnID string) (*graph.TransactionNeighborhood, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	focal, ok := s.txns[txnID]
	if !ok {
		return &graph.TransactionNeighborhood{}, nil
	}
	return &graph.TransactionNeighborhood{
		Transaction: focal,
		Sender:      s.users[focal.SenderID],
		Receiver:    s.users[focal.ReceiverID],
	}, nil
}

func (s *memoryStore) Snapshot(ctx context.Context) (*graph.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := &graph.Snapshot{}
	for _, id := range s.userIDs {
		snap.Users = append(snap.Users, s.users[id])
	}
	for _, id := range s.txnIDs {
		t := s.txns[id]
		snap.Transactions = append(snap.Transactions, t)
		if sender, ok := s.users[t.SenderID]; ok {
			snap.Debits = append(snap.Debits, graph.DebitRelationship{Sender: sender, Transaction: t})
		}
		if receiver, ok := s.users[t.ReceiverID]; ok {
			snap.Credits = append(snap.Credits, graph.CreditRelationship{Receiver: receiver, Transaction: t})
		}
	}
	return snap, nil
}

func (s *memoryStore) Ping(ctx context.Context) error { return s.pingErr }

func (s *memoryStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*model.User)
	s.userIDs = nil
	s.txns = make(map[string]*model.Transaction)
	s.txnIDs = nil
	return nil
}

func (s *memoryStore) LinkSharedUserAttributes(ctx context.Context, edgeLimit int) error { return nil }

// transactionRepo narrows memoryStore to ports.TransactionRepository; the user
// and transaction method sets collide on names, so the transaction side goes
// through this view.
type transactionRepo struct {
	store *memoryStore
}

func (r transactionRepo) Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	return r.store.Create(ctx, txn)
}

func (r transactionRepo) GetByID(ctx context.Context, id string) (*model.Transaction, error) {
	return r.store.GetTransactionByID(ctx, id)
}

func (r transactionRepo) List(ctx context.Context, criteria ports.TransactionListCriteria) ([]model.Transaction, int, error) {
	return r.store.ListTransactions(ctx, criteria)
}

func (r transactionRepo) BulkCreate(ctx context.Context, txns []model.Transaction) error {
	return r.store.BulkCreate(ctx, txns)
}

func (r transactionRepo) LinkParties(ctx context.Context, txnID, senderID, receiverID string) error {
	return nil
}

func (r transactionRepo) LinkSharedAttributes(ctx context.Context, txnID, ip, deviceID string) error {
	return nil
}

func (r transactionRepo) LinkSharedAttributesBulk(ctx context.Context, edgeLimit int) error {
	return nil
}

type testServer struct {
	*httptest.Server
	store *memoryStore
	redis *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := newMemoryStore()
	logger := zap.NewNop()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	queryCache := cache.NewRedisCacheFromClient(client, logger)
	t.Cleanup(func() { queryCache.Close() })

	cfg := &config.Config{
		ServerAddress: ":0",
		Environment:   "development",
		GraphCacheTTL: 30,
		EnableMetrics: true,
		EnableCORS:    false,
	}

	commandBus := di.ProvideCommandBus(store, transactionRepo{store: store}, logger)
	queryBus := di.ProvideQueryBus(store, transactionRepo{store: store}, store, queryCache, cfg, logger)

	router := rest.NewRouter(cfg, commandBus, queryBus, store, logger)
	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, store: store, redis: mr}
}

func (ts *testServer) postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func (ts *testServer) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestUserEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.postJSON(t, "/users", map[string]any{
		"id":    "u1",
		"name":  "Alice",
		"email": "shared@example.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, "u1", created.ID)
	assert.NotEmpty(t, created.Message)

	resp = ts.postJSON(t, "/users", map[string]any{
		"id":    "u2",
		"name":  "Bob",
		"email": "shared@example.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = ts.get(t, "/users/u1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched model.User
	decodeBody(t, resp, &fetched)
	assert.Equal(t, "Alice", fetched.Name)

	resp = ts.get(t, "/users/ghost")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errBody struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &errBody)
	assert.True(t, errBody.Error)

	resp = ts.get(t, "/users?limit=1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		Items      []model.User `json:"items"`
		Pagination struct {
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	decodeBody(t, resp, &page)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Pagination.Total)
}

func TestUserValidation(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.postJSON(t, "/users", map[string]any{"id": "u1"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTransactionEndpoints(t *testing.T) {
	ts := newTestServer(t)

	for _, u := range []map[string]any{
		{"id": "u1", "name": "Alice"},
		{"id": "u2", "name": "Bob"},
	} {
		resp := ts.postJSON(t, "/users", u)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := ts.postJSON(t, "/transactions", map[string]any{
		"amount":     250.0,
		"senderId":   "u1",
		"receiverId": "u2",
		"ip":         "10.0.0.1",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.ID, "server must assign an id when the request omits one")

	resp = ts.get(t, "/transactions/"+created.ID)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched model.Transaction
	decodeBody(t, resp, &fetched)
	assert.Equal(t, 250.0, fetched.Amount)
	assert.Equal(t, "u1", fetched.SenderID)

	resp = ts.get(t, "/transactions?minAmount=500")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	decodeBody(t, resp, &page)
	assert.Zero(t, page.Pagination.Total)

	resp = ts.postJSON(t, "/transactions", map[string]any{
		"amount":     0,
		"senderId":   "u1",
		"receiverId": "u2",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUserNetworkEndpoint(t *testing.T) {
	ts := newTestServer(t)

	for _, u := range []map[string]any{
		{"id": "u1", "name": "Alice", "email": "shared@example.com"},
		{"id": "u2", "name": "Bob"},
		{"id": "u3", "name": "Carol", "email": "shared@example.com"},
	} {
		resp := ts.postJSON(t, "/users", u)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	resp := ts.postJSON(t, "/transactions", map[string]any{
		"id":         "t1",
		"amount":     99.5,
		"senderId":   "u1",
		"receiverId": "u2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = ts.get(t, "/relationships/user/u1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var view graph.Graph
	decodeBody(t, resp, &view)

	require.NotEmpty(t, view.Nodes)
	assert.Equal(t, "u1", view.Nodes[0].ID)
	assert.Len(t, view.Nodes, 4)

	types := make(map[string]int)
	for _, e := range view.Edges {
		types[e.Type]++
	}
	assert.Equal(t, 1, types[graph.EdgeTypeSent])
	assert.Equal(t, 1, types[graph.EdgeTypeReceived])
	assert.Equal(t, 1, types[graph.EdgeTypeSharedAttribute])

	// Unknown focal user renders as an empty graph, not an error.
	resp = ts.get(t, "/relationships/user/ghost")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &view)
	assert.Empty(t, view.Nodes)
	assert.Empty(t, view.Edges)
}

func TestFullGraphEndpointCaches(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.postJSON(t, "/users", map[string]any{"id": "u1", "name": "Alice"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = ts.get(t, "/relationships/graph")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var first graph.Graph
	decodeBody(t, resp, &first)
	assert.Len(t, first.Nodes, 1)

	require.NotEmpty(t, ts.redis.Keys(), "full graph response must land in the cache")

	// A write after the first read is invisible until the TTL expires.
	resp = ts.postJSON(t, "/users", map[string]any{"id": "u2", "name": "Bob"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = ts.get(t, "/relationships/graph")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var second graph.Graph
	decodeBody(t, resp, &second)
	assert.Len(t, second.Nodes, 1)

	ts.redis.FastForward(31 * time.Second)

	resp = ts.get(t, "/relationships/graph")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var third graph.Graph
	decodeBody(t, resp, &third)
	assert.Len(t, third.Nodes, 2)
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.get(t, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = ts.get(t, "/ready")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	ts.store.pingErr = fmt.Errorf("connection refused")
	resp = ts.get(t, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.get(t, "/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = ts.get(t, "/metrics")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
