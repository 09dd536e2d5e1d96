package synth_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"fraudgraph/domain/synth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerator(seed int64) *synth.Generator {
	return synth.NewGenerator(rand.New(rand.NewSource(seed)))
}

func userIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("user-%d", i+1)
	}
	return ids
}

func TestGenerateRejectsNonPositiveTransactionCap(t *testing.T) {
	g := newGenerator(1)

	_, err := g.Generate(userIDs(10), synth.Params{
		DesiredCount:             100,
		MaxTransactionsPerUser:   0,
		MaxCounterpartiesPerUser: 5,
	})

	assert.ErrorIs(t, err, synth.ErrInvalidMaxTransactions)
}

func TestGenerateEmptyPopulations(t *testing.T) {
	tests := []struct {
		name           string
		users          []string
		counterparties int
	}{
		{name: "no users", users: nil, counterparties: 5},
		{name: "single user", users: userIDs(1), counterparties: 5},
		{name: "zero counterparty cap", users: userIDs(10), counterparties: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGenerator(1)
			result, err := g.Generate(tt.users, synth.Params{
				DesiredCount:             50,
				MaxTransactionsPerUser:   4,
				MaxCounterpartiesPerUser: tt.counterparties,
			})

			require.NoError(t, err)
			assert.Empty(t, result.Transactions)
			assert.Equal(t, 50, result.Shortfall)
		})
	}
}

func TestGenerateRespectsPerUserTransactionCap(t *testing.T) {
	const (
		users = 40
		maxTx = 3
	)
	g := newGenerator(7)

	result, err := g.Generate(userIDs(users), synth.Params{
		DesiredCount:             500,
		MaxTransactionsPerUser:   maxTx,
		MaxCounterpartiesPerUser: 5,
	})
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, txn := range result.Transactions {
		counts[txn.SenderID]++
		counts[txn.ReceiverID]++
	}
	for id, c := range counts {
		assert.LessOrEqual(t, c, maxTx, "user %s exceeds transaction cap", id)
	}
}

func TestGenerateRespectsCounterpartyCap(t *testing.T) {
	const (
		users = 30
		maxCp = 3
	)
	g := newGenerator(11)

	result, err := g.Generate(userIDs(users), synth.Params{
		DesiredCount:             1000,
		MaxTransactionsPerUser:   100,
		MaxCounterpartiesPerUser: maxCp,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Transactions)

	counterparties := make(map[string]map[string]struct{})
	record := func(a, b string) {
		if counterparties[a] == nil {
			counterparties[a] = make(map[string]struct{})
		}
		counterparties[a][b] = struct{}{}
	}
	for _, txn := range result.Transactions {
		record(txn.SenderID, txn.ReceiverID)
		record(txn.ReceiverID, txn.SenderID)
	}
	for id, set := range counterparties {
		assert.LessOrEqual(t, len(set), maxCp, "user %s exceeds counterparty cap", id)
	}
}

func TestGenerateNeverExceedsDesiredCount(t *testing.T) {
	g := newGenerator(3)

	result, err := g.Generate(userIDs(100), synth.Params{
		DesiredCount:             20,
		MaxTransactionsPerUser:   10,
		MaxCounterpartiesPerUser: 5,
	})
	require.NoError(t, err)

	assert.Len(t, result.Transactions, 20)
	assert.Zero(t, result.Shortfall)
}

func TestGenerateReportsShortfall(t *testing.T) {
	// Four users capped at two transactions each support at most four
	// transactions total, so a request for ten comes back at least six short.
	g := newGenerator(5)

	result, err := g.Generate(userIDs(4), synth.Params{
		DesiredCount:             10,
		MaxTransactionsPerUser:   2,
		MaxCounterpartiesPerUser: 5,
	})
	require.NoError(t, err)

	require.NotEmpty(t, result.Transactions)
	assert.LessOrEqual(t, len(result.Transactions), 4)
	assert.Equal(t, 10-len(result.Transactions), result.Shortfall)
	assert.GreaterOrEqual(t, result.Shortfall, 6)
}

func TestGenerateFastPathDistinctNeighbors(t *testing.T) {
	// Even population with the cap the circular offsets are tuned for: every
	// pairing stays within five distinct neighbors.
	g := newGenerator(13)

	result, err := g.Generate(userIDs(20), synth.Params{
		DesiredCount:             200,
		MaxTransactionsPerUser:   50,
		MaxCounterpartiesPerUser: 5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Transactions)

	counterparties := make(map[string]map[string]struct{})
	for _, txn := range result.Transactions {
		if counterparties[txn.SenderID] == nil {
			counterparties[txn.SenderID] = make(map[string]struct{})
		}
		if counterparties[txn.ReceiverID] == nil {
			counterparties[txn.ReceiverID] = make(map[string]struct{})
		}
		counterparties[txn.SenderID][txn.ReceiverID] = struct{}{}
		counterparties[txn.ReceiverID][txn.SenderID] = struct{}{}
	}
	for id, set := range counterparties {
		assert.LessOrEqual(t, len(set), 5, "user %s exceeds fast path neighbor bound", id)
	}
}

func TestGenerateTransactionShape(t *testing.T) {
	g := newGenerator(17)

	result, err := g.Generate(userIDs(12), synth.Params{
		DesiredCount:             30,
		MaxTransactionsPerUser:   8,
		MaxCounterpartiesPerUser: 4,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Transactions)

	now := time.Now()
	ids := make(map[string]struct{})
	for _, txn := range result.Transactions {
		assert.NotEmpty(t, txn.ID)
		_, dup := ids[txn.ID]
		assert.False(t, dup, "duplicate transaction id %s", txn.ID)
		ids[txn.ID] = struct{}{}

		assert.NotEqual(t, txn.SenderID, txn.ReceiverID, "self transfer generated")
		assert.GreaterOrEqual(t, txn.Amount, 5.0)
		assert.LessOrEqual(t, txn.Amount, 4999.99)
		assert.NotEmpty(t, txn.IP)
		assert.NotEmpty(t, txn.DeviceID)

		assert.False(t, txn.Timestamp.After(now), "timestamp in the future")
		assert.True(t, txn.Timestamp.After(now.Add(-31*24*time.Hour)), "timestamp outside the window")
	}
}

func TestGenerateUsers(t *testing.T) {
	g := newGenerator(19)

	users := g.GenerateUsers(1000)

	require.Len(t, users, 1000)
	assert.Equal(t, "user-1", users[0].ID)
	assert.Equal(t, "user-1000", users[999].ID)

	emails := make(map[string]int)
	for _, u := range users {
		assert.NotEmpty(t, u.Name)
		assert.NotEmpty(t, u.Email)
		assert.NotEmpty(t, u.Phone)
		assert.NotEmpty(t, u.Address)
		assert.NotEmpty(t, u.PaymentMethod)
		emails[u.Email]++
	}

	// The shared pools must produce at least one collision in a population
	// this size; uniqueness across the board would starve the linking step.
	collided := false
	for _, c := range emails {
		if c > 1 {
			collided = true
			break
		}
	}
	assert.True(t, collided, "expected shared email collisions")
}
