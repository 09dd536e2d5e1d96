// Package synth produces synthetic fraud-graph data: a user population with
// deliberately colliding attributes and a transaction set that respects
// per-user degree constraints.
package synth

import (
	"errors"
	"math/rand"
	"time"

	"fraudgraph/domain/model"

	"github.com/google/uuid"
)

// ErrInvalidMaxTransactions is returned when the per-user transaction cap
// admits no valid graph at all.
var ErrInvalidMaxTransactions = errors.New("maxTransactionsPerUser must be positive")

// fastPathCounterparties is the counterparty cap the circular-offset fast path
// is tuned for. The offsets {1, 2, N/2} give every user exactly five distinct
// neighbors on an even-sized ring without any sweeping.
const fastPathCounterparties = 5

// timestampWindow is how far back generated transactions are spread.
const timestampWindow = 30 * 24 * time.Hour

// Params bounds a generation run.
type Params struct {
	// DesiredCount is the transaction volume to aim for. Under-generation is
	// allowed when the constraints cannot support it; over-generation is not.
	DesiredCount int

	// MaxTransactionsPerUser caps how many transactions any user may appear in,
	// as sender or receiver.
	MaxTransactionsPerUser int

	// MaxCounterpartiesPerUser caps how many distinct users any user may
	// transact with. Effectively capped at the population size minus one.
	MaxCounterpartiesPerUser int
}

// Result is a completed generation run.
type Result struct {
	Transactions []model.Transaction

	// Shortfall is how many transactions short of DesiredCount the run came,
	// zero when the request was met. A positive shortfall is a warning for the
	// caller, not a failure.
	Shortfall int
}

// Generator builds constrained transaction sets. The pseudorandom source only
// decides selection order and attribute values; the degree bounds hold by
// construction.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator seeded from the given source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, now: time.Now}
}

// pair is an unordered user pair, stored with i < j.
type pair struct {
	a, b int
}

// slot is one directed sender->receiver placeholder awaiting materialization.
type slot struct {
	sender, receiver int
}

// Generate produces transactions over the user population under p's
// constraints. A population smaller than two, or a counterparty cap that
// resolves to zero, yields an empty result.
func (g *Generator) Generate(userIDs []string, p Params) (*Result, error) {
	if p.MaxTransactionsPerUser <= 0 {
		return nil, ErrInvalidMaxTransactions
	}

	n := len(userIDs)
	k := p.MaxCounterpartiesPerUser
	if k > n-1 {
		k = n - 1
	}
	if n < 2 || k <= 0 {
		return &Result{Transactions: []model.Transaction{}, Shortfall: p.DesiredCount}, nil
	}

	var pairs []pair
	if p.MaxCounterpartiesPerUser == fastPathCounterparties && n%2 == 0 {
		pairs = circularPairs(n)
	} else {
		pairs = sweepPairs(n, k)
	}

	// Two directed slots per unordered pair, so either party can end up the
	// sender once slots are drawn.
	slots := make([]slot, 0, 2*len(pairs))
	for _, pr := range pairs {
		slots = append(slots, slot{sender: pr.a, receiver: pr.b}, slot{sender: pr.b, receiver: pr.a})
	}

	achievable := p.DesiredCount
	if limit := n * p.MaxTransactionsPerUser / 2; limit < achievable {
		achievable = limit
	}
	if len(slots) < achievable {
		achievable = len(slots)
	}

	g.rng.Shuffle(len(slots), func(i, j int) {
		slots[i], slots[j] = slots[j], slots[i]
	})

	degree := make([]int, n)
	selected := make([]slot, 0, achievable)
	for _, s := range slots {
		if len(selected) == achievable {
			break
		}
		if degree[s.sender] >= p.MaxTransactionsPerUser || degree[s.receiver] >= p.MaxTransactionsPerUser {
			continue
		}
		degree[s.sender]++
		degree[s.receiver]++
		selected = append(selected, s)
	}

	ipPool := ipAddresses(g.rng, poolSize(n, 0.04))
	devicePool := deviceIDs(poolSize(n, 0.05))

	now := g.now()
	txns := make([]model.Transaction, 0, len(selected))
	for _, s := range selected {
		txns = append(txns, model.Transaction{
			ID:         uuid.New().String(),
			Amount:     randomAmount(g.rng),
			SenderID:   userIDs[s.sender],
			ReceiverID: userIDs[s.receiver],
			IP:         ipPool[g.rng.Intn(len(ipPool))],
			DeviceID:   devicePool[g.rng.Intn(len(devicePool))],
			Timestamp:  now.Add(-time.Duration(g.rng.Int63n(int64(timestampWindow)))),
		})
	}

	shortfall := p.DesiredCount - len(txns)
	if shortfall < 0 {
		shortfall = 0
	}
	return &Result{Transactions: txns, Shortfall: shortfall}, nil
}

// circularPairs lays the users on a ring and pairs each index with the ones at
// fixed offsets 1, 2 and N/2. Duplicate unordered pairs (the N/2 offset meets
// itself halfway around) are dropped.
func circularPairs(n int) []pair {
	offsets := []int{1, 2, n / 2}
	seen := make(map[pair]struct{})
	var pairs []pair
	for _, o := range offsets {
		for i := 0; i < n; i++ {
			j := (i + o) % n
			if i == j {
				continue
			}
			pr := orderedPair(i, j)
			if _, ok := seen[pr]; ok {
				continue
			}
			seen[pr] = struct{}{}
			pairs = append(pairs, pr)
		}
	}
	return pairs
}

// sweepPairs greedily grows per-user neighbor sets by sweeping increasing ring
// offsets until every user holds k counterparties, the offsets are exhausted,
// or a full pass makes no progress (the constraints are unsatisfiable with
// this population).
func sweepPairs(n, k int) []pair {
	neighbors := make([]map[int]struct{}, n)
	for i := range neighbors {
		neighbors[i] = make(map[int]struct{}, k)
	}

	satisfied := 0
	for offset := 1; offset < n && satisfied < n; offset++ {
		progress := false
		for i := 0; i < n; i++ {
			if len(neighbors[i]) >= k {
				continue
			}
			j := (i + offset) % n
			if j == i || len(neighbors[j]) >= k {
				continue
			}
			if _, ok := neighbors[i][j]; ok {
				continue
			}
			neighbors[i][j] = struct{}{}
			neighbors[j][i] = struct{}{}
			progress = true
			if len(neighbors[i]) == k {
				satisfied++
			}
			if len(neighbors[j]) == k {
				satisfied++
			}
		}
		if !progress {
			break
		}
	}

	seen := make(map[pair]struct{})
	var pairs []pair
	for i := 0; i < n; i++ {
		for j := range neighbors[i] {
			pr := orderedPair(i, j)
			if _, ok := seen[pr]; ok {
				continue
			}
			seen[pr] = struct{}{}
			pairs = append(pairs, pr)
		}
	}
	return pairs
}

func orderedPair(i, j int) pair {
	if i < j {
		return pair{a: i, b: j}
	}
	return pair{a: j, b: i}
}
