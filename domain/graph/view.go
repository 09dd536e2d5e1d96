// Package graph builds the deduplicated node/edge view model served to the
// visualization client. Assembly is a pure transformation over already-fetched
// query results; it performs no I/O and never mutates the underlying store.
package graph

import (
	"fmt"

	"fraudgraph/domain/model"
)

// Node kinds in the view model.
const (
	NodeTypeUser        = "user"
	NodeTypeTransaction = "transaction"
)

// Edge type values in the view model. Edge labels carry the literal
// relationship name; the type is the coarser bucket the renderer styles by.
const (
	EdgeTypeSent            = "sent"
	EdgeTypeReceived        = "received"
	EdgeTypeSharedAttribute = "shared_attribute"
)

// Node is a single renderable vertex.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Data  any    `json:"data"`
}

// Edge is a directed, labeled connection between two rendered nodes.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
	Type   string `json:"type"`
}

// Graph is the assembled visualization payload.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// FormatAmount renders a transaction amount as the node label shown in the UI.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

type edgeKey struct {
	source string
	target string
	typ    string
}

// builder accumulates nodes and edges while enforcing the view invariants:
// node IDs are unique (first occurrence wins) and an edge is identified by its
// (source, target, type) triple, so overlapping pattern matches never produce
// duplicate vertices or stacked parallel edges.
type builder struct {
	graph     Graph
	seenNodes map[string]struct{}
	seenEdges map[edgeKey]struct{}
}

func newBuilder() *builder {
	return &builder{
		graph:     Graph{Nodes: []Node{}, Edges: []Edge{}},
		seenNodes: make(map[string]struct{}),
		seenEdges: make(map[edgeKey]struct{}),
	}
}

func (b *builder) addUser(u *model.User) {
	if u == nil {
		return
	}
	b.addNode(Node{ID: u.ID, Label: u.Name, Type: NodeTypeUser, Data: u})
}

func (b *builder) addTransaction(t *model.Transaction) {
	if t == nil {
		return
	}
	b.addNode(Node{ID: t.ID, Label: FormatAmount(t.Amount), Type: NodeTypeTransaction, Data: t})
}

func (b *builder) addNode(n Node) {
	if _, ok := b.seenNodes[n.ID]; ok {
		return
	}
	b.seenNodes[n.ID] = struct{}{}
	b.graph.Nodes = append(b.graph.Nodes, n)
}

func (b *builder) addEdge(e Edge) {
	key := edgeKey{source: e.Source, target: e.Target, typ: e.Type}
	if _, ok := b.seenEdges[key]; ok {
		return
	}
	b.seenEdges[key] = struct{}{}
	b.graph.Edges = append(b.graph.Edges, e)
}
