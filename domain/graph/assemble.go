package graph

import "fraudgraph/domain/model"

// AssembleUserView turns a user-centric query result into the view model. The
// focal user is always the first node. Bundles whose transaction or user was
// not matched are skipped; a missing counterparty only suppresses its own node
// and edge. A nil or focal-less neighborhood yields an empty graph.
func AssembleUserView(n *UserNeighborhood) Graph {
	b := newBuilder()
	if n == nil || n.User == nil {
		return b.graph
	}

	focal := n.User
	b.addUser(focal)

	for _, bundle := range n.Sent {
		if bundle.Transaction == nil {
			continue
		}
		txn := bundle.Transaction
		b.addTransaction(txn)
		b.addEdge(Edge{Source: focal.ID, Target: txn.ID, Label: model.RelSent, Type: EdgeTypeSent})

		if bundle.Counterparty != nil {
			b.addUser(bundle.Counterparty)
			b.addEdge(Edge{Source: txn.ID, Target: bundle.Counterparty.ID, Label: model.RelReceived, Type: EdgeTypeReceived})
		}
	}

	for _, bundle := range n.Received {
		if bundle.Transaction == nil {
			continue
		}
		txn := bundle.Transaction
		b.addTransaction(txn)
		b.addEdge(Edge{Source: txn.ID, Target: focal.ID, Label: model.RelReceived, Type: EdgeTypeReceived})

		if bundle.Counterparty != nil {
			b.addUser(bundle.Counterparty)
			b.addEdge(Edge{Source: bundle.Counterparty.ID, Target: txn.ID, Label: model.RelSent, Type: EdgeTypeSent})
		}
	}

	for _, conn := range n.Connected {
		if conn.User == nil {
			continue
		}
		b.addUser(conn.User)
		b.addEdge(Edge{Source: focal.ID, Target: conn.User.ID, Label: conn.RelationshipType, Type: EdgeTypeSharedAttribute})
	}

	return b.graph
}

// AssembleTransactionView turns a transaction-centric query result into the
// view model, focal transaction first. Related transactions bring along their
// own parties when those were matched.
func AssembleTransactionView(n *TransactionNeighborhood) Graph {
	b := newBuilder()
	if n == nil || n.Transaction == nil {
		return b.graph
	}

	focal := n.Transaction
	b.addTransaction(focal)

	if n.Sender != nil {
		b.addUser(n.Sender)
		b.addEdge(Edge{Source: n.Sender.ID, Target: focal.ID, Label: model.RelSent, Type: EdgeTypeSent})
	}

	if n.Receiver != nil {
		b.addUser(n.Receiver)
		b.addEdge(Edge{Source: focal.ID, Target: n.Receiver.ID, Label: model.RelReceived, Type: EdgeTypeReceived})
	}

	for _, rel := range n.Related {
		if rel.Transaction == nil {
			continue
		}
		txn := rel.Transaction
		relType := rel.RelationshipType
		if relType == "" {
			relType = model.RelRelatedTo
		}

		b.addTransaction(txn)
		b.addEdge(Edge{Source: focal.ID, Target: txn.ID, Label: relType, Type: relType})

		if rel.Sender != nil {
			b.addUser(rel.Sender)
			b.addEdge(Edge{Source: rel.Sender.ID, Target: txn.ID, Label: model.RelSent, Type: EdgeTypeSent})
		}
		if rel.Receiver != nil {
			b.addUser(rel.Receiver)
			b.addEdge(Edge{Source: txn.ID, Target: rel.Receiver.ID, Label: model.RelReceived, Type: EdgeTypeReceived})
		}
	}

	return b.graph
}

// AssembleFullGraph builds the whole-database view. Every user and transaction
// is seeded as a node up front so isolated entities still render; relationship
// walks then only add edges plus any endpoint the seed somehow missed.
func AssembleFullGraph(s *Snapshot) Graph {
	b := newBuilder()
	if s == nil {
		return b.graph
	}

	for _, u := range s.Users {
		b.addUser(u)
	}
	for _, t := range s.Transactions {
		b.addTransaction(t)
	}

	for _, d := range s.Debits {
		if d.Sender == nil || d.Transaction == nil {
			continue
		}
		b.addUser(d.Sender)
		b.addTransaction(d.Transaction)
		b.addEdge(Edge{Source: d.Sender.ID, Target: d.Transaction.ID, Label: model.RelSent, Type: EdgeTypeSent})
	}

	for _, c := range s.Credits {
		if c.Receiver == nil || c.Transaction == nil {
			continue
		}
		b.addTransaction(c.Transaction)
		b.addUser(c.Receiver)
		b.addEdge(Edge{Source: c.Transaction.ID, Target: c.Receiver.ID, Label: model.RelReceived, Type: EdgeTypeReceived})
	}

	for _, l := range s.UserLinks {
		if l.From == nil || l.To == nil {
			continue
		}
		b.addUser(l.From)
		b.addUser(l.To)
		b.addEdge(Edge{Source: l.From.ID, Target: l.To.ID, Label: l.Type, Type: EdgeTypeSharedAttribute})
	}

	for _, l := range s.TransactionLinks {
		if l.From == nil || l.To == nil {
			continue
		}
		relType := l.Type
		if relType == "" {
			relType = model.RelRelatedTo
		}
		b.addTransaction(l.From)
		b.addTransaction(l.To)
		b.addEdge(Edge{Source: l.From.ID, Target: l.To.ID, Label: relType, Type: relType})
	}

	return b.graph
}
