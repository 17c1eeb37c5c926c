// AngelaMos | 2026
// graph.go

package ownership

import (
	"fmt"
	"slices"
)

// Edge declares that rows of Child belong to a row of Parent through the
// foreign key column Column.
type Edge struct {
	Parent string
	Child  string
	Column string
}

type Graph struct {
	edges []Edge
}

func NewGraph(edges ...Edge) Graph {
	return Graph{edges: edges}
}

// Marketplace is the ownership graph of the console schema.
var Marketplace = NewGraph(
	Edge{Parent: "users", Child: "stores", Column: "merchant_id"},
	Edge{Parent: "users", Child: "products", Column: "merchant_id"},
	Edge{Parent: "users", Child: "orders", Column: "merchant_id"},
	Edge{Parent: "stores", Child: "products", Column: "store_id"},
	Edge{Parent: "stores", Child: "services", Column: "store_id"},
	Edge{Parent: "products", Child: "orders", Column: "product_id"},
)

func (g Graph) children(table string) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Parent == table {
			out = append(out, e)
		}
	}
	return out
}

func (g Graph) Knows(table string) bool {
	for _, e := range g.edges {
		if e.Parent == table || e.Child == table {
			return true
		}
	}
	return false
}

// Order returns the tables reachable from root with every parent listed
// before its children. Deleting in reverse order never violates a foreign
// key declared in the graph.
func (g Graph) Order(root string) ([]string, error) {
	reachable := []string{root}
	for i := 0; i < len(reachable); i++ {
		for _, e := range g.children(reachable[i]) {
			if !slices.Contains(reachable, e.Child) {
				reachable = append(reachable, e.Child)
			}
		}
	}

	indegree := make(map[string]int, len(reachable))
	for _, table := range reachable {
		for _, e := range g.children(table) {
			indegree[e.Child]++
		}
	}

	queue := []string{root}
	order := make([]string, 0, len(reachable))
	for len(queue) > 0 {
		table := queue[0]
		queue = queue[1:]
		order = append(order, table)

		for _, e := range g.children(table) {
			indegree[e.Child]--
			if indegree[e.Child] == 0 {
				queue = append(queue, e.Child)
			}
		}
	}

	if len(order) != len(reachable) {
		return nil, fmt.Errorf("ownership graph has a cycle below %s", root)
	}

	return order, nil
}
