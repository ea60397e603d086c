// Package flow derives a node/edge diagram from a step sequence.
package flow

import (
	"strconv"

	"github.com/samber/lo"
	"github.com/testspark/testspark/internal/domain"
)

// Layout constants for the vertical sequence
const (
	ColumnX = 100
	RowGap  = 150
)

// Position is a node's diagram coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Node is one step in the diagram
type Node struct {
	ID       string          `json:"id"`
	StepID   int             `json:"step_id"`
	Label    string          `json:"label"`
	StepType domain.StepType `json:"step_type"`
	Target   string          `json:"target,omitempty"`
	Value    string          `json:"value,omitempty"`
	Glyph    string          `json:"glyph,omitempty"`
	Position Position        `json:"position"`
	Entry    bool            `json:"entry,omitempty"` // First node of the flow
}

// Edge connects two consecutive steps
type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Animated bool   `json:"animated"`
}

// Graph is the projected diagram
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Project maps steps to one node each, stacked vertically in order, with an
// edge between every consecutive pair. The result depends only on steps.
func Project(steps []domain.Step) Graph {
	nodes := lo.Map(steps, func(s domain.Step, i int) Node {
		return Node{
			ID:       nodeID(s),
			StepID:   s.ID,
			Label:    s.Description,
			StepType: s.Type,
			Target:   s.Target,
			Value:    s.Value,
			Glyph:    s.Type.Glyph(),
			Position: Position{X: ColumnX, Y: i * RowGap},
			Entry:    i == 0,
		}
	})

	edges := make([]Edge, 0, max(len(steps)-1, 0))
	for i := 0; i+1 < len(steps); i++ {
		src, dst := nodeID(steps[i]), nodeID(steps[i+1])
		edges = append(edges, Edge{
			ID:       "e" + src + "-" + dst,
			Source:   src,
			Target:   dst,
			Animated: true,
		})
	}

	return Graph{Nodes: nodes, Edges: edges}
}

func nodeID(s domain.Step) string {
	return strconv.Itoa(s.ID)
}

// Successor returns the node following id, if any
func (g Graph) Successor(id string) (Node, bool) {
	edge, ok := lo.Find(g.Edges, func(e Edge) bool { return e.Source == id })
	if !ok {
		return Node{}, false
	}
	return lo.Find(g.Nodes, func(n Node) bool { return n.ID == edge.Target })
}
