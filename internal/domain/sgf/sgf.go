package sgf

import (
	"sort"
	"strings"
)

// GameTree is one SGF tree: the main line of nodes plus variations.
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node is a set of properties such as B[cc], W[dd] or AB[aa][bb].
type Node struct {
	Properties map[string][]string
}

type SGF struct {
	Root *GameTree
}

// root properties first, in the order most viewers expect
var orderedKeys = []string{"FF", "GM", "SZ", "PB", "PW", "DT", "RE", "KM", "RU", "AB", "AW", "PL", "C", "B", "W"}

func NewNode() Node {
	return Node{Properties: make(map[string][]string)}
}

func (n Node) Add(key string, values ...string) {
	n.Properties[key] = append(n.Properties[key], values...)
}

// AppendMove adds a B[] or W[] node to the main line. An empty coordinate is a pass.
func (t *GameTree) AppendMove(color, coordinates string) {
	node := NewNode()
	node.Add(color, coordinates)
	t.Nodes = append(t.Nodes, node)
}

func (s *SGF) String() string {
	var builder strings.Builder
	builder.WriteString("(")
	if s.Root != nil {
		writeGameTree(&builder, s.Root)
	}
	builder.WriteString(")")
	return builder.String()
}

func writeGameTree(builder *strings.Builder, tree *GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")

		used := make(map[string]bool, len(node.Properties))
		for _, key := range orderedKeys {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				writeProperty(builder, key, values)
			}
		}

		rest := make([]string, 0)
		for key := range node.Properties {
			if !used[key] {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			writeProperty(builder, key, node.Properties[key])
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		writeGameTree(builder, child)
		builder.WriteString(")")
	}
}

func writeProperty(builder *strings.Builder, key string, values []string) {
	builder.WriteString(key)
	for _, v := range values {
		builder.WriteString("[")
		builder.WriteString(escape(v))
		builder.WriteString("]")
	}
}

func escape(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, "]", `\]`)
}
