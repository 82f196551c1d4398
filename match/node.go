package match

import (
	"fmt"
	"strings"

	"github.com/npillmayer/pergo"
	"github.com/npillmayer/pergo/input"
)

// Node is a parse-tree node. Nodes are immutable after construction; a node
// covers the input between its start and end location and carries the tree
// value assembled by semantic actions (the node's explicit value if one was
// set, otherwise the value of its right-most child carrying one).
type Node struct {
	Label    string
	SubNodes []*Node
	Start    *input.Location
	End      *input.Location
	Value    interface{}
}

// Span returns the input positions covered by the node.
func (n *Node) Span() pergo.Span {
	return pergo.Span{uint64(n.Start.Index()), uint64(n.End.Index())}
}

// Text returns the input text covered by the node. Virtual input inserted
// during error recovery has no extent in the buffer and does not appear.
func (n *Node) Text(buf *input.Buffer) string {
	return buf.Extract(n.Start.Index(), n.End.Index())
}

func (n *Node) String() string {
	return fmt.Sprintf("<%s %s>", n.Label, n.Span())
}

// FindNode searches the subtree below root, depth first, for the first node
// with a given label. Returns nil if there is none.
func FindNode(root *Node, label string) *Node {
	if root == nil {
		return nil
	}
	if root.Label == label {
		return root
	}
	for _, sub := range root.SubNodes {
		if n := FindNode(sub, label); n != nil {
			return n
		}
	}
	return nil
}

// CountNodes returns the number of nodes in the subtree below root,
// including root itself.
func CountNodes(root *Node) int {
	if root == nil {
		return 0
	}
	count := 1
	for _, sub := range root.SubNodes {
		count += CountNodes(sub)
	}
	return count
}

// Format renders a parse tree as an indented dump, one node per line, for
// diagnostics and interactive use.
func Format(root *Node, buf *input.Buffer) string {
	var sb strings.Builder
	format(&sb, root, buf, 0)
	return sb.String()
}

func format(sb *strings.Builder, n *Node, buf *input.Buffer, level int) {
	if n == nil {
		return
	}
	indent := strings.Repeat(". ", level)
	if len(n.SubNodes) == 0 {
		fmt.Fprintf(sb, "%s%s %q\n", indent, n.Label, n.Text(buf))
	} else {
		fmt.Fprintf(sb, "%s%s %s\n", indent, n.Label, n.Span())
	}
	for _, sub := range n.SubNodes {
		format(sb, sub, buf, level+1)
	}
}
