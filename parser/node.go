package parser

// Node is a single rule match. Pos and End are byte offsets into the
// original input, Text is the matched substring, and Children holds the
// matches produced by rule references inside this rule's body, in input
// order. Nodes are never modified after a parse returns.
type Node struct {
	Rule     string
	Pos, End int
	Text     string
	Children []*Node
}

// Find returns the first direct child produced by the named rule, or nil.
func (n *Node) Find(rule string) *Node {
	for _, c := range n.Children {
		if c.Rule == rule {
			return c
		}
	}
	return nil
}

// FindAll returns all direct children produced by the named rule.
func (n *Node) FindAll(rule string) []*Node {
	var found []*Node
	for _, c := range n.Children {
		if c.Rule == rule {
			found = append(found, c)
		}
	}
	return found
}
