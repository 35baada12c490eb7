package syntax

// Walk visits root and every node below it in pre-order, left to right.
// Each node is visited exactly once. A nil root is a no-op.
func Walk(root Node, visit func(Node)) {
	if visit == nil {
		return
	}
	WalkFunc(root, func(n Node) bool {
		visit(n)
		return true
	})
}

// WalkFunc is like Walk but skips the children of a node when visit
// returns false.
func WalkFunc(root Node, visit func(Node) bool) {
	if root == nil || visit == nil {
		return
	}

	stack := []Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(node) {
			continue
		}

		children := node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			if children[i] != nil {
				stack = append(stack, children[i])
			}
		}
	}
}

// Ancestry maps every node of a tree to its parent.
type Ancestry struct {
	parents map[Node]Node
}

// NewAncestry records parent links for the tree under root in one pass.
func NewAncestry(root Node) *Ancestry {
	a := &Ancestry{parents: make(map[Node]Node)}
	Walk(root, func(n Node) {
		for _, child := range n.Children() {
			if child != nil {
				a.parents[child] = n
			}
		}
	})
	return a
}

// Parent returns the parent of n, or nil for the root and unknown nodes.
func (a *Ancestry) Parent(n Node) Node {
	if a == nil || n == nil {
		return nil
	}
	return a.parents[n]
}

// IsFunctionBoundary reports whether n starts a new function scope.
func IsFunctionBoundary(n Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind() {
	case KindFunctionDeclaration, KindFunction:
		return true
	}
	return false
}
