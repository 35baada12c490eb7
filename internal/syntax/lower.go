package syntax

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// lowerer converts a tree-sitter tree into Nodes using a dialect table.
type lowerer struct {
	source  []byte
	dialect *dialect
	// err holds the first construct the grammar accepts but the language
	// does not.
	err *ParseError
}

type loweredChild struct {
	src  *sitter.Node
	node Node
}

type loweredChildren []loweredChild

// field returns the lowered child stored under a grammar field name.
func (c loweredChildren) field(parent *sitter.Node, name string) Node {
	target := parent.ChildByFieldName(name)
	if target == nil {
		return nil
	}
	for _, child := range c {
		if sameNode(child.src, target) {
			return child.node
		}
	}
	return nil
}

func (c loweredChildren) nodes() []Node {
	out := make([]Node, 0, len(c))
	for _, child := range c {
		out = append(out, child.node)
	}
	return out
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Kind() == b.Kind()
}

func (l *lowerer) lower(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	kind := n.Kind()
	if _, ok := l.dialect.comments[kind]; ok {
		return nil
	}

	children := l.lowerChildren(n)
	b := base{pos: position(n, l.source), children: children.nodes()}

	if litKind, ok := l.dialect.literals[kind]; ok {
		return l.literal(n, litKind, b)
	}

	switch l.dialect.kinds[kind] {
	case KindProgram:
		return &Program{base: b}
	case KindBlock:
		return &Block{base: b}
	case KindIdentifier:
		name := l.text(n)
		if _, ok := l.dialect.reserved[name]; ok {
			l.fail(n, fmt.Sprintf("unexpected keyword %q", name))
		}
		return &Identifier{base: b, Name: name}
	case KindCall:
		if form := callLikeForm(n); form != "" {
			return &Generic{base: b, kind: form}
		}
		call := &Call{base: b, Callee: children.field(n, "function")}
		if args := children.field(n, "arguments"); args != nil {
			call.Arguments = args.Children()
		}
		return call
	case KindMember:
		return &Member{
			base:     b,
			Object:   children.field(n, l.dialect.memberObjectField),
			Property: l.text(n.ChildByFieldName(l.dialect.memberPropertyField)),
		}
	case KindAwait:
		aw := &Await{base: b}
		if len(b.children) > 0 {
			aw.Argument = b.children[0]
		}
		return aw
	case KindTry:
		try := &Try{base: b, Body: asBlock(children.field(n, "body"))}
		if handler, ok := children.field(n, "handler").(*CatchClause); ok {
			try.Handler = handler
		}
		fin := children.field(n, "finalizer")
		if try.Handler == nil && fin == nil {
			l.fail(n, "missing catch or finally after try block")
		}
		if fin != nil {
			for _, c := range fin.Children() {
				if blk := asBlock(c); blk != nil {
					try.Finalizer = blk
					break
				}
			}
		}
		return try
	case KindCatchClause:
		return &CatchClause{
			base:  b,
			Param: children.field(n, "parameter"),
			Body:  children.field(n, "body"),
		}
	case KindFunctionDeclaration:
		return &FunctionDeclaration{
			base: b,
			Name: l.text(n.ChildByFieldName("name")),
			Body: children.field(n, "body"),
		}
	case KindFunction:
		return &Function{base: b, Body: children.field(n, "body")}
	case KindAssignment:
		op := "="
		if opNode := n.ChildByFieldName("operator"); opNode != nil {
			op = l.text(opNode)
		}
		return &Assignment{
			base:     b,
			Operator: op,
			Left:     children.field(n, "left"),
			Right:    children.field(n, "right"),
		}
	}
	return &Generic{base: b, kind: Kind(kind)}
}

func (l *lowerer) fail(n *sitter.Node, msg string) {
	if l.err != nil {
		return
	}
	pos := position(n, l.source)
	l.err = &ParseError{Line: pos.Line, Column: pos.Column, Message: msg}
}

// callLikeForm names call_expression nodes that are not invocations:
// tagged templates and dynamic imports.
func callLikeForm(n *sitter.Node) Kind {
	if fn := n.ChildByFieldName("function"); fn != nil && fn.Kind() == "import" {
		return KindImport
	}
	if args := n.ChildByFieldName("arguments"); args != nil && args.Kind() == "template_string" {
		return KindTaggedTemplate
	}
	return ""
}

func (l *lowerer) lowerChildren(n *sitter.Node) loweredChildren {
	count := n.NamedChildCount()
	if count == 0 {
		return nil
	}
	out := make(loweredChildren, 0, count)
	for i := uint(0); i < count; i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		if lowered := l.lower(child); lowered != nil {
			out = append(out, loweredChild{src: child, node: lowered})
		}
	}
	return out
}

func (l *lowerer) literal(n *sitter.Node, kind LiteralKind, b base) *Literal {
	raw := l.text(n)
	lit := &Literal{base: b, LiteralKind: kind, Raw: raw}
	if kind == LiteralNumber {
		lit.LiteralKind = l.dialect.numberKind(raw)
		if lit.LiteralKind == LiteralNumber {
			lit.Value = parseNumber(l.dialect.cleanNumber(raw))
		}
	}
	return lit
}

func (l *lowerer) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Utf8Text(l.source))
}

func asBlock(n Node) *Block {
	blk, _ := n.(*Block)
	return blk
}
