// Package syntax provides a language-neutral syntax tree built from
// tree-sitter parse trees, plus traversal helpers used by the rules.
package syntax

// Kind identifies the category of a node. Canonical kinds are shared by
// every dialect; nodes without a canonical mapping keep the raw grammar kind.
type Kind string

const (
	KindProgram             Kind = "program"
	KindBlock               Kind = "block"
	KindCall                Kind = "call"
	KindIdentifier          Kind = "identifier"
	KindMember              Kind = "member"
	KindAwait               Kind = "await"
	KindTry                 Kind = "try"
	KindCatchClause         Kind = "catch-clause"
	KindFunctionDeclaration Kind = "function-declaration"
	KindFunction            Kind = "function"
	KindAssignment          Kind = "assignment"
	KindLiteral             Kind = "literal"

	// Call-shaped forms that are not invocations. Both lower to Generic.
	KindTaggedTemplate Kind = "tagged-template"
	KindImport         Kind = "import"
)

// LiteralKind distinguishes literal values.
type LiteralKind string

const (
	LiteralNumber   LiteralKind = "number"
	LiteralBigInt   LiteralKind = "bigint"
	LiteralString   LiteralKind = "string"
	LiteralTemplate LiteralKind = "template"
	LiteralBoolean  LiteralKind = "boolean"
	LiteralNull     LiteralKind = "null"
	LiteralRegex    LiteralKind = "regex"
	LiteralChar     LiteralKind = "char"
)

// Position is a source location. Line is 1-based, Column is 0-based and
// counted in UTF-16 code units. A zero Line means the position is unknown.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether the position carries a real location.
func (p Position) IsValid() bool { return p.Line > 0 }

// Node is a read-only syntax tree node. The set of implementations is
// closed: Program, Block, Call, Identifier, Member, Await, Try,
// CatchClause, FunctionDeclaration, Function, Assignment, Literal and
// Generic.
type Node interface {
	Kind() Kind
	Pos() Position
	// Children returns the direct children in source order.
	Children() []Node
	node()
}

type base struct {
	pos      Position
	children []Node
}

func (b *base) Pos() Position    { return b.pos }
func (b *base) Children() []Node { return b.children }
func (b *base) node()            {}

// Program is the root of a parsed file.
type Program struct {
	base
}

func (*Program) Kind() Kind { return KindProgram }

// Block is a brace-delimited statement list.
type Block struct {
	base
}

func (*Block) Kind() Kind { return KindBlock }

// Statements returns the statements of the block. Comments are never
// statements.
func (b *Block) Statements() []Node { return b.children }

// Call is a call expression.
type Call struct {
	base
	Callee    Node
	Arguments []Node
}

func (*Call) Kind() Kind { return KindCall }

// Identifier is a plain name reference.
type Identifier struct {
	base
	Name string
}

func (*Identifier) Kind() Kind { return KindIdentifier }

// Member is a property access such as a.b.
type Member struct {
	base
	Object   Node
	Property string
}

func (*Member) Kind() Kind { return KindMember }

// Await is an await expression.
type Await struct {
	base
	Argument Node
}

func (*Await) Kind() Kind { return KindAwait }

// Try is a try statement. Handler and Finalizer may be nil.
type Try struct {
	base
	Body      *Block
	Handler   *CatchClause
	Finalizer *Block
}

func (*Try) Kind() Kind { return KindTry }

// CatchClause is the catch part of a try statement. Param may be nil.
type CatchClause struct {
	base
	Param Node
	Body  Node
}

func (*CatchClause) Kind() Kind { return KindCatchClause }

// FunctionDeclaration is a named function statement.
type FunctionDeclaration struct {
	base
	Name string
	Body Node
}

func (*FunctionDeclaration) Kind() Kind { return KindFunctionDeclaration }

// Function is any other function-like construct: expressions, arrows,
// methods and closures.
type Function struct {
	base
	Body Node
}

func (*Function) Kind() Kind { return KindFunction }

// Assignment covers plain and compound assignments.
type Assignment struct {
	base
	Operator string
	Left     Node
	Right    Node
}

func (*Assignment) Kind() Kind { return KindAssignment }

// Literal is a literal value. Value is only meaningful for LiteralNumber.
type Literal struct {
	base
	LiteralKind LiteralKind
	Raw         string
	Value       float64
}

func (*Literal) Kind() Kind { return KindLiteral }

// IsNumeric reports whether the literal holds a plain number.
func (l *Literal) IsNumeric() bool { return l.LiteralKind == LiteralNumber }

// Generic is any node without a canonical variant.
type Generic struct {
	base
	kind Kind
}

func (g *Generic) Kind() Kind { return g.kind }
