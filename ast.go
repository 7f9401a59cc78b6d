// ast.go — Clarice abstract syntax tree.
//
// The parser (parser.go) produces a tree of Stmt and Expr nodes. Each node
// owns its children exclusively; the tree is acyclic and immutable once
// parsed. Every node records the position of its introducing token so the
// evaluator and the error renderer (errors.go) can point at source.
package clarice

// Pos is a 1-based line and 0-based column into the original source.
type Pos struct {
	Line int
	Col  int
}

// Node is the interface shared by all AST nodes.
type Node interface {
	Position() Pos
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is the root node: an ordered sequence of statements.
type Program struct {
	Stmts []Stmt
}

// ───────────────────────────── statements ──────────────────────────────────

// WithStmt binds Name transiently to the value of Value for the extent of
// Body. The binding is released when Body finishes, however it exits.
type WithStmt struct {
	Pos   Pos
	Name  string
	Value Expr
	Body  Stmt
}

// AliasStmt is the second `with` form: `with EXPR as IDENT do STMT`. It binds
// Alias transiently to the resolved value of Target (a callable reference,
// not a copy) for the extent of Body.
type AliasStmt struct {
	Pos    Pos
	Target Expr
	Alias  string
	Body   Stmt
}

// LetStmt declares Name durably in the current scope with a Null placeholder.
// TypeHint is the optional `as TYPE` token; it is recorded but never checked.
type LetStmt struct {
	Pos      Pos
	Name     string
	TypeHint string
}

// SetStmt assigns to an existing binding. Assigning an undeclared name is a
// name error: `set` is assignment, never declaration.
type SetStmt struct {
	Pos   Pos
	Name  string
	Value Expr
}

// IfStmt evaluates Cond (which must produce a Bool) and runs exactly one
// branch. Else may be nil.
type IfStmt struct {
	Pos  Pos
	Cond Expr
	Then Stmt
	Else Stmt
}

// LoopStmt runs Body repeatedly, each iteration in a fresh child scope,
// until a break signal unwinds out of it.
type LoopStmt struct {
	Pos  Pos
	Body []Stmt
}

// IterStmt walks Source, binding Name transiently per element: list elements
// in order, single-character strings for a String, or 0..n-1 for an Int n.
type IterStmt struct {
	Pos    Pos
	Name   string
	Source Expr
	Body   Stmt
}

// BreakStmt raises the break signal absorbed by the nearest enclosing loop.
type BreakStmt struct {
	Pos Pos
}

// PrintStmt formats its expression per value kind and writes it to the
// interpreter's output collaborator.
type PrintStmt struct {
	Pos   Pos
	Value Expr
}

// PromptStmt writes Text, blocks for one line of input (the content is
// discarded; arrival is a synchronization signal), then runs Body.
type PromptStmt struct {
	Pos  Pos
	Text string
	Body Stmt
}

// UsingStmt resolves member Name from registry path Path and binds it
// durably in the current scope.
type UsingStmt struct {
	Pos  Pos
	Name string
	Path string
}

// ExprStmt evaluates an expression for its value or effects.
type ExprStmt struct {
	Pos   Pos
	Value Expr
}

func (s *WithStmt) stmtNode()   {}
func (s *AliasStmt) stmtNode()  {}
func (s *LetStmt) stmtNode()    {}
func (s *SetStmt) stmtNode()    {}
func (s *IfStmt) stmtNode()     {}
func (s *LoopStmt) stmtNode()   {}
func (s *IterStmt) stmtNode()   {}
func (s *BreakStmt) stmtNode()  {}
func (s *PrintStmt) stmtNode()  {}
func (s *PromptStmt) stmtNode() {}
func (s *UsingStmt) stmtNode()  {}
func (s *ExprStmt) stmtNode()   {}

func (s *WithStmt) Position() Pos   { return s.Pos }
func (s *AliasStmt) Position() Pos  { return s.Pos }
func (s *LetStmt) Position() Pos    { return s.Pos }
func (s *SetStmt) Position() Pos    { return s.Pos }
func (s *IfStmt) Position() Pos     { return s.Pos }
func (s *LoopStmt) Position() Pos   { return s.Pos }
func (s *IterStmt) Position() Pos   { return s.Pos }
func (s *BreakStmt) Position() Pos  { return s.Pos }
func (s *PrintStmt) Position() Pos  { return s.Pos }
func (s *PromptStmt) Position() Pos { return s.Pos }
func (s *UsingStmt) Position() Pos  { return s.Pos }
func (s *ExprStmt) Position() Pos   { return s.Pos }

// ───────────────────────────── expressions ─────────────────────────────────

// IntLit is an integer literal.
type IntLit struct {
	Pos   Pos
	Value int64
}

// FloatLit is a float literal.
type FloatLit struct {
	Pos   Pos
	Value float64
}

// StringLit is a plain string literal with no template segments. Verbatim
// (triple-quoted) strings always lex to StringLit.
type StringLit struct {
	Pos   Pos
	Value string
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Pos   Pos
	Value bool
}

// ListLit is `[e1, e2, ...]`.
type ListLit struct {
	Pos   Pos
	Elems []Expr
}

// Ident is a variable reference.
type Ident struct {
	Pos  Pos
	Name string
}

// BinaryExpr applies Op ("+", "-", "*", "/", "=", "/=", "<", "<=", ">", ">=")
// to two operands. Kind compatibility is checked at evaluation time.
type BinaryExpr struct {
	Pos   Pos
	Op    string
	Left  Expr
	Right Expr
}

// UnaryExpr is prefix negation of a numeric operand.
type UnaryExpr struct {
	Pos     Pos
	Op      string
	Operand Expr
}

// CallExpr invokes a callable with evaluated arguments.
type CallExpr struct {
	Pos    Pos
	Callee Expr
	Args   []Expr
}

// MemberExpr reads member Name from a module object.
type MemberExpr struct {
	Pos    Pos
	Object Expr
	Name   string
}

// TemplateExpr is a double-quoted string with embedded `{expression}`
// segments. Parts alternates StringLit and arbitrary expressions in source
// order; adjacent literal parts never occur.
type TemplateExpr struct {
	Pos   Pos
	Parts []Expr
}

// AndExpr is the sequencing sugar `EXPR and STMT`: the expression is
// evaluated first, the statement runs second, and the expression's value is
// the result.
type AndExpr struct {
	Pos   Pos
	Value Expr
	Then  Stmt
}

func (e *IntLit) exprNode()       {}
func (e *FloatLit) exprNode()     {}
func (e *StringLit) exprNode()    {}
func (e *BoolLit) exprNode()      {}
func (e *ListLit) exprNode()      {}
func (e *Ident) exprNode()        {}
func (e *BinaryExpr) exprNode()   {}
func (e *UnaryExpr) exprNode()    {}
func (e *CallExpr) exprNode()     {}
func (e *MemberExpr) exprNode()   {}
func (e *TemplateExpr) exprNode() {}
func (e *AndExpr) exprNode()      {}

func (e *IntLit) Position() Pos       { return e.Pos }
func (e *FloatLit) Position() Pos     { return e.Pos }
func (e *StringLit) Position() Pos    { return e.Pos }
func (e *BoolLit) Position() Pos      { return e.Pos }
func (e *ListLit) Position() Pos      { return e.Pos }
func (e *Ident) Position() Pos        { return e.Pos }
func (e *BinaryExpr) Position() Pos   { return e.Pos }
func (e *UnaryExpr) Position() Pos    { return e.Pos }
func (e *CallExpr) Position() Pos     { return e.Pos }
func (e *MemberExpr) Position() Pos   { return e.Pos }
func (e *TemplateExpr) Position() Pos { return e.Pos }
func (e *AndExpr) Position() Pos      { return e.Pos }
