package types

// NodeType identifies the type of an AST node.
type NodeType string

// AST node types.
const (
	// Expressions
	NodeLiteral  NodeType = "literal"
	NodeGrouping NodeType = "grouping"
	NodeUnary    NodeType = "unary"    // !, -
	NodeBinary   NodeType = "binary"   // +, -, *, /, ==, <, etc.
	NodeLogical  NodeType = "logical"  // and, or
	NodeVariable NodeType = "variable" // identifier reference
	NodeAssign   NodeType = "assign"   // name = value

	// Statements
	NodeExprStmt  NodeType = "expression"
	NodePrintStmt NodeType = "print"
	NodeVarStmt   NodeType = "var"
	NodeBlockStmt NodeType = "block"
	NodeIfStmt    NodeType = "if"
)

// UnaryOp is a prefix operator.
type UnaryOp string

const (
	OpNot    UnaryOp = "!"
	OpNegate UnaryOp = "-"
)

// BinaryOp is an arithmetic, comparison or equality operator.
type BinaryOp string

const (
	OpEqual        BinaryOp = "=="
	OpNotEqual     BinaryOp = "!="
	OpGreater      BinaryOp = ">"
	OpGreaterEqual BinaryOp = ">="
	OpLess         BinaryOp = "<"
	OpLessEqual    BinaryOp = "<="
	OpAdd          BinaryOp = "+"
	OpSubtract     BinaryOp = "-"
	OpMultiply     BinaryOp = "*"
	OpDivide       BinaryOp = "/"
)

// LogicalOp is a short-circuiting operator.
type LogicalOp string

const (
	OpAnd LogicalOp = "and"
	OpOr  LogicalOp = "or"
)

// Node is implemented by every expression and statement.
type Node interface {
	Type() NodeType
	Loc() Location
}

// Expr is an expression node. The set of implementations is closed.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node. The set of implementations is closed.
type Stmt interface {
	Node
	stmtNode()
}

// LiteralExpr is a string, number, boolean or nil literal.
type LiteralExpr struct {
	Value    Value
	Location Location
}

// GroupingExpr is a parenthesised expression.
type GroupingExpr struct {
	Inner    Expr
	Location Location
}

// UnaryExpr applies a prefix operator to its operand.
type UnaryExpr struct {
	Op       UnaryOp
	Operand  Expr
	Location Location
}

// BinaryExpr applies an infix operator. Location is the operator's.
type BinaryExpr struct {
	Op       BinaryOp
	Left     Expr
	Right    Expr
	Location Location
}

// LogicalExpr is an `and`/`or` expression. Only the left side is always evaluated.
type LogicalExpr struct {
	Left     Expr
	Op       LogicalOp
	Right    Expr
	Location Location
}

// VariableExpr reads a variable.
type VariableExpr struct {
	Name     string
	Location Location
}

// AssignExpr stores Value into an existing variable and yields it.
type AssignExpr struct {
	Name     string
	Value    Expr
	Location Location
}

func (e *LiteralExpr) Type() NodeType  { return NodeLiteral }
func (e *GroupingExpr) Type() NodeType { return NodeGrouping }
func (e *UnaryExpr) Type() NodeType    { return NodeUnary }
func (e *BinaryExpr) Type() NodeType   { return NodeBinary }
func (e *LogicalExpr) Type() NodeType  { return NodeLogical }
func (e *VariableExpr) Type() NodeType { return NodeVariable }
func (e *AssignExpr) Type() NodeType   { return NodeAssign }

func (e *LiteralExpr) Loc() Location  { return e.Location }
func (e *GroupingExpr) Loc() Location { return e.Location }
func (e *UnaryExpr) Loc() Location    { return e.Location }
func (e *BinaryExpr) Loc() Location   { return e.Location }
func (e *LogicalExpr) Loc() Location  { return e.Location }
func (e *VariableExpr) Loc() Location { return e.Location }
func (e *AssignExpr) Loc() Location   { return e.Location }

func (*LiteralExpr) exprNode()  {}
func (*GroupingExpr) exprNode() {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*LogicalExpr) exprNode()  {}
func (*VariableExpr) exprNode() {}
func (*AssignExpr) exprNode()   {}

// ExprStmt evaluates an expression for its side effects.
type ExprStmt struct {
	Expr     Expr
	Location Location
}

// PrintStmt writes the rendering of Expr to the program output.
type PrintStmt struct {
	Expr     Expr
	Location Location
}

// VarStmt declares a variable in the current scope.
// Initializer is nil when the declaration has none.
type VarStmt struct {
	Name        string
	Initializer Expr
	Location    Location
}

// BlockStmt runs its statements in a new child scope.
type BlockStmt struct {
	Stmts    []Stmt
	Location Location
}

// IfStmt runs Then when Cond is truthy, Else (may be nil) otherwise.
type IfStmt struct {
	Cond     Expr
	Then     Stmt
	Else     Stmt
	Location Location
}

func (s *ExprStmt) Type() NodeType  { return NodeExprStmt }
func (s *PrintStmt) Type() NodeType { return NodePrintStmt }
func (s *VarStmt) Type() NodeType   { return NodeVarStmt }
func (s *BlockStmt) Type() NodeType { return NodeBlockStmt }
func (s *IfStmt) Type() NodeType    { return NodeIfStmt }

func (s *ExprStmt) Loc() Location  { return s.Location }
func (s *PrintStmt) Loc() Location { return s.Location }
func (s *VarStmt) Loc() Location   { return s.Location }
func (s *BlockStmt) Loc() Location { return s.Location }
func (s *IfStmt) Loc() Location    { return s.Location }

func (*ExprStmt) stmtNode()  {}
func (*PrintStmt) stmtNode() {}
func (*VarStmt) stmtNode()   {}
func (*BlockStmt) stmtNode() {}
func (*IfStmt) stmtNode()    {}
