package lox

type Node interface {
	Pos() Position
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) Pos() Position {
	if len(p.Statements) == 0 {
		return Position{}
	}
	return p.Statements[0].Pos()
}

type NumberLiteral struct {
	Value    float64
	position Position
}

func (e *NumberLiteral) exprNode()     {}
func (e *NumberLiteral) Pos() Position { return e.position }

type StringLiteral struct {
	Value    string
	position Position
}

func (e *StringLiteral) exprNode()     {}
func (e *StringLiteral) Pos() Position { return e.position }

type BoolLiteral struct {
	Value    bool
	position Position
}

func (e *BoolLiteral) exprNode()     {}
func (e *BoolLiteral) Pos() Position { return e.position }

type NilLiteral struct {
	position Position
}

func (e *NilLiteral) exprNode()     {}
func (e *NilLiteral) Pos() Position { return e.position }

type VariableExpr struct {
	Name     string
	position Position
}

func (e *VariableExpr) exprNode()     {}
func (e *VariableExpr) Pos() Position { return e.position }

type AssignExpr struct {
	Name     string
	Value    Expression
	position Position
}

func (e *AssignExpr) exprNode()     {}
func (e *AssignExpr) Pos() Position { return e.position }

type UnaryExpr struct {
	Operator TokenType
	Right    Expression
	position Position
}

func (e *UnaryExpr) exprNode()     {}
func (e *UnaryExpr) Pos() Position { return e.position }

type BinaryExpr struct {
	Left     Expression
	Operator TokenType
	Right    Expression
	position Position
}

func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Pos() Position { return e.position }

// LogicalExpr is kept separate from BinaryExpr because and/or
// short-circuit rather than evaluating both operands.
type LogicalExpr struct {
	Left     Expression
	Operator TokenType
	Right    Expression
	position Position
}

func (e *LogicalExpr) exprNode()     {}
func (e *LogicalExpr) Pos() Position { return e.position }

type GroupingExpr struct {
	Expr     Expression
	position Position
}

func (e *GroupingExpr) exprNode()     {}
func (e *GroupingExpr) Pos() Position { return e.position }

type CallExpr struct {
	Callee   Expression
	Args     []Expression
	position Position
}

func (e *CallExpr) exprNode()     {}
func (e *CallExpr) Pos() Position { return e.position }

type GetExpr struct {
	Object   Expression
	Name     string
	position Position
}

func (e *GetExpr) exprNode()     {}
func (e *GetExpr) Pos() Position { return e.position }

type SetExpr struct {
	Object   Expression
	Name     string
	Value    Expression
	position Position
}

func (e *SetExpr) exprNode()     {}
func (e *SetExpr) Pos() Position { return e.position }

type ThisExpr struct {
	position Position
}

func (e *ThisExpr) exprNode()     {}
func (e *ThisExpr) Pos() Position { return e.position }

type SuperExpr struct {
	Method   string
	position Position
}

func (e *SuperExpr) exprNode()     {}
func (e *SuperExpr) Pos() Position { return e.position }
