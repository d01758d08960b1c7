package compiler

import (
	"fmt"
	"strings"
)

// Node is implemented by every AST node. The set of nodes is closed: the
// marker method is unexported, so only this package can add variants.
// Every composite node owns its children exclusively; the AST is a tree.
type Node interface {
	astNode()
	String() string
}

//  Expression nodes

// Expr is implemented by every node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// IntegerLiteral is a 64-bit signed integer constant.
//
//	let x = 10;
//	        ^^  IntegerLiteral{Value: 10}
type IntegerLiteral struct {
	Value int64
}

func (*IntegerLiteral) astNode()         {}
func (*IntegerLiteral) exprNode()        {}
func (l *IntegerLiteral) String() string { return fmt.Sprintf("%d", l.Value) }

// StringLiteral is a string constant "..."
type StringLiteral struct {
	Value string
}

func (*StringLiteral) astNode()         {}
func (*StringLiteral) exprNode()        {}
func (s *StringLiteral) String() string { return fmt.Sprintf("%q", s.Value) }

// VarRef is a read of a named variable.
//
//	return x;
//	       ^  VarRef{Name: "x"}
type VarRef struct {
	Name string
}

func (*VarRef) astNode()         {}
func (*VarRef) exprNode()        {}
func (v *VarRef) String() string { return v.Name }

// BinaryExpr represents a binary operation: Left Op Right.
//
//	x + 1
//	^ ^ ^
//	| | |
//	| | Right
//	| Op
//	Left
type BinaryExpr struct {
	Op    TokenType
	Left  Expr
	Right Expr
}

func (*BinaryExpr) astNode()  {}
func (*BinaryExpr) exprNode() {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op.Symbol(), b.Right)
}

//  Statement nodes

// Stmt is implemented by every node that does not produce a value.
type Stmt interface {
	Node
	stmtNode()
}

// LetStmt represents  let name = expr;
type LetStmt struct {
	Name string
	Init Expr
}

func (*LetStmt) astNode()  {}
func (*LetStmt) stmtNode() {}
func (l *LetStmt) String() string {
	return fmt.Sprintf("LetStmt(%s = %s)", l.Name, l.Init)
}

// ReturnStmt represents  return expr;
type ReturnStmt struct {
	Expr Expr
}

func (*ReturnStmt) astNode()  {}
func (*ReturnStmt) stmtNode() {}
func (r *ReturnStmt) String() string {
	return fmt.Sprintf("ReturnStmt(%s)", r.Expr)
}

// BlockStmt represents { statement; ... } and opens a new scope.
type BlockStmt struct {
	Stmts []Stmt
}

func (*BlockStmt) astNode()  {}
func (*BlockStmt) stmtNode() {}
func (b *BlockStmt) String() string {
	return fmt.Sprintf("BlockStmt%s", joinStmts(b.Stmts))
}

// IfStmt represents if (cond) body [else elseBody]
type IfStmt struct {
	Condition Expr
	Body      Stmt
	ElseBody  Stmt // may be nil
}

func (*IfStmt) astNode()  {}
func (*IfStmt) stmtNode() {}
func (i *IfStmt) String() string {
	if i.ElseBody != nil {
		return fmt.Sprintf("IfStmt(if %s then %s else %s)", i.Condition, i.Body, i.ElseBody)
	}
	return fmt.Sprintf("IfStmt(if %s then %s)", i.Condition, i.Body)
}

// WhileStmt represents while (cond) body
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (*WhileStmt) astNode()  {}
func (*WhileStmt) stmtNode() {}
func (w *WhileStmt) String() string {
	return fmt.Sprintf("WhileStmt(while %s do %s)", w.Condition, w.Body)
}

// ExprStmt represents an expression evaluated as a statement.
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) astNode()  {}
func (*ExprStmt) stmtNode() {}
func (e *ExprStmt) String() string {
	return fmt.Sprintf("ExprStmt(%s)", e.Expr)
}

// StmtList is an ordered run of statements that does not open a scope.
type StmtList struct {
	Stmts []Stmt
}

func (*StmtList) astNode()  {}
func (*StmtList) stmtNode() {}
func (l *StmtList) String() string {
	return fmt.Sprintf("StmtList%s", joinStmts(l.Stmts))
}

//  Root

// Program is the root of a parsed source file. Its statements run in the
// global scope.
type Program struct {
	Body *StmtList
}

func (*Program) astNode() {}
func (p *Program) String() string {
	return fmt.Sprintf("Program(%s)", p.Body)
}

func joinStmts(stmts []Stmt) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
