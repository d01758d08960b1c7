package compiler

import (
	"encoding/json"
	"fmt"
)

// Dump converts an AST into nested maps and slices keyed by field name, with
// a "kind" entry naming each node. The result marshals cleanly to YAML or JSON.
func Dump(node Node) map[string]any {
	switch n := node.(type) {
	case *Program:
		var body any
		if n.Body != nil {
			body = dumpStmts(n.Body.Stmts)
		}
		return map[string]any{"kind": "Program", "body": body}
	case *StmtList:
		return map[string]any{"kind": "StmtList", "stmts": dumpStmts(n.Stmts)}
	case *LetStmt:
		return map[string]any{"kind": "Let", "name": n.Name, "init": dumpNode(n.Init)}
	case *IfStmt:
		m := map[string]any{"kind": "If", "condition": dumpNode(n.Condition), "then": dumpNode(n.Body)}
		if n.ElseBody != nil {
			m["else"] = dumpNode(n.ElseBody)
		}
		return m
	case *WhileStmt:
		return map[string]any{"kind": "While", "condition": dumpNode(n.Condition), "body": dumpNode(n.Body)}
	case *ReturnStmt:
		return map[string]any{"kind": "Return", "expr": dumpNode(n.Expr)}
	case *BlockStmt:
		return map[string]any{"kind": "Block", "stmts": dumpStmts(n.Stmts)}
	case *ExprStmt:
		return map[string]any{"kind": "ExprStmt", "expr": dumpNode(n.Expr)}
	case *BinaryExpr:
		return map[string]any{
			"kind":  "BinaryOp",
			"op":    n.Op.Symbol(),
			"left":  dumpNode(n.Left),
			"right": dumpNode(n.Right),
		}
	case *VarRef:
		return map[string]any{"kind": "Identifier", "name": n.Name}
	case *IntegerLiteral:
		return map[string]any{"kind": "Integer", "value": n.Value}
	case *StringLiteral:
		return map[string]any{"kind": "String", "value": n.Value}
	default:
		return map[string]any{"kind": fmt.Sprintf("%T", node)}
	}
}

func dumpNode(node Node) any {
	if node == nil {
		return nil
	}
	return Dump(node)
}

func dumpStmts(stmts []Stmt) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = dumpNode(s)
	}
	return out
}

// MarshalYAML implements yaml.Marshaler.
func (p *Program) MarshalYAML() (any, error) {
	return Dump(p), nil
}

// MarshalJSON implements json.Marshaler.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(Dump(p))
}
