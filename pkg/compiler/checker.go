package compiler

// Analyzer type-checks an AST against a stack of lexical scopes.
//
// The scope stack always holds the global scope at index 0. Blocks push a
// scope linked to the one below it and pop it when they finish, whether or
// not checking succeeded, so after Check returns only the global scope remains.
type Analyzer struct {
	scopes []*SymbolTable
	depth  int
	cfg    settings
}

// NewAnalyzer returns an Analyzer with an empty global scope.
func NewAnalyzer(opts ...Option) *Analyzer {
	return &Analyzer{
		scopes: []*SymbolTable{NewSymbolTable(nil)},
		cfg:    newSettings(opts),
	}
}

// Global returns the outermost scope.
func (a *Analyzer) Global() *SymbolTable { return a.scopes[0] }

// Current returns the innermost open scope.
func (a *Analyzer) Current() *SymbolTable { return a.scopes[len(a.scopes)-1] }

// Depth returns the number of open scopes, global included.
func (a *Analyzer) Depth() int { return len(a.scopes) }

func (a *Analyzer) enterScope() {
	a.scopes = append(a.scopes, NewSymbolTable(a.Current()))
}

func (a *Analyzer) exitScope() {
	if len(a.scopes) > 1 {
		a.scopes = a.scopes[:len(a.scopes)-1]
	}
}

// Check validates node and returns its type. Statements report Boolean unless
// the rule for the node says otherwise. The first violation stops the walk.
//
// Nesting is counted as the parser counts it: one level per statement and
// one per expression or parenthesised group. Program and StmtList add none.
func (a *Analyzer) Check(node Node) (Type, error) {
	switch n := node.(type) {
	case *Program:
		if n.Body == nil {
			return TypeBoolean, nil
		}
		return a.Check(n.Body)

	case *StmtList:
		if err := a.checkStmts(n.Stmts); err != nil {
			return 0, err
		}
		return TypeBoolean, nil

	case Expr:
		return a.checkExpr(n)
	}

	if err := a.enter(); err != nil {
		return 0, err
	}
	defer a.leave()

	switch n := node.(type) {
	case *LetStmt:
		typ, err := a.Check(n.Init)
		if err != nil {
			return 0, err
		}
		if err := a.Current().Insert(n.Name, typ); err != nil {
			return 0, err
		}
		a.cfg.logger.Debug("declared variable", "name", n.Name, "type", typ.String(), "scope", a.Depth())
		return typ, nil

	case *IfStmt:
		if err := a.checkCondition("if", n.Condition); err != nil {
			return 0, err
		}
		if _, err := a.Check(n.Body); err != nil {
			return 0, err
		}
		if n.ElseBody != nil {
			if _, err := a.Check(n.ElseBody); err != nil {
				return 0, err
			}
		}
		return TypeBoolean, nil

	case *WhileStmt:
		if err := a.checkCondition("while", n.Condition); err != nil {
			return 0, err
		}
		if _, err := a.Check(n.Body); err != nil {
			return 0, err
		}
		return TypeBoolean, nil

	case *ReturnStmt:
		// No function declarations exist yet, so there is no declared
		// return type to compare against.
		return a.Check(n.Expr)

	case *BlockStmt:
		a.enterScope()
		defer a.exitScope()
		if err := a.checkStmts(n.Stmts); err != nil {
			return 0, err
		}
		return TypeBoolean, nil

	case *ExprStmt:
		return a.Check(n.Expr)

	default:
		return 0, semanticErrorf(ErrUnknownNode, "unknown AST node type: %T", node)
	}
}

func (a *Analyzer) enter() error {
	a.depth++
	if a.depth > a.cfg.maxDepth {
		a.depth--
		return semanticErrorf(ErrNestingTooDeep, "nesting too deep (limit %d)", a.cfg.maxDepth)
	}
	return nil
}

func (a *Analyzer) leave() { a.depth-- }

// checkExpr checks an expression that starts a new nesting level: a
// statement's expression, a condition, or a parenthesised group.
func (a *Analyzer) checkExpr(e Expr) (Type, error) {
	if err := a.enter(); err != nil {
		return 0, err
	}
	defer a.leave()
	return a.typeOf(e)
}

// typeOf checks e within the current nesting level. Operands of a flat
// chain such as 1 + 2 + 3 stay on the same level.
func (a *Analyzer) typeOf(e Expr) (Type, error) {
	switch n := e.(type) {
	case *IntegerLiteral:
		return TypeInteger, nil

	case *StringLiteral:
		return TypeString, nil

	case *VarRef:
		sym, ok := a.Current().Lookup(n.Name)
		if !ok {
			return 0, semanticErrorf(ErrUndeclared, "undeclared variable: %s", n.Name)
		}
		return sym.Type, nil

	case *BinaryExpr:
		return a.checkBinary(n)

	default:
		return 0, semanticErrorf(ErrUnknownNode, "unknown AST node type: %T", e)
	}
}

// operand checks one side of b, opening a level when the tree shape shows
// the operand was written in parentheses.
func (a *Analyzer) operand(b *BinaryExpr, side Expr, right bool) (Type, error) {
	if child, ok := side.(*BinaryExpr); ok && grouped(b.Op, child.Op, right) {
		return a.checkExpr(child)
	}
	return a.typeOf(side)
}

// grouped reports whether a child operator under parent can only have come
// from a parenthesised group. Both tiers are left-associative, so a right
// operand on the same tier, or a loose-tier operand under * or /, needed
// parentheses.
func grouped(parent, child TokenType, right bool) bool {
	parentTight := parent == STAR || parent == SLASH
	childTight := child == STAR || child == SLASH
	if parentTight && !childTight {
		return true
	}
	return right && parentTight == childTight
}

func (a *Analyzer) checkStmts(stmts []Stmt) error {
	for _, stmt := range stmts {
		if _, err := a.Check(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) checkCondition(construct string, cond Expr) error {
	typ, err := a.Check(cond)
	if err != nil {
		return err
	}
	if typ != TypeBoolean {
		return semanticErrorf(ErrNonBooleanCondition, "condition of %s statement must be boolean, got %s", construct, typ)
	}
	return nil
}

// checkBinary checks the left operand, then the right, then the operator.
func (a *Analyzer) checkBinary(b *BinaryExpr) (Type, error) {
	left, err := a.operand(b, b.Left, false)
	if err != nil {
		return 0, err
	}
	right, err := a.operand(b, b.Right, true)
	if err != nil {
		return 0, err
	}

	switch {
	case b.Op.IsArithmetic():
		if left == TypeInteger && right == TypeInteger {
			return TypeInteger, nil
		}
		return 0, semanticErrorf(ErrTypeMismatch, "type error: %s and %s are not compatible with %s", left, right, b.Op.Symbol())
	case b.Op.IsComparison():
		if left == right {
			return TypeBoolean, nil
		}
		return 0, semanticErrorf(ErrTypeMismatch, "type error: %s and %s cannot be compared with %s", left, right, b.Op.Symbol())
	default:
		return 0, semanticErrorf(ErrUnknownOperator, "unknown binary operator: %s", b.Op)
	}
}

// Check type-checks node in a fresh Analyzer.
func Check(node Node, opts ...Option) (Type, error) {
	return NewAnalyzer(opts...).Check(node)
}
