package ast

// Builder constructors.
//
// The concrete surface grammar and its parser live outside this module; a
// well-formed Program is assumed to arrive already built. These constructors
// are that producer's output contract made directly constructible from Go,
// for tests, the REPL and the CLI's demo programs. They do no validation
// themselves — that is check.Program's job.

// Program builds the PROGRAM root node from an ordered list of definitions.
func Program(defs ...*Node) *Node {
	return &Node{Typ: PROGRAM, Children: defs}
}

// Def declares a top-level function. A nil body produces an externally
// linked declaration.
func Def(name string, sig Type, body *Node) *Node {
	children := []*Node{{Typ: SIGNATURE, Data: sig}}
	if body != nil {
		children = append(children, body)
	}
	return &Node{Typ: DEFINITION, Data: name, Children: children}
}

// Block builds a compound statement from an ordered list of statements.
func Block(stmts ...*Node) *Node {
	return &Node{Typ: BLOCK, Children: stmts}
}

// Assign builds an assignment statement. lhs must be an IDENTIFIER_EXPR node;
// the lvalue rule is enforced by check.Program, not here.
func Assign(lhs, rhs *Node) *Node {
	return &Node{Typ: ASSIGN_STMT, Children: []*Node{lhs, rhs}}
}

// Var declares a local variable. annotation may be Auto to mean "no type
// annotation written"; init may be nil to mean "no initializer".
func Var(name string, annotation Type, init *Node) *Node {
	n := &Node{Typ: VAR_STMT, Data: name, Entry: &annotation}
	if init != nil {
		n.Children = []*Node{init}
	}
	return n
}

// Return builds a return statement. A nil expr is the implicit unit literal.
func Return(expr *Node) *Node {
	if expr == nil {
		expr = UnitLit()
	}
	return &Node{Typ: RETURN_STMT, Children: []*Node{expr}}
}

// If builds a conditional. A nil elseBody omits the else arm.
func If(cond, thenBody, elseBody *Node) *Node {
	children := []*Node{cond, thenBody}
	if elseBody != nil {
		children = append(children, elseBody)
	}
	return &Node{Typ: IF_STMT, Children: children}
}

// While builds a while loop.
func While(cond, body *Node) *Node {
	return &Node{Typ: WHILE_STMT, Children: []*Node{cond, body}}
}

// ExprStmt builds an expression used as a statement.
func ExprStmt(e *Node) *Node {
	return &Node{Typ: EXPR_STMT, Children: []*Node{e}}
}

// Call builds a direct call. fn is itself an expression, typically an Ident
// node.
func Call(fn *Node, args ...*Node) *Node {
	return &Node{Typ: CALL_EXPR, Children: append([]*Node{fn}, args...)}
}

// Builtin builds a binary builtin-operator application.
func Builtin(op Op, lhs, rhs *Node) *Node {
	return &Node{Typ: BUILTIN_EXPR, Data: op, Children: []*Node{lhs, rhs}}
}

// Ident builds an identifier reference.
func Ident(name string) *Node {
	return &Node{Typ: IDENTIFIER_EXPR, Data: name}
}

// UnitLit builds the unit literal.
func UnitLit() *Node { return &Node{Typ: UNIT_LIT} }

// BoolLit builds a boolean literal.
func BoolLit(b bool) *Node { return &Node{Typ: BOOL_LIT, Data: b} }

// IntLit builds an integer literal, typed Integer{signed=true, width=64}.
func IntLit(n int64) *Node { return &Node{Typ: INT_LIT, Data: n} }

// StringLit builds a string literal.
func StringLit(s string) *Node { return &Node{Typ: STRING_LIT, Data: s} }
