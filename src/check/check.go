// Package check implements the type checker: it walks the AST, resolves
// identifier types, unifies declared-vs-inferred local types, validates
// calls and control-flow conditions, and records the type of every global
// in a table exposed through Checker.Globals. Every global signature is installed before
// any body is checked, so forward and recursive references resolve.
package check

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"corelangc/src/ast"
	"corelangc/src/env"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Checker carries the scoped environment and the return type of the
// function currently being checked (cleared between top-level definitions).
type Checker struct {
	scope   *env.Scope[ast.Type]
	current *ast.Type // Declared return type of the enclosing function, nil outside one.
	log     *logrus.Logger
}

// ---------------------
// ----- functions -----
// ---------------------

// New returns a Checker with a fresh global scope.
func New(log *logrus.Logger) *Checker {
	if log == nil {
		log = logrus.New()
	}
	return &Checker{scope: env.New[ast.Type](), log: log}
}

// Globals returns the global name -> type table built while checking.
func (c *Checker) Globals() map[string]ast.Type { return c.scope.Global() }

// Program type-checks every top-level definition of prog, installing every
// global signature before checking any body so that forward and recursive
// references resolve.
func Program(prog *ast.Node, log *logrus.Logger) (*Checker, error) {
	c := New(log)

	for _, def := range prog.Children {
		sig := def.Children[0].Data.(ast.Type)
		if _, shadowed := c.scope.Put(def.Data.(string), sig); shadowed {
			return nil, typeErrorf(def, "duplicate top-level definition %q", def.Data.(string))
		}
	}

	for _, def := range prog.Children {
		if len(def.Children) < 2 {
			// External declaration: no body to check.
			continue
		}
		if err := c.checkFunc(def); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// checkFunc checks one function body, with its parameters bound in a fresh
// scope and the function's declared return type active for nested returns.
func (c *Checker) checkFunc(def *ast.Node) error {
	name := def.Data.(string)
	sig := def.Children[0].Data.(ast.Type)
	body := def.Children[1]

	c.log.WithField("func", name).Debug("type-checking function body")

	frame := make(map[string]ast.Type, len(sig.Params))
	for _, p := range sig.Params {
		frame[p.Name] = p.Type
	}
	c.scope.Push(frame)
	prevReturn := c.current
	ret := *sig.Return
	c.current = &ret

	err := c.checkStmt(body)

	c.current = prevReturn
	c.scope.Pop()
	return err
}

// checkStmt type-checks a single statement node.
func (c *Checker) checkStmt(n *ast.Node) error {
	switch n.Typ {
	case ast.BLOCK:
		c.scope.PushEmpty()
		for _, s := range n.Children {
			if err := c.checkStmt(s); err != nil {
				c.scope.Pop()
				return err
			}
		}
		c.scope.Pop()

	case ast.ASSIGN_STMT:
		lhs, rhs := n.Children[0], n.Children[1]
		if lhs.Typ != ast.IDENTIFIER_EXPR {
			return lvalueError(lhs)
		}
		lt, err := c.checkExpr(lhs)
		if err != nil {
			return err
		}
		rt, err := c.checkExpr(rhs)
		if err != nil {
			return err
		}
		if _, ok := ast.Unify(lt, rt); !ok {
			return typeError(lt, rt, "assignment", n)
		}

	case ast.VAR_STMT:
		name := n.Data.(string)
		annotation := ast.Auto
		if n.Entry != nil {
			annotation = *n.Entry
		}
		var final ast.Type
		if len(n.Children) > 0 {
			initType, err := c.checkExpr(n.Children[0])
			if err != nil {
				return err
			}
			resolved, ok := ast.Unify(annotation, initType)
			if !ok {
				return typeError(annotation, initType, fmt.Sprintf("initializer of %q", name), n)
			}
			final = resolved
		} else if !annotation.IsAuto() {
			final = annotation
		} else {
			return typeErrorf(n, "variable %q has neither a type annotation nor an initializer", name)
		}
		n.Entry = &final
		c.scope.Put(name, final)

	case ast.RETURN_STMT:
		rt, err := c.checkExpr(n.Children[0])
		if err != nil {
			return err
		}
		if c.current == nil {
			return typeErrorf(n, "return statement outside of a function body")
		}
		if _, ok := ast.Unify(*c.current, rt); !ok {
			return typeError(*c.current, rt, "return", n)
		}

	case ast.IF_STMT:
		ct, err := c.checkExpr(n.Children[0])
		if err != nil {
			return err
		}
		if !ct.Equal(ast.Bool) {
			return typeError(ast.Bool, ct, "if condition", n.Children[0])
		}
		if err := c.checkStmt(n.Children[1]); err != nil {
			return err
		}
		if len(n.Children) > 2 {
			if err := c.checkStmt(n.Children[2]); err != nil {
				return err
			}
		}

	case ast.WHILE_STMT:
		ct, err := c.checkExpr(n.Children[0])
		if err != nil {
			return err
		}
		if !ct.Equal(ast.Bool) {
			return typeError(ast.Bool, ct, "while condition", n.Children[0])
		}
		if err := c.checkStmt(n.Children[1]); err != nil {
			return err
		}

	case ast.EXPR_STMT:
		if _, err := c.checkExpr(n.Children[0]); err != nil {
			return err
		}

	default:
		return typeErrorf(n, "unexpected statement node %s", n.TypeName())
	}
	return nil
}

// checkExpr type-checks a single expression node.
func (c *Checker) checkExpr(n *ast.Node) (ast.Type, error) {
	switch n.Typ {
	case ast.UNIT_LIT:
		n.Entry = &ast.Unit
		return ast.Unit, nil
	case ast.BOOL_LIT:
		n.Entry = &ast.Bool
		return ast.Bool, nil
	case ast.INT_LIT:
		n.Entry = &ast.I64
		return ast.I64, nil
	case ast.STRING_LIT:
		n.Entry = &ast.Text
		return ast.Text, nil

	case ast.IDENTIFIER_EXPR:
		name := n.Data.(string)
		t, ok := c.scope.Get(name)
		if !ok {
			return ast.Type{}, nameError(name, n)
		}
		n.Entry = &t
		return t, nil

	case ast.BUILTIN_EXPR:
		return c.checkBuiltin(n)

	case ast.CALL_EXPR:
		return c.checkCall(n)

	default:
		return ast.Type{}, typeErrorf(n, "unexpected expression node %s", n.TypeName())
	}
}

// checkBuiltin type-checks a builtin-operator application, unifying every
// operand against the first rather than only inspecting it.
func (c *Checker) checkBuiltin(n *ast.Node) (ast.Type, error) {
	op := n.Data.(ast.Op)
	if len(n.Children) == 0 {
		return ast.Type{}, typeErrorf(n, "builtin %s has no operands", op)
	}
	a0, err := c.checkExpr(n.Children[0])
	if err != nil {
		return ast.Type{}, err
	}
	for _, arg := range n.Children[1:] {
		at, err := c.checkExpr(arg)
		if err != nil {
			return ast.Type{}, err
		}
		if _, ok := ast.Unify(a0, at); !ok {
			return ast.Type{}, typeError(a0, at, fmt.Sprintf("operand of %s", op), arg)
		}
	}
	var result ast.Type
	if op.IsComparison() {
		result = ast.Bool
	} else {
		result = a0
	}
	n.Entry = &result
	return result, nil
}

// checkCall type-checks a call expression: the callee must resolve to a
// Function type, and arity/argument types must match its signature.
func (c *Checker) checkCall(n *ast.Node) (ast.Type, error) {
	fn := n.Children[0]
	args := n.Children[1:]

	ft, err := c.checkExpr(fn)
	if err != nil {
		return ast.Type{}, err
	}
	if ft.Kind != ast.KindFunction {
		return ast.Type{}, typeErrorf(fn, "cannot call non-function type %s", ft)
	}

	nParams := len(ft.Params)
	if len(args) != nParams && !(ft.Variadic && len(args) >= nParams) {
		return ast.Type{}, argError(n, "expected %d argument(s), got %d", nParams, len(args))
	}

	for i, p := range ft.Params {
		at, err := c.checkExpr(args[i])
		if err != nil {
			return ast.Type{}, err
		}
		if _, ok := ast.Unify(p.Type, at); !ok {
			return ast.Type{}, typeError(p.Type, at, fmt.Sprintf("argument %d", i+1), args[i])
		}
	}
	// Excess variadic arguments accept any well-typed expression.
	for _, extra := range args[nParams:] {
		if _, err := c.checkExpr(extra); err != nil {
			return ast.Type{}, err
		}
	}

	result := *ft.Return
	n.Entry = &result
	return result, nil
}
