package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corelangc/src/ast"
	"corelangc/src/check"
)

func i64Param(name string) ast.Param { return ast.Param{Name: name, Type: ast.I64} }

func TestProgramChecksWellTypedProgram(t *testing.T) {
	readInt := ast.Def("read_int", ast.Function(nil, ast.I64, false), nil)
	main := ast.Def("main", ast.Function(nil, ast.I64, false), ast.Block(
		ast.Var("a", ast.I64, ast.Call(ast.Ident("read_int"))),
		ast.Var("b", ast.I64, ast.Builtin(ast.Add, ast.Ident("a"), ast.IntLit(1))),
		ast.Return(ast.Ident("b")),
	))
	prog := ast.Program(readInt, main)

	c, err := check.Program(prog, nil)
	require.NoError(t, err)
	assert.Contains(t, c.Globals(), "main")
}

func TestProgramRecursiveCallsResolve(t *testing.T) {
	sig := ast.Function([]ast.Param{i64Param("n")}, ast.I64, false)
	fact := ast.Def("fact", sig, ast.Block(
		ast.Return(ast.Call(ast.Ident("fact"), ast.Builtin(ast.Sub, ast.Ident("n"), ast.IntLit(1)))),
	))
	prog := ast.Program(fact)

	_, err := check.Program(prog, nil)
	assert.NoError(t, err, "recursive call should resolve via pre-installed global signatures")
}

func TestNameErrorOnUndeclaredIdentifier(t *testing.T) {
	main := ast.Def("main", ast.Function(nil, ast.I64, false), ast.Block(
		ast.Return(ast.Ident("undeclaredVariable")),
	))
	_, err := check.Program(ast.Program(main), nil)
	assertKind(t, err, check.NameError)
}

func TestArgErrorOnArityMismatch(t *testing.T) {
	callee := ast.Def("callee", ast.Function([]ast.Param{i64Param("a"), i64Param("b")}, ast.I64, false), ast.Block(
		ast.Return(ast.Builtin(ast.Add, ast.Ident("a"), ast.Ident("b"))),
	))
	main := ast.Def("main", ast.Function(nil, ast.I64, false), ast.Block(
		ast.Return(ast.Call(ast.Ident("callee"), ast.IntLit(1))),
	))
	_, err := check.Program(ast.Program(callee, main), nil)
	assertKind(t, err, check.ArgError)
}

func TestLvalueErrorOnNonIdentifierAssignTarget(t *testing.T) {
	main := ast.Def("main", ast.Function(nil, ast.I64, false), ast.Block(
		ast.Assign(ast.IntLit(1), ast.IntLit(2)),
		ast.Return(ast.IntLit(0)),
	))
	_, err := check.Program(ast.Program(main), nil)
	assertKind(t, err, check.LvalueError)
}

func TestTypeErrorOnMismatchedIfCondition(t *testing.T) {
	main := ast.Def("main", ast.Function(nil, ast.I64, false), ast.Block(
		ast.If(ast.IntLit(1), ast.Block(ast.Return(ast.IntLit(0))), nil),
		ast.Return(ast.IntLit(0)),
	))
	_, err := check.Program(ast.Program(main), nil)
	assertKind(t, err, check.TypeError)
}

func TestTypeErrorOnMismatchedWhileCondition(t *testing.T) {
	main := ast.Def("main", ast.Function(nil, ast.I64, false), ast.Block(
		ast.While(ast.IntLit(1), ast.Block()),
		ast.Return(ast.IntLit(0)),
	))
	_, err := check.Program(ast.Program(main), nil)
	assertKind(t, err, check.TypeError)
}

func TestTypeErrorOnMismatchedReturnType(t *testing.T) {
	main := ast.Def("main", ast.Function(nil, ast.Bool, false), ast.Block(
		ast.Return(ast.IntLit(0)),
	))
	_, err := check.Program(ast.Program(main), nil)
	assertKind(t, err, check.TypeError)
}

func TestBuiltinOperandsUnifyAgainstFirst(t *testing.T) {
	main := ast.Def("main", ast.Function(nil, ast.I64, false), ast.Block(
		ast.Return(ast.Builtin(ast.Add, ast.IntLit(1), ast.BoolLit(true))),
	))
	_, err := check.Program(ast.Program(main), nil)
	assertKind(t, err, check.TypeError)
}

func TestComparisonBuiltinYieldsBool(t *testing.T) {
	main := ast.Def("main", ast.Function(nil, ast.I64, false), ast.Block(
		ast.If(ast.Builtin(ast.Lt, ast.IntLit(1), ast.IntLit(2)), ast.Block(ast.Return(ast.IntLit(1))), nil),
		ast.Return(ast.IntLit(0)),
	))
	_, err := check.Program(ast.Program(main), nil)
	assert.NoError(t, err)
}

func assertKind(t *testing.T, err error, want check.Kind) {
	t.Helper()
	require.Error(t, err)
	ce, ok := err.(*check.Error)
	require.Truef(t, ok, "expected *check.Error, got %T", err)
	assert.Equal(t, want, ce.Kind)
}
