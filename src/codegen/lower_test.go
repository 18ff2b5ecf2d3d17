package codegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corelangc/src/ast"
	"corelangc/src/check"
	"corelangc/src/codegen"
	"corelangc/src/jit"
)

// buildConstantProgram returns a self-contained program (no external
// declarations) that returns a fixed constant, so it needs no runtime
// symbol binding to execute.
func buildConstantProgram(ret int64) *ast.Node {
	main := ast.Def("main", ast.Function(nil, ast.I64, false), ast.Block(
		ast.Return(ast.IntLit(ret)),
	))
	return ast.Program(main)
}

func TestLowerAndRunConstantReturn(t *testing.T) {
	prog := buildConstantProgram(42)
	_, err := check.Program(prog, nil)
	require.NoError(t, err)

	lw := codegen.New("const-return", nil)
	defer lw.Dispose()
	require.NoError(t, lw.Lower(prog))

	engine, err := jit.New(lw.Module())
	require.NoError(t, err)
	defer engine.Dispose()

	entry, err := engine.GetEntry("main")
	require.NoError(t, err)
	assert.Equal(t, int64(42), entry())
}

func TestLowerArithmeticAndControlFlow(t *testing.T) {
	// Sums 1..5 via a while loop and returns the total (15), exercising
	// stack-slot locals, the header-block loop shape and a
	// builtin comparison/arithmetic mix without any runtime calls.
	main := ast.Def("main", ast.Function(nil, ast.I64, false), ast.Block(
		ast.Var("i", ast.I64, ast.IntLit(1)),
		ast.Var("sum", ast.I64, ast.IntLit(0)),
		ast.While(
			ast.Builtin(ast.Le, ast.Ident("i"), ast.IntLit(5)),
			ast.Block(
				ast.Assign(ast.Ident("sum"), ast.Builtin(ast.Add, ast.Ident("sum"), ast.Ident("i"))),
				ast.Assign(ast.Ident("i"), ast.Builtin(ast.Add, ast.Ident("i"), ast.IntLit(1))),
			),
		),
		ast.Return(ast.Ident("sum")),
	))
	prog := ast.Program(main)

	_, err := check.Program(prog, nil)
	require.NoError(t, err)

	lw := codegen.New("sum-loop", nil)
	defer lw.Dispose()
	require.NoError(t, lw.Lower(prog))

	engine, err := jit.New(lw.Module())
	require.NoError(t, err)
	defer engine.Dispose()

	entry, err := engine.GetEntry("main")
	require.NoError(t, err)
	assert.Equal(t, int64(15), entry())
}

func TestLowerRejectsUndeclaredEntryPoint(t *testing.T) {
	main := ast.Def("notmain", ast.Function(nil, ast.I64, false), ast.Block(
		ast.Return(ast.IntLit(0)),
	))
	prog := ast.Program(main)
	_, err := check.Program(prog, nil)
	require.NoError(t, err)

	lw := codegen.New("no-entry", nil)
	defer lw.Dispose()
	require.NoError(t, lw.Lower(prog))

	engine, err := jit.New(lw.Module())
	require.NoError(t, err)
	defer engine.Dispose()

	_, err = engine.GetEntry("main")
	assert.Error(t, err, "expected GetEntry to fail for a module with no main")
}
