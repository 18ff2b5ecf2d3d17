package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corelangc/src/ast"
)

func TestOpString(t *testing.T) {
	cases := map[ast.Op]string{
		ast.Add: "+",
		ast.Lt:  "<",
		ast.Eq:  "=",
		ast.Ne:  "!=",
	}
	for op, want := range cases {
		assert.Equal(t, want, op.String())
	}
}

func TestOpIsComparison(t *testing.T) {
	for _, op := range []ast.Op{ast.Lt, ast.Le, ast.Eq, ast.Ge, ast.Gt, ast.Ne} {
		assert.Truef(t, op.IsComparison(), "%s.IsComparison()", op)
	}
	for _, op := range []ast.Op{ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Mod, ast.Pow} {
		assert.Falsef(t, op.IsComparison(), "%s.IsComparison()", op)
	}
}

func TestBuilderShapes(t *testing.T) {
	sig := ast.Function([]ast.Param{{Name: "x", Type: ast.I64}}, ast.I64, false)
	def := ast.Def("double", sig, ast.Block(
		ast.Return(ast.Builtin(ast.Mul, ast.Ident("x"), ast.IntLit(2))),
	))

	require.Equal(t, ast.DEFINITION, def.Typ)
	require.Len(t, def.Children, 2, "a definition with a body has a signature child and a body child")
	assert.Equal(t, ast.SIGNATURE, def.Children[0].Typ)

	body := def.Children[1]
	require.Equal(t, ast.BLOCK, body.Typ)
	require.Len(t, body.Children, 1)
	assert.Equal(t, ast.RETURN_STMT, body.Children[0].Typ)
}

func TestDefWithoutBodyIsExternal(t *testing.T) {
	sig := ast.Function(nil, ast.I64, false)
	decl := ast.Def("read_int", sig, nil)
	require.Len(t, decl.Children, 1, "external declaration should carry only its signature")
}

func TestPrintIncludesTypeOnceAnnotated(t *testing.T) {
	n := ast.IntLit(7)
	entry := ast.I64
	n.Entry = &entry
	assert.Contains(t, n.String(), "i64")
}
