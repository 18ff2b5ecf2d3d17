package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corelangc/src/ast"
)

func TestUnifyAutoAdoptsActual(t *testing.T) {
	got, ok := ast.Unify(ast.Auto, ast.I64)
	require.True(t, ok)
	assert.True(t, got.Equal(ast.I64))
}

func TestUnifyMatchingConcreteTypes(t *testing.T) {
	got, ok := ast.Unify(ast.Bool, ast.Bool)
	require.True(t, ok)
	assert.True(t, got.Equal(ast.Bool))
}

func TestUnifyMismatchFails(t *testing.T) {
	_, ok := ast.Unify(ast.Bool, ast.I64)
	assert.False(t, ok)
}

func TestUnifyActualMayNotBeAuto(t *testing.T) {
	// Only the expected side may be Auto; an actual side of Auto is simply a
	// type mismatch against any concrete expected type.
	_, ok := ast.Unify(ast.I64, ast.Auto)
	assert.False(t, ok, "only the expected side may be Auto")
}

func TestFunctionTypeEquality(t *testing.T) {
	a := ast.Function([]ast.Param{{Name: "x", Type: ast.I64}}, ast.Bool, false)
	b := ast.Function([]ast.Param{{Name: "y", Type: ast.I64}}, ast.Bool, false)
	assert.True(t, a.Equal(b), "function types should be equal regardless of parameter names")

	c := ast.Function([]ast.Param{{Name: "x", Type: ast.I64}}, ast.Bool, true)
	assert.False(t, a.Equal(c), "variadic flag must participate in equality")
}

func TestIntegerWidthAndSignednessDistinguish(t *testing.T) {
	u8 := ast.Integer(false, 8)
	i8 := ast.Integer(true, 8)
	assert.False(t, u8.Equal(i8))
	assert.Equal(t, "u8", u8.String())
	assert.Equal(t, "i8", i8.String())
}

func TestFunctionConstructsExpectedStructure(t *testing.T) {
	ret := ast.I64
	want := ast.Type{
		Kind:     ast.KindFunction,
		Params:   []ast.Param{{Name: "n", Type: ast.I64}},
		Return:   &ret,
		Variadic: true,
	}
	got := ast.Function([]ast.Param{{Name: "n", Type: ast.I64}}, ast.I64, true)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Function() mismatch (-want +got):\n%s", diff)
	}
}
