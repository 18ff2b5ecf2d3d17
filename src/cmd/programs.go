package main

import "corelangc/src/ast"

// Demo programs standing in for the out-of-scope concrete parser: each is
// built directly with ast's builder API, the way a parser would hand the
// core a finished Program. They exercise the pipeline's own end-to-end
// scenarios (a+b, CRT, towers of hanoi, loop, a name error and an arity
// error) so "run"/"dump" have something concrete to drive.

var (
	i64Param = func(name string) ast.Param { return ast.Param{Name: name, Type: ast.I64} }

	readIntSig = ast.Function(nil, ast.I64, false)
	printlnSig = ast.Function([]ast.Param{i64Param("n")}, ast.Unit, true)
)

func externReadInt() *ast.Node { return ast.Def("read_int", readIntSig, nil) }
func externPrintln() *ast.Node { return ast.Def("println", printlnSig, nil) }

// Programs is the manifest of runnable demo programs, keyed by scenario name.
var Programs = map[string]func() *ast.Node{
	"a+b":        programAPlusB,
	"crt":        programCRT,
	"hanoi":      programHanoi,
	"loop":       programLoop,
	"name-error": programNameError,
	"arity":      programArity,
}

// programAPlusB reads two integers and prints their sum.
func programAPlusB() *ast.Node {
	main := ast.Def("main", ast.Function(nil, ast.I64, false), ast.Block(
		ast.Var("a", ast.I64, ast.Call(ast.Ident("read_int"))),
		ast.Var("b", ast.I64, ast.Call(ast.Ident("read_int"))),
		ast.ExprStmt(ast.Call(ast.Ident("println"), ast.IntLit(1),
			ast.Builtin(ast.Add, ast.Ident("a"), ast.Ident("b")))),
		ast.Return(ast.IntLit(0)),
	))
	return ast.Program(externReadInt(), externPrintln(), main)
}

// programLoop prints the decreasing sequence of odd squares 25^2..1^2.
func programLoop() *ast.Node {
	main := ast.Def("main", ast.Function(nil, ast.I64, false), ast.Block(
		ast.Var("i", ast.I64, ast.IntLit(25)),
		ast.While(
			ast.Builtin(ast.Ge, ast.Ident("i"), ast.IntLit(1)),
			ast.Block(
				ast.ExprStmt(ast.Call(ast.Ident("println"), ast.IntLit(1),
					ast.Builtin(ast.Mul, ast.Ident("i"), ast.Ident("i")))),
				ast.Assign(ast.Ident("i"), ast.Builtin(ast.Sub, ast.Ident("i"), ast.IntLit(2))),
			),
		),
		ast.Return(ast.IntLit(0)),
	))
	return ast.Program(externPrintln(), main)
}

// programCRT searches for the unique x in [0,105) solving the three
// congruences read from input, via brute force (no logical-and builtin
// exists, so the three residue checks nest rather than combine).
func programCRT() *ast.Node {
	found := ast.Block(
		ast.ExprStmt(ast.Call(ast.Ident("println"), ast.IntLit(1), ast.Ident("x"))),
		ast.Assign(ast.Ident("x"), ast.IntLit(105)),
	)
	checkC := ast.If(ast.Builtin(ast.Eq, ast.Builtin(ast.Mod, ast.Ident("x"), ast.IntLit(7)), ast.Ident("c")), found, nil)
	checkB := ast.If(ast.Builtin(ast.Eq, ast.Builtin(ast.Mod, ast.Ident("x"), ast.IntLit(5)), ast.Ident("b")), ast.Block(checkC), nil)
	checkA := ast.If(ast.Builtin(ast.Eq, ast.Builtin(ast.Mod, ast.Ident("x"), ast.IntLit(3)), ast.Ident("a")), ast.Block(checkB), nil)

	body := ast.Block(
		ast.Var("a", ast.I64, ast.Call(ast.Ident("read_int"))),
		ast.Var("b", ast.I64, ast.Call(ast.Ident("read_int"))),
		ast.Var("c", ast.I64, ast.Call(ast.Ident("read_int"))),
		ast.Var("x", ast.I64, ast.IntLit(0)),
		ast.While(
			ast.Builtin(ast.Lt, ast.Ident("x"), ast.IntLit(105)),
			ast.Block(
				checkA,
				ast.If(ast.Builtin(ast.Lt, ast.Ident("x"), ast.IntLit(105)),
					ast.Block(ast.Assign(ast.Ident("x"), ast.Builtin(ast.Add, ast.Ident("x"), ast.IntLit(1)))),
					nil),
			),
		),
		ast.Return(ast.IntLit(0)),
	)
	main := ast.Def("main", ast.Function(nil, ast.I64, false), body)
	return ast.Program(externReadInt(), externPrintln(), main)
}

// programHanoi emits the classic towers-of-hanoi move sequence for n disks,
// read from input, moving from peg 1 to peg 3 via peg 2.
func programHanoi() *ast.Node {
	hanoiSig := ast.Function([]ast.Param{i64Param("n"), i64Param("from"), i64Param("to"), i64Param("via")}, ast.Unit, false)

	hanoiBody := ast.Block(
		ast.If(
			ast.Builtin(ast.Ge, ast.Ident("n"), ast.IntLit(1)),
			ast.Block(
				ast.ExprStmt(ast.Call(ast.Ident("hanoi"),
					ast.Builtin(ast.Sub, ast.Ident("n"), ast.IntLit(1)), ast.Ident("from"), ast.Ident("via"), ast.Ident("to"))),
				ast.ExprStmt(ast.Call(ast.Ident("println"), ast.IntLit(2), ast.Ident("from"), ast.Ident("to"))),
				ast.ExprStmt(ast.Call(ast.Ident("hanoi"),
					ast.Builtin(ast.Sub, ast.Ident("n"), ast.IntLit(1)), ast.Ident("via"), ast.Ident("to"), ast.Ident("from"))),
			),
			nil,
		),
	)
	hanoi := ast.Def("hanoi", hanoiSig, hanoiBody)

	main := ast.Def("main", ast.Function(nil, ast.I64, false), ast.Block(
		ast.Var("n", ast.I64, ast.Call(ast.Ident("read_int"))),
		ast.ExprStmt(ast.Call(ast.Ident("hanoi"), ast.Ident("n"), ast.IntLit(1), ast.IntLit(3), ast.IntLit(2))),
		ast.Return(ast.IntLit(0)),
	))
	return ast.Program(externReadInt(), externPrintln(), hanoi, main)
}

// programNameError returns undeclaredVariable, an identifier that was never
// bound, and so fails type-checking with a NameError.
func programNameError() *ast.Node {
	main := ast.Def("main", ast.Function(nil, ast.I64, false), ast.Block(
		ast.Return(ast.Ident("undeclaredVariable")),
	))
	return ast.Program(main)
}

// programArity calls a two-parameter function with only one argument, and
// so fails type-checking with an ArgError.
func programArity() *ast.Node {
	callee := ast.Def("callee", ast.Function([]ast.Param{i64Param("a"), i64Param("b")}, ast.I64, false), ast.Block(
		ast.Return(ast.Builtin(ast.Add, ast.Ident("a"), ast.Ident("b"))),
	))
	main := ast.Def("main", ast.Function(nil, ast.I64, false), ast.Block(
		ast.Return(ast.Call(ast.Ident("callee"), ast.IntLit(1))),
	))
	return ast.Program(callee, main)
}
