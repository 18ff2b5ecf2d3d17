package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"corelangc/src/ast"
	"corelangc/src/check"
	"corelangc/src/codegen"
	"corelangc/src/jit"
	"corelangc/src/runtime"
)

// Compile type-checks and lowers prog, returning a Lowerer whose Module is
// ready for JIT linkage. Callers own the returned Lowerer and must Dispose
// it once the module has been handed to a jit.Engine. On error no Lowerer is
// returned: one that was created is disposed here.
func Compile(prog *ast.Node, log *logrus.Logger) (*codegen.Lowerer, *check.Checker, error) {
	checker, err := check.Program(prog, log)
	if err != nil {
		return nil, nil, err
	}

	lw := codegen.New("corelangc", log)
	if err := lw.Lower(prog); err != nil {
		lw.Dispose()
		return nil, nil, err
	}
	return lw, checker, nil
}

// Run compiles prog, links the host runtime, invokes main, and returns its
// exit value.
func Run(prog *ast.Node, log *logrus.Logger) (int64, error) {
	lw, _, err := Compile(prog, log)
	if err != nil {
		return 0, err
	}
	defer lw.Dispose()

	engine, err := jit.New(lw.Module())
	if err != nil {
		return 0, err
	}
	defer engine.Dispose()

	for name, addr := range runtime.Addresses() {
		engine.BindExternal(name, addr)
	}

	entry, err := engine.GetEntry("main")
	if err != nil {
		return 0, err
	}
	return entry(), nil
}

// Dump prints prog's annotated AST after type-checking. Returns an error if
// type-checking fails, and the partial (annotated-so-far) tree was not
// printed.
func Dump(prog *ast.Node, log *logrus.Logger) error {
	if _, err := check.Program(prog, log); err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	prog.Print(0)
	return nil
}
