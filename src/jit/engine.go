// Package jit wraps an LLVM module in a JIT execution engine: it binds
// external symbols to host function pointers and retrieves the entry point
// as a callable thunk, using tinygo.org/x/go-llvm's MCJIT bindings
// (NewMCJITCompiler / AddGlobalMapping / GetFunctionAddress).
package jit

import (
	"fmt"
	"unsafe"

	"tinygo.org/x/go-llvm"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Engine owns a compiled module for its lifetime. The entry-point thunk
// returned by GetEntry borrows the engine; the engine must outlive every
// call made through it.
type Engine struct {
	ee     llvm.ExecutionEngine
	module llvm.Module
}

// ---------------------
// ----- functions -----
// ---------------------

// New takes ownership of module and compiles it lazily under MCJIT.
func New(module llvm.Module) (*Engine, error) {
	opts := llvm.NewMCJITCompilerOptions()
	opts.SetMCJITOptimizationLevel(2)
	ee, err := llvm.NewMCJITCompiler(module, opts)
	if err != nil {
		return nil, fmt.Errorf("jit: failed to create execution engine: %w", err)
	}
	return &Engine{ee: ee, module: module}, nil
}

// Dispose releases the execution engine and, with it, the module it owns.
func (e *Engine) Dispose() { e.ee.Dispose() }

// BindExternal injects addr as the symbol for the module-declared function
// name, if the module declares one with no body. It is a no-op if the
// module has no such declaration.
func (e *Engine) BindExternal(name string, addr uintptr) {
	fn := e.module.NamedFunction(name)
	if fn.IsNil() {
		return
	}
	e.ee.AddGlobalMapping(fn, addr)
}

// GetEntry materialises the named entry point as a callable func() int64.
// Its undefined behaviour if the declared signature does not match what the
// caller invokes through: the entry point's signature is fixed to
// main() -> i64.
func (e *Engine) GetEntry(name string) (func() int64, error) {
	fn := e.module.NamedFunction(name)
	if fn.IsNil() {
		return nil, fmt.Errorf("jit: module declares no function %q", name)
	}
	addr := e.ee.GetFunctionAddress(name)
	if addr == 0 {
		return nil, fmt.Errorf("jit: could not resolve address of %q", name)
	}
	// A Go func value points at a word holding the code address, so the
	// thunk is built from a pointer to addr rather than from addr itself.
	code := &addr
	thunk := *(*func() int64)(unsafe.Pointer(&code))
	return thunk, nil
}
