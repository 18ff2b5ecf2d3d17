// Package codegen lowers a type-checked AST into an LLVM IR module: one
// function per top-level definition, stack slots for locals, branch webs for
// if/while, arithmetic/comparison builtins, and direct calls. Every function
// parameter is uniformly alloca'd and stored on entry, then left for the
// mem2reg pass to promote back to SSA; while loops evaluate their condition
// in a header block that the body branches back to.
package codegen

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"tinygo.org/x/go-llvm"

	"corelangc/src/ast"
	"corelangc/src/env"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Lowerer holds the LLVM context/module/builder and the scoped environment
// of IR handles shared between function bodies.
type Lowerer struct {
	ctx     llvm.Context
	builder llvm.Builder
	module  llvm.Module
	scope   *env.Scope[llvm.Value]
	fn      llvm.Value // Function currently being lowered.
	retType ast.Type   // Declared return type of fn.
	log     *logrus.Logger
}

// ---------------------
// ----- functions -----
// ---------------------

// New creates a Lowerer that will emit into a fresh module named moduleName.
func New(moduleName string, log *logrus.Logger) *Lowerer {
	if log == nil {
		log = logrus.New()
	}
	ctx := llvm.NewContext()
	return &Lowerer{
		ctx:     ctx,
		builder: ctx.NewBuilder(),
		module:  ctx.NewModule(moduleName),
		scope:   env.New[llvm.Value](),
		log:     log,
	}
}

// Module returns the IR module built so far.
func (lw *Lowerer) Module() llvm.Module { return lw.module }

// Dispose releases the context and builder owned by lw. The module is NOT
// disposed here: ownership passes to the JIT engine once it is handed off.
func (lw *Lowerer) Dispose() {
	lw.builder.Dispose()
	lw.ctx.Dispose()
}

// Lower emits every top-level definition of prog into lw's module.
// Function declarations are installed for every definition before any body
// is lowered, mirroring the checker's global-first ordering so that
// recursive and mutual references resolve.
func (lw *Lowerer) Lower(prog *ast.Node) error {
	for _, def := range prog.Children {
		if err := lw.declareFunc(def); err != nil {
			return err
		}
	}
	for _, def := range prog.Children {
		if len(def.Children) < 2 {
			continue // External declaration: no body to lower.
		}
		if err := lw.defineFunc(def); err != nil {
			return err
		}
	}
	return nil
}

// declareFunc adds the IR function for def to the module and binds it in the
// global scope, without lowering a body.
func (lw *Lowerer) declareFunc(def *ast.Node) error {
	name := def.Data.(string)
	sig := def.Children[0].Data.(ast.Type)

	params := make([]llvm.Type, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = lw.llvmType(p.Type)
	}
	ft := llvm.FunctionType(lw.llvmType(*sig.Return), params, sig.Variadic)
	fn := llvm.AddFunction(lw.module, name, ft)
	for i, p := range sig.Params {
		fn.Param(i).SetName(p.Name)
	}
	if len(def.Children) < 2 {
		fn.SetLinkage(llvm.ExternalLinkage)
	}
	lw.scope.Put(name, fn)
	return nil
}

// defineFunc lowers one function's body: entry block, parameter allocas,
// statements, then an implicit return for Unit-returning functions that
// fall through.
func (lw *Lowerer) defineFunc(def *ast.Node) error {
	name := def.Data.(string)
	sig := def.Children[0].Data.(ast.Type)
	body := def.Children[1]

	fn, ok := lw.scope.Get(name)
	if !ok {
		return fmt.Errorf("codegen: function %q was not declared before lowering its body", name)
	}

	lw.log.WithField("func", name).Debug("lowering function body")

	prevFn, prevRet := lw.fn, lw.retType
	lw.fn, lw.retType = fn, *sig.Return

	entry := lw.ctx.AddBasicBlock(fn, "entry")
	lw.builder.SetInsertPointAtEnd(entry)

	frame := make(map[string]llvm.Value, len(sig.Params))
	for i, p := range sig.Params {
		alloc := lw.builder.CreateAlloca(lw.llvmType(p.Type), p.Name)
		lw.builder.CreateStore(fn.Param(i), alloc)
		frame[p.Name] = alloc
	}
	lw.scope.Push(frame)

	terminated, err := lw.lowerStmt(body)
	if err != nil {
		lw.scope.Pop()
		lw.fn, lw.retType = prevFn, prevRet
		return err
	}
	if !terminated {
		if sig.Return.Equal(ast.Unit) {
			lw.builder.CreateRetVoid()
		} else {
			return fmt.Errorf("codegen: function %q falls off its end without returning a %s", name, sig.Return)
		}
	}

	lw.scope.Pop()
	lw.fn, lw.retType = prevFn, prevRet

	if ok := llvm.VerifyFunction(fn, llvm.PrintMessageAction); !ok {
		// A verifier failure means the lowerer emitted malformed IR for a
		// checked program: a bug in this package, not a fault in the
		// source program, so it does not travel back as an ordinary error.
		panic(fmt.Sprintf("codegen: function %q failed LLVM verification", name))
	}
	runFunctionPasses(lw.module, fn)
	return nil
}

// lowerStmt lowers a single statement, returning whether it left the current
// basic block already terminated (so callers can skip a redundant trailing
// branch, the policy chosen for the if/while trailing-branch question).
func (lw *Lowerer) lowerStmt(n *ast.Node) (bool, error) {
	switch n.Typ {
	case ast.BLOCK:
		lw.scope.PushEmpty()
		terminated := false
		for _, s := range n.Children {
			t, err := lw.lowerStmt(s)
			if err != nil {
				lw.scope.Pop()
				return false, err
			}
			terminated = t
			if terminated {
				break
			}
		}
		lw.scope.Pop()
		return terminated, nil

	case ast.VAR_STMT:
		return false, lw.lowerVar(n)

	case ast.ASSIGN_STMT:
		return false, lw.lowerAssign(n)

	case ast.RETURN_STMT:
		return true, lw.lowerReturn(n)

	case ast.IF_STMT:
		return lw.lowerIf(n)

	case ast.WHILE_STMT:
		return false, lw.lowerWhile(n)

	case ast.EXPR_STMT:
		_, err := lw.lowerExpr(n.Children[0])
		return false, err

	default:
		return false, fmt.Errorf("codegen: unexpected statement node %s", n.TypeName())
	}
}

// lowerVar emits a stack-slot alloca for a local and optionally stores its
// initializer, binding the pointer in the current scope frame.
func (lw *Lowerer) lowerVar(n *ast.Node) error {
	name := n.Data.(string)
	typ := *n.Entry // The checker has already resolved Auto to a concrete type.

	alloc := lw.builder.CreateAlloca(lw.llvmType(typ), name)
	if len(n.Children) > 0 {
		val, err := lw.lowerExpr(n.Children[0])
		if err != nil {
			return err
		}
		lw.builder.CreateStore(val, alloc)
	}
	lw.scope.Put(name, alloc)
	return nil
}

// lowerAssign stores the RHS value into the LHS identifier's stack slot.
func (lw *Lowerer) lowerAssign(n *ast.Node) error {
	name := n.Children[0].Data.(string)
	ptr, ok := lw.scope.Get(name)
	if !ok {
		return fmt.Errorf("codegen: assignment to undeclared identifier %q", name)
	}
	val, err := lw.lowerExpr(n.Children[1])
	if err != nil {
		return err
	}
	lw.builder.CreateStore(val, ptr)
	return nil
}

// lowerReturn emits ret void for the unit literal, else ret <value>.
func (lw *Lowerer) lowerReturn(n *ast.Node) error {
	expr := n.Children[0]
	if expr.Typ == ast.UNIT_LIT {
		lw.builder.CreateRetVoid()
		return nil
	}
	val, err := lw.lowerExpr(expr)
	if err != nil {
		return err
	}
	lw.builder.CreateRet(val)
	return nil
}

// lowerIf emits the then/else/cont block layout. When an arm already
// terminates (e.g. via return), the trailing branch to cont is skipped
// rather than inserted as dead code.
func (lw *Lowerer) lowerIf(n *ast.Node) (bool, error) {
	cond, err := lw.lowerExpr(n.Children[0])
	if err != nil {
		return false, err
	}

	thenBB := lw.ctx.AddBasicBlock(lw.fn, "if.then")
	hasElse := len(n.Children) > 2

	if !hasElse {
		contBB := lw.ctx.AddBasicBlock(lw.fn, "if.cont")
		lw.builder.CreateCondBr(cond, thenBB, contBB)

		lw.builder.SetInsertPointAtEnd(thenBB)
		thenTerm, err := lw.lowerStmt(n.Children[1])
		if err != nil {
			return false, err
		}
		if !thenTerm {
			lw.builder.CreateBr(contBB)
		}
		lw.builder.SetInsertPointAtEnd(contBB)
		return false, nil
	}

	elseBB := lw.ctx.AddBasicBlock(lw.fn, "if.else")
	lw.builder.CreateCondBr(cond, thenBB, elseBB)

	lw.builder.SetInsertPointAtEnd(thenBB)
	thenTerm, err := lw.lowerStmt(n.Children[1])
	if err != nil {
		return false, err
	}

	var contBB llvm.BasicBlock
	if !thenTerm {
		contBB = lw.ctx.AddBasicBlock(lw.fn, "if.cont")
		lw.builder.CreateBr(contBB)
	}

	lw.builder.SetInsertPointAtEnd(elseBB)
	elseTerm, err := lw.lowerStmt(n.Children[2])
	if err != nil {
		return false, err
	}
	if !elseTerm {
		if contBB.IsNil() {
			contBB = lw.ctx.AddBasicBlock(lw.fn, "if.cont")
		}
		lw.builder.CreateBr(contBB)
	}

	if contBB.IsNil() {
		// Both arms terminated: nothing falls through, and the current
		// statement counts as terminating for its enclosing block.
		return true, nil
	}
	lw.builder.SetInsertPointAtEnd(contBB)
	return false, nil
}

// lowerWhile emits the header-block loop shape: branch into a head block
// that evaluates the condition and branches to the body or to cont, lower the
// body, then branch back to the head to decide whether to repeat.
func (lw *Lowerer) lowerWhile(n *ast.Node) error {
	headBB := lw.ctx.AddBasicBlock(lw.fn, "while.head")
	bodyBB := lw.ctx.AddBasicBlock(lw.fn, "while.body")
	contBB := lw.ctx.AddBasicBlock(lw.fn, "while.cont")

	lw.builder.CreateBr(headBB)
	lw.builder.SetInsertPointAtEnd(headBB)
	cond, err := lw.lowerExpr(n.Children[0])
	if err != nil {
		return err
	}
	lw.builder.CreateCondBr(cond, bodyBB, contBB)

	lw.builder.SetInsertPointAtEnd(bodyBB)
	bodyTerm, err := lw.lowerStmt(n.Children[1])
	if err != nil {
		return err
	}
	if !bodyTerm {
		lw.builder.CreateBr(headBB)
	}

	lw.builder.SetInsertPointAtEnd(contBB)
	return nil
}

// lowerExpr lowers an expression to a single IR value.
func (lw *Lowerer) lowerExpr(n *ast.Node) (llvm.Value, error) {
	switch n.Typ {
	case ast.UNIT_LIT:
		return llvm.Value{}, nil

	case ast.BOOL_LIT:
		v := uint64(0)
		if n.Data.(bool) {
			v = 1
		}
		return llvm.ConstInt(lw.ctx.Int1Type(), v, false), nil

	case ast.INT_LIT:
		typ := ast.I64
		if n.Entry != nil {
			typ = *n.Entry
		}
		return llvm.ConstInt(lw.llvmType(typ), uint64(n.Data.(int64)), typ.Signed), nil

	case ast.STRING_LIT:
		return lw.builder.CreateGlobalStringPtr(n.Data.(string), "str"), nil

	case ast.IDENTIFIER_EXPR:
		return lw.lowerIdent(n.Data.(string))

	case ast.CALL_EXPR:
		return lw.lowerCall(n)

	case ast.BUILTIN_EXPR:
		return lw.lowerBuiltin(n)

	default:
		return llvm.Value{}, fmt.Errorf("codegen: unexpected expression node %s", n.TypeName())
	}
}

// lowerIdent loads a local's (or promoted parameter's) stack slot, or
// returns a function handle directly.
func (lw *Lowerer) lowerIdent(name string) (llvm.Value, error) {
	v, ok := lw.scope.Get(name)
	if !ok {
		return llvm.Value{}, fmt.Errorf("codegen: undeclared identifier %q", name)
	}
	if !v.IsAFunction().IsNil() {
		return v, nil
	}
	return lw.builder.CreateLoad(v, ""), nil
}

// lowerCall lowers the callee and arguments in source order and emits a call.
func (lw *Lowerer) lowerCall(n *ast.Node) (llvm.Value, error) {
	fn, err := lw.lowerExpr(n.Children[0])
	if err != nil {
		return llvm.Value{}, err
	}
	args := make([]llvm.Value, 0, len(n.Children)-1)
	for _, arg := range n.Children[1:] {
		v, err := lw.lowerExpr(arg)
		if err != nil {
			return llvm.Value{}, err
		}
		args = append(args, v)
	}
	return lw.builder.CreateCall(fn, args, ""), nil
}

// lowerBuiltin lowers an arithmetic or comparison builtin application.
func (lw *Lowerer) lowerBuiltin(n *ast.Node) (llvm.Value, error) {
	op := n.Data.(ast.Op)
	a0Type := ast.I64
	if n.Children[0].Entry != nil {
		a0Type = *n.Children[0].Entry
	}

	operands := make([]llvm.Value, len(n.Children))
	for i, c := range n.Children {
		v, err := lw.lowerExpr(c)
		if err != nil {
			return llvm.Value{}, err
		}
		operands[i] = v
	}
	lhs, rhs := operands[0], operands[1]

	if op.IsComparison() {
		pred := llvm.IntEQ
		switch op {
		case ast.Lt:
			pred = llvm.IntSLT
		case ast.Le:
			pred = llvm.IntSLE
		case ast.Eq:
			pred = llvm.IntEQ
		case ast.Ge:
			pred = llvm.IntSGE
		case ast.Gt:
			pred = llvm.IntSGT
		case ast.Ne:
			pred = llvm.IntNE
		}
		return lw.builder.CreateICmp(pred, lhs, rhs, ""), nil
	}

	switch op {
	case ast.Add:
		return lw.builder.CreateAdd(lhs, rhs, ""), nil
	case ast.Sub:
		return lw.builder.CreateSub(lhs, rhs, ""), nil
	case ast.Mul:
		return lw.builder.CreateMul(lhs, rhs, ""), nil
	case ast.Div:
		if a0Type.Signed {
			return lw.builder.CreateSDiv(lhs, rhs, ""), nil
		}
		return lw.builder.CreateUDiv(lhs, rhs, ""), nil
	case ast.Mod:
		if a0Type.Signed {
			return lw.builder.CreateSRem(lhs, rhs, ""), nil
		}
		return lw.builder.CreateURem(lhs, rhs, ""), nil
	case ast.Pow:
		return lw.lowerIntPow(lhs, rhs, a0Type)
	default:
		return llvm.Value{}, fmt.Errorf("codegen: unhandled builtin operator %s", op)
	}
}

// lowerIntPow lowers Pow to an inline multiplication loop, one of the two
// strategies the exponentiation builtin is explicitly left open to: an
// accumulator and counter are stack slots allocated at the current insertion
// point, a loop block multiplies and decrements, and a cont block holds the
// accumulated result.
func (lw *Lowerer) lowerIntPow(base, exp llvm.Value, typ ast.Type) (llvm.Value, error) {
	it := lw.llvmType(typ)
	accSlot := lw.builder.CreateAlloca(it, "pow.acc")
	lw.builder.CreateStore(llvm.ConstInt(it, 1, typ.Signed), accSlot)
	cntSlot := lw.builder.CreateAlloca(it, "pow.cnt")
	lw.builder.CreateStore(exp, cntSlot)

	headBB := lw.ctx.AddBasicBlock(lw.fn, "pow.head")
	bodyBB := lw.ctx.AddBasicBlock(lw.fn, "pow.body")
	contBB := lw.ctx.AddBasicBlock(lw.fn, "pow.cont")

	lw.builder.CreateBr(headBB)
	lw.builder.SetInsertPointAtEnd(headBB)
	cnt := lw.builder.CreateLoad(cntSlot, "")
	cond := lw.builder.CreateICmp(llvm.IntSGT, cnt, llvm.ConstInt(it, 0, typ.Signed), "")
	lw.builder.CreateCondBr(cond, bodyBB, contBB)

	lw.builder.SetInsertPointAtEnd(bodyBB)
	acc := lw.builder.CreateLoad(accSlot, "")
	lw.builder.CreateStore(lw.builder.CreateMul(acc, base, ""), accSlot)
	cnt = lw.builder.CreateLoad(cntSlot, "")
	lw.builder.CreateStore(lw.builder.CreateSub(cnt, llvm.ConstInt(it, 1, typ.Signed), ""), cntSlot)
	lw.builder.CreateBr(headBB)

	lw.builder.SetInsertPointAtEnd(contBB)
	return lw.builder.CreateLoad(accSlot, ""), nil
}

// llvmType maps the language's closed type sum onto LLVM IR types.
func (lw *Lowerer) llvmType(t ast.Type) llvm.Type {
	switch t.Kind {
	case ast.KindUnit:
		return lw.ctx.VoidType()
	case ast.KindBool:
		return lw.ctx.Int1Type()
	case ast.KindInteger:
		return lw.ctx.IntType(t.Width)
	case ast.KindText:
		return llvm.PointerType(lw.ctx.Int8Type(), 0)
	case ast.KindFunction:
		params := make([]llvm.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = lw.llvmType(p.Type)
		}
		return llvm.PointerType(llvm.FunctionType(lw.llvmType(*t.Return), params, t.Variadic), 0)
	default:
		return lw.ctx.VoidType()
	}
}
