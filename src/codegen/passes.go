package codegen

import "tinygo.org/x/go-llvm"

// runFunctionPasses runs the fixed cleanup pipeline over fn after it has
// been verified: instcombine, reassociate, gvn, simplifycfg, basicaa,
// mem2reg, instcombine, reassociate. It lifts the alloca-heavy shape the
// lowerer produces into SSA and folds trivial branches; correctness never
// depends on it running.
func runFunctionPasses(m llvm.Module, fn llvm.Value) {
	pm := llvm.NewFunctionPassManagerForModule(m)
	defer pm.Dispose()

	pm.AddInstructionCombiningPass()
	pm.AddReassociatePass()
	pm.AddGVNPass()
	pm.AddCFGSimplificationPass()
	pm.AddBasicAliasAnalysisPass()
	pm.AddPromoteMemoryToRegisterPass()
	pm.AddInstructionCombiningPass()
	pm.AddReassociatePass()

	pm.InitializeFunc()
	pm.RunFunc(fn)
	pm.FinalizeFunc()
}
