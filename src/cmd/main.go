// Command corelangc wires the ast/check/codegen/jit/runtime packages into a
// small CLI: the demo-program driver and the interactive REPL.
//
// The CLI driver is explicitly outside the core's own scope; this is the
// thin ambient wiring every pack repo carries. Grounded on Consensys-
// go-corset's and sunholo-data-ailang's spf13/cobra command trees.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"corelangc/src/util"
)

var opts util.Options

// Root builds the corelangc command tree.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "corelangc",
		Short: "A JIT compiler core for a small statically-typed language.",
	}
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log checker/lowerer debug output")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "logrus level: debug, info, warn, error")

	root.AddCommand(runCmd(), dumpCmd(), replCmd())
	return root
}

func scenarioNames() []string {
	names := make([]string, 0, len(Programs))
	for n := range Programs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "run <scenario>",
		Short:     "Compile, JIT-link and run one of the built-in demo programs.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: scenarioNames(),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, _ := util.LoadConfig("corelangc.yaml")
			resolved := cfg.Apply(opts)
			log := resolved.Logger()
			diag := util.NewDiagnostics(os.Stderr)

			build, ok := Programs[args[0]]
			if !ok {
				return fmt.Errorf("unknown scenario %q (known: %v)", args[0], scenarioNames())
			}

			exit, err := Run(build(), log)
			if err != nil {
				diag.ReportCheckError(err)
				os.Exit(1)
			}
			os.Exit(int(exit))
			return nil
		},
	}
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "dump <scenario>",
		Short:     "Type-check one of the built-in demo programs and print its annotated AST.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: scenarioNames(),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, _ := util.LoadConfig("corelangc.yaml")
			log := cfg.Apply(opts).Logger()
			diag := util.NewDiagnostics(os.Stderr)

			build, ok := Programs[args[0]]
			if !ok {
				return fmt.Errorf("unknown scenario %q (known: %v)", args[0], scenarioNames())
			}
			if err := Dump(build(), log); err != nil {
				diag.ReportCheckError(err)
				os.Exit(1)
			}
			return nil
		},
	}
}

func main() {
	if err := Root().Execute(); err != nil {
		os.Exit(1)
	}
}
