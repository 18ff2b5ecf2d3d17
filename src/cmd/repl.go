package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"corelangc/src/util"
)

// repl is a line-editing front end over the same demo-program manifest the
// run/dump subcommands use. A real per-expression REPL would need the
// concrete parser this module treats as an external collaborator; what it
// can honestly offer instead is interactive :run/:dump of named programs
// against a persistent liner history, which is the shape the line-editing
// and colourised-prompt idiom below is grounded on.
//
// Grounded on sunholo-data-ailang's internal/repl/repl.go: github.com/
// peterh/liner for history-backed line editing, github.com/fatih/color for
// the prompt and result colouring.
type repl struct {
	line *liner.State
	diag *util.Diagnostics

	green func(a ...interface{}) string
	red   func(a ...interface{}) string
	cyan  func(a ...interface{}) string
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive :run/:dump prompt over the built-in demo programs.",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, _ := util.LoadConfig("corelangc.yaml")
			log := cfg.Apply(opts).Logger()
			r := newREPL()
			defer r.line.Close()
			r.loop(log)
			return nil
		},
	}
}

func newREPL() *repl {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &repl{
		line:  line,
		diag:  util.NewDiagnostics(os.Stderr),
		green: color.New(color.FgGreen).SprintFunc(),
		red:   color.New(color.FgRed, color.Bold).SprintFunc(),
		cyan:  color.New(color.FgCyan).SprintFunc(),
	}
}

func (r *repl) loop(log *logrus.Logger) {
	fmt.Printf("%s type %s for the program list, %s to quit\n",
		r.cyan("corelangc repl"), r.green(":list"), r.green(":quit"))

	for {
		input, err := r.line.Prompt("corelangc> ")
		if err != nil {
			return // EOF or Ctrl-D/Ctrl-C.
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.line.AppendHistory(input)

		switch {
		case input == ":quit" || input == ":q":
			return
		case input == ":list":
			for _, name := range scenarioNames() {
				fmt.Println(" ", name)
			}
		case strings.HasPrefix(input, ":run "):
			r.exec(strings.TrimPrefix(input, ":run "), log, false)
		case strings.HasPrefix(input, ":dump "):
			r.exec(strings.TrimPrefix(input, ":dump "), log, true)
		default:
			fmt.Println(r.red("unrecognised command; try :list, :run <name>, :dump <name>, :quit"))
		}
	}
}

func (r *repl) exec(name string, log *logrus.Logger, dump bool) {
	build, ok := Programs[strings.TrimSpace(name)]
	if !ok {
		fmt.Println(r.red(fmt.Sprintf("unknown program %q", name)))
		return
	}
	if dump {
		if err := Dump(build(), log); err != nil {
			r.diag.ReportCheckError(err)
		}
		return
	}
	exit, err := Run(build(), log)
	if err != nil {
		r.diag.ReportCheckError(err)
		return
	}
	fmt.Println(r.green(fmt.Sprintf("-> exit %d", exit)))
}
