package util

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"corelangc/src/check"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Diagnostics prints check.Error and other pipeline failures, colourised
// when its output stream is a terminal.
//
// Grounded on sunholo-data-ailang's internal/repl's color.New(...).
// SprintFunc() usage, gated on golang.org/x/term the way Consensys-
// go-corset's CLI detects an interactive terminal before colourising.
type Diagnostics struct {
	out   io.Writer
	red   func(a ...interface{}) string
	bold  func(a ...interface{}) string
	dim   func(a ...interface{}) string
	plain bool
}

// ---------------------
// ----- functions -----
// ---------------------

// NewDiagnostics builds a Diagnostics writing to out, colourising only when
// out is an interactive terminal.
func NewDiagnostics(out *os.File) *Diagnostics {
	plain := !term.IsTerminal(int(out.Fd()))
	return &Diagnostics{
		out:   out,
		red:   color.New(color.FgRed, color.Bold).SprintFunc(),
		bold:  color.New(color.Bold).SprintFunc(),
		dim:   color.New(color.Faint).SprintFunc(),
		plain: plain,
	}
}

// ReportCheckError prints a check.Error with its kind highlighted.
func (d *Diagnostics) ReportCheckError(err error) {
	var ce *check.Error
	if !errors.As(err, &ce) {
		d.ReportFault(err)
		return
	}
	if d.plain {
		fmt.Fprintf(d.out, "error: %s\n", ce.Error())
		return
	}
	fmt.Fprintf(d.out, "%s %s\n", d.red("error:"), d.bold(ce.Error()))
}

// ReportFault prints any other pipeline failure (lowering, JIT linkage).
func (d *Diagnostics) ReportFault(err error) {
	if d.plain {
		fmt.Fprintf(d.out, "fault: %s\n", err)
		return
	}
	fmt.Fprintf(d.out, "%s %s\n", d.red("fault:"), err)
}

// Info prints an informational line, dimmed when colourised.
func (d *Diagnostics) Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if d.plain {
		fmt.Fprintln(d.out, msg)
		return
	}
	fmt.Fprintln(d.out, d.dim(msg))
}
