// Package runtime supplies the two host functions the language's JIT
// linkage binds into a compiled module: read_int and the variadic println.
// println is implemented via cgo plus a small <stdarg.h> shim, since cgo
// cannot itself export a variadic C function.
package runtime

/*
#include "shim.h"
*/
import "C"

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

var stdinReader = bufio.NewReader(os.Stdin)

// printlnBuf accumulates one println call's arguments between the shim's
// first goPrintlnArg and the terminating goPrintlnNewline. Single-threaded
// per the core's concurrency model, so a package-level buffer is safe.
var printlnBuf []int64

// ---------------------
// ----- functions -----
// ---------------------

//export read_int
func read_int() C.longlong {
	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return 0
	}
	v, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return 0
	}
	return C.longlong(v)
}

//export goPrintlnArg
func goPrintlnArg(v C.longlong) {
	printlnBuf = append(printlnBuf, int64(v))
}

//export goPrintlnNewline
func goPrintlnNewline() {
	parts := make([]string, len(printlnBuf))
	for i, v := range printlnBuf {
		parts[i] = strconv.FormatInt(v, 10)
	}
	fmt.Println(strings.Join(parts, " "))
	printlnBuf = printlnBuf[:0]
}

// Addresses returns the host function pointers read_int and println resolve
// to, keyed by the external symbol name the compiled module declares them
// under, ready to hand to jit.Engine.BindExternal.
func Addresses() map[string]uintptr {
	return map[string]uintptr{
		"read_int": uintptr(C.corelangc_read_int_addr()),
		"println":  uintptr(C.corelangc_println_addr()),
	}
}
