package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

func main() {
	defer recoverPanic(os.Stderr)
	Execute()
}

// recoverPanic reports a panic with its stack on w and exits non-zero.
// Benchmark lines already written to stdout are left intact.
func recoverPanic(w io.Writer) {
	r := recover()
	if r == nil {
		return
	}
	fmt.Fprintf(w, "\nspeedtests: panic: %v\n\n%s\n", r, debug.Stack())
	exit(2)
}
