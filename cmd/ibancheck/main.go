// Command ibancheck validates one IBAN and prints its fields.
//
//	ibancheck DE89370400440532013000
//	echo "GB29 NWBK 6016 1331 9268 19" | ibancheck --json
//
// Exit status: 0 valid, 1 invalid, 2 missing or empty input.
package main

import (
	"fmt"
	"io"
	"os"
)

const (
	exitValid   = 0
	exitInvalid = 1
	exitUsage   = 2
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// --help and --version return without reaching RunE.
	code := exitValid
	cmd := newRootCmd(stdin, &code)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "ibancheck:", err)
		return exitUsage
	}
	return code
}
