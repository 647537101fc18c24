package version

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FprintVersion writes the version of the running binary to w, followed by a
// newline:
//
//	coretkctl github.com/coreemu/coretk v0.1.0 3f2c1d7
//
// The revision is left out when unknown.
func FprintVersion(w io.Writer) {
	name := filepath.Base(os.Args[0])
	if Revision == "" {
		fmt.Fprintln(w, name, Package, Version)
		return
	}
	fmt.Fprintln(w, name, Package, Version, Revision)
}

// PrintVersion writes the version to stdout.
func PrintVersion() {
	FprintVersion(os.Stdout)
}
