package repl

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/kakkky/mything/version"
)

//go:embed mything_ascii.txt
var ascii string

func printAscii(w io.Writer) {
	fmt.Fprintf(w, ascii, version.Current())
}
