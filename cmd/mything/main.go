package main

import (
	"os"

	"github.com/kakkky/mything/errs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errs.HandleError(err)
		os.Exit(1)
	}
}
