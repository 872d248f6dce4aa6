package main

import (
	"os"

	"github.com/lmesias/folio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
