package main

import (
	"fmt"
	"os"

	"github.com/thiagonache/benchcsv"
)

func main() {
	combiner, err := benchcsv.NewCombiner(
		benchcsv.WithCMPInputsFromArgs(os.Args[1:]),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := combiner.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
