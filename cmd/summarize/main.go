package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thiagonache/benchcsv"
)

func main() {
	summarizer, err := benchcsv.NewSummarizer(
		benchcsv.WithInputsFromArgs(os.Args[1:]),
	)
	if errors.Is(err, benchcsv.ErrNoInput) {
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := summarizer.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
