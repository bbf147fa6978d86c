package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/copycop/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if errors.Is(err, cli.ErrThresholdExceeded) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}
