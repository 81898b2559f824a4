package main

import (
	"context"
	"fmt"
	"os"

	"bennypowers.dev/tickify/internal/version"
)

func main() {
	cmd := newCommand(version.Get().String())
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
