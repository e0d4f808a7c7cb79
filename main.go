package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-scientist/brandson/app/cmd"
)

func main() {
	if err := cmd.RunCli(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
