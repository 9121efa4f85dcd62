package main

import (
	"context"
	"fmt"
	"os"

	"github.com/thenoetrevino/kanban/cmd"
	"github.com/thenoetrevino/kanban/internal/cli"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.ExitCodeFor(err))
	}
}
