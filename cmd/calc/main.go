// Command calc evaluates formulas and serves them over HTTP and MCP.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/felixgeelhaar/calc-go/interfaces/cli"
)

func main() {
	app := cli.New()
	if err := app.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
