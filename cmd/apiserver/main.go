// apiserver starts the HTTP API directly, equivalent to "chempatent serve".
// It exists so container images can use a single-purpose entrypoint.
package main

import (
	"os"

	"github.com/turtacn/ChemPatent-Insight/internal/interfaces/cli"
)

func main() {
	root := cli.NewRootCommand()
	root.SetArgs(append([]string{"serve"}, os.Args[1:]...))
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
