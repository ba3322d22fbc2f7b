package main

import (
	"os"

	"github.com/turtacn/ChemPatent-Insight/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
