package main

import (
	"os"

	"github.com/firefly-engineering/projctl/cmd"
	"github.com/firefly-engineering/projctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
