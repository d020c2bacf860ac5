package main

import (
	"os"

	mdwerror "github.com/msto63/cta/foundation/core/error"
	"github.com/msto63/cta/cmd/cta/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(mdwerror.GetCode(err).ExitCode())
	}
}
