package main

import (
	"os"

	"github.com/lectern-ai/lectern/internal/lecternctl"
)

func main() {
	command := lecternctl.NewDefaultLecternCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
