package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/lectern-ai/lectern/internal/apiserver"
)

func main() {
	command := apiserver.NewAPIServerCommand("lectern-apiserver")
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
