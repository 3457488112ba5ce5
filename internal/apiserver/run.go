package apiserver

import (
	"github.com/lectern-ai/lectern/internal/apiserver/config"
)

// Run starts the lectern API server with the given configuration and blocks
// until it exits.
func Run(cfg *config.Config) error {
	server, err := createAPIServer(cfg)
	if err != nil {
		return err
	}

	return server.PrepareRun().Run()
}
