// Package posixsignal implements a shutdown.Manager triggered by POSIX
// signals (SIGINT/SIGTERM by default). On the second signal the process
// exits immediately.
package posixsignal

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/lectern-ai/lectern/pkg/http/shutdown"
)

// Name is the manager name reported to shutdown callbacks.
const Name = "PosixSignalManager"

// PosixSignalManager triggers shutdown on the configured signals.
type PosixSignalManager struct {
	signals []os.Signal
}

// NewPosixSignalManager creates the manager. With no arguments it listens
// for SIGINT and SIGTERM.
func NewPosixSignalManager(sig ...os.Signal) *PosixSignalManager {
	if len(sig) == 0 {
		sig = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	return &PosixSignalManager{signals: sig}
}

// GetName implements shutdown.Manager.
func (m *PosixSignalManager) GetName() string {
	return Name
}

// Start implements shutdown.Manager.
func (m *PosixSignalManager) Start(gs shutdown.GSInterface) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, m.signals...)

	go func() {
		<-ch
		gs.StartShutdown(m)
		// Second signal: force exit.
		<-ch
		os.Exit(1)
	}()

	return nil
}
