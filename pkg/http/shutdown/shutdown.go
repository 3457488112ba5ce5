// Package shutdown coordinates graceful process shutdown. Managers listen for
// a trigger (POSIX signal, API call), then run all registered callbacks
// before the process exits.
package shutdown

import (
	"sync"
)

// Callback is invoked on shutdown with the name of the manager that
// triggered it.
type Callback interface {
	OnShutdown(manager string) error
}

// Func adapts a plain function to the Callback interface.
type Func func(manager string) error

// OnShutdown implements Callback.
func (f Func) OnShutdown(manager string) error {
	return f(manager)
}

// Manager watches for a shutdown trigger and reports it to GracefulShutdown.
type Manager interface {
	GetName() string
	Start(gs GSInterface) error
}

// ErrorHandler receives callback and manager errors during shutdown.
type ErrorHandler interface {
	OnError(err error)
}

// GSInterface is the surface managers use to drive the shutdown sequence.
type GSInterface interface {
	StartShutdown(m Manager)
	ReportError(err error)
	AddShutdownCallback(cb Callback)
}

// GracefulShutdown maintains managers and callbacks and runs the sequence.
type GracefulShutdown struct {
	mu           sync.Mutex
	callbacks    []Callback
	managers     []Manager
	errorHandler ErrorHandler
}

// New creates an empty GracefulShutdown.
func New() *GracefulShutdown {
	return &GracefulShutdown{}
}

// Start starts all registered managers. Returns the first manager error.
func (gs *GracefulShutdown) Start() error {
	for _, m := range gs.managers {
		if err := m.Start(gs); err != nil {
			return err
		}
	}
	return nil
}

// AddShutdownManager registers a shutdown trigger source.
func (gs *GracefulShutdown) AddShutdownManager(m Manager) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.managers = append(gs.managers, m)
}

// AddShutdownCallback registers a callback run during shutdown.
func (gs *GracefulShutdown) AddShutdownCallback(cb Callback) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.callbacks = append(gs.callbacks, cb)
}

// SetErrorHandler sets the handler receiving callback errors.
func (gs *GracefulShutdown) SetErrorHandler(h ErrorHandler) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.errorHandler = h
}

// StartShutdown runs all callbacks concurrently and waits for completion.
// Called by a Manager when its trigger fires.
func (gs *GracefulShutdown) StartShutdown(m Manager) {
	gs.mu.Lock()
	callbacks := make([]Callback, len(gs.callbacks))
	copy(callbacks, gs.callbacks)
	gs.mu.Unlock()

	var wg sync.WaitGroup
	for _, cb := range callbacks {
		wg.Add(1)
		go func(cb Callback) {
			defer wg.Done()
			gs.ReportError(cb.OnShutdown(m.GetName()))
		}(cb)
	}
	wg.Wait()
}

// ReportError forwards a non-nil error to the error handler, if set.
func (gs *GracefulShutdown) ReportError(err error) {
	if err != nil && gs.errorHandler != nil {
		gs.errorHandler.OnError(err)
	}
}
