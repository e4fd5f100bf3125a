package utils

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// OnProcessInterruptOrKill runs fn once when the process receives an
// interrupt (Ctrl+C) or termination signal (SIGTERM). Calling the returned
// stop function stops listening without running fn.
func OnProcessInterruptOrKill(fn func()) (stop func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	var once sync.Once

	go func() {
		select {
		case <-sigChan:
			fn()
		case <-done:
		}
	}()

	return func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(done)
		})
	}
}
