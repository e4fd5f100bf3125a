package core

import (
	"errors"

	"github.com/0xRadioAc7iv/logcask/internal/lock"
	"github.com/0xRadioAc7iv/logcask/internal/record"
)

var (
	// ErrClosed is returned by every operation on a store after Close.
	ErrClosed = errors.New("store is closed")

	// ErrCorrupt reports that the log does not hold what the key directory
	// or the record format says it should.
	ErrCorrupt = errors.New("log integrity violation")

	ErrLocked      = lock.ErrLocked
	ErrTooLarge    = record.ErrTooLarge
	ErrInvalidText = record.ErrInvalidText
)
