// Package common holds small helpers shared across the panel.
package common

import (
	"errors"

	"github.com/inventaris/panel/logger"
)

// Combine joins the non-nil errors, returning nil when all are nil.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}

// Recover must be deferred directly. It logs and returns the recovered panic value.
func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}
