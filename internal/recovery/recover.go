// Package recovery turns programming-error panics at input boundaries into logged errors.
// The editor must keep running when a single key event hits a bug.
package recovery

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Guard runs fn and recovers a panic, logging it with its stack.
// Returns the recovered value wrapped as an error, or nil.
func Guard(operation string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("%s panicked: %v", operation, r)
		}
	}()

	fn()
	return nil
}

// GuardValue runs fn and recovers a panic, returning the zero value and an error.
func GuardValue[T any](operation string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			var zero T
			result = zero
			err = fmt.Errorf("%s panicked: %v", operation, r)
		}
	}()

	return fn()
}
