package testing

import (
	"errors"

	"github.com/LeJamon/goAuctiond/internal/core/engine"
)

// Result is the outcome of submitting a request to a TestEnv.
type Result struct {
	Response *engine.Response
	Err      error
}

// Success reports whether the request committed.
func (r Result) Success() bool {
	return r.Err == nil
}

// Is reports whether the request failed with target.
func (r Result) Is(target error) bool {
	return errors.Is(r.Err, target)
}

// Events returns the committed events of the given type.
func (r Result) Events(typ string) []engine.Event {
	if r.Response == nil {
		return nil
	}
	return r.Response.EventsOf(typ)
}
