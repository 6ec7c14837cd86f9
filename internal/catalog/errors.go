package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced catalog record does not exist.
	ErrNotFound = errors.New("catalog: not found")

	// ErrCircuitOpen is returned by Load while the source circuit breaker is open.
	ErrCircuitOpen = errors.New("catalog: source circuit breaker is open")

	// ErrNotReady is returned when waiting for the first load is cancelled.
	ErrNotReady = errors.New("catalog: store not ready")
)

// UpstreamFetchError reports a failed fetch of one entity during Load. The
// previous value of that entity stays in the published snapshot.
type UpstreamFetchError struct {
	Entity Entity
	Err    error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Entity, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// FailedEntities lists the entities named by the UpstreamFetchErrors in err.
func FailedEntities(err error) []Entity {
	switch e := err.(type) {
	case nil:
		return nil
	case *UpstreamFetchError:
		return []Entity{e.Entity}
	case interface{ Unwrap() []error }:
		var out []Entity
		for _, inner := range e.Unwrap() {
			out = append(out, FailedEntities(inner)...)
		}
		return out
	}
	var fe *UpstreamFetchError
	if errors.As(err, &fe) {
		return []Entity{fe.Entity}
	}
	return nil
}
