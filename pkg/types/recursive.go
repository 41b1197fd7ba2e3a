package types

import (
	"fmt"
	"sync/atomic"
)

const (
	recUnresolved int32 = iota
	recResolving
	recResolved
)

// RecursiveType is a named self-referential type. The body receives the
// RecursiveType itself so it can embed the reference; it must embed, not
// expand — expansion happens lazily, one level per Resolve call.
type RecursiveType struct {
	Name string

	body     func(self Type) Type
	state    atomic.Int32
	resolved Type
}

func Recursive(name string, body func(self Type) Type) *RecursiveType {
	return &RecursiveType{Name: name, body: body}
}

// Resolve expands the body one level, memoizing the result. The body runs at
// most once per type object; the Unresolved->Resolving transition is claimed
// with a compare-and-set. Any caller arriving while the body is still running
// (a re-entrant body, or a racing goroutine) gets the unexpanded reference
// back and retries on next use rather than re-invoking the body.
func (r *RecursiveType) Resolve() Type {
	if r.state.Load() == recResolved {
		return r.resolved
	}
	if !r.state.CompareAndSwap(recUnresolved, recResolving) {
		if r.state.Load() == recResolved {
			return r.resolved
		}
		return r
	}
	r.resolved = r.body(r)
	r.state.Store(recResolved)
	return r.resolved
}

// Resolved reports whether the body has already run to completion.
func (r *RecursiveType) Resolved() bool { return r.state.Load() == recResolved }

func (r *RecursiveType) String() string { return fmt.Sprintf("rec %s", r.Name) }
