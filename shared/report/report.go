// Package report collects the recoverable problems of one import pass.
// Nothing recorded here stops the pass; the offending shape is dropped and
// the rest of the map still produces geometry.
package report

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Entry locates one problem.
type Entry struct {
	MapPath  string
	Layer    string
	TileID   uint32 // global tile index, 0 when the problem is on an object
	ObjectID uint32
	Err      error
}

func (e Entry) Error() string {
	var b strings.Builder
	b.WriteString(e.MapPath)
	if e.Layer != "" {
		fmt.Fprintf(&b, " layer %q", e.Layer)
	}
	if e.TileID != 0 {
		fmt.Fprintf(&b, " tile %d", e.TileID)
	}
	if e.ObjectID != 0 {
		fmt.Fprintf(&b, " object %d", e.ObjectID)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e Entry) Unwrap() error { return e.Err }

// Report is safe for concurrent use.
type Report struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Report) Add(e Entry) {
	r.mu.Lock()
	r.entries = append(r.entries, e)
	r.mu.Unlock()
}

// Entries returns a copy of everything recorded so far.
func (r *Report) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Report) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Report) HasErrors() bool {
	return r.Len() > 0
}

// Count returns how many entries match target with errors.Is.
func (r *Report) Count(target error) int {
	n := 0
	for _, e := range r.Entries() {
		if errors.Is(e, target) {
			n++
		}
	}
	return n
}

// Err joins every entry into one error, or returns nil.
func (r *Report) Err() error {
	entries := r.Entries()
	if len(entries) == 0 {
		return nil
	}
	errs := make([]error, len(entries))
	for i, e := range entries {
		errs[i] = e
	}
	return errors.Join(errs...)
}
