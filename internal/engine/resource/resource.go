// Package resource holds the CPU-side assets the renderer mirrors on the GPU.
//
// Every resource gets a stable ID at construction. Mutable resources also keep
// an update count that grows whenever their content changes; the renderer
// compares it to the count it last uploaded to decide whether a GPU copy is stale.
package resource

import "sync/atomic"

// ID identifies a resource for the lifetime of the process. Zero is never issued.
type ID uint64

var lastID atomic.Uint64

// NewID returns a fresh, never reused ID.
func NewID() ID {
	return ID(lastID.Add(1))
}

// Versioned is implemented by resources with an update count.
type Versioned interface {
	ID() ID
	UpdateCount() uint64
}
