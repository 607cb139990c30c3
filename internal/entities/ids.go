// Package entities holds the data model for tribes, countries, cities, and
// their leaders (spec.md §3), plus the id allocator and territory index
// shared by every component that mutates them.
package entities

import "fmt"

// ID is a monotonic entity identifier. spec.md §9 notes the source
// sometimes keys ids off Date.now(), which isn't reproducible; here ids
// come only from an IDAllocator, created with each Simulation and counting
// up from 1.
type ID uint64

// IDAllocator hands out strictly increasing, never-reused ids.
type IDAllocator struct {
	next uint64
}

// NewIDAllocator starts allocation at 1 (0 is reserved as "no id").
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

// Next returns the next id and advances the allocator.
func (a *IDAllocator) Next() ID {
	id := ID(a.next)
	a.next++
	return id
}

// TribeName renders a stable display id, e.g. "tribe_1" (spec.md §8
// scenario 1 requires ids of exactly this shape for the first N tribes).
func TribeName(id ID) string {
	return fmt.Sprintf("tribe_%d", id)
}
