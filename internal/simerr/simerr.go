// Package simerr defines the implementation-failure error vocabulary from
// spec.md §7. Domain occurrences (pandemics, famines, tribe deaths) are
// never errors — they are eventlog.Event values. This package only covers
// InvalidSeed, SaveCorrupt, and LogicAssertion, each a sentinel wrapped
// with errors.Is-compatible context.
//
// This is a deliberate departure from the teacher's plain fmt.Errorf
// idiom: spec.md §7 requires callers to distinguish these three kinds
// programmatically (e.g. a host deciding whether to re-seed on
// InvalidSeed vs. halting on LogicAssertion), which bare string errors
// can't support without fragile substring matching.
package simerr

import (
	"errors"
	"fmt"
)

// Sentinels identifying the three error kinds from spec.md §7.
var (
	// ErrInvalidSeed: the seed failed to produce a habitable tile within
	// the initialization budget (>= 10 tribes placed).
	ErrInvalidSeed = errors.New("world uninhabitable: seed failed to place minimum tribes")

	// ErrSaveCorrupt: loaded state failed schema or invariant checks.
	ErrSaveCorrupt = errors.New("save data failed validation")

	// ErrLogicAssertion: an invariant was violated mid-tick. These are
	// bugs, never recoverable — the policy is fail-fast.
	ErrLogicAssertion = errors.New("simulation invariant violated")
)

// wrapped pairs a sentinel with a specific message, so errors.Is still
// matches the sentinel while %v/Error() carries detail.
type wrapped struct {
	sentinel error
	detail   string
}

func (w *wrapped) Error() string { return fmt.Sprintf("%s: %s", w.sentinel, w.detail) }
func (w *wrapped) Unwrap() error { return w.sentinel }

// InvalidSeed wraps ErrInvalidSeed with a detail message.
func InvalidSeed(detail string) error { return &wrapped{sentinel: ErrInvalidSeed, detail: detail} }

// SaveCorrupt wraps ErrSaveCorrupt with a detail message.
func SaveCorrupt(detail string) error { return &wrapped{sentinel: ErrSaveCorrupt, detail: detail} }

// LogicAssertion wraps ErrLogicAssertion with a detail message.
func LogicAssertion(detail string) error {
	return &wrapped{sentinel: ErrLogicAssertion, detail: detail}
}
