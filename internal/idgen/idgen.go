// Package idgen produces node identifiers.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator returns a string that is unique with overwhelming probability
type Generator func() string

// New returns a generator backed by random (version 4) UUIDs
func New() Generator {
	return uuid.NewString
}

// Sequence returns a deterministic generator yielding prefix1, prefix2, ...
// It is meant for tests and reproducible fixtures.
func Sequence(prefix string) Generator {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s%d", prefix, n.Add(1))
	}
}
