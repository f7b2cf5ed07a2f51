// Package transform provides the feature transformation primitives.
//
// Every primitive is an immutable value with a single Apply operation from
// frame to frame. Apply never mutates its input: it clones the frame and
// writes derived columns into the clone. Primitives hold no cross-call state,
// so independent pipeline runs can execute concurrently without coordination.
package transform

import (
	"errors"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
)

// Transformer is a pure transformation step from frame to frame.
type Transformer interface {
	Apply(f *domain.Frame) (*domain.Frame, error)
}

// ErrColumnMissing is returned when a primitive with no soft-fail policy
// cannot find a required source column. This is a configuration error, not
// a data error, and aborts the whole run.
var ErrColumnMissing = errors.New("required column missing")
