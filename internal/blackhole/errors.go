package blackhole

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction matches every error returned by New.
	ErrConstruction = errors.New("blackhole: construction failed")
	// ErrDisposed is returned by every method called after Dispose.
	ErrDisposed = errors.New("blackhole: driver disposed")
)

// ConstructionError reports which stage of New failed. The cause stays
// reachable through errors.Is, so gpu.ErrUnsupported and
// gpu.ErrResourceExhausted can be told apart by the host.
type ConstructionError struct {
	Stage string
	Err   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("blackhole: construct %s: %v", e.Stage, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }
