package halfedge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRejected is the sentinel wrapped by every operator rejection.
// A rejected operator left the mesh exactly as it found it; callers
// test with errors.Is(err, ErrRejected) and carry on.
var ErrRejected = errors.New("operation rejected")

// rejectf builds an operator rejection with a formatted reason.
func rejectf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrRejected}, args...)...)
}

// TopologyError reports input that cannot be represented as a manifold
// half-edge mesh, such as a non-manifold edge or a bowtie vertex in a
// polygon soup handed to FromPolygons.
type TopologyError struct {
	Reason string
}

func (e *TopologyError) Error() string {
	return "malformed topology: " + e.Reason
}

// InvariantError reports structural corruption found by Validate. Each
// violation is one human-readable finding; Validate collects every
// finding it can rather than stopping at the first.
type InvariantError struct {
	Violations []string
}

func (e *InvariantError) Error() string {
	switch len(e.Violations) {
	case 0:
		return "invariant violation"
	case 1:
		return "invariant violation: " + e.Violations[0]
	}
	return fmt.Sprintf("%d invariant violations:\n  %s",
		len(e.Violations), strings.Join(e.Violations, "\n  "))
}
