package monitoring

import "github.com/google/uuid"

// NewRunID returns a short correlation ID for tagging every log line
// emitted during a single CLI invocation, so that a batch job invoking the
// binary many times over a tile set can tell runs apart in a shared log
// stream.
func NewRunID() string {
	id := uuid.NewString()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
