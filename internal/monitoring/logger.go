// Package monitoring provides the package-level diagnostic logger shared by
// the glidepath pipeline stages and CLI tools, plus a per-run correlation ID
// so a batch job invoking the binary many times over a tile set can still
// tell runs apart in a shared log stream.
package monitoring

import (
	"log"
	"sync"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but
// may be replaced by SetLogger. Tests or production code can redirect or
// mute it. Call through Tagf rather than Logf directly for anything emitted
// during a pipeline run, so the active run ID is carried along automatically.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

var (
	runIDMu sync.RWMutex
	runID   string
)

// SetRunID records the correlation ID that Tagf prefixes onto every log line
// until the next call. Pipeline entry points call this once per invocation,
// immediately after minting a run ID with NewRunID.
func SetRunID(id string) {
	runIDMu.Lock()
	runID = id
	runIDMu.Unlock()
}

// CurrentRunID returns the run ID set by the most recent call to SetRunID,
// or "" if none has been set.
func CurrentRunID() string {
	runIDMu.RLock()
	defer runIDMu.RUnlock()
	return runID
}

// Tagf logs through Logf with the active run ID prefixed in brackets, e.g.
// "[a1b2c3d4] propagating safe altitudes". If no run ID has been set, it
// logs the line unprefixed rather than printing an empty tag.
func Tagf(format string, v ...interface{}) {
	id := CurrentRunID()
	if id == "" {
		Logf(format, v...)
		return
	}
	args := make([]interface{}, 0, len(v)+1)
	args = append(args, id)
	args = append(args, v...)
	Logf("[%s] "+format, args...)
}
