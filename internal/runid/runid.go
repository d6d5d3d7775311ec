// Package runid mints the identifier for a given engine run, which the
// engine records in RunDiagnostics and in its run-start and run-complete
// log lines (it is not carried by SimulationError), mirroring the
// teacher's use of github.com/google/uuid for per-device and per-token
// identifiers (cmd/remoteweather/main.go, internal/controllers/management/token.go).
package runid

import "github.com/google/uuid"

// ID is an opaque run identifier, safe to log and to embed in error
// messages.
type ID string

// New mints a fresh run identifier.
func New() ID {
	return ID(uuid.New().String())
}

func (id ID) String() string {
	return string(id)
}
