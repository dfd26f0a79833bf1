// Copyright (c) 2024 Neomantra Corp
//
// Diagnostics counts recoverable errors (spec §7) and logs them through
// log/slog, the logging facility the teacher uses throughout live/live.go.
// The pipeline never aborts on these; a caller inspects the counters (or
// reads the log) after the run.

package itch

import (
	"fmt"
	"log/slog"
)

// Diagnostics accumulates counts of recoverable feed violations. The
// pipeline is single-threaded (spec §5), so no synchronization is
// needed on the counters themselves.
type Diagnostics struct {
	Logger *slog.Logger

	DuplicateRefno int64 // Add on a refno already present
	UnknownRefno   int64 // Execute/Cancel/Delete against a refno not in the table
	OverExecution  int64 // Execute/Cancel shares exceeding the resting size
	CrossedBook    int64 // max(bids) >= min(asks) after an update
	UnknownType    int64 // a frame whose type byte this version doesn't recognize
}

// NewDiagnostics returns a Diagnostics reporting through logger, or
// through slog.Default() if logger is nil.
func NewDiagnostics(logger *slog.Logger) *Diagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Diagnostics{Logger: logger}
}

// bump is a nil-safe increment. Taking a counter's address through a nil
// *Diagnostics still panics, so NewOrderRegistry and NewBookSet swap a
// nil argument for a private, logger-less Diagnostics that discards metrics.
func (d *Diagnostics) bump(counter *int64) {
	if d == nil {
		return
	}
	*counter++
}

func (d *Diagnostics) logf(format string, args ...any) {
	if d == nil || d.Logger == nil {
		return
	}
	d.Logger.Warn(fmt.Sprintf(format, args...))
}
