// Copyright (c) 2024 Neomantra Corp
//
// Normalizer folds 'T' (timestamp-seconds) messages into a running
// clock, stamps sub-second events with that clock, and builds the
// unresolved Delete half of a wire Replace (the Pipeline emits the
// three-event form around it). Grounded on
// cswaney/prickle's Message.split (original_source/prickle/core.py),
// the three-event fork spec §9 identifies as canonical.

package itch

// Normalizer owns the pipeline's single running second-clock. ITCH 4.x
// advances it only via 'T' messages; ITCH 5.0 never calls Tick because
// every sub-second message already carries its own fully resolved
// timestamp (spec §3, "Clock").
type Normalizer struct {
	clock int64
}

// NewNormalizer creates a Normalizer with its clock at zero.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Tick advances the running clock from a decoded 'T' message.
func (n *Normalizer) Tick(sec int64) {
	n.clock = sec
}

// Stamp fills in an unresolved v4.x Sec field with the current clock.
// v5.0 events already carry a resolved Sec and pass through unchanged.
func (n *Normalizer) Stamp(ev Event) Event {
	sec, nano := ev.Time()
	if sec != unresolvedSec {
		return ev
	}
	return stampSec(ev, n.clock, nano)
}

// stampSec rewrites ev's baseTime with the resolved second, preserving
// every other field via a type switch (events are never mutated after
// construction, per spec §9's re-architecture note; each case builds a
// fresh value).
func stampSec(ev Event, sec, nano int64) Event {
	bt := baseTime{Sec: sec, Nano: nano}
	switch e := ev.(type) {
	case SystemEvent:
		e.baseTime = bt
		return e
	case TradingAction:
		e.baseTime = bt
		return e
	case Add:
		e.baseTime = bt
		return e
	case Execute:
		e.baseTime = bt
		return e
	case ExecuteWithPrice:
		e.baseTime = bt
		return e
	case Cancel:
		e.baseTime = bt
		return e
	case Delete:
		e.baseTime = bt
		return e
	case Replace:
		e.baseTime = bt
		return e
	case Trade:
		e.baseTime = bt
		return e
	case CrossTrade:
		e.baseTime = bt
		return e
	case NoiiIndicator:
		e.baseTime = bt
		return e
	default:
		return ev
	}
}

// SplitReplace produces the unresolved delete-half of a Replace: a
// Delete event carrying only OldRefno, awaiting OrderRegistry
// resolution exactly like any other reference-only event (spec §4.3).
func SplitReplace(r Replace) Delete {
	return Delete{baseTime: r.baseTime, Refno: r.OldRefno}
}
