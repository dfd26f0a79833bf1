// Copyright (c) 2024 Neomantra Corp
//
// Sink interfaces are the pipeline's only externally visible mutation
// points (spec §5, §6). Grounded on the teacher's Visitor/NullVisitor
// pair (visitor.go, null_visitor.go): one small interface per concern
// rather than a single do-everything visitor, since spec §6 names four
// logically distinct sinks with different event sets.

package itch

// SystemSink receives session-lifecycle and trading-state events,
// independent of any symbol subscription.
type SystemSink interface {
	OnSystemEvent(e SystemEvent) error
	OnTradingAction(e TradingAction) error
}

// MessageSink receives order-book mutating events and the informational
// Replace marker, for every subscribed symbol.
type MessageSink interface {
	OnAdd(e Add) error
	OnExecute(e Execute) error
	OnExecuteWithPrice(e ExecuteWithPrice) error
	OnCancel(e Cancel) error
	OnDelete(e Delete) error
	OnReplace(e Replace) error
}

// BookSink receives one snapshot row per mutating event per subscribed
// symbol.
type BookSink interface {
	OnSnapshot(s Snapshot) error
}

// TradeSink receives hidden (non-displayed) executions.
type TradeSink interface {
	OnTrade(e Trade) error
}

// NoiiSink receives cross trades and net order imbalance indicators.
type NoiiSink interface {
	OnCrossTrade(e CrossTrade) error
	OnNoiiIndicator(e NoiiIndicator) error
}

// Sinks bundles the five sink interfaces the Pipeline writes to. Any
// field may be nil, in which case events of that kind are dropped.
type Sinks struct {
	System  SystemSink
	Message MessageSink
	Book    BookSink
	Trade   TradeSink
	Noii    NoiiSink
}

// NullSinks implements every sink interface as a no-op. Useful as a
// starting point for a caller that only wants a subset, mirroring the
// teacher's NullVisitor (null_visitor.go).
type NullSinks struct{}

func (NullSinks) OnSystemEvent(SystemEvent) error           { return nil }
func (NullSinks) OnTradingAction(TradingAction) error       { return nil }
func (NullSinks) OnAdd(Add) error                           { return nil }
func (NullSinks) OnExecute(Execute) error                   { return nil }
func (NullSinks) OnExecuteWithPrice(ExecuteWithPrice) error { return nil }
func (NullSinks) OnCancel(Cancel) error                     { return nil }
func (NullSinks) OnDelete(Delete) error                     { return nil }
func (NullSinks) OnReplace(Replace) error                   { return nil }
func (NullSinks) OnSnapshot(Snapshot) error                  { return nil }
func (NullSinks) OnTrade(Trade) error                        { return nil }
func (NullSinks) OnCrossTrade(CrossTrade) error               { return nil }
func (NullSinks) OnNoiiIndicator(NoiiIndicator) error          { return nil }
