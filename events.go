// Copyright (c) 2024 Neomantra Corp
//
// Event is a tagged variant over the normalized market events the
// pipeline produces. Adapted from the teacher's per-RType record structs
// (structs.go in the teacher repo) but collapsed into a single interface
// with one concrete struct per case, matched exhaustively by callers via
// a type switch, per spec's re-architecture note (§9): dynamic dispatch
// on a wire type byte becomes a tagged variant, not a mutable record.

package itch

// EventKind discriminates the concrete type behind an Event.
type EventKind uint8

const (
	KindSystemEvent EventKind = iota
	KindTradingAction
	KindAdd
	KindExecute
	KindExecuteWithPrice
	KindCancel
	KindDelete
	KindReplace
	KindTrade
	KindCrossTrade
	KindNoiiIndicator
)

// Event is implemented by every concrete event type below.
type Event interface {
	Kind() EventKind
	Time() (sec, nano int64)
}

type baseTime struct {
	Sec  int64
	Nano int64
}

func (b baseTime) Time() (sec, nano int64) { return b.Sec, b.Nano }

// SystemEvent reports a session-lifecycle code (spec §4.7).
type SystemEvent struct {
	baseTime
	Code SystemEventCode
}

func (SystemEvent) Kind() EventKind { return KindSystemEvent }

// TradingAction reports a per-symbol trading-state transition.
type TradingAction struct {
	baseTime
	Symbol string
	State  TradingState
}

func (TradingAction) Kind() EventKind { return KindTradingAction }

// Add represents a new resting order entering the book.
type Add struct {
	baseTime
	Refno  uint64
	Side   Side
	Shares int64
	Symbol string
	Price  int64
	MPID   string // empty unless the wire message was an 'F'
}

func (Add) Kind() EventKind { return KindAdd }

// Execute represents a (partial) fill against a resting order.
// Symbol/Side/Price are filled in by the OrderRegistry; Shares is
// negative (a downstream delta) once resolved.
type Execute struct {
	baseTime
	Refno          uint64
	SharesExecuted int64
	Symbol         string
	Side           Side
	Price          int64
}

func (Execute) Kind() EventKind { return KindExecute }

// ExecuteWithPrice is an Execute whose fill price differs from the
// resting order's display price (broken/non-printable executions use
// this wire type so downstream consumers see the real traded price).
type ExecuteWithPrice struct {
	baseTime
	Refno          uint64
	SharesExecuted int64
	Price          int64
	Symbol         string
	Side           Side
}

func (ExecuteWithPrice) Kind() EventKind { return KindExecuteWithPrice }

// Cancel represents a partial cancellation of a resting order's size.
type Cancel struct {
	baseTime
	Refno            uint64
	SharesCancelled  int64
	Symbol           string
	Side             Side
	Price            int64
}

func (Cancel) Kind() EventKind { return KindCancel }

// Delete represents full withdrawal of a resting order.
type Delete struct {
	baseTime
	Refno  uint64
	Symbol string
	Side   Side
	Price  int64
	Shares int64 // negative: the full resting size being withdrawn
}

func (Delete) Kind() EventKind { return KindDelete }

// Replace is the informational marker emitted before the synthetic
// (Delete, Add) pair a 'U' message decomposes into (spec §4.3).
type Replace struct {
	baseTime
	OldRefno uint64
	NewRefno uint64
	Shares   int64
	Price    int64
	Symbol   string
	Side     Side
}

func (Replace) Kind() EventKind { return KindReplace }

// Trade is a hidden (non-displayed) execution that never touched a
// resting order the book knows about.
type Trade struct {
	baseTime
	Refno  uint64
	Side   Side
	Shares int64
	Symbol string
	Price  int64
}

func (Trade) Kind() EventKind { return KindTrade }

// CrossTrade is an auction-style match at a single clearing price.
type CrossTrade struct {
	baseTime
	Symbol    string
	Shares    int64
	Price     int64
	CrossType CrossType
}

func (CrossTrade) Kind() EventKind { return KindCrossTrade }

// NoiiIndicator is NASDAQ's Net Order Imbalance Indicator, emitted
// around crosses. Paired/Imbalance are unscaled share counts;
// Far/Near/Current are ×10000 scaled.
type NoiiIndicator struct {
	baseTime
	Symbol    string
	Paired    int64
	Imbalance int64
	Direction ImbalanceDirection
	Far       int64
	Near      int64
	Current   int64
	CrossType CrossType
}

func (NoiiIndicator) Kind() EventKind { return KindNoiiIndicator }

// RestingOrder is the OrderRegistry's record of a live limit order.
type RestingOrder struct {
	Symbol string
	Side   Side
	Price  int64
	Shares int64
}
