// Copyright (c) 2024 Neomantra Corp
//
// BookSet maps subscribed symbols to their Book and emits a snapshot
// row for every mutating event, per spec §4.6. A Book exists for the
// entire run for every subscribed symbol (spec §3) and is created
// eagerly at construction rather than lazily on first touch.

package itch

// BookSet owns one Book per subscribed symbol plus the most recently
// observed TradingAction state for that symbol (SPEC_FULL.md §9's
// supplemented read access to trading state).
type BookSet struct {
	levels    int
	sentinel  int64
	books     map[string]*Book
	states    map[string]TradingState
	diag      *Diagnostics
}

// NewBookSet creates a Book for each symbol in symbols. sentinel is the
// pad value used by Snapshot (0 for numeric sinks, -1 for text sinks).
func NewBookSet(symbols []string, levels int, sentinel int64, diag *Diagnostics) *BookSet {
	if diag == nil {
		diag = &Diagnostics{} // private, logger-less: counts and logs go nowhere
	}
	bs := &BookSet{
		levels:   levels,
		sentinel: sentinel,
		books:    make(map[string]*Book, len(symbols)),
		states:   make(map[string]TradingState, len(symbols)),
		diag:     diag,
	}
	for _, s := range symbols {
		bs.books[s] = NewBook(s)
	}
	return bs
}

// Subscribed reports whether symbol has a book (i.e. is in the
// subscription set).
func (bs *BookSet) Subscribed(symbol string) bool {
	_, ok := bs.books[symbol]
	return ok
}

// Book returns the Book for symbol, or nil if unsubscribed.
func (bs *BookSet) Book(symbol string) *Book {
	return bs.books[symbol]
}

// TradingState returns the last observed trading state for symbol.
func (bs *BookSet) TradingState(symbol string) TradingState {
	return bs.states[symbol]
}

// NoteTradingAction records a TradingAction's state for later query via
// TradingState. It does not touch any Book.
func (bs *BookSet) NoteTradingAction(a TradingAction) {
	if !bs.Subscribed(a.Symbol) {
		return
	}
	bs.states[a.Symbol] = a.State
}

// Apply routes a resolved event's delta to the correct Book and returns
// a fresh snapshot. ok is false when symbol is unsubscribed, in which
// case neither the Book nor the sinks are touched (spec §3, §4.6).
func (bs *BookSet) Apply(symbol string, side Side, price, shares int64, isAdd bool, sec, nano int64) (Snapshot, bool) {
	book, ok := bs.books[symbol]
	if !ok {
		return Snapshot{}, false
	}
	book.Apply(side, price, shares, isAdd, sec, nano)
	if book.Crossed() {
		bs.diag.bump(&bs.diag.CrossedBook)
		bs.diag.logf("crossed book for %s: bestBid=%d bestAsk=%d", symbol, book.bestBid(), book.bestAsk())
	}
	return book.Snapshot(bs.levels, bs.sentinel), true
}
