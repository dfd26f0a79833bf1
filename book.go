// Copyright (c) 2024 Neomantra Corp
//
// Book is a per-symbol, two-sided, price-indexed aggregate-depth
// ladder. Grounded on cswaney/prickle's Book class
// (original_source/prickle/core.go): plain maps plus a sort-on-snapshot
// extraction, which spec §4.5 explicitly sanctions ("an equivalent
// implementation using an ordered map or indexed max/min heap is
// acceptable provided the produced row is identical").

package itch

import "sort"

// Level is one row of a snapshot: a price and its aggregate shares.
type Level struct {
	Price  int64
	Shares int64
}

// Book holds the resting aggregate depth for a single symbol.
type Book struct {
	Symbol string
	bids   map[int64]int64
	asks   map[int64]int64
	sec    int64
	nano   int64
}

// NewBook creates an empty book for symbol.
func NewBook(symbol string) *Book {
	return &Book{
		Symbol: symbol,
		bids:   make(map[int64]int64),
		asks:   make(map[int64]int64),
		sec:    -1,
		nano:   -1,
	}
}

// Apply folds a resolved event's (side, price, shares) delta into the
// book, stamping the event's timestamp. A first-touch Add at a new
// price inserts the level; any other event against a price not
// currently in the book is a no-op (spec §4.5: the order was never
// reflected in this book, e.g. an out-of-window start-up).
func (b *Book) Apply(side Side, price, shares int64, isAdd bool, sec, nano int64) {
	b.sec, b.nano = sec, nano
	levels := b.bids
	if side == SideAsk {
		levels = b.asks
	}
	current, present := levels[price]
	if !present {
		if !isAdd {
			return
		}
		levels[price] = shares
		return
	}
	updated := current + shares
	if updated == 0 {
		delete(levels, price)
		return
	}
	levels[price] = updated
}

// Crossed reports whether the book's best bid is at or above its best
// ask, a feed invariant violation logged but never rejected (spec §7, §8).
func (b *Book) Crossed() bool {
	if len(b.bids) == 0 || len(b.asks) == 0 {
		return false
	}
	return b.bestBid() >= b.bestAsk()
}

func (b *Book) bestBid() int64 {
	best := int64(-1)
	first := true
	for p := range b.bids {
		if first || p > best {
			best, first = p, false
		}
	}
	return best
}

func (b *Book) bestAsk() int64 {
	var best int64
	first := true
	for p := range b.asks {
		if first || p < best {
			best, first = p, false
		}
	}
	return best
}

// TotalShares sums every resting level on both sides, used by tests to
// verify the registry/book share-conservation invariant (spec §8).
func (b *Book) TotalShares() int64 {
	var total int64
	for _, s := range b.bids {
		total += s
	}
	for _, s := range b.asks {
		total += s
	}
	return total
}

// Snapshot flattens the book into exactly `levels` rows per side: bids
// strictly descending, asks strictly ascending, padded with (price,
// shares) = sentinel past the book's actual depth. Numeric sinks pad
// with 0; human-readable text sinks pad with -1 (spec §3's "0 or −1
// depending on sink convention", frozen per SPEC_FULL.md §4.3-4.6).
type Snapshot struct {
	Symbol string
	Sec    int64
	Nano   int64
	Bids   []Level
	Asks   []Level
}

func (b *Book) Snapshot(levels int, sentinel int64) Snapshot {
	return Snapshot{
		Symbol: b.Symbol,
		Sec:    b.sec,
		Nano:   b.nano,
		Bids:   sortedLevels(b.bids, levels, sentinel, true),
		Asks:   sortedLevels(b.asks, levels, sentinel, false),
	}
}

func sortedLevels(m map[int64]int64, n int, sentinel int64, descending bool) []Level {
	prices := make([]int64, 0, len(m))
	for p := range m {
		prices = append(prices, p)
	}
	if descending {
		sort.Slice(prices, func(i, j int) bool { return prices[i] > prices[j] })
	} else {
		sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })
	}
	out := make([]Level, n)
	for i := 0; i < n; i++ {
		if i < len(prices) {
			out[i] = Level{Price: prices[i], Shares: m[prices[i]]}
		} else {
			out[i] = Level{Price: sentinel, Shares: sentinel}
		}
	}
	return out
}
