// Copyright (c) 2024 Neomantra Corp
//
// Pipeline drives one octet source end to end: Framer -> Decoder ->
// Normalizer -> OrderRegistry -> BookSet -> Sinks. It owns every piece
// of mutable state for the run and is not safe for concurrent use from
// more than one goroutine (spec §5). Grounded on the teacher's
// DbnScanner.Visit drive loop (dbn_scanner.go), generalized from a
// single dispatch switch into the multi-stage resolve-then-mutate
// sequence spec §4.3/§4.4 requires for Execute/Cancel/Delete/Replace.

package itch

import (
	"context"
	"io"
)

// Pipeline is the single-stream decode-and-book driver.
type Pipeline struct {
	framer *Framer
	dec    *Decoder
	norm   *Normalizer
	reg    *OrderRegistry
	books  *BookSet
	sinks  Sinks
	diag   *Diagnostics

	lastWasEndOfMessages bool
}

// NewPipeline wires the five stages together. sinks fields left nil are
// dropped silently (NullSinks provides explicit no-ops where preferred).
func NewPipeline(r io.Reader, version Version, books *BookSet, diag *Diagnostics, sinks Sinks) *Pipeline {
	if diag == nil {
		diag = NewDiagnostics(nil)
	}
	return &Pipeline{
		framer: NewFramer(r),
		dec:    NewDecoder(version),
		norm:   NewNormalizer(),
		reg:    NewOrderRegistry(diag),
		books:  books,
		sinks:  sinks,
		diag:   diag,
	}
}

// Registry exposes the live OrderRegistry, chiefly for tests asserting
// the share-conservation invariant (spec §8).
func (p *Pipeline) Registry() *OrderRegistry { return p.reg }

// Books exposes the live BookSet.
func (p *Pipeline) Books() *BookSet { return p.books }

// Diagnostics exposes the run's recoverable-error counters.
func (p *Pipeline) Diagnostics() *Diagnostics { return p.diag }

// Step advances the pipeline by exactly one wire frame. It returns
// (false, nil) at clean end-of-stream, (false, err) on a fatal framing
// or decode error, and (true, nil) after successfully processing a
// frame (which may have produced zero or more sink calls: an unknown or
// version-inappropriate type byte, or a bare 'T' timestamp, advances
// the stream without touching any sink).
func (p *Pipeline) Step() (bool, error) {
	if !p.framer.Next() {
		if err := p.framer.Error(); err != nil && err != io.EOF {
			return false, err
		}
		return false, nil
	}
	msgType, payload := p.framer.Frame()
	ev, tick, err := p.dec.Decode(msgType, payload)
	if err != nil {
		return false, err
	}
	if tick != nil {
		p.norm.Tick(*tick)
		return true, nil
	}
	if ev == nil {
		p.diag.bump(&p.diag.UnknownType)
		return true, nil
	}
	ev = p.norm.Stamp(ev)
	if err := p.dispatch(ev); err != nil {
		return false, err
	}
	return true, nil
}

// Run drives the pipeline to completion: end-of-stream, a fatal error,
// ctx cancellation, or a SystemEndOfMessages code (spec §4.7). A
// SystemEndOfMarket code is passed to the SystemSink like any other
// code and does not stop the run — trailing NOII/administrative traffic is common after market
// close and before the feed's final end-of-messages marker.
func (p *Pipeline) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		more, err := p.Step()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if p.lastWasEndOfMessages {
			return nil
		}
	}
}

// DispatchEvent feeds an already-decoded Event straight into the
// registry/book/sink stages, bypassing the Framer/Decoder entirely.
// It exists for sources that hand over pre-decoded events rather than
// raw wire octets, such as a JSONL capture replayed through
// internal/source's JSONScanner (grounded on the teacher's
// JsonScanner.Visit, which likewise skips straight to dispatch once a
// record is parsed). Callers are responsible for clock/replace
// normalization upstream if their source requires it; events produced
// by internal/sink's JSONLSink are always fully resolved already.
func (p *Pipeline) DispatchEvent(ev Event) error {
	return p.dispatch(ev)
}

func (p *Pipeline) dispatch(ev Event) error {
	switch e := ev.(type) {
	case SystemEvent:
		if e.Code == SystemEndOfMessages {
			p.lastWasEndOfMessages = true
		}
		if p.sinks.System != nil {
			return p.sinks.System.OnSystemEvent(e)
		}
		return nil

	case TradingAction:
		p.books.NoteTradingAction(e)
		if p.sinks.System != nil {
			return p.sinks.System.OnTradingAction(e)
		}
		return nil

	case Add:
		return p.dispatchAdd(e)

	case Execute:
		return p.dispatchExecute(e)

	case ExecuteWithPrice:
		return p.dispatchExecuteWithPrice(e)

	case Cancel:
		return p.dispatchCancel(e)

	case Delete:
		return p.dispatchDelete(e)

	case Replace:
		return p.dispatchReplace(e)

	case Trade:
		if p.sinks.Trade != nil {
			return p.sinks.Trade.OnTrade(e)
		}
		return nil

	case CrossTrade:
		if p.sinks.Noii != nil {
			return p.sinks.Noii.OnCrossTrade(e)
		}
		return nil

	case NoiiIndicator:
		if p.sinks.Noii != nil {
			return p.sinks.Noii.OnNoiiIndicator(e)
		}
		return nil

	default:
		return nil
	}
}

// dispatchAdd registers a new resting order and folds it into the book,
// provided the symbol is subscribed (spec §3, §4.6: unsubscribed Adds
// never enter the registry, so a later Execute/Cancel/Delete against
// that refno is correctly reported as unknown rather than leaking
// cross-symbol state).
func (p *Pipeline) dispatchAdd(e Add) error {
	if !p.books.Subscribed(e.Symbol) {
		return nil
	}
	p.reg.Add(e.Refno, RestingOrder{Symbol: e.Symbol, Side: e.Side, Price: e.Price, Shares: e.Shares})
	snap, _ := p.books.Apply(e.Symbol, e.Side, e.Price, e.Shares, true, e.Sec, e.Nano)
	if p.sinks.Message != nil {
		if err := p.sinks.Message.OnAdd(e); err != nil {
			return err
		}
	}
	return p.emitSnapshot(snap)
}

func (p *Pipeline) dispatchExecute(e Execute) error {
	resolved, ok := p.reg.ResolveExecute(e)
	if !ok {
		return nil
	}
	p.reg.ApplyDecrement(e.Refno, resolved.SharesExecuted)
	snap, _ := p.books.Apply(resolved.Symbol, resolved.Side, resolved.Price, resolved.SharesExecuted, false, resolved.Sec, resolved.Nano)
	if p.sinks.Message != nil {
		if err := p.sinks.Message.OnExecute(resolved); err != nil {
			return err
		}
	}
	return p.emitSnapshot(snap)
}

func (p *Pipeline) dispatchExecuteWithPrice(e ExecuteWithPrice) error {
	resolved, ok := p.reg.ResolveExecuteWithPrice(e)
	if !ok {
		return nil
	}
	// the book level is the resting order's display price, not the traded price
	resting, _ := p.reg.Lookup(e.Refno)
	p.reg.ApplyDecrement(e.Refno, resolved.SharesExecuted)
	snap, _ := p.books.Apply(resolved.Symbol, resolved.Side, resting.Price, resolved.SharesExecuted, false, resolved.Sec, resolved.Nano)
	if p.sinks.Message != nil {
		if err := p.sinks.Message.OnExecuteWithPrice(resolved); err != nil {
			return err
		}
	}
	return p.emitSnapshot(snap)
}

func (p *Pipeline) dispatchCancel(e Cancel) error {
	resolved, ok := p.reg.ResolveCancel(e)
	if !ok {
		return nil
	}
	p.reg.ApplyDecrement(e.Refno, resolved.SharesCancelled)
	snap, _ := p.books.Apply(resolved.Symbol, resolved.Side, resolved.Price, resolved.SharesCancelled, false, resolved.Sec, resolved.Nano)
	if p.sinks.Message != nil {
		if err := p.sinks.Message.OnCancel(resolved); err != nil {
			return err
		}
	}
	return p.emitSnapshot(snap)
}

func (p *Pipeline) dispatchDelete(e Delete) error {
	resolved, ok := p.reg.ResolveDelete(e)
	if !ok {
		return nil
	}
	p.reg.ApplyDelete(e.Refno)
	snap, _ := p.books.Apply(resolved.Symbol, resolved.Side, resolved.Price, resolved.Shares, false, resolved.Sec, resolved.Nano)
	if p.sinks.Message != nil {
		if err := p.sinks.Message.OnDelete(resolved); err != nil {
			return err
		}
	}
	return p.emitSnapshot(snap)
}

// dispatchReplace implements spec §4.3's canonical three-event
// decomposition: resolve and gate on the old refno exactly as a Delete
// would (unsubscribed-symbol and unknown-refno events are dropped
// silently before touching any sink, matching every sibling dispatch*
// method), then emit the informational Replace marker carrying the
// resolved Symbol/Side, then apply the old refno's full withdrawal,
// then construct and apply the new refno's Add directly from the
// just-resolved Delete's Symbol/Side — no second registry lookup is
// needed, since ResolveDelete reads the table before ApplyDelete
// mutates it (original_source prickle.Orderlist.complete_message/update
// ordering, carried through the Pipeline rather than the registry).
func (p *Pipeline) dispatchReplace(e Replace) error {
	oldDelete := SplitReplace(e)
	resolvedDelete, ok := p.reg.ResolveDelete(oldDelete)
	if !ok {
		return nil
	}

	e.Symbol = resolvedDelete.Symbol
	e.Side = resolvedDelete.Side
	if p.sinks.Message != nil {
		if err := p.sinks.Message.OnReplace(e); err != nil {
			return err
		}
	}

	p.reg.ApplyDelete(e.OldRefno)
	deleteSnap, _ := p.books.Apply(resolvedDelete.Symbol, resolvedDelete.Side, resolvedDelete.Price, resolvedDelete.Shares, false, e.Sec, e.Nano)
	if p.sinks.Message != nil {
		if err := p.sinks.Message.OnDelete(resolvedDelete); err != nil {
			return err
		}
	}
	if err := p.emitSnapshot(deleteSnap); err != nil {
		return err
	}

	newAdd := Add{
		baseTime: e.baseTime,
		Refno:    e.NewRefno,
		Side:     resolvedDelete.Side,
		Shares:   e.Shares,
		Symbol:   resolvedDelete.Symbol,
		Price:    e.Price,
	}
	p.reg.Add(newAdd.Refno, RestingOrder{Symbol: newAdd.Symbol, Side: newAdd.Side, Price: newAdd.Price, Shares: newAdd.Shares})
	addSnap, _ := p.books.Apply(newAdd.Symbol, newAdd.Side, newAdd.Price, newAdd.Shares, true, newAdd.Sec, newAdd.Nano)
	if p.sinks.Message != nil {
		if err := p.sinks.Message.OnAdd(newAdd); err != nil {
			return err
		}
	}
	return p.emitSnapshot(addSnap)
}

func (p *Pipeline) emitSnapshot(snap Snapshot) error {
	if p.sinks.Book == nil || snap.Symbol == "" {
		return nil
	}
	return p.sinks.Book.OnSnapshot(snap)
}
