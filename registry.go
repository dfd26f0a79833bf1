// Copyright (c) 2024 Neomantra Corp
//
// OrderRegistry closes the information gap between reference-number-only
// wire events and the price/side-indexed book: it is the hinge
// component spec §4.4 calls out as the core of the whole pipeline.
// Grounded on cswaney/prickle's Orderlist (original_source/prickle/core.go):
// complete_message (here, Resolve*) reads a still-present resting order
// to fill in missing fields; update/add (here, Apply*/Add) mutate the
// table afterward, in the exact order spec §4.3 requires.

package itch

// OrderRegistry is a keyed table of resting orders, indexed by wire
// reference number. It is owned exclusively by the Pipeline (spec §5);
// nothing else may mutate it concurrently.
type OrderRegistry struct {
	orders map[uint64]RestingOrder
	diag   *Diagnostics
}

// NewOrderRegistry creates an empty registry reporting recoverable
// errors to diag (diag may be nil to discard them).
func NewOrderRegistry(diag *Diagnostics) *OrderRegistry {
	if diag == nil {
		diag = &Diagnostics{} // private, logger-less: counts and logs go nowhere
	}
	return &OrderRegistry{
		orders: make(map[uint64]RestingOrder),
		diag:   diag,
	}
}

// Len reports the number of live resting orders, chiefly useful for the
// sum-of-shares invariant in tests (spec §8).
func (r *OrderRegistry) Len() int {
	return len(r.orders)
}

// Lookup returns the resting order for refno, if any.
func (r *OrderRegistry) Lookup(refno uint64) (RestingOrder, bool) {
	o, ok := r.orders[refno]
	return o, ok
}

// Add inserts a new resting order under refno. A duplicate refno is a
// feed violation: it is logged and the table is overwritten rather than
// aborting the run (spec §7, recoverable).
func (r *OrderRegistry) Add(refno uint64, o RestingOrder) {
	if _, exists := r.orders[refno]; exists {
		r.diag.bump(&r.diag.DuplicateRefno)
		r.diag.logf("duplicate refno on add: refno=%d symbol=%s overwriting prior order", refno, o.Symbol)
	}
	r.orders[refno] = o
}

// ResolveExecute fills in Symbol/Side/Price for an Execute from the
// resting order under its refno and negates the share count into a
// downstream delta. A share count exceeding the resting size is clamped
// to a full zero-out, logged as a feed violation (spec §8 boundary
// behavior). ok is false for an unknown refno, which callers must drop
// silently (spec §4.4, §7).
func (r *OrderRegistry) ResolveExecute(e Execute) (Execute, bool) {
	o, ok := r.orders[e.Refno]
	if !ok {
		r.diag.bump(&r.diag.UnknownRefno)
		return e, false
	}
	shares := clampShares(e.SharesExecuted, o.Shares, r.diag)
	e.Symbol, e.Side, e.Price = o.Symbol, o.Side, o.Price
	e.SharesExecuted = -shares
	return e, true
}

// ResolveExecuteWithPrice mirrors ResolveExecute but keeps the event's
// own wire price (the traded price may differ from the order's display
// price) rather than the resting order's.
func (r *OrderRegistry) ResolveExecuteWithPrice(e ExecuteWithPrice) (ExecuteWithPrice, bool) {
	o, ok := r.orders[e.Refno]
	if !ok {
		r.diag.bump(&r.diag.UnknownRefno)
		return e, false
	}
	shares := clampShares(e.SharesExecuted, o.Shares, r.diag)
	e.Symbol, e.Side = o.Symbol, o.Side
	e.SharesExecuted = -shares
	return e, true
}

// ResolveCancel mirrors ResolveExecute for partial cancellations.
func (r *OrderRegistry) ResolveCancel(c Cancel) (Cancel, bool) {
	o, ok := r.orders[c.Refno]
	if !ok {
		r.diag.bump(&r.diag.UnknownRefno)
		return c, false
	}
	shares := clampShares(c.SharesCancelled, o.Shares, r.diag)
	c.Symbol, c.Side, c.Price = o.Symbol, o.Side, o.Price
	c.SharesCancelled = -shares
	return c, true
}

// ResolveDelete fills in Symbol/Side/Price for a full withdrawal and
// sets Shares to the negative of the entire resting size.
func (r *OrderRegistry) ResolveDelete(d Delete) (Delete, bool) {
	o, ok := r.orders[d.Refno]
	if !ok {
		r.diag.bump(&r.diag.UnknownRefno)
		return d, false
	}
	d.Symbol, d.Side, d.Price = o.Symbol, o.Side, o.Price
	d.Shares = -o.Shares
	return d, true
}

// ApplyDecrement decrements the resting order's shares by the absolute
// value of delta (a negative downstream delta from Resolve*) and
// removes the entry once it reaches zero.
func (r *OrderRegistry) ApplyDecrement(refno uint64, delta int64) {
	o, ok := r.orders[refno]
	if !ok {
		return
	}
	o.Shares += delta // delta is already <= 0
	if o.Shares <= 0 {
		delete(r.orders, refno)
		return
	}
	r.orders[refno] = o
}

// ApplyDelete removes refno unconditionally.
func (r *OrderRegistry) ApplyDelete(refno uint64) {
	delete(r.orders, refno)
}

// clampShares bounds requested against resting, logging a feed
// violation when the feed asked to remove more than was resting.
func clampShares(requested, resting int64, diag *Diagnostics) int64 {
	if requested > resting {
		diag.bump(&diag.OverExecution)
		diag.logf("execute/cancel shares %d exceed resting %d, clamping to zero-out", requested, resting)
		return resting
	}
	return requested
}
