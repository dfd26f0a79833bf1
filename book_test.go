// Copyright (c) 2024 Neomantra Corp

package itch_test

import (
	itch "github.com/quotefeed/itch-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Book", func() {
	It("pads an empty book with the given sentinel on both sides", func() {
		b := itch.NewBook("GOOG")
		snap := b.Snapshot(2, 0)
		Expect(snap.Bids).To(Equal([]itch.Level{{Price: 0, Shares: 0}, {Price: 0, Shares: 0}}))
		Expect(snap.Asks).To(Equal([]itch.Level{{Price: 0, Shares: 0}, {Price: 0, Shares: 0}}))
	})

	It("pads the empty side of a single-sided book", func() {
		b := itch.NewBook("GOOG")
		b.Apply(itch.SideBid, 4000000, 100, true, 1, 0)
		snap := b.Snapshot(2, -1)
		Expect(snap.Bids[0]).To(Equal(itch.Level{Price: 4000000, Shares: 100}))
		Expect(snap.Asks).To(Equal([]itch.Level{{Price: -1, Shares: -1}, {Price: -1, Shares: -1}}))
	})

	It("removes a level once its shares reach exactly zero", func() {
		b := itch.NewBook("GOOG")
		b.Apply(itch.SideBid, 4000000, 100, true, 1, 0)
		b.Apply(itch.SideBid, 4000000, -100, false, 1, 0)
		Expect(b.TotalShares()).To(Equal(int64(0)))
		snap := b.Snapshot(1, 0)
		Expect(snap.Bids[0]).To(Equal(itch.Level{Price: 0, Shares: 0}))
	})

	It("ignores a non-Add delta against a price it never saw", func() {
		b := itch.NewBook("GOOG")
		b.Apply(itch.SideBid, 4000000, -10, false, 1, 0)
		Expect(b.TotalShares()).To(Equal(int64(0)))
	})

	It("reports crossed once the best bid reaches or passes the best ask", func() {
		b := itch.NewBook("GOOG")
		b.Apply(itch.SideBid, 4000000, 100, true, 1, 0)
		b.Apply(itch.SideAsk, 4000500, 100, true, 1, 0)
		Expect(b.Crossed()).To(BeFalse())

		b.Apply(itch.SideBid, 4000600, 10, true, 1, 0)
		Expect(b.Crossed()).To(BeTrue())
	})

	It("orders snapshot bids descending and asks ascending", func() {
		b := itch.NewBook("GOOG")
		b.Apply(itch.SideBid, 4000000, 100, true, 1, 0)
		b.Apply(itch.SideBid, 4000100, 50, true, 1, 0)
		b.Apply(itch.SideAsk, 4000900, 40, true, 1, 0)
		b.Apply(itch.SideAsk, 4000800, 20, true, 1, 0)

		snap := b.Snapshot(2, 0)
		Expect(snap.Bids).To(Equal([]itch.Level{{Price: 4000100, Shares: 50}, {Price: 4000000, Shares: 100}}))
		Expect(snap.Asks).To(Equal([]itch.Level{{Price: 4000800, Shares: 20}, {Price: 4000900, Shares: 40}}))
	})
})
