// Copyright (c) 2024 Neomantra Corp
//
// Scenario coverage mirrors spec §8's six concrete numbered scenarios.

package itch_test

import (
	"bytes"
	"context"

	itch "github.com/quotefeed/itch-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Pipeline", func() {
	It("scenario 1: add-bid-only", func() {
		rec := &recorder{}
		diag := itch.NewDiagnostics(nil)
		books := itch.NewBookSet([]string{"GOOG"}, 2, 0, diag)
		sinks := itch.Sinks{Message: rec, Book: rec}

		frame := buildAddV5(34201, 0, 1, 'B', 100, "GOOG", 4000000)
		p := itch.NewPipeline(bytes.NewReader(frame), itch.Version5_0, books, diag, sinks)
		Expect(p.Run(context.Background())).To(Succeed())

		Expect(rec.Adds).To(HaveLen(1))
		Expect(rec.Snapshots).To(HaveLen(1))
		snap := rec.Snapshots[0]
		Expect(snap.Bids).To(Equal([]itch.Level{{Price: 4000000, Shares: 100}, {Price: 0, Shares: 0}}))
		Expect(snap.Asks).To(Equal([]itch.Level{{Price: 0, Shares: 0}, {Price: 0, Shares: 0}}))
		Expect(books.Book("GOOG").TotalShares()).To(Equal(int64(100)))
	})

	It("scenario 2: partial execute", func() {
		rec := &recorder{}
		diag := itch.NewDiagnostics(nil)
		books := itch.NewBookSet([]string{"GOOG"}, 2, 0, diag)
		sinks := itch.Sinks{Message: rec, Book: rec}

		frames := append(buildAddV5(34201, 0, 1, 'B', 100, "GOOG", 4000000),
			buildExecuteV5(34201, 0, 1, 30)...)
		p := itch.NewPipeline(bytes.NewReader(frames), itch.Version5_0, books, diag, sinks)
		Expect(p.Run(context.Background())).To(Succeed())

		order, ok := p.Registry().Lookup(1)
		Expect(ok).To(BeTrue())
		Expect(order.Shares).To(Equal(int64(70)))
		Expect(books.Book("GOOG").TotalShares()).To(Equal(int64(70)))

		last := rec.Snapshots[len(rec.Snapshots)-1]
		Expect(last.Bids[0]).To(Equal(itch.Level{Price: 4000000, Shares: 70}))
	})

	It("scenario 3: delete", func() {
		rec := &recorder{}
		diag := itch.NewDiagnostics(nil)
		books := itch.NewBookSet([]string{"GOOG"}, 2, 0, diag)
		sinks := itch.Sinks{Message: rec, Book: rec}

		var frames []byte
		frames = append(frames, buildAddV5(34201, 0, 1, 'B', 100, "GOOG", 4000000)...)
		frames = append(frames, buildExecuteV5(34201, 0, 1, 30)...)
		frames = append(frames, buildDeleteV5(34201, 0, 1)...)
		p := itch.NewPipeline(bytes.NewReader(frames), itch.Version5_0, books, diag, sinks)
		Expect(p.Run(context.Background())).To(Succeed())

		_, ok := p.Registry().Lookup(1)
		Expect(ok).To(BeFalse())
		Expect(books.Book("GOOG").TotalShares()).To(Equal(int64(0)))

		last := rec.Snapshots[len(rec.Snapshots)-1]
		Expect(last.Bids[0]).To(Equal(itch.Level{Price: 0, Shares: 0}))
	})

	It("scenario 4: replace splits into delete-half then add-half", func() {
		rec := &recorder{}
		diag := itch.NewDiagnostics(nil)
		books := itch.NewBookSet([]string{"GOOG"}, 2, 0, diag)
		sinks := itch.Sinks{Message: rec, Book: rec}

		var frames []byte
		frames = append(frames, buildAddV5(34201, 0, 1, 'B', 100, "GOOG", 4000000)...)
		frames = append(frames, buildReplaceV5(34201, 0, 1, 2, 50, 4010000)...)
		p := itch.NewPipeline(bytes.NewReader(frames), itch.Version5_0, books, diag, sinks)
		Expect(p.Run(context.Background())).To(Succeed())

		Expect(rec.Replaces).To(HaveLen(1))
		Expect(rec.Replaces[0].OldRefno).To(Equal(uint64(1)))
		Expect(rec.Replaces[0].NewRefno).To(Equal(uint64(2)))
		Expect(rec.Replaces[0].Symbol).To(Equal("GOOG"))
		Expect(rec.Replaces[0].Side).To(Equal(itch.SideBid))

		Expect(rec.Deletes).To(HaveLen(1))
		Expect(rec.Deletes[0].Refno).To(Equal(uint64(1)))
		Expect(rec.Deletes[0].Symbol).To(Equal("GOOG"))
		Expect(rec.Deletes[0].Side).To(Equal(itch.SideBid))

		// one Add from the original wire 'A', one synthetic Add from the replace
		Expect(rec.Adds).To(HaveLen(2))
		newAdd := rec.Adds[1]
		Expect(newAdd.Refno).To(Equal(uint64(2)))
		Expect(newAdd.Symbol).To(Equal("GOOG"))
		Expect(newAdd.Side).To(Equal(itch.SideBid))
		Expect(newAdd.Price).To(Equal(int64(4010000)))
		Expect(newAdd.Shares).To(Equal(int64(50)))

		// snapshot after delete-half: empty bids
		deleteSnap := rec.Snapshots[len(rec.Snapshots)-2]
		Expect(deleteSnap.Bids[0]).To(Equal(itch.Level{Price: 0, Shares: 0}))

		// snapshot after add-half: new level only
		addSnap := rec.Snapshots[len(rec.Snapshots)-1]
		Expect(addSnap.Bids[0]).To(Equal(itch.Level{Price: 4010000, Shares: 50}))

		_, ok := p.Registry().Lookup(1)
		Expect(ok).To(BeFalse())
		resting, ok := p.Registry().Lookup(2)
		Expect(ok).To(BeTrue())
		Expect(resting.Price).To(Equal(int64(4010000)))
		Expect(resting.Shares).To(Equal(int64(50)))
	})

	It("scenario 5: two-level aggregate snapshot ordering", func() {
		rec := &recorder{}
		diag := itch.NewDiagnostics(nil)
		books := itch.NewBookSet([]string{"GOOG"}, 2, 0, diag)
		sinks := itch.Sinks{Message: rec, Book: rec}

		var frames []byte
		frames = append(frames, buildAddV5(34201, 0, 1, 'B', 100, "GOOG", 4000000)...)
		frames = append(frames, buildAddV5(34201, 0, 2, 'B', 50, "GOOG", 4000100)...)
		p := itch.NewPipeline(bytes.NewReader(frames), itch.Version5_0, books, diag, sinks)
		Expect(p.Run(context.Background())).To(Succeed())

		last := rec.Snapshots[len(rec.Snapshots)-1]
		Expect(last.Bids).To(Equal([]itch.Level{{Price: 4000100, Shares: 50}, {Price: 4000000, Shares: 100}}))
	})

	It("scenario 6: v5.0 48-bit timestamp splits into sec/nano", func() {
		rec := &recorder{}
		diag := itch.NewDiagnostics(nil)
		books := itch.NewBookSet([]string{"GOOG"}, 2, 0, diag)
		sinks := itch.Sinks{Message: rec, Book: rec}

		frame := buildAddV5(34201, 123456789, 1, 'B', 100, "GOOG", 4000000)
		p := itch.NewPipeline(bytes.NewReader(frame), itch.Version5_0, books, diag, sinks)
		Expect(p.Run(context.Background())).To(Succeed())

		Expect(rec.Adds).To(HaveLen(1))
		sec, nano := rec.Adds[0].Time()
		Expect(sec).To(Equal(int64(34201)))
		Expect(nano).To(Equal(int64(123456789)))
	})

	It("unsubscribed symbols never enter the registry", func() {
		rec := &recorder{}
		diag := itch.NewDiagnostics(nil)
		books := itch.NewBookSet([]string{"GOOG"}, 2, 0, diag)
		sinks := itch.Sinks{Message: rec, Book: rec}

		frame := buildAddV5(34201, 0, 1, 'B', 100, "AAPL", 4000000)
		p := itch.NewPipeline(bytes.NewReader(frame), itch.Version5_0, books, diag, sinks)
		Expect(p.Run(context.Background())).To(Succeed())

		Expect(rec.Adds).To(BeEmpty())
		Expect(p.Registry().Len()).To(Equal(0))
	})

	It("drops a Replace on an unknown old refno without touching any sink", func() {
		rec := &recorder{}
		diag := itch.NewDiagnostics(nil)
		books := itch.NewBookSet([]string{"GOOG"}, 2, 0, diag)
		sinks := itch.Sinks{Message: rec, Book: rec}

		frame := buildReplaceV5(34201, 0, 1, 2, 50, 4010000)
		p := itch.NewPipeline(bytes.NewReader(frame), itch.Version5_0, books, diag, sinks)
		Expect(p.Run(context.Background())).To(Succeed())

		Expect(rec.Replaces).To(BeEmpty())
		Expect(rec.Deletes).To(BeEmpty())
		Expect(rec.Adds).To(BeEmpty())
		Expect(rec.Snapshots).To(BeEmpty())
		Expect(diag.UnknownRefno).To(Equal(int64(1)))
	})

	It("drops a Replace whose old refno belongs to an unsubscribed symbol", func() {
		rec := &recorder{}
		diag := itch.NewDiagnostics(nil)
		books := itch.NewBookSet([]string{"GOOG"}, 2, 0, diag)
		sinks := itch.Sinks{Message: rec, Book: rec}

		var frames []byte
		frames = append(frames, buildAddV5(34201, 0, 1, 'B', 100, "AAPL", 4000000)...)
		frames = append(frames, buildReplaceV5(34201, 0, 1, 2, 50, 4010000)...)
		p := itch.NewPipeline(bytes.NewReader(frames), itch.Version5_0, books, diag, sinks)
		Expect(p.Run(context.Background())).To(Succeed())

		Expect(rec.Replaces).To(BeEmpty())
		Expect(rec.Deletes).To(BeEmpty())
		Expect(rec.Adds).To(BeEmpty())
	})

	It("clamps an over-execution to a full zero-out and logs it", func() {
		rec := &recorder{}
		diag := itch.NewDiagnostics(nil)
		books := itch.NewBookSet([]string{"GOOG"}, 2, 0, diag)
		sinks := itch.Sinks{Message: rec, Book: rec}

		var frames []byte
		frames = append(frames, buildAddV5(34201, 0, 1, 'B', 100, "GOOG", 4000000)...)
		frames = append(frames, buildExecuteV5(34201, 0, 1, 500)...)
		p := itch.NewPipeline(bytes.NewReader(frames), itch.Version5_0, books, diag, sinks)
		Expect(p.Run(context.Background())).To(Succeed())

		Expect(diag.OverExecution).To(Equal(int64(1)))
		Expect(books.Book("GOOG").TotalShares()).To(Equal(int64(0)))
	})
})
