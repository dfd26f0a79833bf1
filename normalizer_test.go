// Copyright (c) 2024 Neomantra Corp

package itch_test

import (
	itch "github.com/quotefeed/itch-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Normalizer", func() {
	It("stamps an unresolved v4.x event with the running clock", func() {
		n := itch.NewNormalizer()
		n.Tick(34201)

		unresolved := itch.Add{Refno: 1}
		unresolved.Sec = -1
		unresolved.Nano = 500

		stamped := n.Stamp(unresolved)
		stampedAdd := stamped.(itch.Add)
		sec, nano := stampedAdd.Time()
		Expect(sec).To(Equal(int64(34201)))
		Expect(nano).To(Equal(int64(500)))
	})

	It("passes a v5.0 event through unchanged", func() {
		n := itch.NewNormalizer()
		ev := itch.SystemEvent{Code: itch.SystemStartOfMessages}
		// zero-value Sec (0) is already resolved, not the unresolvedSec sentinel
		stamped := n.Stamp(ev)
		Expect(stamped).To(Equal(ev))
	})

	It("splits a Replace into its unresolved delete-half", func() {
		r := itch.Replace{OldRefno: 1, NewRefno: 2, Shares: 50, Price: 4010000}
		d := itch.SplitReplace(r)
		Expect(d.Refno).To(Equal(uint64(1)))
	})
})
