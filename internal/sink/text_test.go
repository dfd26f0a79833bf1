// Copyright (c) 2024 Neomantra Corp

package sink_test

import (
	"bytes"
	"strings"

	itch "github.com/quotefeed/itch-go"
	"github.com/quotefeed/itch-go/internal/sink"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TextSink", func() {
	It("pads an under-depth snapshot with -1 across all four column blocks", func() {
		var buf bytes.Buffer
		s := sink.NewTextSink(&buf)

		snap := itch.Snapshot{
			Symbol: "GOOG",
			Sec:    34201,
			Nano:   0,
			Bids:   []itch.Level{{Price: 4000000, Shares: 100}, {Price: -1, Shares: -1}},
			Asks:   []itch.Level{{Price: -1, Shares: -1}, {Price: -1, Shares: -1}},
		}
		Expect(s.OnSnapshot(snap)).To(Succeed())
		Expect(s.Flush()).To(Succeed())

		line := strings.TrimRight(buf.String(), "\n")
		fields := strings.Split(line, ",")
		// sec, nano, symbol, 2 bid prices, 2 ask prices, 2 bid depths, 2 ask depths
		Expect(fields).To(HaveLen(3 + 4*2))
		Expect(fields[0]).To(Equal("34201"))
		Expect(fields[2]).To(Equal("GOOG"))
		Expect(fields[3]).To(Equal("400")) // 4000000 / 10000
		Expect(fields[4]).To(Equal("-1"))
	})
})
