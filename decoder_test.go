// Copyright (c) 2024 Neomantra Corp

package itch_test

import (
	itch "github.com/quotefeed/itch-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Decoder", func() {
	It("decodes a v5.0 Add and resolves its timestamp directly", func() {
		dec := itch.NewDecoder(itch.Version5_0)
		frame := buildAddV5(34201, 123456789, 7, 'B', 100, "GOOG", 4000000)
		_, payload := frameFromBuilt(frame)

		ev, tick, err := dec.Decode(payload[0], payload[1:])
		Expect(err).To(BeNil())
		Expect(tick).To(BeNil())
		add, ok := ev.(itch.Add)
		Expect(ok).To(BeTrue())
		Expect(add.Refno).To(Equal(uint64(7)))
		Expect(add.Symbol).To(Equal("GOOG"))
		sec, nano := add.Time()
		Expect(sec).To(Equal(int64(34201)))
		Expect(nano).To(Equal(int64(123456789)))
	})

	It("silently skips a type byte the version doesn't carry", func() {
		dec := itch.NewDecoder(itch.Version4_0)
		ev, tick, err := dec.Decode('P', make([]byte, 30))
		Expect(err).To(BeNil())
		Expect(tick).To(BeNil())
		Expect(ev).To(BeNil())
	})

	It("accepts hidden-trade and NOII messages from v4.1 onward", func() {
		dec := itch.NewDecoder(itch.Version4_1)
		// malformed body (too short) still proves the type byte was accepted,
		// since acceptance is checked before layout length validation
		_, _, err := dec.Decode('P', make([]byte, 8))
		Expect(err).ToNot(BeNil())
		_, _, err = dec.Decode('I', make([]byte, 8))
		Expect(err).ToNot(BeNil())
	})

	It("returns a clock tick for a v4.x timestamp-seconds message", func() {
		dec := itch.NewDecoder(itch.Version4_0)
		payload := []byte{0, 0, 0x85, 0x99} // bare 4-byte seconds field, no locate/tracking prefix; seconds = 34201
		_, tick, err := dec.Decode('T', payload)
		Expect(err).To(BeNil())
		Expect(tick).ToNot(BeNil())
		Expect(*tick).To(Equal(int64(34201)))
	})

	It("rejects a 'T' payload that isn't exactly 4 bytes", func() {
		dec := itch.NewDecoder(itch.Version4_0)
		_, _, err := dec.Decode('T', []byte{0, 0, 0, 0, 0, 0, 0x85, 0x99})
		Expect(err).ToNot(BeNil())
	})
})

// frameFromBuilt strips the 2-byte length prefix a buildFrame helper adds,
// returning the frame length and the remaining [type, payload...] bytes.
func frameFromBuilt(frame []byte) (int, []byte) {
	return len(frame) - 2, frame[2:]
}
