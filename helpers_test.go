// Copyright (c) 2024 Neomantra Corp

package itch_test

import (
	itch "github.com/quotefeed/itch-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Helpers", func() {
	Context("symbols", func() {
		It("trims space and NUL padding", func() {
			Expect(itch.TrimSymbol([]byte("AAPL  "))).To(Equal("AAPL"))
			Expect(itch.TrimSymbol([]byte("MSFT\x00\x00\x00\x00"))).To(Equal("MSFT"))
		})
		It("does not malform an unpadded symbol", func() {
			Expect(itch.TrimSymbol([]byte("GOOGL"))).To(Equal("GOOGL"))
		})
	})

	Context("price scaling", func() {
		It("divides by the wire price scale", func() {
			Expect(itch.PriceToFloat64(1234500)).To(Equal(123.45))
			Expect(itch.PriceToFloat64(0)).To(Equal(0.0))
		})
	})

	Context("version parsing", func() {
		It("accepts the three recognized versions", func() {
			v, err := itch.ParseVersion("4.0")
			Expect(err).To(BeNil())
			Expect(v).To(Equal(itch.Version4_0))

			v, err = itch.ParseVersion("5.0")
			Expect(err).To(BeNil())
			Expect(v).To(Equal(itch.Version5_0))
		})
		It("rejects an unrecognized version string", func() {
			_, err := itch.ParseVersion("3.9")
			Expect(err).ToNot(BeNil())
		})
	})
})
