// Copyright (c) 2024 Neomantra Corp

package itch_test

import (
	"bytes"
	"io"

	itch "github.com/quotefeed/itch-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Framer", func() {
	It("reads a single frame and reports a clean EOF afterward", func() {
		raw := buildFrame('S', []byte{0, 0, 0, 0, 'O'})
		f := itch.NewFramer(bytes.NewReader(raw))

		Expect(f.Next()).To(BeTrue())
		msgType, payload := f.Frame()
		Expect(msgType).To(Equal(byte('S')))
		Expect(payload).To(Equal([]byte{0, 0, 0, 0, 'O'}))

		Expect(f.Next()).To(BeFalse())
		Expect(f.Error()).To(Equal(io.EOF))
	})

	It("reads consecutive frames in order", func() {
		var raw []byte
		raw = append(raw, buildFrame('S', []byte{0, 0, 0, 0, 'O'})...)
		raw = append(raw, buildFrame('S', []byte{0, 0, 0, 0, 'C'})...)
		f := itch.NewFramer(bytes.NewReader(raw))

		Expect(f.Next()).To(BeTrue())
		_, p1 := f.Frame()
		Expect(p1[4]).To(Equal(byte('O')))

		Expect(f.Next()).To(BeTrue())
		_, p2 := f.Frame()
		Expect(p2[4]).To(Equal(byte('C')))

		Expect(f.Next()).To(BeFalse())
	})

	It("reports a fatal error on a truncated mid-frame read", func() {
		raw := buildFrame('S', []byte{0, 0, 0, 0, 'O'})
		truncated := raw[:len(raw)-2]
		f := itch.NewFramer(bytes.NewReader(truncated))

		Expect(f.Next()).To(BeFalse())
		Expect(f.Error()).ToNot(BeNil())
		Expect(f.Error()).ToNot(Equal(io.EOF))
	})
})
