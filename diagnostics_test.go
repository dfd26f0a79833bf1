// Copyright (c) 2024 Neomantra Corp

package itch_test

import (
	itch "github.com/quotefeed/itch-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Diagnostics", func() {
	It("defaults to slog.Default when no logger is given", func() {
		d := itch.NewDiagnostics(nil)
		Expect(d.Logger).ToNot(BeNil())
	})

	It("is nil-safe for bump and log calls on a nil receiver", func() {
		var d *itch.Diagnostics
		reg := itch.NewOrderRegistry(d)
		_, ok := reg.ResolveExecute(itch.Execute{Refno: 1})
		Expect(ok).To(BeFalse())
	})
})
