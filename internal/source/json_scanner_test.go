// Copyright (c) 2024 Neomantra Corp

package source_test

import (
	"strings"

	itch "github.com/quotefeed/itch-go"
	"github.com/quotefeed/itch-go/internal/source"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("JSONScanner", func() {
	It("decodes an add line back into an itch.Add", func() {
		line := `{"kind":"add","data":{"Sec":34200,"Nano":500,"Refno":7,"Side":66,"Shares":100,"Symbol":"GOOG","Price":1000000,"MPID":""}}`
		scanner := source.NewJSONScanner(strings.NewReader(line))
		Expect(scanner.Next()).To(BeTrue())

		ev, err := scanner.Decode()
		Expect(err).To(BeNil())
		add, ok := ev.(itch.Add)
		Expect(ok).To(BeTrue())
		Expect(add.Refno).To(BeEquivalentTo(7))
		Expect(add.Symbol).To(Equal("GOOG"))
		Expect(add.Side).To(Equal(itch.SideBid))
		sec, nano := add.Time()
		Expect(sec).To(BeEquivalentTo(34200))
		Expect(nano).To(BeEquivalentTo(500))

		Expect(scanner.Next()).To(BeFalse())
		Expect(scanner.Error()).To(BeNil())
	})

	It("errors on an unrecognized kind", func() {
		scanner := source.NewJSONScanner(strings.NewReader(`{"kind":"bogus","data":{}}`))
		Expect(scanner.Next()).To(BeTrue())
		_, err := scanner.Decode()
		Expect(err).ToNot(BeNil())
	})
})
