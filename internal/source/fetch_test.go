// Copyright (c) 2024 Neomantra Corp

package source_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/quotefeed/itch-go/internal/source"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Fetch", func() {
	It("returns the response body on a 200", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("capture-bytes"))
		}))
		defer srv.Close()

		body, err := source.Fetch(context.Background(), srv.URL, source.FetchOptions{RetryMax: 1})
		Expect(err).To(BeNil())
		defer body.Close()

		got, err := io.ReadAll(body)
		Expect(err).To(BeNil())
		Expect(string(got)).To(Equal("capture-bytes"))
	})

	It("returns an error on a non-200 status", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := source.Fetch(context.Background(), srv.URL, source.FetchOptions{RetryMax: 1})
		Expect(err).ToNot(BeNil())
	})
})
