// Copyright (c) 2024 Neomantra Corp
//
// JSONLSink writes one normalized-event or book-snapshot record per
// line as compact JSON, grounded on the teacher's use of
// segmentio/encoding/json for fast marshaling (cmd/dbn-go-hist/main.go).
// Snapshot padding uses the 0 sentinel per SPEC_FULL.md §6.3.

package sink

import (
	"bufio"
	"io"

	"github.com/segmentio/encoding/json"

	itch "github.com/quotefeed/itch-go"
)

// JSONLSink is a MessageSink/SystemSink/BookSink/TradeSink/NoiiSink
// implementation that writes each event as its own JSON line.
type JSONLSink struct {
	w   *bufio.Writer
	err error
}

// NewJSONLSink wraps w in a buffered writer. Flush must be called once
// the run completes.
func NewJSONLSink(w io.Writer) *JSONLSink {
	return &JSONLSink{w: bufio.NewWriter(w)}
}

// Flush writes any buffered bytes to the underlying writer.
func (s *JSONLSink) Flush() error {
	if s.err != nil {
		return s.err
	}
	return s.w.Flush()
}

func (s *JSONLSink) writeLine(kind string, v any) error {
	if s.err != nil {
		return s.err
	}
	record := struct {
		Kind string `json:"kind"`
		Data any    `json:"data"`
	}{Kind: kind, Data: v}
	b, err := json.Marshal(record)
	if err != nil {
		s.err = err
		return err
	}
	b = append(b, '\n')
	if _, err := s.w.Write(b); err != nil {
		s.err = err
		return err
	}
	return nil
}

func (s *JSONLSink) OnSystemEvent(e itch.SystemEvent) error     { return s.writeLine("system", e) }
func (s *JSONLSink) OnTradingAction(e itch.TradingAction) error { return s.writeLine("trading_action", e) }
func (s *JSONLSink) OnAdd(e itch.Add) error                     { return s.writeLine("add", e) }
func (s *JSONLSink) OnExecute(e itch.Execute) error             { return s.writeLine("execute", e) }
func (s *JSONLSink) OnExecuteWithPrice(e itch.ExecuteWithPrice) error {
	return s.writeLine("execute_with_price", e)
}
func (s *JSONLSink) OnCancel(e itch.Cancel) error               { return s.writeLine("cancel", e) }
func (s *JSONLSink) OnDelete(e itch.Delete) error                { return s.writeLine("delete", e) }
func (s *JSONLSink) OnReplace(e itch.Replace) error              { return s.writeLine("replace", e) }
func (s *JSONLSink) OnTrade(e itch.Trade) error                  { return s.writeLine("trade", e) }
func (s *JSONLSink) OnCrossTrade(e itch.CrossTrade) error        { return s.writeLine("cross_trade", e) }
func (s *JSONLSink) OnNoiiIndicator(e itch.NoiiIndicator) error  { return s.writeLine("noii", e) }
func (s *JSONLSink) OnSnapshot(snap itch.Snapshot) error         { return s.writeLine("snapshot", snap) }
