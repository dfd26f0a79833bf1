// Copyright (c) 2024 Neomantra Corp
//
// TextSink writes comma-separated human-readable lines, matching the
// column order of original_source/prickle/core.py's to_txt methods:
// message lines as (sec, nano, symbol, type, refno, side, shares,
// price, mpid) and book snapshot lines as (sec, nano, symbol, N bid
// prices, N ask prices, N bid depths, N ask depths), padded with -1
// past actual book depth (SPEC_FULL.md §6.3).

package sink

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	itch "github.com/quotefeed/itch-go"
)

// TextSink is a MessageSink/SystemSink/BookSink/TradeSink/NoiiSink
// implementation writing the comma-separated text format.
type TextSink struct {
	w   *bufio.Writer
	err error
}

// NewTextSink wraps w in a buffered writer. Flush must be called once
// the run completes.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: bufio.NewWriter(w)}
}

func (s *TextSink) Flush() error {
	if s.err != nil {
		return s.err
	}
	return s.w.Flush()
}

func (s *TextSink) writeLine(fields ...string) error {
	if s.err != nil {
		return s.err
	}
	line := strings.Join(fields, ",") + "\n"
	if _, err := s.w.WriteString(line); err != nil {
		s.err = err
	}
	return s.err
}

func price(p int64) string {
	return strconv.FormatFloat(float64(p)/float64(itch.PriceScale), 'f', -1, 64)
}

func i64(v int64) string { return strconv.FormatInt(v, 10) }

func (s *TextSink) OnSystemEvent(e itch.SystemEvent) error {
	return s.writeLine(i64(e.Sec), i64(e.Nano), "", string(rune(e.Code)))
}

func (s *TextSink) OnTradingAction(e itch.TradingAction) error {
	return s.writeLine(i64(e.Sec), i64(e.Nano), e.Symbol, string(rune(e.State)))
}

func (s *TextSink) OnAdd(e itch.Add) error {
	return s.writeLine(i64(e.Sec), i64(e.Nano), e.Symbol, "A", i64(int64(e.Refno)), string(rune(e.Side)), i64(e.Shares), price(e.Price), e.MPID)
}

func (s *TextSink) OnExecute(e itch.Execute) error {
	return s.writeLine(i64(e.Sec), i64(e.Nano), e.Symbol, "E", i64(int64(e.Refno)), string(rune(e.Side)), i64(e.SharesExecuted), price(e.Price), "")
}

func (s *TextSink) OnExecuteWithPrice(e itch.ExecuteWithPrice) error {
	return s.writeLine(i64(e.Sec), i64(e.Nano), e.Symbol, "C", i64(int64(e.Refno)), string(rune(e.Side)), i64(e.SharesExecuted), price(e.Price), "")
}

func (s *TextSink) OnCancel(e itch.Cancel) error {
	return s.writeLine(i64(e.Sec), i64(e.Nano), e.Symbol, "X", i64(int64(e.Refno)), string(rune(e.Side)), i64(e.SharesCancelled), price(e.Price), "")
}

func (s *TextSink) OnDelete(e itch.Delete) error {
	return s.writeLine(i64(e.Sec), i64(e.Nano), e.Symbol, "D", i64(int64(e.Refno)), string(rune(e.Side)), i64(e.Shares), price(e.Price), "")
}

func (s *TextSink) OnReplace(e itch.Replace) error {
	return s.writeLine(i64(e.Sec), i64(e.Nano), e.Symbol, "U", i64(int64(e.NewRefno)), string(rune(e.Side)), i64(e.Shares), price(e.Price), "")
}

func (s *TextSink) OnTrade(e itch.Trade) error {
	return s.writeLine(i64(e.Sec), i64(e.Nano), e.Symbol, string(rune(e.Side)), i64(e.Shares), price(e.Price))
}

func (s *TextSink) OnCrossTrade(e itch.CrossTrade) error {
	return s.writeLine(i64(e.Sec), i64(e.Nano), e.Symbol, "Q", string(rune(e.CrossType)), i64(e.Shares), price(e.Price))
}

func (s *TextSink) OnNoiiIndicator(e itch.NoiiIndicator) error {
	return s.writeLine(i64(e.Sec), i64(e.Nano), e.Symbol, "I", string(rune(e.CrossType)),
		i64(e.Paired), i64(e.Imbalance), string(rune(e.Direction)),
		price(e.Far), price(e.Near), price(e.Current))
}

// OnSnapshot writes (sec, nano, symbol, N bid prices, N ask prices, N
// bid depths, N ask depths) in that field-major order, matching
// Book.to_txt exactly.
func (s *TextSink) OnSnapshot(snap itch.Snapshot) error {
	fields := make([]string, 0, 3+4*len(snap.Bids))
	fields = append(fields, i64(snap.Sec), i64(snap.Nano), snap.Symbol)
	for _, b := range snap.Bids {
		fields = append(fields, levelPrice(b))
	}
	for _, a := range snap.Asks {
		fields = append(fields, levelPrice(a))
	}
	for _, b := range snap.Bids {
		fields = append(fields, levelShares(b))
	}
	for _, a := range snap.Asks {
		fields = append(fields, levelShares(a))
	}
	return s.writeLine(fields...)
}

func levelPrice(l itch.Level) string {
	if l.Price == -1 {
		return "-1"
	}
	return price(l.Price)
}

func levelShares(l itch.Level) string {
	return i64(l.Shares)
}
