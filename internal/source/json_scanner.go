// Copyright (c) 2024 Neomantra Corp
//
// JSONScanner replays a JSONL capture written by internal/sink's
// JSONLSink back into itch.Event values, skipping the binary
// Framer/Decoder stages entirely. Grounded on the teacher's
// json_scanner.go: the same bufio.Scanner-over-newlines loop and
// fastjson.Parser reuse, with dispatchJsonVisitor's RType switch
// replaced by a switch over the "kind" tag JSONLSink writes.

package source

import (
	"bufio"
	"io"

	itch "github.com/quotefeed/itch-go"

	"github.com/valyala/fastjson"
)

// JSONScanner scans a series of itch JSONL values, one per line.
type JSONScanner struct {
	scanner *bufio.Scanner
	parser  fastjson.Parser
}

// NewJSONScanner creates a JSONScanner over r.
func NewJSONScanner(r io.Reader) *JSONScanner {
	return &JSONScanner{scanner: bufio.NewScanner(r)}
}

// Next scans the next line. Returns false at EOF or on a scan error;
// call Error to distinguish the two.
func (s *JSONScanner) Next() bool {
	return s.scanner.Scan()
}

// Error returns the last error from Next, if any.
func (s *JSONScanner) Error() error {
	return s.scanner.Err()
}

// Decode parses the scanner's current line into an itch.Event. Returns
// (nil, nil) for an empty line or a "snapshot" line (so callers can
// simply skip it) and a non-nil error for malformed JSON or an unknown kind.
func (s *JSONScanner) Decode() (itch.Event, error) {
	line := s.scanner.Bytes()
	if len(line) == 0 {
		return nil, nil
	}
	val, err := s.parser.ParseBytes(line)
	if err != nil {
		return nil, err
	}
	kind := string(val.GetStringBytes("kind"))
	data := val.Get("data")
	if data == nil {
		return nil, unexpectedJSONShapeError(kind)
	}
	return decodeJSONEvent(kind, data)
}

func decodeJSONEvent(kind string, v *fastjson.Value) (itch.Event, error) {
	bt := func() (int64, int64) { return v.GetInt64("Sec"), v.GetInt64("Nano") }

	switch kind {
	case "system":
		sec, nano := bt()
		ev := itch.SystemEvent{Code: itch.SystemEventCode(v.GetUint("Code"))}
		ev.Sec, ev.Nano = sec, nano
		return ev, nil

	case "trading_action":
		sec, nano := bt()
		ev := itch.TradingAction{
			Symbol: string(v.GetStringBytes("Symbol")),
			State:  itch.TradingState(v.GetUint("State")),
		}
		ev.Sec, ev.Nano = sec, nano
		return ev, nil

	case "add":
		sec, nano := bt()
		ev := itch.Add{
			Refno:  v.GetUint64("Refno"),
			Side:   itch.Side(v.GetUint("Side")),
			Shares: v.GetInt64("Shares"),
			Symbol: string(v.GetStringBytes("Symbol")),
			Price:  v.GetInt64("Price"),
			MPID:   string(v.GetStringBytes("MPID")),
		}
		ev.Sec, ev.Nano = sec, nano
		return ev, nil

	case "execute":
		sec, nano := bt()
		ev := itch.Execute{
			Refno:          v.GetUint64("Refno"),
			SharesExecuted: v.GetInt64("SharesExecuted"),
			Symbol:         string(v.GetStringBytes("Symbol")),
			Side:           itch.Side(v.GetUint("Side")),
			Price:          v.GetInt64("Price"),
		}
		ev.Sec, ev.Nano = sec, nano
		return ev, nil

	case "execute_with_price":
		sec, nano := bt()
		ev := itch.ExecuteWithPrice{
			Refno:          v.GetUint64("Refno"),
			SharesExecuted: v.GetInt64("SharesExecuted"),
			Price:          v.GetInt64("Price"),
			Symbol:         string(v.GetStringBytes("Symbol")),
			Side:           itch.Side(v.GetUint("Side")),
		}
		ev.Sec, ev.Nano = sec, nano
		return ev, nil

	case "cancel":
		sec, nano := bt()
		ev := itch.Cancel{
			Refno:           v.GetUint64("Refno"),
			SharesCancelled: v.GetInt64("SharesCancelled"),
			Symbol:          string(v.GetStringBytes("Symbol")),
			Side:            itch.Side(v.GetUint("Side")),
			Price:           v.GetInt64("Price"),
		}
		ev.Sec, ev.Nano = sec, nano
		return ev, nil

	case "delete":
		sec, nano := bt()
		ev := itch.Delete{
			Refno:  v.GetUint64("Refno"),
			Symbol: string(v.GetStringBytes("Symbol")),
			Side:   itch.Side(v.GetUint("Side")),
			Price:  v.GetInt64("Price"),
			Shares: v.GetInt64("Shares"),
		}
		ev.Sec, ev.Nano = sec, nano
		return ev, nil

	case "replace":
		sec, nano := bt()
		ev := itch.Replace{
			OldRefno: v.GetUint64("OldRefno"),
			NewRefno: v.GetUint64("NewRefno"),
			Shares:   v.GetInt64("Shares"),
			Price:    v.GetInt64("Price"),
			Symbol:   string(v.GetStringBytes("Symbol")),
			Side:     itch.Side(v.GetUint("Side")),
		}
		ev.Sec, ev.Nano = sec, nano
		return ev, nil

	case "trade":
		sec, nano := bt()
		ev := itch.Trade{
			Refno:  v.GetUint64("Refno"),
			Side:   itch.Side(v.GetUint("Side")),
			Shares: v.GetInt64("Shares"),
			Symbol: string(v.GetStringBytes("Symbol")),
			Price:  v.GetInt64("Price"),
		}
		ev.Sec, ev.Nano = sec, nano
		return ev, nil

	case "cross_trade":
		sec, nano := bt()
		ev := itch.CrossTrade{
			Symbol:    string(v.GetStringBytes("Symbol")),
			Shares:    v.GetInt64("Shares"),
			Price:     v.GetInt64("Price"),
			CrossType: itch.CrossType(v.GetUint("CrossType")),
		}
		ev.Sec, ev.Nano = sec, nano
		return ev, nil

	case "noii":
		sec, nano := bt()
		ev := itch.NoiiIndicator{
			Symbol:    string(v.GetStringBytes("Symbol")),
			Paired:    v.GetInt64("Paired"),
			Imbalance: v.GetInt64("Imbalance"),
			Direction: itch.ImbalanceDirection(v.GetUint("Direction")),
			Far:       v.GetInt64("Far"),
			Near:      v.GetInt64("Near"),
			Current:   v.GetInt64("Current"),
			CrossType: itch.CrossType(v.GetUint("CrossType")),
		}
		ev.Sec, ev.Nano = sec, nano
		return ev, nil

	case "snapshot":
		// book rows are derived output, not events; replay rebuilds them
		return nil, nil

	default:
		return nil, unexpectedJSONShapeError(kind)
	}
}
