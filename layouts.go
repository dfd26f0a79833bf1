// Copyright (c) 2024 Neomantra Corp
//
// Per-(version, type) wire layouts. Field offsets are grounded on
// cswaney/prickle's `protocol` function (original_source/prickle/core.go),
// the canonical fork per spec §9's Open Question resolution. All
// integers are big-endian; ASCII fields are space-padded.

package itch

import "encoding/binary"

// clockTick is the decoder's output for a 'T' (timestamp-seconds)
// message: it carries no event of its own, only an update to the
// Normalizer's running clock (spec §4.3).
type clockTick int64

// decodeFunc parses a payload (the bytes after the type byte, i.e. the
// stock_locate/tracking_number/timestamp prefix plus body) into a raw
// Event. Sub-second event times come back with Sec == unresolvedSec;
// the Normalizer fills in the running clock for v4.x, or the decoder
// computes Sec directly for v5.0's self-timestamped messages.
type decodeFunc func(version Version, payload []byte) (Event, error)

// unresolvedSec marks a v4.x sub-second event awaiting the Normalizer's
// running clock.
const unresolvedSec int64 = -1

var decodeTable = map[MsgType]decodeFunc{
	MsgSystemEvent:            decodeSystemEvent,
	MsgStockTradingAction:     decodeTradingAction,
	MsgAddOrder:               decodeAdd,
	MsgAddOrderMPID:           decodeAddMPID,
	MsgOrderExecuted:          decodeExecute,
	MsgOrderExecutedWithPrice: decodeExecuteWithPrice,
	MsgOrderCancel:            decodeCancel,
	MsgOrderDelete:            decodeDelete,
	MsgOrderReplace:           decodeReplace,
	MsgTrade:                  decodeTrade,
	MsgCrossTrade:             decodeCrossTrade,
	MsgNOII:                   decodeNOII,
}

// v4Prefix splits the common v4.x prefix (stock_locate, tracking_number,
// nano-within-second) off the front of a payload, returning the
// sub-second nanosecond field and the remaining body.
func v4Prefix(payload []byte) (nano int64, body []byte, err error) {
	if len(payload) < 8 {
		return 0, nil, ErrMalformedPayload
	}
	nano = int64(binary.BigEndian.Uint32(payload[4:8]))
	return nano, payload[8:], nil
}

// v5Prefix splits v5.0's prefix (stock_locate, tracking_number, a
// 48-bit nanosecond-since-midnight field split hi16/lo32) and returns
// the fully resolved (sec, nano) pair plus the remaining body.
func v5Prefix(payload []byte) (sec, nano int64, body []byte, err error) {
	if len(payload) < 10 {
		return 0, 0, nil, ErrMalformedPayload
	}
	hi := binary.BigEndian.Uint16(payload[4:6])
	lo := binary.BigEndian.Uint32(payload[6:10])
	sec, nano = splitNano48(readUint48BE(hi, lo))
	return sec, nano, payload[10:], nil
}

// prefix dispatches to v4Prefix or v5Prefix, returning a baseTime whose
// Sec is unresolvedSec for v4.x (filled later by the Normalizer) and
// already resolved for v5.0.
func prefix(version Version, payload []byte) (bt baseTime, body []byte, err error) {
	if version == Version5_0 {
		sec, nano, b, e := v5Prefix(payload)
		return baseTime{Sec: sec, Nano: nano}, b, e
	}
	nano, b, e := v4Prefix(payload)
	return baseTime{Sec: unresolvedSec, Nano: nano}, b, e
}

func decodeSystemEvent(version Version, payload []byte) (Event, error) {
	bt, body, err := prefix(version, payload)
	if err != nil {
		return nil, err
	}
	if len(body) != 1 {
		return nil, unexpectedPayloadSizeError(MsgSystemEvent, version, len(body), 1)
	}
	return SystemEvent{baseTime: bt, Code: SystemEventCode(body[0])}, nil
}

func decodeTradingAction(version Version, payload []byte) (Event, error) {
	bt, body, err := prefix(version, payload)
	if err != nil {
		return nil, err
	}
	w := symbolWidth(version)
	// symbol:w state:1 reserved:1 reason:4
	want := w + 1 + 1 + 4
	if len(body) != want {
		return nil, unexpectedPayloadSizeError(MsgStockTradingAction, version, len(body), want)
	}
	symbol := TrimSymbol(body[:w])
	state := TradingState(body[w])
	return TradingAction{baseTime: bt, Symbol: symbol, State: state}, nil
}

func decodeAddCommon(version Version, payload []byte, hasMPID bool) (Event, error) {
	bt, body, err := prefix(version, payload)
	if err != nil {
		return nil, err
	}
	w := symbolWidth(version)
	want := 8 + 1 + 4 + w + 4
	if hasMPID {
		want += 4
	}
	if len(body) != want {
		return nil, unexpectedPayloadSizeError(MsgAddOrder, version, len(body), want)
	}
	refno := binary.BigEndian.Uint64(body[0:8])
	side := Side(body[8])
	shares := int64(binary.BigEndian.Uint32(body[9:13]))
	symbol := TrimSymbol(body[13 : 13+w])
	price := int64(binary.BigEndian.Uint32(body[13+w : 17+w]))
	mpid := ""
	if hasMPID {
		mpid = TrimSymbol(body[17+w : 21+w])
	}
	return Add{
		baseTime: bt,
		Refno:    refno,
		Side:     side,
		Shares:   shares,
		Symbol:   symbol,
		Price:    price,
		MPID:     mpid,
	}, nil
}

func decodeAdd(version Version, payload []byte) (Event, error) {
	return decodeAddCommon(version, payload, false)
}

func decodeAddMPID(version Version, payload []byte) (Event, error) {
	return decodeAddCommon(version, payload, true)
}

func decodeExecute(version Version, payload []byte) (Event, error) {
	bt, body, err := prefix(version, payload)
	if err != nil {
		return nil, err
	}
	if len(body) != 12 {
		return nil, unexpectedPayloadSizeError(MsgOrderExecuted, version, len(body), 12)
	}
	refno := binary.BigEndian.Uint64(body[0:8])
	shares := int64(binary.BigEndian.Uint32(body[8:12]))
	return Execute{baseTime: bt, Refno: refno, SharesExecuted: shares}, nil
}

func decodeExecuteWithPrice(version Version, payload []byte) (Event, error) {
	bt, body, err := prefix(version, payload)
	if err != nil {
		return nil, err
	}
	// refno:8 shares:4 printable:1 price:4
	if len(body) != 17 {
		return nil, unexpectedPayloadSizeError(MsgOrderExecutedWithPrice, version, len(body), 17)
	}
	refno := binary.BigEndian.Uint64(body[0:8])
	shares := int64(binary.BigEndian.Uint32(body[8:12]))
	price := int64(binary.BigEndian.Uint32(body[13:17]))
	return ExecuteWithPrice{baseTime: bt, Refno: refno, SharesExecuted: shares, Price: price}, nil
}

func decodeCancel(version Version, payload []byte) (Event, error) {
	bt, body, err := prefix(version, payload)
	if err != nil {
		return nil, err
	}
	if len(body) != 12 {
		return nil, unexpectedPayloadSizeError(MsgOrderCancel, version, len(body), 12)
	}
	refno := binary.BigEndian.Uint64(body[0:8])
	shares := int64(binary.BigEndian.Uint32(body[8:12]))
	return Cancel{baseTime: bt, Refno: refno, SharesCancelled: shares}, nil
}

func decodeDelete(version Version, payload []byte) (Event, error) {
	bt, body, err := prefix(version, payload)
	if err != nil {
		return nil, err
	}
	if len(body) != 8 {
		return nil, unexpectedPayloadSizeError(MsgOrderDelete, version, len(body), 8)
	}
	refno := binary.BigEndian.Uint64(body[0:8])
	return Delete{baseTime: bt, Refno: refno}, nil
}

func decodeReplace(version Version, payload []byte) (Event, error) {
	bt, body, err := prefix(version, payload)
	if err != nil {
		return nil, err
	}
	// old_refno:8 new_refno:8 shares:4 price:4
	if len(body) != 24 {
		return nil, unexpectedPayloadSizeError(MsgOrderReplace, version, len(body), 24)
	}
	oldRefno := binary.BigEndian.Uint64(body[0:8])
	newRefno := binary.BigEndian.Uint64(body[8:16])
	shares := int64(binary.BigEndian.Uint32(body[16:20]))
	price := int64(binary.BigEndian.Uint32(body[20:24]))
	return Replace{baseTime: bt, OldRefno: oldRefno, NewRefno: newRefno, Shares: shares, Price: price}, nil
}

func decodeTrade(version Version, payload []byte) (Event, error) {
	bt, body, err := prefix(version, payload)
	if err != nil {
		return nil, err
	}
	w := symbolWidth(version)
	// refno:8 side:1 shares:4 symbol:w price:4 matchno:8
	want := 8 + 1 + 4 + w + 4 + 8
	if len(body) != want {
		return nil, unexpectedPayloadSizeError(MsgTrade, version, len(body), want)
	}
	refno := binary.BigEndian.Uint64(body[0:8])
	side := Side(body[8])
	shares := int64(binary.BigEndian.Uint32(body[9:13]))
	symbol := TrimSymbol(body[13 : 13+w])
	price := int64(binary.BigEndian.Uint32(body[13+w : 17+w]))
	return Trade{baseTime: bt, Refno: refno, Side: side, Shares: shares, Symbol: symbol, Price: price}, nil
}

func decodeCrossTrade(version Version, payload []byte) (Event, error) {
	bt, body, err := prefix(version, payload)
	if err != nil {
		return nil, err
	}
	w := symbolWidth(version)
	// shares:8 symbol:w price:4 matchno:8 crosstype:1
	want := 8 + w + 4 + 8 + 1
	if len(body) != want {
		return nil, unexpectedPayloadSizeError(MsgCrossTrade, version, len(body), want)
	}
	shares := int64(binary.BigEndian.Uint64(body[0:8]))
	symbol := TrimSymbol(body[8 : 8+w])
	price := int64(binary.BigEndian.Uint32(body[8+w : 12+w]))
	crossType := CrossType(body[len(body)-1])
	return CrossTrade{baseTime: bt, Symbol: symbol, Shares: shares, Price: price, CrossType: crossType}, nil
}

func decodeNOII(version Version, payload []byte) (Event, error) {
	bt, body, err := prefix(version, payload)
	if err != nil {
		return nil, err
	}
	w := symbolWidth(version)
	// paired:8 imbalance:8 direction:1 symbol:w far:4 near:4 current:4 crosstype:1
	want := 8 + 8 + 1 + w + 4 + 4 + 4 + 1
	if len(body) != want {
		return nil, unexpectedPayloadSizeError(MsgNOII, version, len(body), want)
	}
	paired := int64(binary.BigEndian.Uint64(body[0:8]))
	imbalance := int64(binary.BigEndian.Uint64(body[8:16]))
	direction := ImbalanceDirection(body[16])
	symbol := TrimSymbol(body[17 : 17+w])
	far := int64(binary.BigEndian.Uint32(body[17+w : 21+w]))
	near := int64(binary.BigEndian.Uint32(body[21+w : 25+w]))
	current := int64(binary.BigEndian.Uint32(body[25+w : 29+w]))
	crossType := CrossType(body[len(body)-1])
	return NoiiIndicator{
		baseTime:  bt,
		Symbol:    symbol,
		Paired:    paired,
		Imbalance: imbalance,
		Direction: direction,
		Far:       far,
		Near:      near,
		Current:   current,
		CrossType: crossType,
	}, nil
}

func decodeTimestampSeconds(payload []byte) (clockTick, error) {
	if len(payload) != 4 {
		return 0, ErrMalformedPayload
	}
	// 'T' is the one message type with no stock_locate/tracking_number
	// prefix: just a bare 4-byte seconds field.
	return clockTick(binary.BigEndian.Uint32(payload[0:4])), nil
}
