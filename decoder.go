// Copyright (c) 2024 Neomantra Corp
//
// Decoder dispatches on (version, type_byte) to produce a normalized
// Event, mirroring the teacher's DbnScanner.Visit dispatch switch
// (dbn_scanner.go) but keyed additionally on protocol version, since
// ITCH's wire shape (unlike DBN's) varies release to release.

package itch

// acceptedByVersion enumerates which type bytes a given protocol
// version actually carries on the wire (spec §4.2): v4.0 has 'T' but
// not 'P'/'Q'/'I'; v4.1 adds 'P'/'Q'/'I' but keeps 'T'; v5.0 drops 'T'
// entirely in favor of a per-message 48-bit timestamp.
func acceptedByVersion(v Version, t MsgType) bool {
	switch t {
	case MsgTimestampSeconds:
		return v != Version5_0
	case MsgTrade, MsgCrossTrade, MsgNOII:
		return v != Version4_0
	default:
		return true
	}
}

// Decoder is a pure (version, type_byte, payload) -> Event function. It
// holds no state of its own; the running second-clock and Replace
// decomposition live in the Normalizer one layer up.
type Decoder struct {
	version Version
}

// NewDecoder builds a Decoder for the given protocol version.
func NewDecoder(version Version) *Decoder {
	return &Decoder{version: version}
}

// Decode parses one frame's payload. It returns (nil, nil, nil) for a
// type byte this version doesn't carry or doesn't recognize at all —
// spec §4.2's "silently skipped" case, framed but eventless. A non-nil
// tick is returned only for a v4.x 'T' message, which updates the
// Normalizer's clock but itself produces no Event.
func (d *Decoder) Decode(msgType byte, payload []byte) (ev Event, tick *int64, err error) {
	mt := MsgType(msgType)
	if !acceptedByVersion(d.version, mt) {
		return nil, nil, nil
	}
	if mt == MsgTimestampSeconds {
		t, err := decodeTimestampSeconds(payload)
		if err != nil {
			return nil, nil, err
		}
		v := int64(t)
		return nil, &v, nil
	}
	fn, ok := decodeTable[mt]
	if !ok {
		return nil, nil, nil
	}
	ev, err = fn(d.version, payload)
	if err != nil {
		return nil, nil, err
	}
	return ev, nil, nil
}
