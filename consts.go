// Copyright (c) 2024 Neomantra Corp
//
// ITCH message-type bytes and field enumerations.
// Adapted from NASDAQ TotalView-ITCH 4.0/4.1/5.0 wire formats and
// cross-checked against cswaney/prickle's `protocol` decode table.

package itch

// Version selects the wire layout table used by the Decoder.
type Version uint8

const (
	Version4_0 Version = iota
	Version4_1
	Version5_0
)

func (v Version) String() string {
	switch v {
	case Version4_0:
		return "4.0"
	case Version4_1:
		return "4.1"
	case Version5_0:
		return "5.0"
	default:
		return "unknown"
	}
}

// ParseVersion accepts the three recognized configuration strings.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "4.0":
		return Version4_0, nil
	case "4.1":
		return Version4_1, nil
	case "5.0":
		return Version5_0, nil
	default:
		return 0, unsupportedVersionError(s)
	}
}

// MsgType is the single wire type byte that opens every ITCH message.
type MsgType byte

const (
	MsgSystemEvent            MsgType = 'S'
	MsgStockTradingAction     MsgType = 'H'
	MsgTimestampSeconds       MsgType = 'T' // v4.x only
	MsgAddOrder               MsgType = 'A'
	MsgAddOrderMPID           MsgType = 'F'
	MsgOrderExecuted          MsgType = 'E'
	MsgOrderExecutedWithPrice MsgType = 'C'
	MsgOrderCancel            MsgType = 'X'
	MsgOrderDelete            MsgType = 'D'
	MsgOrderReplace           MsgType = 'U'
	MsgTrade                  MsgType = 'P' // hidden execution, v4.1+
	MsgCrossTrade             MsgType = 'Q' // v4.1+
	MsgNOII                   MsgType = 'I' // v4.1+
)

// Side is the wire buy/sell indicator.
type Side byte

const (
	SideBid Side = 'B'
	SideAsk Side = 'S'
)

func (s Side) String() string {
	switch s {
	case SideBid:
		return "B"
	case SideAsk:
		return "S"
	default:
		return "?"
	}
}

// SystemEventCode is the wire code carried by a SystemEvent ('S') message.
type SystemEventCode byte

const (
	SystemStartOfMessages SystemEventCode = 'O'
	SystemStartOfSystem   SystemEventCode = 'S'
	SystemStartOfMarket   SystemEventCode = 'Q'
	SystemTradingHalt     SystemEventCode = 'A'
	SystemQuoteOnlyPeriod SystemEventCode = 'R'
	SystemResumeTrading   SystemEventCode = 'B'
	SystemEndOfMarket     SystemEventCode = 'M'
	SystemEndOfSystem     SystemEventCode = 'E'
	SystemEndOfMessages   SystemEventCode = 'C'
)

// TradingState is the wire state carried by a TradingAction ('H') message.
type TradingState byte

const (
	TradingHalted        TradingState = 'H'
	TradingPaused        TradingState = 'P'
	TradingQuotationOnly TradingState = 'Q'
	TradingNormal        TradingState = 'T'
)

// CrossType is the wire auction-type byte on CrossTrade and NOII messages.
type CrossType byte

const (
	CrossOpening  CrossType = 'O'
	CrossClosing  CrossType = 'C'
	CrossHalted   CrossType = 'H'
	CrossIntraday CrossType = 'I'
)

// ImbalanceDirection is the wire imbalance-direction byte on NOII messages.
type ImbalanceDirection byte

const (
	ImbalanceBuy    ImbalanceDirection = 'B'
	ImbalanceSell   ImbalanceDirection = 'S'
	ImbalanceNone   ImbalanceDirection = 'N'
	ImbalancePaired ImbalanceDirection = 'P'
)

// PriceScale is the wire-to-dollar scaling factor for every scaled price
// field except NOII's paired/imbalance quantities, which are carried
// unscaled (feed quirk, see SPEC_FULL.md §3.2).
const PriceScale = 10000

// symbolWidth returns the width in bytes of the ASCII symbol field for
// the given version: 6 bytes pre-4.1, 8 bytes from 4.1 onward.
func symbolWidth(v Version) int {
	if v == Version4_0 {
		return 6
	}
	return 8
}
