// Copyright (c) 2024 Neomantra Corp

package itch

import "bytes"

// TrimSymbol strips ASCII space and NUL padding from a fixed-width wire
// symbol field.
func TrimSymbol(b []byte) string {
	return string(bytes.TrimRight(b, " \x00"))
}

// PriceToFloat64 converts a ×10000-scaled wire price into a dollar
// float. NOII's paired/imbalance fields are the one exception
// (spec §6, a documented feed quirk) and must not be passed through
// this helper.
func PriceToFloat64(price int64) float64 {
	return float64(price) / float64(PriceScale)
}

// splitNano48 splits a 48-bit nanosecond-since-midnight value into
// whole seconds and the remaining sub-second nanoseconds.
func splitNano48(nano48 uint64) (sec int64, nano int64) {
	return int64(nano48 / 1e9), int64(nano48 % 1e9)
}

// readUint48BE reassembles v5.0's split 48-bit timestamp field: a
// 16-bit high word followed by a 32-bit low word, both big-endian.
func readUint48BE(hi16 uint16, lo32 uint32) uint64 {
	return uint64(lo32) | (uint64(hi16) << 32)
}
