// Copyright (c) 2024 Neomantra Corp

package itch

import "fmt"

// Fatal errors abort the pipeline (spec §7).
var (
	ErrShortFrame       = fmt.Errorf("itch: short read mid-frame")
	ErrMalformedPayload = fmt.Errorf("itch: payload length disagrees with layout")
	ErrUnknownVersion   = fmt.Errorf("itch: unsupported protocol version")
	ErrNoFrame          = fmt.Errorf("itch: no frame scanned")
)

func unsupportedVersionError(s string) error {
	return fmt.Errorf("itch: unsupported version %q, want one of 4.0, 4.1, 5.0", s)
}

func unexpectedPayloadSizeError(msgType MsgType, version Version, got, want int) error {
	return fmt.Errorf("%w: type=%c version=%s got=%d want=%d", ErrMalformedPayload, msgType, version, got, want)
}

func shortFrameError(want, got int) error {
	return fmt.Errorf("%w: want %d bytes, got %d", ErrShortFrame, want, got)
}

func unexpectedConfigValueError(key, value string) error {
	return fmt.Errorf("itch: invalid value %q for %s", value, key)
}
