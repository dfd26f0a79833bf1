// Copyright (c) 2024 Neomantra Corp
//
// Config collects the run-time options a replay needs. Grounded on
// live.LiveConfig's SetFromEnv pattern (live/live.go): SetFromEnv fills
// fields from environment variables. cmd/itch-replay builds its Config
// from flags alone and does not call SetFromEnv.

package itch

import (
	"os"
	"strings"
	"time"

	"github.com/neomantra/ymdflag"
	"github.com/relvacode/iso8601"
)

const (
	EnvVersion = "ITCH_VERSION"
	EnvLevels  = "ITCH_LEVELS"
	EnvSymbols = "ITCH_SYMBOLS"
	EnvDate    = "ITCH_DATE"
)

// SinkMode selects which kind of padding convention a run's BookSink
// uses, per spec §6.3's two frozen sink conventions.
type SinkMode uint8

const (
	SinkModeJSONL SinkMode = iota // numeric sink, 0-padded
	SinkModeText                  // human-readable sink, -1-padded
)

// Config is the full set of options needed to build a Pipeline and its
// BookSet for one replay run.
type Config struct {
	Version  Version
	Levels   int
	Symbols  []string
	Date     time.Time
	SinkMode SinkMode
}

// DefaultLevels is the top-of-book depth used when a run does not
// specify one.
const DefaultLevels = 5

// NewConfig returns a Config with DefaultLevels and SinkModeJSONL; all
// other fields are zero until set explicitly or via SetFromEnv.
func NewConfig() *Config {
	return &Config{Levels: DefaultLevels, SinkMode: SinkModeJSONL}
}

// SetFromEnv sets each field whose environment variable is non-empty,
// overwriting any value already there; fields whose variable is unset
// or empty keep their current value. ITCH_VERSION must parse via ParseVersion.
// ITCH_SYMBOLS is a comma-separated symbol list. ITCH_DATE accepts
// either an 8-digit YYYYMMDD (via neomantra/ymdflag) or a full ISO 8601
// timestamp (via relvacode/iso8601), trying YMD first since it's the
// narrower, more specific grammar.
func (c *Config) SetFromEnv() error {
	if v := os.Getenv(EnvVersion); v != "" {
		parsed, err := ParseVersion(v)
		if err != nil {
			return err
		}
		c.Version = parsed
	}
	if l := os.Getenv(EnvLevels); l != "" {
		n, err := parsePositiveInt(l)
		if err != nil {
			return err
		}
		c.Levels = n
	}
	if s := os.Getenv(EnvSymbols); s != "" {
		c.Symbols = splitSymbols(s)
	}
	if d := os.Getenv(EnvDate); d != "" {
		t, err := parseConfigDate(d)
		if err != nil {
			return err
		}
		c.Date = t
	}
	return nil
}

// Sentinel returns the padding value matching the Config's SinkMode:
// -1 for the human-readable text sink, 0 for the numeric/JSONL sink.
func (c *Config) Sentinel() int64 {
	if c.SinkMode == SinkModeText {
		return -1
	}
	return 0
}

// SplitSymbols splits a comma-separated symbol list, trimming whitespace
// and dropping empty entries.
func SplitSymbols(s string) []string {
	return splitSymbols(s)
}

func splitSymbols(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseConfigDate(s string) (time.Time, error) {
	if len(s) == 8 && isAllDigits(s) {
		var ymd int
		for _, r := range s {
			ymd = ymd*10 + int(r-'0')
		}
		return ymdflag.YMDToTime(ymd, time.UTC), nil
	}
	return iso8601.ParseString(s)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parsePositiveInt(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, unexpectedConfigValueError("ITCH_LEVELS", s)
		}
		n = n*10 + int(r-'0')
	}
	if n <= 0 {
		return 0, unexpectedConfigValueError("ITCH_LEVELS", s)
	}
	return n, nil
}
