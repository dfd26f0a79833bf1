// Copyright (c) 2024 Neomantra Corp

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	itch "github.com/quotefeed/itch-go"
	"github.com/quotefeed/itch-go/internal/sink"
	"github.com/quotefeed/itch-go/internal/source"
)

///////////////////////////////////////////////////////////////////////////////

var (
	versionStr string
	levels     int
	symbolsStr string
	textOutput bool
	forceZstd  bool
	tcpAddr    string
	fetchURL   string
)

func requireNoError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}

///////////////////////////////////////////////////////////////////////////////

func main() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().StringVarP(&versionStr, "version", "V", "5.0", "ITCH protocol version (4.0, 4.1, 5.0)")
	rootCmd.PersistentFlags().IntVarP(&levels, "levels", "l", itch.DefaultLevels, "Top-of-book depth per side")
	rootCmd.PersistentFlags().StringVarP(&symbolsStr, "symbols", "s", "", "Comma-separated symbol subscription list (required)")
	rootCmd.PersistentFlags().BoolVarP(&textOutput, "text", "t", false, "Write the human-readable text format instead of JSON lines")
	rootCmd.MarkPersistentFlagRequired("symbols")

	replayFileCmd.Flags().BoolVarP(&forceZstd, "zstd", "z", false, "Input is zstd (useful for handling zstd on stdin)")
	rootCmd.AddCommand(replayFileCmd)

	replayFetchCmd.Flags().StringVarP(&fetchURL, "url", "u", "", "HTTP(S) URL of the capture to fetch")
	replayFetchCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(replayFetchCmd)

	replayTCPCmd.Flags().StringVarP(&tcpAddr, "addr", "a", "", "host:port of the live feed")
	replayTCPCmd.MarkFlagRequired("addr")
	rootCmd.AddCommand(replayTCPCmd)

	rootCmd.AddCommand(replayJSONCmd)

	requireNoError(rootCmd.Execute())
}

///////////////////////////////////////////////////////////////////////////////

var rootCmd = &cobra.Command{
	Use:   "itch-replay",
	Short: "itch-replay decodes NASDAQ TotalView-ITCH feeds into events and book snapshots",
	Long:  "itch-replay decodes NASDAQ TotalView-ITCH feeds into events and book snapshots",
}

var replayFileCmd = &cobra.Command{
	Use:   "file path...",
	Short: "Replay one or more local ITCH capture files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := buildConfig()
		for _, path := range args {
			r, closer, err := source.OpenFile(path, forceZstd)
			requireNoError(err)
			runReplay(cmd.Context(), r, cfg)
			if closer != nil {
				closer.Close()
			}
		}
	},
}

var replayFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and replay an ITCH capture over HTTP(S)",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := buildConfig()
		body, err := source.Fetch(cmd.Context(), fetchURL, source.FetchOptions{Logger: slog.Default()})
		requireNoError(err)
		defer body.Close()
		runReplay(cmd.Context(), body, cfg)
	},
}

var replayTCPCmd = &cobra.Command{
	Use:   "tcp",
	Short: "Replay a live ITCH feed over a reconnecting TCP connection",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := buildConfig()
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		tcp := source.NewTCPSource(ctx, tcpAddr, source.TCPSourceOptions{Logger: slog.Default()})
		defer tcp.Close()
		runReplay(ctx, tcp, cfg)
	},
}

var replayJSONCmd = &cobra.Command{
	Use:   "json path...",
	Short: "Replay one or more JSONL captures written by a prior JSONL run",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := buildConfig()
		for _, path := range args {
			r, closer, err := source.OpenFile(path, forceZstd)
			requireNoError(err)
			runReplayJSON(cmd.Context(), r, cfg)
			if closer != nil {
				closer.Close()
			}
		}
	},
}

///////////////////////////////////////////////////////////////////////////////

func buildConfig() *itch.Config {
	cfg := itch.NewConfig()
	v, err := itch.ParseVersion(versionStr)
	requireNoError(err)
	cfg.Version = v
	cfg.Levels = levels
	cfg.Symbols = itch.SplitSymbols(symbolsStr)
	if textOutput {
		cfg.SinkMode = itch.SinkModeText
	}
	return cfg
}

func buildSinks(cfg *itch.Config) (itch.Sinks, func() error) {
	if cfg.SinkMode == itch.SinkModeText {
		s := sink.NewTextSink(os.Stdout)
		return itch.Sinks{System: s, Message: s, Book: s, Trade: s, Noii: s}, s.Flush
	}
	s := sink.NewJSONLSink(os.Stdout)
	return itch.Sinks{System: s, Message: s, Book: s, Trade: s, Noii: s}, s.Flush
}

func summarize(diag *itch.Diagnostics, liveOrders int) {
	fmt.Fprintf(os.Stderr, "processed: %s orders live, %s duplicate refno, %s unknown refno, %s over-execution, %s crossed book, %s unknown type\n",
		humanize.Comma(int64(liveOrders)),
		humanize.Comma(diag.DuplicateRefno),
		humanize.Comma(diag.UnknownRefno),
		humanize.Comma(diag.OverExecution),
		humanize.Comma(diag.CrossedBook),
		humanize.Comma(diag.UnknownType),
	)
}

// runReplay wires a single octet source through a fresh Pipeline and
// prints a diagnostic summary line once the stream ends, grounded on
// the teacher's humanize-formatted summary output conventions.
func runReplay(ctx context.Context, r io.Reader, cfg *itch.Config) {
	diag := itch.NewDiagnostics(slog.Default())
	books := itch.NewBookSet(cfg.Symbols, cfg.Levels, cfg.Sentinel(), diag)
	sinks, flush := buildSinks(cfg)

	pipe := itch.NewPipeline(r, cfg.Version, books, diag, sinks)
	if err := pipe.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
	}
	requireNoError(flush())
	summarize(diag, pipe.Registry().Len())
}

// runReplayJSON drives a JSONL capture straight through DispatchEvent,
// bypassing the Framer/Decoder stages (the capture is already decoded).
func runReplayJSON(ctx context.Context, r io.Reader, cfg *itch.Config) {
	diag := itch.NewDiagnostics(slog.Default())
	books := itch.NewBookSet(cfg.Symbols, cfg.Levels, cfg.Sentinel(), diag)
	sinks, flush := buildSinks(cfg)

	pipe := itch.NewPipeline(strings.NewReader(""), cfg.Version, books, diag, sinks)
	scanner := source.NewJSONScanner(r)
	for scanner.Next() {
		select {
		case <-ctx.Done():
			requireNoError(flush())
			summarize(diag, pipe.Registry().Len())
			return
		default:
		}
		ev, err := scanner.Decode()
		requireNoError(err)
		if ev == nil {
			continue
		}
		requireNoError(pipe.DispatchEvent(ev))
	}
	requireNoError(scanner.Error())
	requireNoError(flush())
	summarize(diag, pipe.Registry().Len())
}
