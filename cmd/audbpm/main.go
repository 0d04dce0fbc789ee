// SPDX-License-Identifier: EPL-2.0

// Command audbpm prints the estimated tempo of an audio file.
//
// Usage:
//
//	audbpm song.wav
//	audbpm -min-bpm 90 -max-bpm 150 song.mp3
//	audbpm -min-freq 40 -max-freq 400 -v song.ogg   # debug log on stderr
//
// The exit status is 1 when no tempo could be estimated.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ik5/audbpm"
	"github.com/ik5/audbpm/tempo"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("audbpm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: audbpm [flags] <audio_file>\n\nFlags:\n")
		fs.PrintDefaults()
	}

	def := tempo.DefaultConfig()
	window := fs.Int("window", def.WindowSize, "FFT window size in samples")
	hop := fs.Int("hop", def.HopSize, "hop size in samples")
	minFreq := fs.Float64("min-freq", def.MinFrequency, "lower edge of the analyzed band in Hz")
	maxFreq := fs.Float64("max-freq", def.MaxFrequency, "upper edge of the analyzed band in Hz")
	minBPM := fs.Float64("min-bpm", def.MinBPM, "slowest accepted tempo")
	maxBPM := fs.Float64("max-bpm", def.MaxBPM, "fastest accepted tempo")
	threshold := fs.Float64("threshold", def.Threshold, "minimum autocorrelation peak score")
	verbose := fs.Bool("v", false, "log analysis details to stderr")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}

	opts := []tempo.Option{
		tempo.WithWindowSize(*window),
		tempo.WithHopSize(*hop),
		tempo.WithFrequencyBand(*minFreq, *maxFreq),
		tempo.WithBPMRange(*minBPM, *maxBPM),
		tempo.WithThreshold(*threshold),
	}
	if *verbose {
		opts = append(opts, tempo.WithLogger(slog.New(
			slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)))
	}

	bpm, err := audbpm.DetectFile(fs.Arg(0), opts...)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return exitError
	}

	fmt.Fprintf(stdout, "Estimated BPM: %.1f\n", bpm)
	return exitOK
}
