// SPDX-License-Identifier: EPL-2.0

package tempo

import (
	"fmt"
	"io"
	"log/slog"
	"math"
)

const (
	DefaultWindowSize   = 2048
	DefaultHopSize      = 1024
	DefaultMinFrequency = 50.0
	DefaultMaxFrequency = 1000.0
	DefaultMinBPM       = 60.0
	DefaultMaxBPM       = 180.0
	DefaultThreshold    = 0.05
)

// Config holds the tunable parameters of the detection pipeline.
type Config struct {
	// WindowSize is the FFT length in samples.
	WindowSize int
	// HopSize is the number of samples between consecutive windows.
	HopSize int
	// MinFrequency and MaxFrequency bound the analyzed band in Hz.
	MinFrequency float64
	MaxFrequency float64
	// MinBPM and MaxBPM bound the accepted tempo.
	MinBPM float64
	MaxBPM float64
	// Threshold is the minimum autocorrelation score of a peak.
	Threshold float64
}

// DefaultConfig returns the configuration used when no option is given.
func DefaultConfig() Config {
	return Config{
		WindowSize:   DefaultWindowSize,
		HopSize:      DefaultHopSize,
		MinFrequency: DefaultMinFrequency,
		MaxFrequency: DefaultMaxFrequency,
		MinBPM:       DefaultMinBPM,
		MaxBPM:       DefaultMaxBPM,
		Threshold:    DefaultThreshold,
	}
}

// Validate reports the first inconsistent field. The returned error wraps
// ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.WindowSize <= 0:
		return fmt.Errorf("%w: window size must be positive: %d", ErrInvalidConfig, c.WindowSize)
	case c.HopSize <= 0 || c.HopSize > c.WindowSize:
		return fmt.Errorf("%w: hop size must be in (0, %d]: %d", ErrInvalidConfig, c.WindowSize, c.HopSize)
	case !finite(c.MinFrequency, c.MaxFrequency) || c.MinFrequency < 0 || c.MinFrequency >= c.MaxFrequency:
		return fmt.Errorf("%w: frequency band %g-%g", ErrInvalidConfig, c.MinFrequency, c.MaxFrequency)
	case !finite(c.MinBPM, c.MaxBPM) || c.MinBPM <= 0 || c.MinBPM >= c.MaxBPM:
		return fmt.Errorf("%w: BPM range %g-%g", ErrInvalidConfig, c.MinBPM, c.MaxBPM)
	case !finite(c.Threshold) || c.Threshold < 0 || c.Threshold >= 1:
		return fmt.Errorf("%w: threshold must be in [0, 1): %g", ErrInvalidConfig, c.Threshold)
	}
	return nil
}

// SecondsPerHop is the envelope resolution for the given sample rate.
func (c Config) SecondsPerHop(sampleRate int) float64 {
	return float64(c.HopSize) / float64(sampleRate)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type settings struct {
	cfg    Config
	logger *slog.Logger
}

// Option configures a Detector.
type Option func(*settings)

// WithWindowSize sets the FFT window length (default 2048).
func WithWindowSize(n int) Option {
	return func(s *settings) { s.cfg.WindowSize = n }
}

// WithHopSize sets the distance between windows (default 1024).
func WithHopSize(n int) Option {
	return func(s *settings) { s.cfg.HopSize = n }
}

// WithFrequencyBand restricts energy to [minHz, maxHz) (default 50-1000).
func WithFrequencyBand(minHz, maxHz float64) Option {
	return func(s *settings) {
		s.cfg.MinFrequency = minHz
		s.cfg.MaxFrequency = maxHz
	}
}

// WithBPMRange sets the accepted tempo range (default 60-180).
func WithBPMRange(minBPM, maxBPM float64) Option {
	return func(s *settings) {
		s.cfg.MinBPM = minBPM
		s.cfg.MaxBPM = maxBPM
	}
}

// WithThreshold sets the minimum peak score (default 0.05).
func WithThreshold(t float64) Option {
	return func(s *settings) { s.cfg.Threshold = t }
}

// WithConfig replaces the whole configuration. Options given after it
// still apply.
func WithConfig(cfg Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithLogger sets the logger receiving debug records. A nil logger
// disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
