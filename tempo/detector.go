// SPDX-License-Identifier: EPL-2.0

package tempo

import (
	"fmt"
	"log/slog"

	"github.com/ik5/audbpm/audio"
)

// Detector estimates the tempo of audio with a fixed configuration. It is
// safe for concurrent use.
type Detector struct {
	cfg    Config
	logger *slog.Logger
}

// NewDetector applies opts to DefaultConfig and validates the result.
func NewDetector(opts ...Option) (*Detector, error) {
	s := settings{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&s)
	}

	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	if s.logger == nil {
		s.logger = discardLogger()
	}

	return &Detector{cfg: s.cfg, logger: s.logger}, nil
}

// NewDetectorWithConfig validates cfg and builds a Detector from it.
func NewDetectorWithConfig(cfg Config, opts ...Option) (*Detector, error) {
	return NewDetector(append([]Option{WithConfig(cfg)}, opts...)...)
}

// Config returns a copy of the detector configuration.
func (d *Detector) Config() Config {
	return d.cfg
}

// DetectSource reads src to the end and returns its tempo in BPM. The
// caller keeps ownership of src.
func (d *Detector) DetectSource(src audio.Source) (float64, error) {
	energies, err := ExtractEnvelope(src, d.cfg)
	if err != nil {
		return 0, err
	}

	d.logger.Debug("energy envelope extracted",
		slog.Int("sample_rate", src.SampleRate()),
		slog.Int("channels", src.Channels()),
		slog.Int("windows", len(energies)))

	return d.DetectFromEnvelope(energies, src.SampleRate())
}

// DetectFromEnvelope estimates the tempo of an energy envelope that was
// produced with this detector's hop size at sampleRate.
func (d *Detector) DetectFromEnvelope(energies []float64, sampleRate int) (float64, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, sampleRate)
	}

	ac, err := Autocorrelate(energies, d.cfg.SecondsPerHop(sampleRate), d.cfg)
	if err != nil {
		return 0, err
	}

	d.logger.Debug("autocorrelation computed",
		slog.Int("min_lag", ac.MinLag),
		slog.Int("max_lag", ac.MaxLag),
		slog.Float64("seconds_per_hop", ac.SecondsPerHop))

	cands := Candidates(ac, d.cfg)
	for i, c := range cands {
		d.logger.Debug("tempo candidate",
			slog.Int("rank", i),
			slog.Int("lag", c.Lag),
			slog.Float64("bpm", c.BPM),
			slog.Float64("magnitude", c.Magnitude))
	}

	bpm, err := Select(cands, d.cfg)
	if err != nil {
		return 0, err
	}

	d.logger.Debug("tempo selected", slog.Float64("bpm", bpm))

	return bpm, nil
}

// DetectFromEnvelope estimates the tempo of energies computed every
// hopSize samples at sampleRate, using cfg.
func DetectFromEnvelope(energies []float64, sampleRate, hopSize int, cfg Config) (float64, error) {
	cfg.HopSize = hopSize
	if cfg.WindowSize < hopSize {
		cfg.WindowSize = hopSize
	}

	d, err := NewDetectorWithConfig(cfg)
	if err != nil {
		return 0, err
	}

	return d.DetectFromEnvelope(energies, sampleRate)
}
