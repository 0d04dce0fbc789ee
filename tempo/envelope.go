// SPDX-License-Identifier: EPL-2.0

package tempo

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/ik5/audbpm/audio"
)

// maxEmptyReads bounds consecutive (0, nil) reads before a source is
// treated as stalled.
const maxEmptyReads = 100

// EnvelopeExtractor turns a mono sample stream into band-limited spectral
// energy, one value per hop. Windows are not tapered.
type EnvelopeExtractor struct {
	window int
	hop    int

	lowBin  int
	highBin int

	ring  []float64
	start int
	count int

	frame  []float64
	coeffs []complex128
	fft    *fourier.FFT

	energies []float64
}

// NewEnvelopeExtractor prepares an extractor for a stream sampled at
// sampleRate. cfg is assumed valid.
func NewEnvelopeExtractor(cfg Config, sampleRate int) *EnvelopeExtractor {
	binFreq := float64(sampleRate) / float64(cfg.WindowSize)
	spectrum := cfg.WindowSize/2 + 1

	low := int(math.Round(cfg.MinFrequency / binFreq))
	high := min(int(math.Round(cfg.MaxFrequency/binFreq)), spectrum)
	low = min(low, high)

	return &EnvelopeExtractor{
		window:  cfg.WindowSize,
		hop:     cfg.HopSize,
		lowBin:  low,
		highBin: high,
		ring:    make([]float64, cfg.WindowSize),
		frame:   make([]float64, cfg.WindowSize),
		coeffs:  make([]complex128, spectrum),
		fft:     fourier.NewFFT(cfg.WindowSize),
	}
}

// Bins returns the half-open FFT bin range summed for every window.
func (e *EnvelopeExtractor) Bins() (low, high int) {
	return e.lowBin, e.highBin
}

// Write appends mono samples. Every time WindowSize samples are buffered
// one energy value is produced and the oldest HopSize samples are dropped.
func (e *EnvelopeExtractor) Write(mono []float32) {
	for _, s := range mono {
		e.ring[(e.start+e.count)%e.window] = float64(s)
		e.count++

		if e.count == e.window {
			e.flush()
		}
	}
}

func (e *EnvelopeExtractor) flush() {
	n := copy(e.frame, e.ring[e.start:])
	copy(e.frame[n:], e.ring[:e.start])

	e.coeffs = e.fft.Coefficients(e.coeffs, e.frame)

	var energy float64
	for _, c := range e.coeffs[e.lowBin:e.highBin] {
		energy += real(c)*real(c) + imag(c)*imag(c)
	}
	e.energies = append(e.energies, energy)

	e.start = (e.start + e.hop) % e.window
	e.count -= e.hop
}

// Envelope returns the energies produced so far. The slice is shared with
// the extractor until the next Write.
func (e *EnvelopeExtractor) Envelope() []float64 {
	return e.energies
}

// Windows is the number of analyzed windows.
func (e *EnvelopeExtractor) Windows() int {
	return len(e.energies)
}

// ExtractEnvelope downmixes src to mono and streams it through an
// EnvelopeExtractor until io.EOF. It does not close src.
func ExtractEnvelope(src audio.Source, cfg Config) ([]float64, error) {
	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, src.SampleRate())
	}

	ex := NewEnvelopeExtractor(cfg, src.SampleRate())
	mixer := audio.NewMonoMixer(src)

	size := mixer.BufSize()
	if size <= 0 {
		size = 4096
	}
	buf := make([]float32, size)

	empty := 0
	for {
		n, err := mixer.ReadSamples(buf)
		ex.Write(buf[:n])

		switch {
		case errors.Is(err, io.EOF):
			return ex.Envelope(), nil
		case err != nil:
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		case n == 0:
			empty++
			if empty >= maxEmptyReads {
				return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, io.ErrNoProgress)
			}
		default:
			empty = 0
		}
	}
}
