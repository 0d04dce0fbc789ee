// SPDX-License-Identifier: EPL-2.0

package tempo

import (
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

// minEnvelopeLen is the shortest envelope that can hold an interior peak.
const minEnvelopeLen = 3

// Autocorrelogram holds autocorrelation scores of a normalized envelope.
// Scores[L] is the mean product of values L hops apart for L in
// [MinLag, MaxLag); every other entry is zero.
type Autocorrelogram struct {
	Scores        []float64
	MinLag        int
	MaxLag        int
	SecondsPerHop float64
}

// LagRange converts the BPM bounds of cfg to envelope lags. The fastest
// tempo gives the shortest lag, never below one hop.
func LagRange(secondsPerHop float64, cfg Config) (minLag, maxLag int) {
	minLag = max(int(math.Round((60/cfg.MaxBPM)/secondsPerHop)), 1)
	maxLag = int(math.Round((60 / cfg.MinBPM) / secondsPerHop))
	return minLag, maxLag
}

// Autocorrelate normalizes envelope by its maximum and scores every lag
// in the BPM range of cfg. The input is not modified.
func Autocorrelate(envelope []float64, secondsPerHop float64, cfg Config) (*Autocorrelogram, error) {
	if len(envelope) < minEnvelopeLen {
		return nil, ErrInsufficientData
	}

	peak := floats.Max(envelope)
	if peak <= 0 {
		return nil, ErrInsufficientData
	}

	norm := make([]float64, len(envelope))
	f64.Scale(norm, envelope, 1/peak)

	minLag, maxLag := LagRange(secondsPerHop, cfg)
	scores := make([]float64, max(maxLag, 0))

	n := len(norm)
	for lag := minLag; lag < maxLag && lag < n; lag++ {
		m := n - lag
		scores[lag] = f64.DotProduct(norm[:m], norm[lag:]) / float64(m)
	}

	return &Autocorrelogram{
		Scores:        scores,
		MinLag:        minLag,
		MaxLag:        maxLag,
		SecondsPerHop: secondsPerHop,
	}, nil
}
