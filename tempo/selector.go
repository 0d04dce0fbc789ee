// SPDX-License-Identifier: EPL-2.0

package tempo

import (
	"math"
	"slices"
)

const (
	maxCandidates = 5
	// octaveTolerance is the relative magnitude gap below which the faster
	// of the two best candidates wins.
	octaveTolerance = 0.1
)

// Candidate is a local maximum of an autocorrelogram.
type Candidate struct {
	Lag       int
	BPM       float64
	Magnitude float64
}

// peaks returns strict local maxima above threshold, strongest first.
// Equal scores keep lag order.
func peaks(scores []float64, threshold float64) []Candidate {
	var out []Candidate
	for i := 1; i+1 < len(scores); i++ {
		s := scores[i]
		if s > threshold && s > scores[i-1] && s > scores[i+1] {
			out = append(out, Candidate{Lag: i, Magnitude: s})
		}
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		switch {
		case a.Magnitude > b.Magnitude:
			return -1
		case a.Magnitude < b.Magnitude:
			return 1
		}
		return 0
	})

	return out
}

// Candidates ranks the five strongest peaks of ac and keeps those whose
// tempo lies in [cfg.MinBPM, cfg.MaxBPM]. The result may be empty.
func Candidates(ac *Autocorrelogram, cfg Config) []Candidate {
	top := peaks(ac.Scores, cfg.Threshold)
	top = top[:min(len(top), maxCandidates)]

	out := make([]Candidate, 0, len(top))
	for _, c := range top {
		c.BPM = 60 / (float64(c.Lag) * ac.SecondsPerHop)
		if c.BPM >= cfg.MinBPM && c.BPM <= cfg.MaxBPM {
			out = append(out, c)
		}
	}

	return out
}

// SelectTempo picks the tempo of ac and quantizes it to half a BPM.
func SelectTempo(ac *Autocorrelogram, cfg Config) (float64, error) {
	return Select(Candidates(ac, cfg), cfg)
}

// Select picks the tempo from candidates ranked by Candidates and
// quantizes it to half a BPM.
func Select(cands []Candidate, cfg Config) (float64, error) {
	if len(cands) == 0 {
		return 0, &NoValidBPMError{Min: cfg.MinBPM, Max: cfg.MaxBPM}
	}

	return Quantize(pick(cands).BPM), nil
}

// pick prefers the faster of two nearly equal candidates.
func pick(cands []Candidate) Candidate {
	best := cands[0]
	if len(cands) < 2 {
		return best
	}

	next := cands[1]
	if math.Abs(best.Magnitude-next.Magnitude)/best.Magnitude < octaveTolerance && next.BPM > best.BPM {
		return next
	}
	return best
}

// Quantize rounds bpm to the nearest multiple of 0.5.
func Quantize(bpm float64) float64 {
	return math.Round(bpm*2) / 2
}
