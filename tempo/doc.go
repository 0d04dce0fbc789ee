// SPDX-License-Identifier: EPL-2.0

// Package tempo estimates the constant tempo of a recording.
//
// Detection runs in three stages:
//
//  1. EnvelopeExtractor computes the spectral energy of a frequency band
//     for overlapping windows of a mono stream, one value per hop.
//  2. Autocorrelate normalizes that envelope and scores every lag that
//     corresponds to a tempo in the configured BPM range.
//  3. SelectTempo ranks the autocorrelation peaks, prefers the faster of
//     two nearly equal candidates and rounds the result to half a BPM.
//
// Detector ties the stages together:
//
//	d, err := tempo.NewDetector(tempo.WithBPMRange(80, 160))
//	if err != nil {
//	    // invalid configuration
//	}
//	bpm, err := d.DetectSource(src)
//
// Errors can be matched with errors.Is against ErrFileNotFound,
// ErrUnsupportedFormat, ErrInsufficientData, ErrNoValidBPM and
// ErrInvalidConfig. NoValidBPMError and FileNotFoundError carry the
// details.
package tempo
