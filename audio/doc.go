// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoded-sample plumbing that feeds tempo
// detection.
//
// This package contains:
//   - Source interface for streaming decoded PCM
//   - Decoder interface and a Registry keyed by file extension
//   - MonoMixer, which averages interleaved channels into one
//   - SampleFormat, which converts integer decoder output to float32
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Every format decoder returns a Source. Samples are interleaved float32
// values in [-1.0, 1.0]; ReadSamples returns io.EOF when the stream ends.
//
// # Channel Mixing
//
//	mono := audio.NewMonoMixer(source)
//	buf := make([]float32, mono.BufSize())
//	n, err := mono.ReadSamples(buf)
//
// # Sample Formats
//
// Decoders that hand out integers (WAV, AIFF) convert them once through a
// SampleFormat so downstream code only ever sees float32:
//
//	f := audio.PCMFormat(16, false)
//	n := f.Convert(dst, ints)
//
// A decoder that meets an unrecognized bit depth uses FormatUnknown and
// yields no samples instead of failing.
package audio
