// SPDX-License-Identifier: EPL-2.0

// Package aiff provides an AIFF decoder for the audio package.
//
// The decoder wraps github.com/go-audio/aiff and exposes the file as an
// audio.Source producing interleaved float32 samples in [-1.0, 1.0].
//
// # Usage
//
//	file, _ := os.Open("audio.aif")
//	src, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// # Sample formats
//
// AIFF stores signed big-endian PCM. 8, 16, 24 and 32 bit samples are
// normalized by their full-scale value. Chunks with any other bit depth
// are skipped and yield no samples.
//
// # Errors
//
//   - ErrNotAiffFile: the input is not an AIFF stream
//   - ErrUnsupportedAiffLayout: the header carries no usable channel layout
//   - ErrNoSampleRate: the header reports a zero sample rate
package aiff
