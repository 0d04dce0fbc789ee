// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides an MP3 decoder for the audio package.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, which always produces
// 16-bit interleaved stereo. Mono files are therefore reported as two
// identical channels.
//
//	file, _ := os.Open("audio.mp3")
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// ReadSamples only returns whole stereo frames, so n is always even.
//
// Errors:
//   - ErrNotMp3File: no MPEG audio frame could be parsed
//   - ErrNoSampleRate: the stream reports a zero sample rate
package mp3
