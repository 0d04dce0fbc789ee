// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides an Ogg Vorbis decoder for the audio package.
//
// Decoding is done by github.com/jfreymuth/oggvorbis. Vorbis already
// produces float32 samples in [-1.0, 1.0], so the source passes them
// through interleaved and unchanged.
//
//	file, _ := os.Open("audio.ogg")
//	src, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// ReadSamples returns whole frames only. A destination shorter than one
// frame yields (0, nil).
package vorbis
