// SPDX-License-Identifier: EPL-2.0

// Package wav decodes WAV files into an audio.Source.
//
// Decoding is done by github.com/go-audio/wav. Supported encodings:
//   - PCM 8-bit (unsigned), 16-bit, 24-bit and 32-bit
//   - IEEE float 32-bit
//   - WAVE_FORMAT_EXTENSIBLE with a PCM or IEEE float SubFormat
//   - Any channel count and sample rate
//
// The SubFormat GUID of extensible files is read with github.com/go-audio/riff,
// since go-audio/wav only reports the outer format tag.
//
// Samples with any other bit depth decode as silence rather than an error,
// so tempo detection reports insufficient data for them. Compressed
// encodings (ADPCM, mu-law, ...) fail with ErrUnsupportedEncoding.
//
//	f, _ := os.Open("track.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
package wav
