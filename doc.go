// SPDX-License-Identifier: EPL-2.0

// Package audbpm estimates the tempo of recorded music.
//
// The package decodes a file, downmixes it to mono and hands the samples to
// the tempo package, which measures how regularly the energy of a
// frequency band repeats:
//
//	bpm, err := audbpm.DetectFile("song.wav")
//	if err != nil {
//	    // errors.Is(err, tempo.ErrFileNotFound), tempo.ErrUnsupportedFormat, ...
//	}
//	fmt.Printf("Estimated BPM: %.1f\n", bpm)
//
// The result is a single constant tempo rounded to half a BPM. Tracks whose
// tempo drifts get an average at best.
//
// # Supported Formats
//
// The decoder is chosen by file extension:
//   - WAV (.wav, .wave) via formats/wav: 8/16/24/32-bit PCM and 32-bit float
//   - AIFF (.aiff, .aif) via formats/aiff: 8/16/24/32-bit PCM
//   - MP3 (.mp3) via formats/mp3
//   - Ogg Vorbis (.ogg, .oga) via formats/vorbis
//
// # Tuning
//
// DetectFile and DetectReader accept tempo options:
//
//	bpm, err := audbpm.DetectFile("song.mp3",
//	    tempo.WithBPMRange(90, 150),
//	    tempo.WithFrequencyBand(40, 400),
//	)
//
// Callers that already hold an audio.Source use tempo.Detector directly.
package audbpm
