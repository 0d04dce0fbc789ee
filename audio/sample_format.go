// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// SampleFormat identifies how a decoder encodes one integer sample. It is
// used to convert decoder output once, at the decoder boundary, into the
// float32 [-1,1] representation every Source produces.
type SampleFormat int

const (
	FormatUnknown SampleFormat = iota
	FormatU8                   // unsigned 8-bit, 128 is silence (WAV)
	FormatS8                   // signed 8-bit (AIFF)
	FormatS16
	FormatS24
	FormatS32
	FormatF32 // IEEE float bits carried in an int32
)

// PCMFormat picks the integer format for a bit depth. unsigned8 selects
// FormatU8 over FormatS8 for 8-bit data.
func PCMFormat(bitDepth int, unsigned8 bool) SampleFormat {
	switch bitDepth {
	case 8:
		if unsigned8 {
			return FormatU8
		}
		return FormatS8
	case 16:
		return FormatS16
	case 24:
		return FormatS24
	case 32:
		return FormatS32
	default:
		return FormatUnknown
	}
}

func (f SampleFormat) String() string {
	switch f {
	case FormatU8:
		return "u8"
	case FormatS8:
		return "s8"
	case FormatS16:
		return "s16"
	case FormatS24:
		return "s24"
	case FormatS32:
		return "s32"
	case FormatF32:
		return "f32"
	default:
		return "unknown"
	}
}

// Known reports whether samples of this format can be converted.
func (f SampleFormat) Known() bool {
	return f != FormatUnknown
}

// ToFloat converts one raw sample to [-1,1]. Unknown formats yield 0.
func (f SampleFormat) ToFloat(v int) float32 {
	switch f {
	case FormatU8:
		return (float32(v) - 128.0) / 128.0
	case FormatS8:
		return float32(v) / 128.0
	case FormatS16:
		return float32(v) / 32768.0
	case FormatS24:
		return float32(v) / 8388608.0
	case FormatS32:
		return float32(float64(v) / 2147483648.0)
	case FormatF32:
		return math.Float32frombits(uint32(int32(v)))
	default:
		return 0
	}
}

// Convert writes ToFloat(src[i]) into dst for every i and returns the
// number of samples written, which is min(len(dst), len(src)).
func (f SampleFormat) Convert(dst []float32, src []int) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = f.ToFloat(src[i])
	}

	return n
}
