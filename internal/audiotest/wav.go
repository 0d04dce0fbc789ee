// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WAV fixture layout constants.
const (
	pcmFormatTag        = 1
	floatFmtTag         = 3
	extensibleFormatTag = 0xFFFE
	extensibleExtraSize = 22
)

// subFormatGUIDTail follows the format tag in a KSDATAFORMAT_SUBTYPE GUID.
var subFormatGUIDTail = []byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

// Float32ToInt16 clamps x to [-1, 1] and scales it to int16 PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(x * 32767.0)
}

// WriteWAV16 writes interleaved int16 PCM as a canonical 44-byte-header WAV.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	payload := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(payload[i*2:], uint16(s))
	}

	return WriteWAVRaw(w, pcmFormatTag, 16, sampleRate, channels, payload)
}

// WriteWAVFloat32 writes interleaved IEEE float samples (format tag 3).
func WriteWAVFloat32(w io.Writer, sampleRate, channels int, samples []float32) error {
	payload := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(payload[i*4:], math.Float32bits(s))
	}

	return WriteWAVRaw(w, floatFmtTag, 32, sampleRate, channels, payload)
}

// WriteWAVRaw writes payload as-is under any format tag and bit depth.
func WriteWAVRaw(w io.Writer, formatTag, bitsPerSample, sampleRate, channels int, payload []byte) error {
	return writeWAV(w, fmtChunk(formatTag, bitsPerSample, sampleRate, channels), payload)
}

// WriteWAVExtensible writes payload as WAVE_FORMAT_EXTENSIBLE with
// subFormat (1 for PCM, 3 for IEEE float) in the SubFormat GUID.
func WriteWAVExtensible(w io.Writer, subFormat, bitsPerSample, sampleRate, channels int, payload []byte) error {
	body := fmtChunk(extensibleFormatTag, bitsPerSample, sampleRate, channels)

	ext := make([]byte, 2+extensibleExtraSize)
	binary.LittleEndian.PutUint16(ext[0:2], extensibleExtraSize)
	binary.LittleEndian.PutUint16(ext[2:4], uint16(bitsPerSample))
	binary.LittleEndian.PutUint32(ext[4:8], 0) // channel mask
	binary.LittleEndian.PutUint16(ext[8:10], uint16(subFormat))
	copy(ext[10:], subFormatGUIDTail)

	return writeWAV(w, append(body, ext...), payload)
}

func fmtChunk(formatTag, bitsPerSample, sampleRate, channels int) []byte {
	blockAlign := channels * bitsPerSample / 8

	body := make([]byte, 16)
	binary.LittleEndian.PutUint16(body[0:2], uint16(formatTag))
	binary.LittleEndian.PutUint16(body[2:4], uint16(channels))
	binary.LittleEndian.PutUint32(body[4:8], uint32(sampleRate))
	binary.LittleEndian.PutUint32(body[8:12], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(body[12:14], uint16(blockAlign))
	binary.LittleEndian.PutUint16(body[14:16], uint16(bitsPerSample))

	return body
}

func writeWAV(w io.Writer, fmtBody, payload []byte) error {
	var header bytes.Buffer
	header.WriteString("RIFF")
	_ = binary.Write(&header, binary.LittleEndian, uint32(4+8+len(fmtBody)+8+len(payload)))
	header.WriteString("WAVEfmt ")
	_ = binary.Write(&header, binary.LittleEndian, uint32(len(fmtBody)))
	header.Write(fmtBody)
	header.WriteString("data")
	_ = binary.Write(&header, binary.LittleEndian, uint32(len(payload)))

	if _, err := w.Write(header.Bytes()); err != nil {
		return fmt.Errorf("%w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// RenderPCM16 drains src into interleaved int16 samples.
func RenderPCM16(src *MockSource) []int16 {
	var out []int16
	buf := make([]float32, src.BufSize()*max(src.Channels(), 1))
	for {
		n, err := src.ReadSamples(buf)
		for i := range n {
			out = append(out, Float32ToInt16(buf[i]))
		}
		if err != nil {
			return out
		}
	}
}

// ClickTrackWAV renders a click track (see NewClickTrackSource) to an
// in-memory 16-bit WAV file.
func ClickTrackWAV(sampleRate, channels, totalSamples, period, burst int, toneHz float64) (*bytes.Reader, error) {
	src := NewClickTrackSource(sampleRate, channels, totalSamples, period, burst, toneHz)

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, sampleRate, channels, RenderPCM16(src)); err != nil {
		return nil, err
	}

	return bytes.NewReader(buf.Bytes()), nil
}
