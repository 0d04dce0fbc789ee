// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audbpm/audio"
)

// WAVE format tags.
const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

// pcmReader is the subset of wav.Decoder the source needs, so tests can
// substitute it.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	format     audio.SampleFormat
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: &goaudio.Format{NumChannels: s.channels, SampleRate: s.sampleRate},
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	// Unknown bit depths decode as silence.
	n = s.format.Convert(dst, s.intBuf.Data[:n])

	if n < len(dst) && err == nil {
		return n, io.EOF
	}
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		// go-audio needs to seek between chunks.
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedWavLayout
	}
	if format.SampleRate <= 0 {
		return nil, ErrNoSampleRate
	}

	tag := int(dec.WavAudioFormat)
	if tag == formatExtensible {
		sub, err := extensibleSubFormat(rs)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
		}
		tag = sub
	}

	sampleFormat, err := sampleFormatFor(tag, int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		format:     sampleFormat,
	}, nil
}

// sampleFormatFor maps a WAVE format tag and bit depth to the sample
// conversion. Extensible files must be resolved to their SubFormat tag
// first. Compressed encodings are rejected; PCM with an odd bit depth
// maps to audio.FormatUnknown.
func sampleFormatFor(tag, bitDepth int) (audio.SampleFormat, error) {
	switch tag {
	case formatPCM:
		return audio.PCMFormat(bitDepth, true), nil
	case formatIEEEFloat:
		if bitDepth == 32 {
			return audio.FormatF32, nil
		}
		return audio.FormatUnknown, nil
	default:
		return audio.FormatUnknown, fmt.Errorf("%w: format tag %#x", ErrUnsupportedEncoding, tag)
	}
}
