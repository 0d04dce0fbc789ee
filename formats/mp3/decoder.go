// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audbpm/audio"
)

// go-mp3 always emits 16-bit little-endian interleaved stereo.
const (
	outputChannels = 2
	bytesPerSample = 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int
	buf        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

// BufSize returns sample capacity, not bytes.
func (s *source) BufSize() int { return cap(s.buf) / bytesPerSample }

// ReadSamples fills dst with whole stereo frames. A short final read is
// reported together with io.EOF.
func (s *source) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / s.channels
	if frames == 0 {
		return 0, nil
	}

	need := frames * s.channels * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.dec, s.buf)
	switch {
	case n == 0 && err != nil:
		return 0, err
	case errors.Is(err, io.ErrUnexpectedEOF):
		err = io.EOF
	}

	samples := n / bytesPerSample
	samples -= samples % s.channels
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))
		dst[i] = audio.FormatS16.ToFloat(int(v))
	}

	if samples == 0 && err == nil {
		err = io.EOF
	}
	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMp3File, err)
	}

	if dec.SampleRate() <= 0 {
		return nil, ErrNoSampleRate
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   outputChannels,
		buf:        make([]byte, 8192),
	}, nil
}
