// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audbpm/audio"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

// ReadSamples decodes straight into dst. The oggvorbis reader counts
// interleaved values, so only whole frames are requested.
func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:want])
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotOggVorbis, err)
	}

	if dec.Channels() <= 0 {
		return nil, ErrNoChannels
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
