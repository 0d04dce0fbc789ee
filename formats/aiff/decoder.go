// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audbpm/audio"
)

// aiffReader is the subset of aiff.Decoder used by source, to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.Source
type source struct {
	dec        aiffReader
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
			Format: s.dec.Format(),
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

	return n, err
}

var (
	formID = [4]byte{'F', 'O', 'R', 'M'}
	aiffID = [4]byte{'A', 'I', 'F', 'F'}
	aifcID = [4]byte{'A', 'I', 'F', 'C'}
)

// isAiffContainer reports whether the header read so far names a FORM/AIFF
// or FORM/AIFC container, whatever the state of its chunks.
func isAiffContainer(dec *aiff.Decoder) bool {
	return dec.ID == formID && (dec.Form == aiffID || dec.Form == aifcID)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		if !isAiffContainer(dec) {
			return nil, ErrNotAiffFile
		}
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
		}
		return nil, ErrUnsupportedAiffLayout
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}
	if format.SampleRate <= 0 {
		return nil, ErrNoSampleRate
	}

	// AIFF PCM is signed at every depth.
	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		format:     audio.PCMFormat(int(dec.BitDepth), false),
	}, nil
}
