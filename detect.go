// SPDX-License-Identifier: EPL-2.0

package audbpm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ik5/audbpm/audio"
	"github.com/ik5/audbpm/formats/aiff"
	"github.com/ik5/audbpm/formats/mp3"
	"github.com/ik5/audbpm/formats/vorbis"
	"github.com/ik5/audbpm/formats/wav"
	"github.com/ik5/audbpm/tempo"
)

var defaultRegistry = sync.OnceValue(NewRegistry)

// NewRegistry returns a registry holding every decoder of this module,
// keyed by file extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}

// DetectFile estimates the tempo of the audio file at path. The decoder is
// chosen by the file extension.
func DetectFile(path string, opts ...tempo.Option) (float64, error) {
	d, err := tempo.NewDetector(opts...)
	if err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, &tempo.FileNotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	return detect(d, f, filepath.Ext(path))
}

// DetectReader estimates the tempo of an encoded stream. format is a file
// extension such as "wav" or ".mp3".
func DetectReader(r io.Reader, format string, opts ...tempo.Option) (float64, error) {
	d, err := tempo.NewDetector(opts...)
	if err != nil {
		return 0, err
	}

	return detect(d, r, format)
}

func detect(d *tempo.Detector, r io.Reader, format string) (float64, error) {
	dec, ok := defaultRegistry().Get(format)
	if !ok {
		return 0, fmt.Errorf("%w: no decoder for %q", tempo.ErrUnsupportedFormat, format)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", tempo.ErrUnsupportedFormat, err)
	}
	defer src.Close()

	return d.DetectSource(src)
}
