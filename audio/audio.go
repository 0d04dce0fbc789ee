// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"slices"
	"strings"
	"sync"
)

// Source is a stream of decoded PCM samples.
type Source interface {
	// SampleRate of the PCM stream in Hz. A value <= 0 means the decoder
	// could not determine it.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)
	// BufSize is the preferred read size in samples.
	BufSize() int
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys (file extensions such as "wav", "mp3", "ogg")
// to decoders. Keys are case-insensitive and a leading dot is ignored.
type Registry struct {
	codecs map[string]Decoder
	mtx    *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalizeFormat(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[normalizeFormat(format)]
	return d, ok
}

// Formats returns the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	formats := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		formats = append(formats, k)
	}
	slices.Sort(formats)

	return formats
}
