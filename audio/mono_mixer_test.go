// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audbpm/internal/audiotest"
)

func TestMonoMixer_MonoPassthrough(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 100, 0.5)
	mixer := NewMonoMixer(src)

	buf := make([]float32, 10)
	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 10 {
		t.Errorf("ReadSamples() n = %d, want 10", n)
	}

	for i := range n {
		if buf[i] != 0.5 {
			t.Errorf("buf[%d] = %v, want 0.5", i, buf[i])
		}
	}
}

func TestMonoMixer_Averages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		want     float32
	}{
		{"stereo", 2, 0.05},
		{"quad", 4, 0.15},
		{"octo", 8, 0.35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewMockSource(8000, tt.channels, 100, func(sample int, channel int) float32 {
				return float32(channel) / 10.0
			})
			mixer := NewMonoMixer(src)

			if mixer.Channels() != 1 {
				t.Fatalf("Channels() = %d, want 1", mixer.Channels())
			}

			buf := make([]float32, 10)
			n, err := mixer.ReadSamples(buf)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != 10 {
				t.Fatalf("ReadSamples() n = %d, want 10", n)
			}

			for i := range n {
				if math.Abs(float64(buf[i]-tt.want)) > 1e-6 {
					t.Errorf("buf[%d] = %v, want %v", i, buf[i], tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_EOF(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 5)
	mixer := NewMonoMixer(src)

	buf := make([]float32, 10)
	n, err := mixer.ReadSamples(buf)
	if err != io.EOF {
		t.Errorf("ReadSamples() error = %v, want io.EOF", err)
	}
	if n != 5 {
		t.Errorf("ReadSamples() n = %d, want 5", n)
	}

	n, err = mixer.ReadSamples(buf)
	if err != io.EOF || n != 0 {
		t.Errorf("second ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestMonoMixer_EmptyBuffer(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 100))

	n, err := mixer.ReadSamples(nil)
	if err != nil || n != 0 {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestMonoMixer_NoChannels(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 0, 100))

	_, err := mixer.ReadSamples(make([]float32, 16))
	if !errors.Is(err, ErrNoChannels) {
		t.Errorf("ReadSamples() error = %v, want ErrNoChannels", err)
	}
}

func TestMonoMixer_LargeBufferGrowsScratch(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 2, 8000, 0.25)
	mixer := NewMonoMixer(src)

	buf := make([]float32, 16384)
	n, err := mixer.ReadSamples(buf)
	if err != io.EOF {
		t.Fatalf("ReadSamples() error = %v, want io.EOF", err)
	}
	if n != 8000 {
		t.Errorf("ReadSamples() n = %d, want 8000", n)
	}
	if buf[n-1] != 0.25 {
		t.Errorf("buf[%d] = %v, want 0.25", n-1, buf[n-1])
	}
}

func TestMonoMixer_PreservesMetadata(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(44100, 2, 100)
	mixer := NewMonoMixer(src)

	if mixer.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", mixer.SampleRate())
	}
	if mixer.BufSize() != src.BufSize() {
		t.Errorf("BufSize() = %d, want %d", mixer.BufSize(), src.BufSize())
	}
	if err := mixer.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}

func BenchmarkMonoMixer_StereoToMono(b *testing.B) {
	src := audiotest.NewSineSource(8000, 2, 100000, 440.0)
	mixer := NewMonoMixer(src)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src.Reset()
		for {
			_, err := mixer.ReadSamples(buf)
			if err == io.EOF {
				break
			}
		}
	}
}
