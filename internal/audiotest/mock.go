// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic sources and fixtures for tests.
package audiotest

import (
	"io"
	"math"
)

// MockSource generates audio from a waveform function. It satisfies
// audio.Source without importing it to avoid cycles.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) float32
	readErr      error
	readErrAt    int
}

// NewMockSource creates a source of totalSamples frames whose values come
// from waveform(frameIndex, channel).
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
		readErrAt:    -1,
	}
}

func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return value
	})
}

// NewClickTrackSource emits a toneHz sine burst of burst frames at the start
// of every period frames, silence elsewhere. With period = 60*sampleRate/bpm
// the track has a steady tempo of bpm.
func NewClickTrackSource(sampleRate, channels, totalSamples, period, burst int, toneHz float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, ClickTrack(sampleRate, period, burst, toneHz))
}

// ClickTrack returns the waveform used by NewClickTrackSource.
func ClickTrack(sampleRate, period, burst int, toneHz float64) func(sample int, channel int) float32 {
	return func(sample int, channel int) float32 {
		if sample%period >= burst {
			return 0
		}
		t := float64(sample) / float64(sampleRate)
		return float32(0.8 * math.Sin(2*math.Pi*toneHz*t))
	}
}

// FailAfter makes ReadSamples return err once frames frames were produced.
func (m *MockSource) FailAfter(frames int, err error) *MockSource {
	m.readErrAt = frames
	m.readErr = err
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source to its first frame.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.readErrAt >= 0 && m.generated >= m.readErrAt {
		return 0, m.readErr
	}
	if m.generated >= m.totalSamples || m.channels <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	if m.readErrAt >= 0 {
		frames = min(frames, m.readErrAt-m.generated)
	}

	for f := range frames {
		idx := m.generated + f
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(idx, ch)
		}
	}

	m.generated += frames
	n := frames * m.channels

	if m.generated >= m.totalSamples {
		return n, io.EOF
	}

	return n, nil
}
