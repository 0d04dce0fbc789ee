// SPDX-License-Identifier: EPL-2.0

package tempo

import (
	"bytes"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audbpm/internal/audiotest"
)

// clickTrack is ten seconds of 0.1 s bursts at 120 BPM.
func clickTrack(channels int) *audiotest.MockSource {
	return audiotest.NewClickTrackSource(testRate, channels, 10*testRate, testRate/2, testRate/10, 400)
}

func TestDetectFromEnvelope_PulseTrains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		period     int
		sampleRate int
		want       float64
	}{
		{"120 BPM", 25, testRate, 120},
		{"150 BPM", 20, testRate, 150},
		{"100 BPM", 30, testRate, 100},
		{"75 BPM", 40, testRate, 75},
		{"quantized at 44.1 kHz", 25, 44100, 103.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := audiotest.PulseEnvelope(500, tt.period, 3)
			bpm, err := DetectFromEnvelope(env, tt.sampleRate, DefaultHopSize, DefaultConfig())
			require.NoError(t, err)
			assert.InDelta(t, tt.want, bpm, 0)
		})
	}
}

func TestDetectFromEnvelope_Errors(t *testing.T) {
	t.Parallel()

	narrow := DefaultConfig()
	narrow.MinBPM = 130

	tests := []struct {
		name     string
		env      []float64
		cfg      Config
		wantErr  error
		wantLow  float64
		wantHigh float64
	}{
		{"too short", []float64{1, 0}, DefaultConfig(), ErrInsufficientData, 0, 0},
		{"silence", make([]float64, 500), DefaultConfig(), ErrInsufficientData, 0, 0},
		{"constant energy", audiotest.ConstantEnvelope(200, 3), DefaultConfig(), ErrNoValidBPM, 60, 180},
		{"tempo outside range", audiotest.PulseEnvelope(500, 25, 3), narrow, ErrNoValidBPM, 130, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DetectFromEnvelope(tt.env, testRate, DefaultHopSize, tt.cfg)
			require.ErrorIs(t, err, tt.wantErr)

			if tt.wantErr == ErrNoValidBPM {
				var nv *NoValidBPMError
				require.ErrorAs(t, err, &nv)
				assert.InDelta(t, tt.wantLow, nv.Min, 0)
				assert.InDelta(t, tt.wantHigh, nv.Max, 0)
			}
		})
	}
}

func TestDetectFromEnvelope_HopSize(t *testing.T) {
	t.Parallel()

	// Halving the hop at half the sample rate keeps 20 ms per value.
	env := audiotest.PulseEnvelope(500, 25, 3)
	bpm, err := DetectFromEnvelope(env, testRate/2, 512, DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, 120.0, bpm, 0)
}

func TestDetector_DetectFromEnvelope_BadSampleRate(t *testing.T) {
	t.Parallel()

	d, err := NewDetector()
	require.NoError(t, err)

	_, err = d.DetectFromEnvelope(audiotest.PulseEnvelope(500, 25, 3), 0)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDetector_DetectSource(t *testing.T) {
	t.Parallel()

	d, err := NewDetector()
	require.NoError(t, err)

	for _, channels := range []int{1, 2} {
		bpm, err := d.DetectSource(clickTrack(channels))
		require.NoError(t, err, "channels=%d", channels)
		assert.InDelta(t, 120.0, bpm, 0, "channels=%d", channels)
	}
}

func TestDetector_DetectSource_Deterministic(t *testing.T) {
	t.Parallel()

	d, err := NewDetector()
	require.NoError(t, err)

	src := clickTrack(1)
	first, err := d.DetectSource(src)
	require.NoError(t, err)

	src.Reset()
	second, err := d.DetectSource(src)
	require.NoError(t, err)

	assert.InDelta(t, first, second, 0)
}

func TestDetector_DetectSource_InsufficientData(t *testing.T) {
	t.Parallel()

	d, err := NewDetector()
	require.NoError(t, err)

	tests := map[string]*audiotest.MockSource{
		"empty":                 audiotest.NewSilentSource(testRate, 1, 0),
		"shorter than a window": audiotest.NewClickTrackSource(testRate, 1, 2000, 1000, 100, 400),
		"two windows":           audiotest.NewClickTrackSource(testRate, 1, 3072, 1024, 512, 400),
		"silence":               audiotest.NewSilentSource(testRate, 2, 5*testRate),
	}

	for name, src := range tests {
		_, err := d.DetectSource(src)
		assert.ErrorIs(t, err, ErrInsufficientData, name)
	}
}

func TestDetector_SilentBand(t *testing.T) {
	t.Parallel()

	d, err := NewDetector(WithFrequencyBand(3000, 3010))
	require.NoError(t, err)

	_, err = d.DetectSource(clickTrack(1))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestDetector_NarrowBandWithoutBeat(t *testing.T) {
	t.Parallel()

	// Both sources repeat every 16 samples, so all windows are identical.
	steadyTone := audiotest.NewMockSource(testRate, 1, 10*testRate, func(i, _ int) float32 {
		return float32(0.5 * math.Sin(2*math.Pi*float64(i%16)/16))
	})

	tests := []struct {
		name         string
		src          *audiotest.MockSource
		minHz, maxHz float64
	}{
		{"DC bin only", audiotest.NewConstantSource(testRate, 1, 10*testRate, 0.5), 0, 20},
		{"around a steady 3200 Hz tone", steadyTone, 3150, 3250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := NewDetector(WithFrequencyBand(tt.minHz, tt.maxHz))
			require.NoError(t, err)

			low, high := NewEnvelopeExtractor(d.Config(), testRate).Bins()
			require.Less(t, low, high, "band must cover at least one bin")

			_, err = d.DetectSource(tt.src)
			require.Error(t, err)
		})
	}
}

func TestDetector_Logging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	d, err := NewDetector(WithLogger(logger))
	require.NoError(t, err)

	bpm, err := d.DetectSource(clickTrack(1))
	require.NoError(t, err)
	assert.InDelta(t, 120.0, bpm, 0)

	out := buf.String()
	assert.Contains(t, out, "energy envelope extracted")
	assert.Contains(t, out, "windows=499")
	assert.Contains(t, out, "min_lag=17")
	assert.Contains(t, out, "max_lag=50")
	assert.Contains(t, out, "tempo candidate")
	assert.Contains(t, out, "tempo selected")
	assert.Contains(t, out, "bpm=120")
}

func TestDetector_Concurrent(t *testing.T) {
	t.Parallel()

	d, err := NewDetector()
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]float64, 4)
	errs := make([]error, 4)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = d.DetectSource(clickTrack(1 + i%2))
		}()
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.InDelta(t, 120.0, results[i], 0)
	}
}

func BenchmarkDetector_DetectSource(b *testing.B) {
	d, err := NewDetector()
	require.NoError(b, err)
	src := clickTrack(2)

	b.ReportAllocs()
	for b.Loop() {
		src.Reset()
		_, _ = d.DetectSource(src)
	}
}
