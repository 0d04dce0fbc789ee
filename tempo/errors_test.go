// SPDX-License-Identifier: EPL-2.0

package tempo

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileNotFoundError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("open: %w", &FileNotFoundError{Path: "song.wav", Err: fs.ErrNotExist})

	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)

	var fnf *FileNotFoundError
	require.ErrorAs(t, err, &fnf)
	assert.Equal(t, "song.wav", fnf.Path)
	assert.Equal(t, "file not found: song.wav", fnf.Error())
}

func TestNoValidBPMError(t *testing.T) {
	t.Parallel()

	var err error = &NoValidBPMError{Min: 60, Max: 180}

	assert.EqualError(t, err, "no valid BPM found in range 60-180")
	assert.ErrorIs(t, err, ErrNoValidBPM)
	assert.NotErrorIs(t, err, ErrInsufficientData)

	var nv *NoValidBPMError
	require.True(t, errors.As(err, &nv))
	assert.InDelta(t, 60.0, nv.Min, 0)
	assert.InDelta(t, 180.0, nv.Max, 0)
}

func TestSentinelMessages(t *testing.T) {
	t.Parallel()

	assert.EqualError(t, ErrUnsupportedFormat, "unsupported audio format")
	assert.EqualError(t, ErrInsufficientData, "insufficient data for BPM detection")
}
