// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	ErrNotMp3File   = errors.New("not a valid MP3 stream")
	ErrNoSampleRate = errors.New("MP3 stream reports no sample rate")
)
