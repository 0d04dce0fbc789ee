// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input is not a valid AIFF file
	ErrNotAiffFile = errors.New("not an AIFF file")
	// ErrUnsupportedAiffLayout indicates a header without a usable format
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
	// ErrNoSampleRate indicates the COMM chunk carries no sample rate
	ErrNoSampleRate = errors.New("AIFF header has no sample rate")
)
