// SPDX-License-Identifier: EPL-2.0

package tempo

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrInsufficientData  = errors.New("insufficient data for BPM detection")
	ErrNoValidBPM        = errors.New("no valid BPM found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// FileNotFoundError reports an input path that could not be opened.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

func (e *FileNotFoundError) Unwrap() error { return e.Err }

func (e *FileNotFoundError) Is(target error) bool { return target == ErrFileNotFound }

// NoValidBPMError reports that no candidate fell inside the BPM range.
type NoValidBPMError struct {
	Min float64
	Max float64
}

func (e *NoValidBPMError) Error() string {
	return fmt.Sprintf("no valid BPM found in range %g-%g", e.Min, e.Max)
}

func (e *NoValidBPMError) Is(target error) bool { return target == ErrNoValidBPM }
