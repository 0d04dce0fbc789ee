// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var (
	ErrNotOggVorbis = errors.New("not a valid Ogg Vorbis stream")
	ErrNoChannels   = errors.New("Ogg Vorbis stream reports no channels")
)
