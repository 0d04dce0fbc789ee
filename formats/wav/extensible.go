// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// Offset of the SubFormat GUID inside a WAVE_FORMAT_EXTENSIBLE fmt chunk.
// Its first two bytes are the effective format tag.
const subFormatOffset = 24

var errShortFmtChunk = errors.New("extensible fmt chunk too short")

// extensibleSubFormat returns the format tag carried by the SubFormat GUID
// of the fmt chunk. The read position of rs is restored.
func extensibleSubFormat(rs io.ReadSeeker) (tag int, err error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	defer func() {
		if _, serr := rs.Seek(pos, io.SeekStart); serr != nil && err == nil {
			err = fmt.Errorf("%w", serr)
		}
	}()

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	p := riff.New(rs)
	if err := p.ParseHeaders(); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}

		body := make([]byte, ch.Size)
		if _, err := io.ReadFull(ch, body); err != nil {
			return 0, fmt.Errorf("%w", err)
		}
		if len(body) < subFormatOffset+2 {
			return 0, errShortFmtChunk
		}

		return int(binary.LittleEndian.Uint16(body[subFormatOffset:])), nil
	}
}
