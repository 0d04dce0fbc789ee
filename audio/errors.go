// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var ErrNoChannels = errors.New("source reports no channels")
