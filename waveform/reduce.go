// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"fmt"

	"github.com/ik5/audwave/audio"
)

// Reduce collapses buf into a single analysis channel by averaging the
// channels frame by frame. A single channel passes through unchanged.
func Reduce(buf *audio.Buffer) ([]float64, error) {
	if buf == nil || len(buf.Channels) == 0 {
		return nil, audioErr(ErrEmptyAudio)
	}

	frames := len(buf.Channels[0])
	for c, ch := range buf.Channels[1:] {
		if len(ch) != frames {
			return nil, audioErr(fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrChannelMismatch, c+1, len(ch), frames))
		}
	}
	if frames == 0 {
		return nil, audioErr(ErrEmptyAudio)
	}

	out := make([]float64, frames)
	if len(buf.Channels) == 1 {
		for f, v := range buf.Channels[0] {
			out[f] = float64(v)
		}
		return out, nil
	}

	for _, ch := range buf.Channels {
		for f, v := range ch {
			out[f] += float64(v)
		}
	}
	inv := 1 / float64(len(buf.Channels))
	for f := range out {
		out[f] *= inv
	}
	return out, nil
}
