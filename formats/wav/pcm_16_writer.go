// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/utils"
)

const (
	headerSize = 44
	// chunkSamples bounds the scratch buffer used while streaming the data chunk.
	chunkSamples = 8192
)

// WriteWAV16 writes a 16-bit PCM WAV with the given rate and channel count.
// samples are interleaved and must hold whole frames.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels < 1 || len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d channels, %d samples", ErrInvalidChannels, channels, len(samples))
	}

	const bitsPerSample = 16
	blockAlign := channels * bitsPerSample / 8
	dataSize := uint32(len(samples) * 2)

	header := make([]byte, headerSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSamples)*2)
	for i := 0; i < len(samples); i += chunkSamples {
		chunk := samples[i:min(i+chunkSamples, len(samples))]
		out := buf[:len(chunk)*2]
		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("writing wav data: %w", err)
		}
	}

	return nil
}

// WriteBuffer encodes a planar buffer as 16-bit PCM, keeping its channel
// layout and sample rate.
func WriteBuffer(w io.Writer, b *audio.Buffer) error {
	if b == nil || len(b.Channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidChannels)
	}

	interleaved := b.Interleave()
	pcm := make([]int16, len(interleaved))
	for i, v := range interleaved {
		pcm[i] = utils.Float32ToInt16(v)
	}

	return WriteWAV16(w, b.SampleRate, len(b.Channels), pcm)
}
