// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Clamp limits x to [-1, 1].
func Clamp(x float32) float32 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	}
	return x
}

// Float32ToInt16 converts a normalized sample to 16-bit PCM.
// Negative values scale by 32768 and positive ones by 32767, so both
// full-scale ends are reachable without overflow.
func Float32ToInt16(x float32) int16 {
	x = Clamp(x)
	if x < 0 {
		return int16(x * 32768)
	}
	return int16(x * 32767)
}

// ScaleToBits maps a normalized value onto a signed integer range of the
// given bit depth, rounding to nearest. 8 bits gives [-128,127], 16 bits
// gives [-32768,32767].
func ScaleToBits(x float64, bits int) int {
	x = math.Max(-1, math.Min(1, x))
	full := float64(int(1) << (bits - 1))
	if x < 0 {
		return int(math.Round(x * full))
	}
	return int(math.Round(x * (full - 1)))
}

// PCMToFloat32 normalizes a signed integer PCM sample of bitDepth bits
// to [-1, 1). Unknown depths are treated as 16 bit.
func PCMToFloat32(v int, bitDepth int) float32 {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		bitDepth = 16
	}
	return float32(float64(v) / float64(int64(1)<<(bitDepth-1)))
}
