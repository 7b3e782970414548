// SPDX-License-Identifier: GPL-2.0-or-later

package math

import "math"

// AngleMod32 changes an angle to be within 0-360 degrees
func AngleMod32(a float32) float32 {
	return float32(AngleMod(float64(a)))
}

// AngleMod changes an angle to be within 0-360 degrees
func AngleMod(a float64) float64 {
	return a - math.Floor(a/360)*360
}

// AngleDelta changes an angle to be within -180-180 degrees
func AngleDelta(a float32) float32 {
	a = AngleMod32(a)
	if a > 180 {
		a -= 360
	}
	return a
}

// ClampPitch keeps a pitch angle from flipping over the poles.
func ClampPitch(p float32) float32 {
	return Clamp(-90, AngleDelta(p), 90)
}
