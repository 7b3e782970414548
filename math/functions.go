// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	gmath "math"
)

const (
	Pi = gmath.Pi
)

// Lerp returns the weighted average a + (b-a)*frac
func Lerp[K float32 | float64](a, b, frac K) K {
	return a + (b-a)*frac
}

// Deg2Rad converts degrees to radians
func Deg2Rad(d float32) float32 {
	return d * Pi / 180
}

func Sqrt(x float32) float32 {
	return float32(gmath.Sqrt(float64(x)))
}
