// SPDX-License-Identifier: GPL-2.0-or-later

package math

type Number interface {
	int64 | float64 | float32 | int | uint32
}

func Clamp[K Number](min, val, max K) K {
	if min > val {
		return min
	} else if max < val {
		return max
	}
	return val
}

// Max1 returns v, but never less than 1
func Max1[K Number](v K) K {
	if v < 1 {
		return 1
	}
	return v
}
