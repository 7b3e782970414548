// SPDX-License-Identifier: GPL-2.0-or-later

package cast

import (
	"github.com/chewxy/math32"

	"zinnia/math"
	"zinnia/math/vec"
)

// Config is read once at the start of a cast. Values out of range are
// clamped, never rejected.
type Config struct {
	MaxForwardLength  float32
	MaxDownwardLength float32
	// HeightLimitAngle shortens the forward projection when aiming upwards,
	// 0-100.
	HeightLimitAngle float32
	SegmentCount     int
	// CollisionCheckFrequency is the number of probes along the curve,
	// clamped to [0, SegmentCount]. 0 probes the whole curve once.
	CollisionCheckFrequency int
	// CurveOffset lifts the second control point to round the arc's peak.
	CurveOffset float32
	LayerMask   uint32
	Triggers    TriggerInteraction
}

func DefaultConfig() Config {
	return Config{
		MaxForwardLength:        10,
		MaxDownwardLength:       math32.MaxFloat32,
		HeightLimitAngle:        100,
		SegmentCount:            10,
		CollisionCheckFrequency: 0,
		CurveOffset:             1,
		LayerMask:               AllLayers,
		Triggers:                TriggersIgnore,
	}
}

func (c Config) Filter() Filter {
	return Filter{LayerMask: c.LayerMask, Triggers: c.Triggers}
}

// ForwardLength returns the forward projection length for the direction dir.
// Aiming above the height limit reduces it quadratically.
func (c Config) ForwardLength(dir vec.Vec3) float32 {
	maxLength := max(c.MaxForwardLength, 0)
	limit := math.Clamp(0, c.HeightLimitAngle, 100) / 100
	alignment := vec.Dot(vec.Up, dir.Normalize())
	if alignment > limit {
		k := 1 - (alignment - limit)
		return maxLength * k * k
	}
	return maxLength
}

// CheckStep returns the index distance between two probed points, 0 if the
// curve can not be probed.
func (c Config) CheckStep() int {
	if c.SegmentCount < 1 {
		return 0
	}
	freq := math.Clamp(0, c.CollisionCheckFrequency, c.SegmentCount)
	return c.SegmentCount / math.Max1(freq)
}
