// SPDX-License-Identifier: GPL-2.0-or-later

package cast

import (
	"testing"

	"github.com/chewxy/math32"

	"zinnia/math/vec"
	"zinnia/rand"
)

func TestForwardLengthLevel(t *testing.T) {
	c := DefaultConfig()
	c.MaxForwardLength = 7
	c.HeightLimitAngle = 50
	for _, d := range []vec.Vec3{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: -1, Z: 1}, {X: 0, Y: -1, Z: 0}} {
		if got := c.ForwardLength(d); got != 7 {
			t.Errorf("ForwardLength(%v) = %v want 7", d, got)
		}
	}
}

func TestForwardLengthHeightLimit(t *testing.T) {
	g := rand.New(11)
	for i := 0; i < 1000; i++ {
		c := DefaultConfig()
		c.MaxForwardLength = g.Float32Range(0.5, 50)
		c.HeightLimitAngle = g.Float32Range(0, 100)
		d := g.Vec3In(vec.Vec3{X: -1, Y: -1, Z: -1}, vec.Vec3{X: 1, Y: 1, Z: 1})
		if d.Length() < 0.01 {
			continue
		}
		got := c.ForwardLength(d)
		alignment := vec.Dot(vec.Up, d.Normalize())
		if alignment*100 > c.HeightLimitAngle {
			if got >= c.MaxForwardLength || got < 0 {
				t.Fatalf("ForwardLength(%v) = %v with limit %v, max %v", d, got, c.HeightLimitAngle, c.MaxForwardLength)
			}
		} else if got != c.MaxForwardLength {
			t.Fatalf("ForwardLength(%v) = %v below limit %v, want %v", d, got, c.HeightLimitAngle, c.MaxForwardLength)
		}
	}
}

func TestForwardLengthStraightUp(t *testing.T) {
	c := DefaultConfig()
	c.MaxForwardLength = 10
	c.HeightLimitAngle = 0
	// k = 1 - (1 - 0) = 0
	if got := c.ForwardLength(vec.Up); got != 0 {
		t.Errorf("ForwardLength(Up) = %v want 0", got)
	}
	c.HeightLimitAngle = 50
	// k = 1 - (1 - 0.5) = 0.5
	if got := c.ForwardLength(vec.Up); math32.Abs(got-2.5) > 1e-5 {
		t.Errorf("ForwardLength(Up) = %v want 2.5", got)
	}
}

func TestForwardLengthClampsConfig(t *testing.T) {
	c := DefaultConfig()
	c.MaxForwardLength = -3
	if got := c.ForwardLength(vec.Vec3{X: 0, Y: 0, Z: 1}); got != 0 {
		t.Errorf("negative MaxForwardLength gave %v", got)
	}
	c.MaxForwardLength = 10
	c.HeightLimitAngle = -500
	if got := c.ForwardLength(vec.Up); got != 0 {
		t.Errorf("HeightLimitAngle below 0 gave %v want 0", got)
	}
}

func TestCheckStep(t *testing.T) {
	for _, tc := range []struct {
		segments, freq, want int
	}{
		{10, 0, 10},
		{10, 1, 10},
		{10, 2, 5},
		{10, 3, 3},
		{10, 10, 1},
		{10, 50, 1},
		{10, -4, 10},
		{1, 0, 1},
		{0, 0, 0},
		{0, 5, 0},
		{-2, 5, 0},
	} {
		c := DefaultConfig()
		c.SegmentCount = tc.segments
		c.CollisionCheckFrequency = tc.freq
		if got := c.CheckStep(); got != tc.want {
			t.Errorf("CheckStep(segments %d, freq %d) = %d want %d", tc.segments, tc.freq, got, tc.want)
		}
	}
}

func TestFilterAccepts(t *testing.T) {
	f := Filter{LayerMask: 1<<0 | 1<<4}
	for _, tc := range []struct {
		layer   int
		trigger bool
		want    bool
	}{
		{0, false, true},
		{4, false, true},
		{3, false, false},
		{0, true, false},
		{32, false, false},
		{-1, false, false},
	} {
		if got := f.Accepts(tc.layer, tc.trigger); got != tc.want {
			t.Errorf("Accepts(%d, %v) = %v want %v", tc.layer, tc.trigger, got, tc.want)
		}
	}
	f.Triggers = TriggersCollide
	if !f.Accepts(0, true) {
		t.Errorf("TriggersCollide rejects triggers")
	}
}
