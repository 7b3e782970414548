// SPDX-License-Identifier: GPL-2.0-or-later

package gametime

import (
	"zinnia/cvars"
	"zinnia/math"
)

// frame time used while host_framerate is not set
const defaultFrameTime = 1.0 / 72

type GameTime struct {
	time       float64
	oldTime    float64
	frameTime  float64
	frameCount int
}

func (h *GameTime) Reset() {
	*h = GameTime{}
}

func (h *GameTime) Time() float64      { return h.time }
func (h *GameTime) OldTime() float64   { return h.oldTime }
func (h *GameTime) FrameTime() float64 { return h.frameTime }
func (h *GameTime) FrameCount() int    { return h.frameCount }

// Step advances the clock by one frame. The frame time is host_framerate
// clamped to [0.001, 0.1].
func (h *GameTime) Step() float64 {
	ft := float64(cvars.HostFrameRate.Value())
	if ft <= 0 {
		ft = defaultFrameTime
	}
	h.frameTime = math.Clamp(0.001, ft, 0.1)
	h.oldTime = h.time
	h.time += h.frameTime
	h.frameCount++
	return h.frameTime
}
