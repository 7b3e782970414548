// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"strconv"

	"zinnia/cast"
	"zinnia/cvar"
)

var (
	CastCheckFrequency *cvar.Cvar
	CastCurveOffset    *cvar.Cvar
	CastDownwardLength *cvar.Cvar
	CastForwardLength  *cvar.Cvar
	CastHeightLimit    *cvar.Cvar
	CastLayerMask      *cvar.Cvar
	CastSegments       *cvar.Cvar
	CastStableTarget   *cvar.Cvar
	CastTriggers       *cvar.Cvar
	HostFrameRate      *cvar.Cvar
)

func init() {
	CastCheckFrequency = cvar.MustRegister("cast_check_frequency", "0", cvar.ARCHIVE)
	CastCurveOffset = cvar.MustRegister("cast_curve_offset", "1", cvar.ARCHIVE)
	CastDownwardLength = cvar.MustRegister("cast_downward_length", "3.4028235e+38", cvar.ARCHIVE)
	CastForwardLength = cvar.MustRegister("cast_forward_length", "10", cvar.ARCHIVE)
	CastHeightLimit = cvar.MustRegister("cast_height_limit", "100", cvar.ARCHIVE)
	CastLayerMask = cvar.MustRegister("cast_layer_mask", "0xffffffff", cvar.ARCHIVE)
	CastSegments = cvar.MustRegister("cast_segments", "10", cvar.ARCHIVE)
	CastStableTarget = cvar.MustRegister("cast_stable_target", "0", cvar.ARCHIVE)
	CastTriggers = cvar.MustRegister("cast_triggers", "0", cvar.ARCHIVE)
	HostFrameRate = cvar.MustRegister("host_framerate", "0", cvar.NONE)
}

// CastConfig builds the caster configuration from the cast_ cvars.
func CastConfig() cast.Config {
	c := cast.DefaultConfig()
	c.MaxForwardLength = CastForwardLength.Value()
	c.MaxDownwardLength = CastDownwardLength.Value()
	c.HeightLimitAngle = CastHeightLimit.Value()
	c.SegmentCount = CastSegments.Int()
	c.CollisionCheckFrequency = CastCheckFrequency.Int()
	c.CurveOffset = CastCurveOffset.Value()
	// the mask does not fit the float value
	if m, err := strconv.ParseUint(CastLayerMask.String(), 0, 32); err == nil {
		c.LayerMask = uint32(m)
	}
	if CastTriggers.Bool() {
		c.Triggers = cast.TriggersCollide
	}
	return c
}
