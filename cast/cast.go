// SPDX-License-Identifier: GPL-2.0-or-later

// Package cast computes parabolic pointer arcs.
//
// A cast projects a ray forward from an origin, drops a second ray from the
// end of the first one, bends a cubic Bézier curve through both anchors and
// then probes the sampled curve for obstructions. The first obstruction found
// re-projects the curve once from the ground below it.
//
// The package does not know about any scene. Geometry queries go through a
// RayCaster and the acceptance of a struck object through a Validator.
package cast

import (
	"github.com/google/uuid"

	"zinnia/bezier"
	"zinnia/math/vec"
)

// ErrInvalidArgument is returned for malformed input. It is the same error
// value the curve generator returns.
var ErrInvalidArgument = bezier.ErrInvalidArgument

// ObjectID is the opaque handle of a struck object.
type ObjectID = uuid.UUID

type TriggerInteraction int

const (
	TriggersIgnore TriggerInteraction = iota
	TriggersCollide
)

func (t TriggerInteraction) String() string {
	switch t {
	case TriggersCollide:
		return "collide"
	default:
		return "ignore"
	}
}

// AllLayers matches every collision layer.
const AllLayers = ^uint32(0)

type Filter struct {
	LayerMask uint32
	Triggers  TriggerInteraction
}

// Accepts reports whether an object on the given layer passes the filter.
func (f Filter) Accepts(layer int, trigger bool) bool {
	if layer < 0 || layer > 31 || f.LayerMask&(1<<uint(layer)) == 0 {
		return false
	}
	return !trigger || f.Triggers == TriggersCollide
}

type Hit struct {
	Point    vec.Vec3
	Normal   vec.Vec3
	Distance float32
	Object   ObjectID
}

// RayCaster answers ray queries against some geometry. direction is a unit
// vector. A miss is not an error.
type RayCaster interface {
	Raycast(origin, direction vec.Vec3, maxDistance float32, filter Filter) (Hit, bool)
}

// RayCasterFunc adapts a function to RayCaster.
type RayCasterFunc func(origin, direction vec.Vec3, maxDistance float32, filter Filter) (Hit, bool)

func (f RayCasterFunc) Raycast(origin, direction vec.Vec3, maxDistance float32, filter Filter) (Hit, bool) {
	return f(origin, direction, maxDistance, filter)
}

// Validator decides if a struck object counts as a target.
type Validator func(ObjectID) bool

type Result struct {
	// Points is owned by the Caster and overwritten by the next cast. Use
	// Clone to keep it.
	Points        []vec.Vec3
	Hit           *Hit
	ForwardAnchor vec.Vec3
	DownAnchor    vec.Vec3
	// Corrected is set if an obstruction re-projected the curve.
	Corrected bool
}

func (r Result) Clone() Result {
	c := r
	c.Points = append([]vec.Vec3(nil), r.Points...)
	if r.Hit != nil {
		h := *r.Hit
		c.Hit = &h
	}
	return c
}
