// SPDX-License-Identifier: GPL-2.0-or-later

package physics

import (
	"github.com/google/uuid"

	"zinnia/cast"
	"zinnia/math/vec"
)

// Shape is the collision geometry of a Body in world space.
type Shape interface {
	// Bounds returns the axis aligned bounding box. Unbounded shapes return
	// infinite extents.
	Bounds() (mins, maxs vec.Vec3)
	// Intersect returns the distance along the unit direction dir at which
	// the ray enters the shape. Rays starting inside the shape miss.
	Intersect(origin, dir vec.Vec3, maxDist float32) (dist float32, normal vec.Vec3, ok bool)
	// Center is used as the target point of a body.
	Center() vec.Vec3
}

type Body struct {
	id      uuid.UUID
	name    string
	shape   Shape
	layer   int
	trigger bool

	node *areaNode
}

type BodyOption func(*Body)

func WithLayer(l int) BodyOption {
	return func(b *Body) { b.layer = l }
}

func AsTrigger() BodyOption {
	return func(b *Body) { b.trigger = true }
}

func NewBody(name string, s Shape, opts ...BodyOption) *Body {
	b := &Body{
		id:    uuid.Must(uuid.NewV7()),
		name:  name,
		shape: s,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Body) ID() cast.ObjectID { return b.id }
func (b *Body) Name() string      { return b.name }
func (b *Body) Shape() Shape      { return b.shape }
func (b *Body) Layer() int        { return b.layer }
func (b *Body) Trigger() bool     { return b.trigger }
func (b *Body) Linked() bool      { return b.node != nil }

func (b *Body) raycast(origin, dir vec.Vec3, maxDist float32) (cast.Hit, bool) {
	d, n, ok := b.shape.Intersect(origin, dir, maxDist)
	if !ok {
		return cast.Hit{}, false
	}
	return cast.Hit{
		Point:    vec.Add(origin, dir.Scale(d)),
		Normal:   n,
		Distance: d,
		Object:   b.id,
	}, true
}
