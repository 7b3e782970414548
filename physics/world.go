// SPDX-License-Identifier: GPL-2.0-or-later

// Package physics is a small static collision world answering ray queries
// for the caster.
package physics

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"zinnia/cast"
	"zinnia/math/vec"
)

var _ cast.RayCaster = (*World)(nil)

// World holds static bodies. It is not safe for concurrent modification,
// concurrent Raycast calls on an unchanging World are fine.
type World struct {
	mins, maxs vec.Vec3
	area       *areaNode
	bodies     map[cast.ObjectID]*Body
	byName     map[string]*Body
}

// NewWorld creates an empty world. The bounds only shape the partitioning,
// bodies outside of them are still found.
func NewWorld(mins, maxs vec.Vec3) *World {
	w := &World{}
	w.mins, w.maxs = vec.MinMax(mins, maxs)
	w.Clear()
	return w
}

// Clear removes all bodies.
func (w *World) Clear() {
	for _, b := range w.bodies {
		b.node = nil
	}
	w.area = createAreaNode(0, w.mins, w.maxs)
	w.bodies = make(map[cast.ObjectID]*Body)
	w.byName = make(map[string]*Body)
}

func (w *World) Link(b *Body) error {
	if b == nil || b.shape == nil {
		return errors.Wrap(cast.ErrInvalidArgument, "body without shape")
	}
	if b.Linked() {
		return errors.Errorf("body %q is already linked", b.name)
	}
	if b.name != "" {
		if _, ok := w.byName[b.name]; ok {
			return errors.Errorf("body %q already exists", b.name)
		}
		w.byName[b.name] = b
	}
	mins, maxs := b.shape.Bounds()
	w.area.find(mins, maxs).link(b)
	w.bodies[b.id] = b
	return nil
}

// Unlink removes the body with the given id. Unknown ids are ignored.
func (w *World) Unlink(id cast.ObjectID) {
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	b.node.unlink(b)
	delete(w.bodies, id)
	if w.byName[b.name] == b {
		delete(w.byName, b.name)
	}
}

func (w *World) Get(id cast.ObjectID) (*Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

func (w *World) ByName(name string) (*Body, bool) {
	b, ok := w.byName[name]
	return b, ok
}

func (w *World) Len() int {
	return len(w.bodies)
}

// Bodies returns all bodies sorted by name.
func (w *World) Bodies() []*Body {
	l := make([]*Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		l = append(l, b)
	}
	sort.Slice(l, func(i, j int) bool {
		if l[i].name == l[j].name {
			return l[i].id.String() < l[j].id.String()
		}
		return l[i].name < l[j].name
	})
	return l
}

// Raycast returns the closest body along the ray that passes the filter.
func (w *World) Raycast(origin, direction vec.Vec3, maxDistance float32, filter cast.Filter) (cast.Hit, bool) {
	h, _, ok := w.raycast(origin, direction, maxDistance, filter)
	return h, ok
}

func (w *World) raycast(origin, direction vec.Vec3, maxDistance float32, filter cast.Filter) (cast.Hit, int, bool) {
	dir := direction.Normalize()
	if dir == (vec.Vec3{}) || maxDistance < 0 || math32.IsNaN(maxDistance) {
		return cast.Hit{}, 0, false
	}
	c := clip{
		origin:       origin,
		dir:          dir,
		maxDist:      maxDistance,
		withTriggers: filter.Triggers == cast.TriggersCollide,
		accept: func(b *Body) bool {
			return filter.Accepts(b.layer, b.trigger)
		},
	}
	c.moveBounds(origin, vec.Add(origin, dir.Scale(maxDistance)))
	c.toLinks(w.area)
	if c.best == nil {
		return cast.Hit{}, c.tested, false
	}
	return c.hit, c.tested, true
}
