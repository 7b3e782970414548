// SPDX-License-Identifier: GPL-2.0-or-later

package physics

import (
	"github.com/chewxy/math32"

	"zinnia/math/vec"
)

var (
	infMins = vec.Vec3{X: math32.Inf(-1), Y: math32.Inf(-1), Z: math32.Inf(-1)}
	infMaxs = vec.Vec3{X: math32.Inf(1), Y: math32.Inf(1), Z: math32.Inf(1)}
)

// Box is an axis aligned box.
type Box struct {
	Mins, Maxs vec.Vec3
}

func NewBox(a, b vec.Vec3) Box {
	mins, maxs := vec.MinMax(a, b)
	return Box{mins, maxs}
}

func (b Box) Bounds() (vec.Vec3, vec.Vec3) { return b.Mins, b.Maxs }
func (b Box) Center() vec.Vec3             { return vec.Lerp(b.Mins, b.Maxs, 0.5) }

// Intersect uses the slab method.
func (b Box) Intersect(origin, dir vec.Vec3, maxDist float32) (float32, vec.Vec3, bool) {
	tmin, tmax := math32.Inf(-1), math32.Inf(1)
	axis := -1
	var sign float32
	for i := 0; i < 3; i++ {
		o, d := origin.Idx(i), dir.Idx(i)
		lo, hi := b.Mins.Idx(i), b.Maxs.Idx(i)
		if d == 0 {
			if o < lo || o > hi {
				return 0, vec.Vec3{}, false
			}
			continue
		}
		inv := 1 / d
		t1 := (lo - o) * inv
		t2 := (hi - o) * inv
		s := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
			sign = s
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, vec.Vec3{}, false
		}
	}
	if axis < 0 || tmin < 0 || tmin > maxDist {
		return 0, vec.Vec3{}, false
	}
	var n vec.Vec3
	switch axis {
	case 0:
		n.X = sign
	case 1:
		n.Y = sign
	case 2:
		n.Z = sign
	}
	return tmin, n, true
}

type Sphere struct {
	Origin vec.Vec3
	Radius float32
}

func (s Sphere) Bounds() (vec.Vec3, vec.Vec3) {
	r := vec.Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return vec.Sub(s.Origin, r), vec.Add(s.Origin, r)
}

func (s Sphere) Center() vec.Vec3 { return s.Origin }

func (s Sphere) Intersect(origin, dir vec.Vec3, maxDist float32) (float32, vec.Vec3, bool) {
	oc := vec.Sub(origin, s.Origin)
	b := vec.Dot(oc, dir)
	c := vec.Dot(oc, oc) - s.Radius*s.Radius
	if c < 0 {
		// inside
		return 0, vec.Vec3{}, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, vec.Vec3{}, false
	}
	t := -b - math32.Sqrt(disc)
	if t < 0 || t > maxDist {
		return 0, vec.Vec3{}, false
	}
	p := vec.Add(origin, dir.Scale(t))
	return t, vec.Sub(p, s.Origin).Scale(1 / s.Radius), true
}

// Plane is an infinite one sided plane. Points p with Dot(Normal, p) > Dist
// are in front of it, only rays from the front side collide.
type Plane struct {
	Normal vec.Vec3
	Dist   float32
}

// NewPlane normalizes n. The zero normal gives a plane nothing collides with.
func NewPlane(n vec.Vec3, dist float32) Plane {
	l := n.Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Scale(1 / l), Dist: dist / l}
}

func (p Plane) Bounds() (vec.Vec3, vec.Vec3) { return infMins, infMaxs }
func (p Plane) Center() vec.Vec3             { return p.Normal.Scale(p.Dist) }

// DistanceTo returns the signed distance of pt to the plane.
func (p Plane) DistanceTo(pt vec.Vec3) float32 {
	return vec.Dot(p.Normal, pt) - p.Dist
}

func (p Plane) Intersect(origin, dir vec.Vec3, maxDist float32) (float32, vec.Vec3, bool) {
	denom := vec.Dot(p.Normal, dir)
	if denom >= 0 {
		return 0, vec.Vec3{}, false
	}
	s := p.DistanceTo(origin)
	if s < 0 {
		return 0, vec.Vec3{}, false
	}
	t := -s / denom
	if t > maxDist {
		return 0, vec.Vec3{}, false
	}
	return t, p.Normal, true
}
