// SPDX-License-Identifier: GPL-2.0-or-later

package physics

import (
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"zinnia/cast"
	"zinnia/math"
	"zinnia/math/vec"
)

const (
	contentsEmpty = -1
	contentsSolid = -2
)

type clipNode struct {
	plane    *Plane
	children [2]int
}

// hull is a chain of clip nodes. Node i is empty in front of its plane and
// continues with node i+1 behind it, the back of the last node is solid.
type hull struct {
	clipNodes     []clipNode
	firstClipNode int
	lastClipNode  int
}

type tracePlane struct {
	Normal   vec.Vec3
	Distance float32
}

type trace struct {
	allSolid   bool
	startSolid bool
	inOpen     bool
	fraction   float32
	endPos     vec.Vec3
	plane      tracePlane
}

func (h *hull) pointContents(num int, p vec.Vec3) int {
	for num >= 0 {
		if num < h.firstClipNode || num > h.lastClipNode {
			slog.Error("hull pointContents: bad node number", slog.Int("node", num))
			return contentsEmpty
		}
		node := h.clipNodes[num]
		d := vec.DoublePrecDot(node.plane.Normal, p) - node.plane.Dist
		if d < 0 {
			num = node.children[1]
		} else {
			num = node.children[0]
		}
	}
	return num
}

// recursiveCheck traces p1 to p2 through the node num. It returns false once
// the impact has been found.
func (h *hull) recursiveCheck(num int, p1f, p2f float32, p1, p2 vec.Vec3, t *trace) bool {
	const epsilon = 1e-4 // keep the impact on the near side
	if num < 0 {
		if num != contentsSolid {
			t.allSolid = false
			t.inOpen = true
		} else {
			t.startSolid = true
		}
		return true
	}
	if num < h.firstClipNode || num > h.lastClipNode {
		slog.Error("hull recursiveCheck: bad node number", slog.Int("node", num))
		return true
	}
	node := h.clipNodes[num]
	plane := node.plane
	t1 := vec.DoublePrecDot(plane.Normal, p1) - plane.Dist
	t2 := vec.DoublePrecDot(plane.Normal, p2) - plane.Dist
	if t1 >= 0 && t2 >= 0 {
		return h.recursiveCheck(node.children[0], p1f, p2f, p1, p2, t)
	}
	if t1 < 0 && t2 < 0 {
		return h.recursiveCheck(node.children[1], p1f, p2f, p1, p2, t)
	}

	// put the crosspoint epsilon on the near side
	frac := func() float32 {
		d := t1 - t2
		if t1 < 0 {
			return (t1 + epsilon) / d
		}
		return (t1 - epsilon) / d
	}()
	frac = math.Clamp(0, frac, 1)
	midf := math.Lerp(p1f, p2f, frac)
	mid := vec.Lerp(p1, p2, frac)
	side := 0
	if t1 < 0 {
		side = 1
	}
	// move up to the node
	if !h.recursiveCheck(node.children[side], p1f, midf, p1, mid, t) {
		return false
	}
	if h.pointContents(node.children[side^1], mid) != contentsSolid {
		return h.recursiveCheck(node.children[side^1], midf, p2f, mid, p2, t)
	}
	if t.allSolid {
		return false // never got out of the solid area
	}
	// the other side of the node is solid, this is the impact point
	if side == 0 {
		t.plane.Normal = plane.Normal
		t.plane.Distance = plane.Dist
	} else {
		t.plane.Normal = plane.Normal.Negate()
		t.plane.Distance = -plane.Dist
	}
	for h.pointContents(h.firstClipNode, mid) == contentsSolid {
		frac -= 0.1
		if frac < 0 {
			t.fraction = midf
			t.endPos = mid
			slog.Debug("hull trace backup past 0")
			return false
		}
		midf = math.Lerp(p1f, p2f, frac)
		mid = vec.Lerp(p1, p2, frac)
	}
	t.fraction = midf
	t.endPos = mid
	return false
}

// Brush is a convex volume bounded by planes whose normals point outwards.
type Brush struct {
	planes     []Plane
	hull       hull
	mins, maxs vec.Vec3
}

// NewBrush builds a convex brush. Every vertex of the volume must lie within
// bounds, which limit the traced segment.
func NewBrush(planes []Plane, mins, maxs vec.Vec3) (*Brush, error) {
	if len(planes) == 0 {
		return nil, errors.Wrap(cast.ErrInvalidArgument, "brush without planes")
	}
	b := &Brush{
		planes: make([]Plane, len(planes)),
	}
	b.mins, b.maxs = vec.MinMax(mins, maxs)
	b.hull.clipNodes = make([]clipNode, len(planes))
	b.hull.lastClipNode = len(planes) - 1
	for i, p := range planes {
		if p.Normal.Length() == 0 {
			return nil, errors.Wrapf(cast.ErrInvalidArgument, "brush plane %d has no normal", i)
		}
		b.planes[i] = p
		b.hull.clipNodes[i].plane = &b.planes[i]
		b.hull.clipNodes[i].children[0] = contentsEmpty
		if i == len(planes)-1 {
			b.hull.clipNodes[i].children[1] = contentsSolid
		} else {
			b.hull.clipNodes[i].children[1] = i + 1
		}
	}
	return b, nil
}

// NewBoxBrush returns the six plane brush of an axis aligned box.
func NewBoxBrush(a, c vec.Vec3) *Brush {
	mins, maxs := vec.MinMax(a, c)
	b, _ := NewBrush([]Plane{
		{vec.Vec3{X: 1, Y: 0, Z: 0}, maxs.X},
		{vec.Vec3{X: -1, Y: 0, Z: 0}, -mins.X},
		{vec.Vec3{X: 0, Y: 1, Z: 0}, maxs.Y},
		{vec.Vec3{X: 0, Y: -1, Z: 0}, -mins.Y},
		{vec.Vec3{X: 0, Y: 0, Z: 1}, maxs.Z},
		{vec.Vec3{X: 0, Y: 0, Z: -1}, -mins.Z},
	}, mins, maxs)
	return b
}

func (b *Brush) Bounds() (vec.Vec3, vec.Vec3) { return b.mins, b.maxs }
func (b *Brush) Center() vec.Vec3             { return vec.Lerp(b.mins, b.maxs, 0.5) }
func (b *Brush) Planes() []Plane              { return b.planes }

// Contains reports whether p is inside the brush.
func (b *Brush) Contains(p vec.Vec3) bool {
	return b.hull.pointContents(b.hull.firstClipNode, p) == contentsSolid
}

func (b *Brush) Intersect(origin, dir vec.Vec3, maxDist float32) (float32, vec.Vec3, bool) {
	// never trace further than the far corner of the bounds
	reach := vec.Distance(origin, b.mins)
	if r := vec.Distance(origin, b.maxs); r > reach {
		reach = r
	}
	reach += vec.Distance(b.mins, b.maxs)
	length := min(maxDist, reach)
	if length <= 0 || math32.IsInf(length, 0) {
		return 0, vec.Vec3{}, false
	}
	end := vec.Add(origin, dir.Scale(length))
	t := trace{
		fraction: 1,
		allSolid: true,
		endPos:   end,
	}
	b.hull.recursiveCheck(b.hull.firstClipNode, 0, 1, origin, end, &t)
	if t.allSolid || t.startSolid || t.fraction == 1 {
		return 0, vec.Vec3{}, false
	}
	return t.fraction * length, t.plane.Normal, true
}
