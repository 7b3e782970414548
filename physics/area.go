// SPDX-License-Identifier: GPL-2.0-or-later

package physics

import (
	"zinnia/cast"
	"zinnia/math/vec"
)

const areaDepth = 4

// areaNode splits the world along the larger horizontal axis. Bodies live in
// the deepest node they fit in completely.
type areaNode struct {
	axis          int // -1 for leafs
	dist          float32
	children      [2]*areaNode
	triggerBodies []*Body
	solidBodies   []*Body
}

func createAreaNode(depth int, mins, maxs vec.Vec3) *areaNode {
	if depth == areaDepth {
		return &areaNode{axis: -1}
	}
	an := &areaNode{}
	s := vec.Sub(maxs, mins)
	an.axis = func() int {
		// Y is up, split on X or Z
		if s.X > s.Z {
			return 0
		}
		return 2
	}()
	an.dist = 0.5 * (maxs.Idx(an.axis) + mins.Idx(an.axis))

	mins1 := mins
	mins2 := mins
	maxs1 := maxs
	maxs2 := maxs

	switch an.axis {
	case 0:
		maxs1.X = an.dist
		mins2.X = an.dist
	case 2:
		maxs1.Z = an.dist
		mins2.Z = an.dist
	}

	an.children[0] = createAreaNode(depth+1, mins2, maxs2)
	an.children[1] = createAreaNode(depth+1, mins1, maxs1)

	return an
}

func (a *areaNode) find(mins, maxs vec.Vec3) *areaNode {
	for a.axis != -1 {
		if mins.Idx(a.axis) > a.dist {
			a = a.children[0]
		} else if maxs.Idx(a.axis) < a.dist {
			a = a.children[1]
		} else {
			break // crosses the node
		}
	}
	return a
}

func (a *areaNode) link(b *Body) {
	if b.trigger {
		a.triggerBodies = append(a.triggerBodies, b)
	} else {
		a.solidBodies = append(a.solidBodies, b)
	}
	b.node = a
}

func (a *areaNode) unlink(b *Body) {
	remove := func(l []*Body) []*Body {
		for i, o := range l {
			if o == b {
				l[i] = l[len(l)-1]
				l[len(l)-1] = nil
				return l[:len(l)-1]
			}
		}
		return l
	}
	if b.trigger {
		a.triggerBodies = remove(a.triggerBodies)
	} else {
		a.solidBodies = remove(a.solidBodies)
	}
	b.node = nil
}

// clip is the state of one ray query through the area tree.
type clip struct {
	origin, dir      vec.Vec3
	maxDist          float32
	boxmins, boxmaxs vec.Vec3
	withTriggers     bool
	accept           func(*Body) bool
	best             *Body
	hit              cast.Hit
	tested           int
}

// moveBounds creates the bounding box of the entire ray.
func (c *clip) moveBounds(start, end vec.Vec3) {
	mins, maxs := vec.MinMax(start, end)
	c.boxmins = vec.Sub(mins, vec.Vec3{X: 1, Y: 1, Z: 1})
	c.boxmaxs = vec.Add(maxs, vec.Vec3{X: 1, Y: 1, Z: 1})
}

func (c *clip) test(bodies []*Body) {
	for _, b := range bodies {
		mins, maxs := b.shape.Bounds()
		if c.boxmaxs.X < mins.X ||
			c.boxmaxs.Y < mins.Y ||
			c.boxmaxs.Z < mins.Z ||
			c.boxmins.X > maxs.X ||
			c.boxmins.Y > maxs.Y ||
			c.boxmins.Z > maxs.Z {
			continue
		}
		if !c.accept(b) {
			continue
		}
		c.tested++
		h, ok := b.raycast(c.origin, c.dir, c.maxDist)
		if !ok {
			continue
		}
		if c.best == nil || h.Distance < c.hit.Distance {
			c.best = b
			c.hit = h
		}
	}
}

func (c *clip) toLinks(a *areaNode) {
	c.test(a.solidBodies)
	if c.withTriggers {
		c.test(a.triggerBodies)
	}
	if a.axis == -1 {
		return
	}
	if c.boxmaxs.Idx(a.axis) > a.dist {
		c.toLinks(a.children[0])
	}
	if c.boxmins.Idx(a.axis) < a.dist {
		c.toLinks(a.children[1])
	}
}
