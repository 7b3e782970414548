// SPDX-License-Identifier: GPL-2.0-or-later

// Package rand is a seedable, stateless-per-index noise generator. The same
// seed always produces the same sequence, which keeps generated scenes
// reproducible.
package rand

import (
	"zinnia/math/vec"
)

const (
	noise1 = 0xB5297A4D
	noise2 = 0x68E31DA4
	noise3 = 0x1B56C4E9
)

type Generator struct {
	idx  uint32
	seed uint32
}

func New(seed uint32) Generator {
	return Generator{idx: 0, seed: seed}
}

func noise(p uint32, s uint32) uint32 {
	m := p
	m *= noise1
	m += s
	m ^= (m >> 8)
	m *= noise2
	m ^= (m << 8)
	m *= noise3
	m ^= (m >> 8)
	return m
}

func (g *Generator) rand() uint32 {
	g.idx++
	return noise(g.idx, g.seed)
}

func (g *Generator) NewSeed(s uint32) {
	g.seed = s
	g.idx = 0
}

func (g *Generator) Uint32n(n uint32) uint32 {
	return g.rand() % n
}

func (g *Generator) Intn(n int) int {
	return int(g.Uint32n(uint32(n)))
}

// Float32 returns a value in [0,1)
func (g *Generator) Float32() float32 {
	return float32(g.Uint32n(1<<24)) / (1 << 24)
}

// Float32Range returns a value between lo and hi
func (g *Generator) Float32Range(lo, hi float32) float32 {
	return lo + (hi-lo)*g.Float32()
}

// Vec3In returns a point inside the box spanned by mins and maxs.
func (g *Generator) Vec3In(mins, maxs vec.Vec3) vec.Vec3 {
	return vec.Vec3{
		X: g.Float32Range(mins.X, maxs.X),
		Y: g.Float32Range(mins.Y, maxs.Y),
		Z: g.Float32Range(mins.Z, maxs.Z),
	}
}
