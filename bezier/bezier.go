// SPDX-License-Identifier: GPL-2.0-or-later

// Package bezier samples cubic Bézier curves into polylines.
package bezier

import (
	"github.com/pkg/errors"

	"zinnia/math/vec"
)

// ErrInvalidArgument is returned for malformed input such as a short control
// point list or a negative segment count.
var ErrInvalidArgument = errors.New("invalid argument")

// ControlPoints is the number of control points of a cubic curve.
const ControlPoints = 4

type Cubic struct {
	P0 vec.Vec3
	P1 vec.Vec3
	P2 vec.Vec3
	P3 vec.Vec3
}

// FromPoints builds a cubic from the first four points of p.
func FromPoints(p []vec.Vec3) (Cubic, error) {
	if len(p) < ControlPoints {
		return Cubic{}, errors.Wrapf(ErrInvalidArgument, "need %d control points, got %d", ControlPoints, len(p))
	}
	return Cubic{p[0], p[1], p[2], p[3]}, nil
}

// Eval returns (1-t)³P0 + 3(1-t)²t P1 + 3(1-t)t² P2 + t³P3.
func (c Cubic) Eval(t float32) vec.Vec3 {
	mt := 1 - t
	a := c.P0.Scale(mt * mt * mt)
	b := c.P1.Scale(mt * mt * 3)
	d := c.P2.Scale(mt * 3)
	return vec.Add(a, vec.Add(b, vec.Add(d, c.P3.Scale(t)).Scale(t)).Scale(t))
}

func (c Cubic) Start() vec.Vec3 {
	return c.P0
}

func (c Cubic) End() vec.Vec3 {
	return c.P3
}

// Param returns the curve parameter of sample i out of n.
func Param(i, n int) float32 {
	if n <= 1 {
		return 0
	}
	return float32(i) / float32(n-1)
}

// Sample writes n evenly parameterized points of c into dst, reusing its
// capacity, and returns the filled slice. The first point is P0 and for
// n > 1 the last one is P3.
func (c Cubic) Sample(dst []vec.Vec3, n int) []vec.Vec3 {
	if cap(dst) < n {
		dst = make([]vec.Vec3, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = c.Eval(Param(i, n))
	}
	return dst
}

// Generate returns segmentCount points on the cubic curve defined by the
// first four controlPoints.
func Generate(segmentCount int, controlPoints []vec.Vec3) ([]vec.Vec3, error) {
	return GenerateInto(nil, segmentCount, controlPoints)
}

// GenerateInto is Generate with a caller supplied buffer. Every returned
// element is overwritten, no data of dst survives the call.
func GenerateInto(dst []vec.Vec3, segmentCount int, controlPoints []vec.Vec3) ([]vec.Vec3, error) {
	if segmentCount < 0 {
		return dst[:0], errors.Wrapf(ErrInvalidArgument, "negative segment count %d", segmentCount)
	}
	c, err := FromPoints(controlPoints)
	if err != nil {
		return dst[:0], err
	}
	return c.Sample(dst, segmentCount), nil
}
