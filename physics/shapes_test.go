// SPDX-License-Identifier: GPL-2.0-or-later

package physics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"zinnia/math/vec"
)

var approx = cmpopts.EquateApprox(0, 1e-3)

type intersectCase struct {
	name        string
	origin, dir vec.Vec3
	maxDist     float32
	wantOK      bool
	wantDist    float32
	wantNormal  vec.Vec3
}

func runIntersect(t *testing.T, s Shape, cases []intersectCase) {
	t.Helper()
	for _, tc := range cases {
		d, n, ok := s.Intersect(tc.origin, tc.dir, tc.maxDist)
		if ok != tc.wantOK {
			t.Errorf("%s: ok = %v want %v", tc.name, ok, tc.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if diff := cmp.Diff(tc.wantDist, d, approx); diff != "" {
			t.Errorf("%s: distance mismatch (-want +got):\n%s", tc.name, diff)
		}
		if diff := cmp.Diff(tc.wantNormal, n, approx); diff != "" {
			t.Errorf("%s: normal mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestBoxIntersect(t *testing.T) {
	b := NewBox(vec.Vec3{X: 1, Y: 1, Z: 1}, vec.Vec3{X: -1, Y: -1, Z: -1})
	runIntersect(t, b, []intersectCase{
		{"front", vec.Vec3{X: 0, Y: 0, Z: -5}, vec.Vec3{X: 0, Y: 0, Z: 1}, 10, true, 4, vec.Vec3{X: 0, Y: 0, Z: -1}},
		{"back", vec.Vec3{X: 0, Y: 0, Z: 5}, vec.Vec3{X: 0, Y: 0, Z: -1}, 10, true, 4, vec.Vec3{X: 0, Y: 0, Z: 1}},
		{"top", vec.Vec3{X: 0.5, Y: 3, Z: 0.5}, vec.Down, 10, true, 2, vec.Up},
		{"too short", vec.Vec3{X: 0, Y: 0, Z: -5}, vec.Vec3{X: 0, Y: 0, Z: 1}, 3, false, 0, vec.Vec3{}},
		{"away", vec.Vec3{X: 0, Y: 0, Z: -5}, vec.Vec3{X: 0, Y: 0, Z: -1}, 10, false, 0, vec.Vec3{}},
		{"beside", vec.Vec3{X: 2, Y: 0, Z: -5}, vec.Vec3{X: 0, Y: 0, Z: 1}, 10, false, 0, vec.Vec3{}},
		{"inside", vec.Vec3{X: 0, Y: 0, Z: 0}, vec.Vec3{X: 0, Y: 0, Z: 1}, 10, false, 0, vec.Vec3{}},
		{"diagonal", vec.Vec3{X: -3, Y: 0, Z: -3}, vec.Vec3{X: 1, Y: 0, Z: 1}.Normalize(), 10, true, 2 * 1.4142135, vec.Vec3{X: -1, Y: 0, Z: 0}},
	})
	if c := b.Center(); c != (vec.Vec3{}) {
		t.Errorf("Center() = %v", c)
	}
}

func TestSphereIntersect(t *testing.T) {
	s := Sphere{Origin: vec.Vec3{X: 0, Y: 0, Z: 10}, Radius: 2}
	runIntersect(t, s, []intersectCase{
		{"front", vec.Vec3{}, vec.Vec3{X: 0, Y: 0, Z: 1}, 20, true, 8, vec.Vec3{X: 0, Y: 0, Z: -1}},
		{"short", vec.Vec3{}, vec.Vec3{X: 0, Y: 0, Z: 1}, 7, false, 0, vec.Vec3{}},
		{"miss", vec.Vec3{X: 3, Y: 0, Z: 0}, vec.Vec3{X: 0, Y: 0, Z: 1}, 20, false, 0, vec.Vec3{}},
		{"behind", vec.Vec3{X: 0, Y: 0, Z: 20}, vec.Vec3{X: 0, Y: 0, Z: 1}, 20, false, 0, vec.Vec3{}},
		{"inside", vec.Vec3{X: 0, Y: 0, Z: 10}, vec.Vec3{X: 0, Y: 0, Z: 1}, 20, false, 0, vec.Vec3{}},
	})
	mins, maxs := s.Bounds()
	if mins != (vec.Vec3{X: -2, Y: -2, Z: 8}) || maxs != (vec.Vec3{X: 2, Y: 2, Z: 12}) {
		t.Errorf("Bounds() = %v, %v", mins, maxs)
	}
}

func TestPlaneIntersect(t *testing.T) {
	floor := NewPlane(vec.Vec3{X: 0, Y: 2, Z: 0}, -2) // y = -1
	if floor.Normal != vec.Up || floor.Dist != -1 {
		t.Fatalf("NewPlane normalized to %v", floor)
	}
	runIntersect(t, floor, []intersectCase{
		{"down", vec.Vec3{X: 3, Y: 4, Z: 3}, vec.Down, 10, true, 5, vec.Up},
		{"short", vec.Vec3{X: 3, Y: 4, Z: 3}, vec.Down, 4, false, 0, vec.Vec3{}},
		{"up", vec.Vec3{X: 3, Y: 4, Z: 3}, vec.Up, 10, false, 0, vec.Vec3{}},
		{"parallel", vec.Vec3{X: 3, Y: 4, Z: 3}, vec.Vec3{X: 1, Y: 0, Z: 0}, 10, false, 0, vec.Vec3{}},
		{"from behind", vec.Vec3{X: 0, Y: -3, Z: 0}, vec.Up, 10, false, 0, vec.Vec3{}},
		{"slanted", vec.Vec3{X: 0, Y: 1, Z: 0}, vec.Vec3{X: 0, Y: -1, Z: 1}.Normalize(), 10, true, 2 * 1.4142135, vec.Up},
	})
	if got := floor.DistanceTo(vec.Vec3{X: 0, Y: 1, Z: 0}); got != 2 {
		t.Errorf("DistanceTo = %v want 2", got)
	}
	if p := NewPlane(vec.Vec3{}, 3); p != (Plane{}) {
		t.Errorf("NewPlane with null normal = %v", p)
	}
}
