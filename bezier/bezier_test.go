// SPDX-License-Identifier: GPL-2.0-or-later

package bezier

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"

	"zinnia/math/vec"
	"zinnia/rand"
)

var approx = cmpopts.EquateApprox(0, 1e-4)

func randomControlPoints(g *rand.Generator) []vec.Vec3 {
	mins := vec.Vec3{X: -50, Y: -50, Z: -50}
	maxs := vec.Vec3{X: 50, Y: 50, Z: 50}
	return []vec.Vec3{g.Vec3In(mins, maxs), g.Vec3In(mins, maxs), g.Vec3In(mins, maxs), g.Vec3In(mins, maxs)}
}

func TestEndpoints(t *testing.T) {
	g := rand.New(1)
	for i := 0; i < 200; i++ {
		cp := randomControlPoints(&g)
		n := 2 + g.Intn(30)
		pts, err := Generate(n, cp)
		if err != nil {
			t.Fatalf("Generate(%d, %v): %v", n, cp, err)
		}
		if diff := cmp.Diff(cp[0], pts[0], approx); diff != "" {
			t.Errorf("first point mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(cp[3], pts[len(pts)-1], approx); diff != "" {
			t.Errorf("last point mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSampleCount(t *testing.T) {
	cp := []vec.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 2, Z: 0}, {X: 3, Y: 2, Z: 0}, {X: 4, Y: 0, Z: 0}}
	for _, n := range []int{0, 1, 2, 3, 10, 64} {
		pts, err := Generate(n, cp)
		if err != nil {
			t.Fatalf("Generate(%d): %v", n, err)
		}
		if len(pts) != n {
			t.Errorf("len(Generate(%d)) = %d", n, len(pts))
		}
	}
}

func TestSingleSampleIsStart(t *testing.T) {
	cp := []vec.Vec3{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}, {X: 7, Y: 8, Z: 9}, {X: 10, Y: 11, Z: 12}}
	pts, err := Generate(1, cp)
	if err != nil {
		t.Fatal(err)
	}
	if pts[0] != cp[0] {
		t.Errorf("Generate(1)[0] = %v want %v", pts[0], cp[0])
	}
}

func TestIdempotent(t *testing.T) {
	g := rand.New(99)
	cp := randomControlPoints(&g)
	a, err := Generate(17, cp)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(17, cp)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Generate is not deterministic (-first +second):\n%s", diff)
	}
}

func TestKnownValues(t *testing.T) {
	cp := []vec.Vec3{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 3, Z: 0}, {X: 3, Y: 3, Z: 0}, {X: 3, Y: 0, Z: 0}}
	pts, err := Generate(3, cp)
	if err != nil {
		t.Fatal(err)
	}
	// B(0.5) = (P0 + 3P1 + 3P2 + P3) / 8
	want := []vec.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1.5, Y: 2.25, Z: 0}, {X: 3, Y: 0, Z: 0}}
	if diff := cmp.Diff(want, pts, approx); diff != "" {
		t.Errorf("Generate(3) mismatch (-want +got):\n%s", diff)
	}
}

func TestStraightLine(t *testing.T) {
	// collinear, evenly spaced control points give a linear parametrization
	cp := []vec.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 3, Y: 0, Z: 0}}
	pts, err := Generate(4, cp)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cp, pts, approx); diff != "" {
		t.Errorf("Generate(4) mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidArgument(t *testing.T) {
	cp := []vec.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 3, Y: 0, Z: 0}}
	for _, tc := range []struct {
		name string
		n    int
		cp   []vec.Vec3
	}{
		{"negative", -1, cp},
		{"no points", 10, nil},
		{"three points", 10, cp[:3]},
	} {
		pts, err := Generate(tc.n, tc.cp)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: err = %v want ErrInvalidArgument", tc.name, err)
		}
		if len(pts) != 0 {
			t.Errorf("%s: got %d points on error", tc.name, len(pts))
		}
	}
}

func TestExtraPointsIgnored(t *testing.T) {
	cp := []vec.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 3, Y: 0, Z: 0}, {X: 100, Y: 100, Z: 100}}
	got, err := Generate(5, cp)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := Generate(5, cp[:4])
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fifth control point changed the curve (-want +got):\n%s", diff)
	}
}

func TestGenerateIntoOverwrites(t *testing.T) {
	cp := []vec.Vec3{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 1}, {X: 0, Y: 0, Z: 1}}
	buf := make([]vec.Vec3, 20)
	for i := range buf {
		buf[i] = vec.Vec3{X: 999, Y: 999, Z: 999}
	}
	got, err := GenerateInto(buf, 8, cp)
	if err != nil {
		t.Fatal(err)
	}
	if &got[0] != &buf[0] {
		t.Errorf("GenerateInto did not reuse the buffer")
	}
	want, _ := Generate(8, cp)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GenerateInto mismatch (-want +got):\n%s", diff)
	}

	// a smaller buffer is grown
	got, err = GenerateInto(make([]vec.Vec3, 2), 8, cp)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GenerateInto with short buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestParam(t *testing.T) {
	for _, tc := range []struct {
		i, n int
		want float32
	}{
		{0, 1, 0},
		{0, 5, 0},
		{2, 5, 0.5},
		{4, 5, 1},
	} {
		if got := Param(tc.i, tc.n); got != tc.want {
			t.Errorf("Param(%d,%d) = %v want %v", tc.i, tc.n, got, tc.want)
		}
	}
}
