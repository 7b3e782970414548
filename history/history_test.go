// SPDX-License-Identifier: GPL-2.0-or-later

package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"zinnia/cast"
	"zinnia/math/vec"
)

func record(i int) Record {
	return Record{
		Time:      float64(i),
		Origin:    vec.Vec3{X: float32(i)},
		Direction: vec.Vec3{Z: 1},
	}
}

func TestEmpty(t *testing.T) {
	h := History{}
	h.Up()
	h.Down()
	if _, ok := h.Current(); ok {
		t.Errorf("empty history has a current record")
	}
}

func TestAdd(t *testing.T) {
	h := History{}
	h.Add(record(0))
	// expect the 'empty' head
	if _, ok := h.Current(); ok {
		t.Errorf("Current() after Add is set")
	}
	h.Up()
	if r, ok := h.Current(); !ok || r.Time != 0 {
		t.Errorf("Current() = %v, %v want record 0", r.Time, ok)
	}
	h.Add(record(1))
	h.Up()
	h.Up()
	h.Up()
	if r, _ := h.Current(); r.Time != 0 {
		t.Errorf("Current() = %v want record 0", r.Time)
	}
	h.Down()
	if r, _ := h.Current(); r.Time != 1 {
		t.Errorf("Current() = %v want record 1", r.Time)
	}
	if c := h.Cursor(); c != 1 {
		t.Errorf("Cursor() = %v want 1", c)
	}
	h.Down()
	if c := h.Cursor(); c != h.Len() {
		t.Errorf("Cursor() = %v want %v", c, h.Len())
	}
}

func TestRing(t *testing.T) {
	h := History{}
	for i := 0; i < maxHistory+8; i++ {
		h.Add(record(i))
	}
	if h.Len() != maxHistory {
		t.Fatalf("Len() = %d want %d", h.Len(), maxHistory)
	}
	recs := h.Records()
	if recs[0].Time != 8 || recs[maxHistory-1].Time != maxHistory+7 {
		t.Errorf("kept records %v..%v", recs[0].Time, recs[maxHistory-1].Time)
	}
	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Clear() left %d records", h.Len())
	}
}

func TestNewRecordCopies(t *testing.T) {
	pts := []vec.Vec3{{}, {Z: 1}}
	hit := &cast.Hit{Point: vec.Vec3{Z: 1}}
	r := NewRecord(1, vec.Vec3{}, vec.Vec3{Z: 1}, cast.Result{Points: pts, Hit: hit})
	pts[1] = vec.Vec3{Y: 9}
	hit.Distance = 9
	if r.Points[1] != (vec.Vec3{Z: 1}) || r.Hit.Distance != 0 {
		t.Errorf("record shares memory with the cast result")
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	h := History{}
	h.Add(Record{
		Time:      0.5,
		Origin:    vec.Vec3{X: 1, Y: 1.5, Z: -2},
		Direction: vec.Vec3{Z: 1},
		Points:    []vec.Vec3{{X: 1, Y: 1.5, Z: -2}, {X: 1.25, Y: 0.1, Z: 3}},
		Hit: &cast.Hit{
			Point:    vec.Vec3{X: 1.25, Y: 0.1, Z: 3},
			Normal:   vec.Up,
			Distance: 1.1,
			Object:   uuid.New(),
		},
	})
	h.Add(record(2))
	if err := h.Save(dir); err != nil {
		t.Fatal(err)
	}
	var got History
	if err := got.Load(dir); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(h.Records(), got.Records()); diff != "" {
		t.Errorf("loaded history mismatch (-want +got):\n%s", diff)
	}
	if _, ok := got.Current(); ok {
		t.Errorf("cursor not at the head after Load")
	}
}

func TestLoadMissing(t *testing.T) {
	h := History{}
	h.Add(record(1))
	if err := h.Load(t.TempDir()); err != nil {
		t.Errorf("Load() without file = %v", err)
	}
	if h.Len() != 1 {
		t.Errorf("Load() without file changed the history")
	}
}

func TestLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, Filename), []byte("\xff\xff\xff"), 0660); err != nil {
		t.Fatal(err)
	}
	h := History{}
	if err := h.Load(dir); err == nil {
		t.Errorf("Load() of a corrupt file succeeded")
	}
}
