// SPDX-License-Identifier: GPL-2.0-or-later

// Package history keeps the most recent casts and persists them as protobuf
// encoded google.protobuf.Struct messages.
package history

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"zinnia/cast"
	"zinnia/math/vec"
)

const (
	// add a max size to prevent the file from growing indefinitely
	maxHistory = 32

	Filename = "casthistory.pb"
)

type Record struct {
	Time      float64
	Origin    vec.Vec3
	Direction vec.Vec3
	Points    []vec.Vec3
	Hit       *cast.Hit
}

// NewRecord copies r so the record stays valid after the next cast.
func NewRecord(time float64, origin, direction vec.Vec3, r cast.Result) Record {
	c := r.Clone()
	return Record{
		Time:      time,
		Origin:    origin,
		Direction: direction,
		Points:    c.Points,
		Hit:       c.Hit,
	}
}

// History is a ring of the last casts with a browsing cursor. The cursor
// rests one past the newest record after Add.
type History struct {
	recs []Record
	idx  int
}

func (h *History) Len() int {
	return len(h.recs)
}

// Records returns the records, oldest first.
func (h *History) Records() []Record {
	return h.recs
}

// Current returns the record under the cursor.
func (h *History) Current() (Record, bool) {
	if h.idx >= len(h.recs) {
		return Record{}, false
	}
	return h.recs[h.idx], true
}

// Cursor returns the index of the record under the cursor, Len if it rests
// past the newest one.
func (h *History) Cursor() int {
	return h.idx
}

func (h *History) Up() {
	if h.idx > 0 {
		h.idx--
	}
}

func (h *History) Down() {
	if h.idx < len(h.recs) {
		h.idx++
	}
}

func (h *History) Add(r Record) {
	h.recs = append(h.recs, r)
	if len(h.recs) > maxHistory {
		h.recs = append(h.recs[:0], h.recs[len(h.recs)-maxHistory:]...)
	}
	h.idx = len(h.recs)
}

func (h *History) Clear() {
	h.recs = nil
	h.idx = 0
}

// Load replaces the records with the ones saved in dir. A missing file is
// not an error.
func (h *History) Load(dir string) error {
	fullname := filepath.Join(dir, Filename)
	in, err := os.ReadFile(fullname)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to read history")
	}
	data := &structpb.Struct{}
	if err := proto.Unmarshal(in, data); err != nil {
		return errors.Wrap(err, "failed to decode history")
	}
	var recs []Record
	for i, v := range data.GetFields()["records"].GetListValue().GetValues() {
		r, err := decodeRecord(v.GetStructValue())
		if err != nil {
			return errors.Wrapf(err, "record %d", i)
		}
		recs = append(recs, r)
	}
	h.recs = nil
	for _, r := range recs {
		h.Add(r)
	}
	h.idx = len(h.recs)
	return nil
}

func (h *History) Save(dir string) error {
	fullname := filepath.Join(dir, Filename)
	list := make([]*structpb.Value, 0, len(h.recs))
	for _, r := range h.recs {
		list = append(list, structpb.NewStructValue(encodeRecord(r)))
	}
	data := &structpb.Struct{Fields: map[string]*structpb.Value{
		"records": structpb.NewListValue(&structpb.ListValue{Values: list}),
	}}
	out, err := proto.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "failed to encode history")
	}
	if err := os.WriteFile(fullname, out, 0660); err != nil {
		return errors.Wrap(err, "failed to write history file")
	}
	return nil
}

func encodeVec(v vec.Vec3) *structpb.Value {
	return structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
		structpb.NewNumberValue(float64(v.X)),
		structpb.NewNumberValue(float64(v.Y)),
		structpb.NewNumberValue(float64(v.Z)),
	}})
}

func decodeVec(v *structpb.Value) (vec.Vec3, error) {
	l := v.GetListValue().GetValues()
	if len(l) != 3 {
		return vec.Vec3{}, errors.Errorf("vector with %d components", len(l))
	}
	return vec.Vec3{
		X: float32(l[0].GetNumberValue()),
		Y: float32(l[1].GetNumberValue()),
		Z: float32(l[2].GetNumberValue()),
	}, nil
}

func encodeRecord(r Record) *structpb.Struct {
	points := make([]*structpb.Value, 0, len(r.Points))
	for _, p := range r.Points {
		points = append(points, encodeVec(p))
	}
	f := map[string]*structpb.Value{
		"time":      structpb.NewNumberValue(r.Time),
		"origin":    encodeVec(r.Origin),
		"direction": encodeVec(r.Direction),
		"points":    structpb.NewListValue(&structpb.ListValue{Values: points}),
	}
	if r.Hit != nil {
		f["hit"] = structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"point":    encodeVec(r.Hit.Point),
			"normal":   encodeVec(r.Hit.Normal),
			"distance": structpb.NewNumberValue(float64(r.Hit.Distance)),
			"object":   structpb.NewStringValue(r.Hit.Object.String()),
		}})
	}
	return &structpb.Struct{Fields: f}
}

func decodeRecord(s *structpb.Struct) (Record, error) {
	var r Record
	var err error
	f := s.GetFields()
	r.Time = f["time"].GetNumberValue()
	if r.Origin, err = decodeVec(f["origin"]); err != nil {
		return r, errors.Wrap(err, "origin")
	}
	if r.Direction, err = decodeVec(f["direction"]); err != nil {
		return r, errors.Wrap(err, "direction")
	}
	for _, v := range f["points"].GetListValue().GetValues() {
		p, err := decodeVec(v)
		if err != nil {
			return r, errors.Wrap(err, "points")
		}
		r.Points = append(r.Points, p)
	}
	hv, ok := f["hit"]
	if !ok {
		return r, nil
	}
	hf := hv.GetStructValue().GetFields()
	var h cast.Hit
	if h.Point, err = decodeVec(hf["point"]); err != nil {
		return r, errors.Wrap(err, "hit point")
	}
	if h.Normal, err = decodeVec(hf["normal"]); err != nil {
		return r, errors.Wrap(err, "hit normal")
	}
	h.Distance = float32(hf["distance"].GetNumberValue())
	if h.Object, err = uuid.Parse(hf["object"].GetStringValue()); err != nil {
		return r, errors.Wrap(err, "hit object")
	}
	r.Hit = &h
	return r, nil
}
