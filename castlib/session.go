// SPDX-License-Identifier: GPL-2.0-or-later

// Package castlib is the console host of the pointer caster. It owns the
// collision world, the caster and the pointer pose and exposes them as
// console commands.
package castlib

import (
	"zinnia/alias"
	"zinnia/cast"
	"zinnia/cbuf"
	"zinnia/cmd"
	"zinnia/conlog"
	"zinnia/cvars"
	"zinnia/execute"
	"zinnia/gametime"
	"zinnia/history"
	"zinnia/math"
	"zinnia/math/vec"
	"zinnia/physics"
)

const worldSize = 1024

var (
	sess    *session
	baseDir = "."
	aliases = alias.New()
	cbuffer = execute.NewBuffer(aliases.Execute())
)

type session struct {
	world    *physics.World
	caster   *cast.Caster
	rejected map[cast.ObjectID]bool

	origin     vec.Vec3
	pitch, yaw float32

	time gametime.GameTime
	hist history.History
}

func newSession() *session {
	s := &session{
		world: physics.NewWorld(
			vec.Vec3{X: -worldSize, Y: -worldSize, Z: -worldSize},
			vec.Vec3{X: worldSize, Y: worldSize, Z: worldSize}),
		rejected: make(map[cast.ObjectID]bool),
	}
	s.caster = cast.New(s.world, cvars.CastConfig(),
		cast.WithLogger(conlog.Logger()),
		cast.WithValidator(s.valid),
		cast.WithObserver(s.record),
		cast.WithTargetChanged(s.targetChanged))
	return s
}

// Init drops the current world, pose and history.
func Init() {
	sess = newSession()
}

// SetBaseDir sets the directory of the cast history file.
func SetBaseDir(dir string) {
	baseDir = dir
}

// Buffer returns the console command buffer.
func Buffer() *cbuf.CommandBuffer {
	return cbuffer
}

// Execute runs text as console input.
func Execute(text string) error {
	return execute.Execute(cbuffer, text)
}

// World returns the collision world of the current session.
func World() *physics.World {
	return sess.world
}

// Last returns the result of the most recent cast.
func Last() cast.Result {
	return sess.caster.Last()
}

// History returns the recorded casts.
func History() *history.History {
	return &sess.hist
}

func (s *session) valid(id cast.ObjectID) bool {
	return !s.rejected[id]
}

func (s *session) direction() vec.Vec3 {
	f, _, _ := vec.AngleVectors(s.pitch, s.yaw)
	return f
}

func (s *session) setPose(origin vec.Vec3, pitch, yaw float32) {
	s.origin = origin
	s.pitch = math.ClampPitch(pitch)
	s.yaw = math.AngleMod32(yaw)
}

// cast runs one cast from the pose with the current cvars. target replaces
// the downward projection if not nil.
func (s *session) cast(target *cast.Hit) (cast.Result, error) {
	s.caster.SetConfig(cvars.CastConfig())
	s.caster.SetStableTarget(cvars.CastStableTarget.Bool())
	return s.caster.CastWithTarget(s.origin, s.direction(), target)
}

func (s *session) record(r cast.Result) {
	s.hist.Add(history.NewRecord(s.time.Time(), s.origin, s.direction(), r))
}

func (s *session) targetChanged(prev, next *cast.Hit) {
	conlog.Printf("target %s -> %s\n", s.hitName(prev), s.hitName(next))
}

func (s *session) hitName(h *cast.Hit) string {
	if h == nil {
		return "none"
	}
	return s.objectName(h.Object)
}

func (s *session) objectName(id cast.ObjectID) string {
	b, ok := s.world.Get(id)
	if !ok {
		return id.String()
	}
	if b.Name() == "" {
		return b.ID().String()
	}
	return b.Name()
}

func init() {
	cmd.Must(aliases.Register(cmd.Global()))
	Init()
}
