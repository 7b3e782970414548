// SPDX-License-Identifier: GPL-2.0-or-later

package cast

import (
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"zinnia/bezier"
	"zinnia/math/vec"
)

// epsilon pulls the forward anchor off the surface it hit.
const epsilon = 1e-4

type Option func(*Caster)

// WithValidator sets the target validity predicate. A rejected object still
// shapes the curve but is never published as hit.
func WithValidator(v Validator) Option {
	return func(c *Caster) { c.validator = v }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Caster) { c.log = l }
}

// WithStableTarget makes the downward projection ignore objects other than
// the one hit by the previous cast.
func WithStableTarget(b bool) Option {
	return func(c *Caster) { c.stable = b }
}

// WithObserver is called with every successful cast.
func WithObserver(f func(Result)) Option {
	return func(c *Caster) { c.observers = append(c.observers, f) }
}

// WithTargetChanged is called when the published target differs from the
// one of the previous cast. Either side may be nil.
func WithTargetChanged(f func(prev, next *Hit)) Option {
	return func(c *Caster) { c.targetChanged = append(c.targetChanged, f) }
}

// Caster is not safe for concurrent use. Independent Casters are.
type Caster struct {
	rc            RayCaster
	cfg           Config
	validator     Validator
	log           *slog.Logger
	stable        bool
	observers     []func(Result)
	targetChanged []func(prev, next *Hit)

	points   []vec.Vec3
	control  [bezier.ControlPoints]vec.Vec3
	hit      *Hit
	prevHit  *Hit
	lastCast Result
}

func New(rc RayCaster, cfg Config, opts ...Option) *Caster {
	c := &Caster{
		rc:  rc,
		cfg: cfg,
		log: slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Caster) Config() Config       { return c.cfg }
func (c *Caster) SetConfig(cfg Config) { c.cfg = cfg }

// Points returns the points of the last cast.
func (c *Caster) Points() []vec.Vec3 { return c.lastCast.Points }

// Hit returns the published hit of the last cast.
func (c *Caster) Hit() *Hit { return c.lastCast.Hit }

func (c *Caster) Last() Result { return c.lastCast }

// SetStableTarget toggles the target stability check, see WithStableTarget.
func (c *Caster) SetStableTarget(b bool) {
	c.stable = b
	if !b {
		c.prevHit = nil
	}
}

// Reset forgets the previous target.
func (c *Caster) Reset() {
	c.prevHit = nil
}

// Cast computes the arc from origin along forward.
func (c *Caster) Cast(origin, forward vec.Vec3) (Result, error) {
	return c.CastWithTarget(origin, forward, nil)
}

// CastWithTarget is Cast with the downward projection replaced by target if
// target is not nil. The curve is still checked for obstructions.
func (c *Caster) CastWithTarget(origin, forward vec.Vec3, target *Hit) (Result, error) {
	if c.rc == nil {
		return Result{}, errors.Wrap(ErrInvalidArgument, "no ray caster")
	}
	if !origin.IsFinite() {
		return Result{}, errors.Wrapf(ErrInvalidArgument, "origin %v", origin)
	}
	dir := unitDirection(forward)
	if dir == (vec.Vec3{}) {
		return Result{}, errors.Wrapf(ErrInvalidArgument, "forward direction %v", forward)
	}
	if target != nil && !target.Point.IsFinite() {
		return Result{}, errors.Wrapf(ErrInvalidArgument, "target %v", target.Point)
	}
	cfg := c.cfg
	if cfg.SegmentCount < 0 {
		return Result{}, errors.Wrapf(ErrInvalidArgument, "segment count %d", cfg.SegmentCount)
	}
	filter := cfg.Filter()

	c.hit = nil
	forwardAnchor := c.projectForward(origin, dir, cfg, filter)
	var downAnchor vec.Vec3
	if target != nil {
		h := *target
		c.hit = &h
		downAnchor = h.Point
	} else {
		downAnchor = c.projectDown(forwardAnchor, cfg, filter)
	}

	c.control = [bezier.ControlPoints]vec.Vec3{
		origin,
		vec.Add(forwardAnchor, vec.Up.Scale(cfg.CurveOffset)),
		downAnchor,
		downAnchor,
	}
	var err error
	c.points, err = bezier.GenerateInto(c.points, cfg.SegmentCount, c.control[:])
	if err != nil {
		return Result{}, err
	}
	corrected, err := c.checkSegments(origin, forwardAnchor, cfg, filter)
	if err != nil {
		return Result{}, err
	}

	if c.hit != nil && c.validator != nil && !c.validator(c.hit.Object) {
		c.log.Debug("cast target rejected", slog.String("object", c.hit.Object.String()))
		c.hit = nil
	}

	r := Result{
		Points:        c.points,
		Hit:           c.hit,
		ForwardAnchor: forwardAnchor,
		DownAnchor:    downAnchor,
		Corrected:     corrected,
	}
	c.publish(r)
	return r, nil
}

// unitDirection scales v by its largest component before normalizing, so
// very long and very short vectors keep their direction. It returns the null
// vector if v has no direction.
func unitDirection(v vec.Vec3) vec.Vec3 {
	if !v.IsFinite() {
		return vec.Vec3{}
	}
	m := max(math32.Abs(v.X), math32.Abs(v.Y), math32.Abs(v.Z))
	if m == 0 {
		return vec.Vec3{}
	}
	return vec.Vec3{X: v.X / m, Y: v.Y / m, Z: v.Z / m}.Normalize()
}

func (c *Caster) projectForward(origin, dir vec.Vec3, cfg Config, filter Filter) vec.Vec3 {
	length := cfg.ForwardLength(dir)
	if h, ok := c.rc.Raycast(origin, dir, length, filter); ok && h.Distance < length {
		length = h.Distance
	}
	return vec.Add(vec.Add(origin, dir.Scale(length-epsilon)), vec.Up.Scale(epsilon))
}

func (c *Caster) projectDown(from vec.Vec3, cfg Config, filter Filter) vec.Vec3 {
	h, ok := c.rc.Raycast(from, vec.Down, max(cfg.MaxDownwardLength, 0), filter)
	if !ok {
		return from
	}
	if c.stable && c.prevHit != nil && c.prevHit.Object != h.Object {
		c.log.Debug("cast target unstable",
			slog.String("previous", c.prevHit.Object.String()),
			slog.String("object", h.Object.String()))
		return from
	}
	c.hit = &h
	return h.Point
}

// checkSegments probes the sampled curve between every step-th point and
// re-projects it from the first obstruction. Only one correction is made.
func (c *Caster) checkSegments(origin, forwardAnchor vec.Vec3, cfg Config, filter Filter) (bool, error) {
	n := len(c.points)
	step := cfg.CheckStep()
	if step == 0 || n < 2 {
		return false, nil
	}
	// the first probe always runs, with a single check it spans the whole curve
	for index := 0; index == 0 || index < n-step; index += step {
		current := c.points[index]
		next := c.points[min(index+step, n-1)]
		d := vec.Distance(current, next)
		if d == 0 {
			continue
		}
		dir := vec.Sub(next, current).Scale(1 / d)
		h, ok := c.rc.Raycast(current, dir, d, filter)
		// the curve ends on the ground it lands on
		if !ok || h.Distance >= d-epsilon {
			continue
		}
		collision := vec.Add(current, dir.Scale(h.Distance))
		down, ok := c.rc.Raycast(vec.Add(collision, vec.Up.Scale(epsilon)), vec.Down, math32.MaxFloat32, filter)
		if !ok {
			c.log.Debug("cast obstruction without ground", slog.Int("index", index))
			c.hit = nil
			return false, nil
		}
		c.hit = &down
		newDown := down.Point
		joint := forwardAnchor
		if newDown.Y < forwardAnchor.Y {
			joint = vec.Vec3{X: newDown.X, Y: forwardAnchor.Y, Z: newDown.Z}
		}
		c.control = [bezier.ControlPoints]vec.Vec3{origin, joint, newDown, newDown}
		var err error
		c.points, err = bezier.GenerateInto(c.points, cfg.SegmentCount, c.control[:])
		if err != nil {
			return false, err
		}
		c.log.Debug("cast corrected", slog.Int("index", index), slog.String("object", down.Object.String()))
		return true, nil
	}
	return false, nil
}

func (c *Caster) publish(r Result) {
	prev := c.lastCast.Hit
	c.lastCast = r
	if targetChanged(prev, r.Hit) {
		for _, f := range c.targetChanged {
			f(prev, r.Hit)
		}
	}
	if c.stable {
		c.prevHit = r.Hit
	}
	for _, f := range c.observers {
		f(r)
	}
}

func targetChanged(a, b *Hit) bool {
	if a == nil || b == nil {
		return a != b
	}
	return a.Object != b.Object
}
