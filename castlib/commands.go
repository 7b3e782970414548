// SPDX-License-Identifier: GPL-2.0-or-later

package castlib

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"zinnia/cast"
	"zinnia/cbuf"
	"zinnia/cmd"
	"zinnia/conlog"
	"zinnia/history"
	"zinnia/math/vec"
	"zinnia/physics"
	"zinnia/rand"
)

func addCommand(name string, f cmd.QFunc) {
	cmd.Must(cmd.AddCommand(name, f))
}

func init() {
	addCommand("box", boxCmd)
	addCommand("sphere", sphereCmd)
	addCommand("plane", planeCmd)
	addCommand("brush", brushCmd)
	addCommand("remove", removeCmd)
	addCommand("clearworld", clearWorldCmd)
	addCommand("objects", objectsCmd)
	addCommand("reject", rejectCmd)
	addCommand("accept", acceptCmd)
	addCommand("pose", poseCmd)
	addCommand("cast", castCmd)
	addCommand("castto", castToCmd)
	addCommand("frames", framesCmd)
	addCommand("history", historyCmd)
	addCommand("savehistory", saveHistoryCmd)
	addCommand("loadhistory", loadHistoryCmd)
	addCommand("scatter", scatterCmd)
	addCommand("echo", echoCmd)
	addCommand("exec", execCmd)
}

// floats parses all args, ok is false if one is not a number.
func floats(args []cbuf.QArg) ([]float32, bool) {
	r := make([]float32, 0, len(args))
	for _, a := range args {
		f, err := a.ParseFloat32()
		if err != nil {
			return nil, false
		}
		r = append(r, f)
	}
	return r, true
}

func vec3(f []float32) vec.Vec3 {
	return vec.Vec3{X: f[0], Y: f[1], Z: f[2]}
}

// bodyOptions reads the optional [layer] [trigger] arguments.
func bodyOptions(args []cbuf.QArg) []physics.BodyOption {
	var opts []physics.BodyOption
	if len(args) > 0 {
		opts = append(opts, physics.WithLayer(args[0].Int()))
	}
	if len(args) > 1 && args[1].Bool() {
		opts = append(opts, physics.AsTrigger())
	}
	return opts
}

func (s *session) link(name string, shape physics.Shape, opts []physics.BodyOption) {
	if err := s.world.Link(physics.NewBody(name, shape, opts...)); err != nil {
		conlog.Printf("%v\n", err)
	}
}

func boxCmd(a cbuf.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 7 {
		conlog.Printf("box <name> minx miny minz maxx maxy maxz [layer] [trigger]\n")
		return nil
	}
	f, ok := floats(args[1:7])
	if !ok {
		conlog.Printf("box: bad coordinates\n")
		return nil
	}
	sess.link(args[0].String(), physics.NewBox(vec3(f), vec3(f[3:])), bodyOptions(args[7:]))
	return nil
}

func sphereCmd(a cbuf.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 5 {
		conlog.Printf("sphere <name> cx cy cz radius [layer] [trigger]\n")
		return nil
	}
	f, ok := floats(args[1:5])
	if !ok || f[3] <= 0 {
		conlog.Printf("sphere: bad center or radius\n")
		return nil
	}
	sess.link(args[0].String(), physics.Sphere{Origin: vec3(f), Radius: f[3]}, bodyOptions(args[5:]))
	return nil
}

func planeCmd(a cbuf.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 5 {
		conlog.Printf("plane <name> nx ny nz dist [layer]\n")
		return nil
	}
	f, ok := floats(args[1:5])
	if !ok || vec3(f).Length() == 0 {
		conlog.Printf("plane: bad normal\n")
		return nil
	}
	var opts []physics.BodyOption
	if len(args) > 5 {
		opts = append(opts, physics.WithLayer(args[5].Int()))
	}
	sess.link(args[0].String(), physics.NewPlane(vec3(f), f[3]), opts)
	return nil
}

// brush is a box cut by additional planes.
func brushCmd(a cbuf.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 7 || (len(args)-7)%4 != 0 {
		conlog.Printf("brush <name> minx miny minz maxx maxy maxz [nx ny nz dist ...]\n")
		return nil
	}
	f, ok := floats(args[1:])
	if !ok {
		conlog.Printf("brush: bad coordinates\n")
		return nil
	}
	box := physics.NewBoxBrush(vec3(f), vec3(f[3:]))
	planes := append([]physics.Plane(nil), box.Planes()...)
	for p := f[6:]; len(p) >= 4; p = p[4:] {
		planes = append(planes, physics.NewPlane(vec3(p), p[3]))
	}
	mins, maxs := box.Bounds()
	b, err := physics.NewBrush(planes, mins, maxs)
	if err != nil {
		conlog.Printf("brush: %v\n", err)
		return nil
	}
	sess.link(args[0].String(), b, nil)
	return nil
}

func (s *session) body(name string) (*physics.Body, bool) {
	b, ok := s.world.ByName(name)
	if !ok {
		conlog.Printf("no object %q\n", name)
	}
	return b, ok
}

func removeCmd(a cbuf.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		conlog.Printf("remove <name>\n")
		return nil
	}
	if b, ok := sess.body(args[0].String()); ok {
		sess.world.Unlink(b.ID())
		delete(sess.rejected, b.ID())
	}
	return nil
}

func clearWorldCmd(_ cbuf.Arguments) error {
	sess.world.Clear()
	sess.rejected = make(map[cast.ObjectID]bool)
	sess.caster.Reset()
	return nil
}

func shapeKind(s physics.Shape) string {
	switch s.(type) {
	case physics.Box:
		return "box"
	case physics.Sphere:
		return "sphere"
	case physics.Plane:
		return "plane"
	case *physics.Brush:
		return "brush"
	default:
		return fmt.Sprintf("%T", s)
	}
}

func objectsCmd(_ cbuf.Arguments) error {
	bodies := sess.world.Bodies()
	for _, b := range bodies {
		flags := ""
		if b.Trigger() {
			flags += " trigger"
		}
		if sess.rejected[b.ID()] {
			flags += " rejected"
		}
		conlog.SafePrintf("  %s %s layer %d%s\n", sess.objectName(b.ID()), shapeKind(b.Shape()), b.Layer(), flags)
	}
	conlog.SafePrintf("%v objects\n", len(bodies))
	return nil
}

func setRejected(a cbuf.Arguments, reject bool) {
	args := a.Args()
	if len(args) != 2 {
		conlog.Printf("%s <name>\n", args[0].String())
		return
	}
	b, ok := sess.body(args[1].String())
	if !ok {
		return
	}
	if reject {
		sess.rejected[b.ID()] = true
	} else {
		delete(sess.rejected, b.ID())
	}
}

func rejectCmd(a cbuf.Arguments) error {
	setRejected(a, true)
	return nil
}

func acceptCmd(a cbuf.Arguments) error {
	setRejected(a, false)
	return nil
}

func poseCmd(a cbuf.Arguments) error {
	args := a.Args()[1:]
	if len(args) == 0 {
		conlog.Printf("pose (%v %v %v) pitch %v yaw %v\n",
			sess.origin.X, sess.origin.Y, sess.origin.Z, sess.pitch, sess.yaw)
		return nil
	}
	f, ok := floats(args)
	if !ok || len(f) != 5 {
		conlog.Printf("pose px py pz pitch yaw\n")
		return nil
	}
	sess.setPose(vec3(f), f[3], f[4])
	return nil
}

func printResult(r cast.Result) {
	if r.Hit == nil {
		conlog.Printf("no target\n")
	} else {
		p := r.Hit.Point
		conlog.Printf("hit %s at (%.3f %.3f %.3f) distance %.3f\n",
			sess.objectName(r.Hit.Object), p.X, p.Y, p.Z, r.Hit.Distance)
	}
	if r.Corrected {
		conlog.Printf("curve corrected\n")
	}
	for i, p := range r.Points {
		conlog.DPrintf("point %d (%.3f %.3f %.3f)", i, p.X, p.Y, p.Z)
	}
	conlog.Printf("%d points\n", len(r.Points))
}

func castCmd(_ cbuf.Arguments) error {
	r, err := sess.cast(nil)
	if err != nil {
		return err
	}
	printResult(r)
	return nil
}

// castto targets the top centre of the named object's bounds.
func castToCmd(a cbuf.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		conlog.Printf("castto <name>\n")
		return nil
	}
	b, ok := sess.body(args[0].String())
	if !ok {
		return nil
	}
	mins, maxs := b.Shape().Bounds()
	c := vec.Lerp(mins, maxs, 0.5)
	c.Y = maxs.Y
	if !c.IsFinite() {
		conlog.Printf("castto: %s is unbounded\n", args[0].String())
		return nil
	}
	target := &cast.Hit{
		Point:    c,
		Normal:   vec.Up,
		Distance: vec.Distance(sess.origin, c),
		Object:   b.ID(),
	}
	r, err := sess.cast(target)
	if err != nil {
		return err
	}
	printResult(r)
	return nil
}

// frames casts once per frame of the fixed step clock.
func framesCmd(a cbuf.Arguments) error {
	args := a.Args()[1:]
	n := 1
	if len(args) > 0 {
		n = args[0].Int()
	}
	if n < 1 {
		conlog.Printf("frames <count>\n")
		return nil
	}
	return runFrames(n)
}

func runFrames(n int) error {
	start := sess.time.Time()
	for i := 0; i < n; i++ {
		sess.time.Step()
		if _, err := sess.cast(nil); err != nil {
			return errors.Wrapf(err, "frame %d", sess.time.FrameCount())
		}
	}
	conlog.Printf("%d frames, %.3f seconds, target %s\n",
		n, sess.time.Time()-start, sess.hitName(sess.caster.Hit()))
	return nil
}

// historyCmd lists the recorded casts, the one under the cursor marked with
// '>'. "history prev" and "history next" move the cursor.
func historyCmd(a cbuf.Arguments) error {
	args := a.Args()
	if len(args) > 1 {
		switch args[1].String() {
		case "prev":
			sess.hist.Up()
		case "next":
			sess.hist.Down()
		default:
			conlog.Printf("history [prev|next]\n")
			return nil
		}
		r, ok := sess.hist.Current()
		if !ok {
			conlog.Printf("end of history\n")
			return nil
		}
		printRecord(">", r)
		return nil
	}
	for i, r := range sess.hist.Records() {
		mark := " "
		if i == sess.hist.Cursor() {
			mark = ">"
		}
		printRecord(mark, r)
	}
	conlog.SafePrintf("%v casts\n", sess.hist.Len())
	return nil
}

func printRecord(mark string, r history.Record) {
	hit := "none"
	if r.Hit != nil {
		hit = sess.objectName(r.Hit.Object)
	}
	conlog.SafePrintf("%s t=%.3f origin (%.2f %.2f %.2f) target %s, %d points\n",
		mark, r.Time, r.Origin.X, r.Origin.Y, r.Origin.Z, hit, len(r.Points))
}

func saveHistoryCmd(_ cbuf.Arguments) error {
	if err := sess.hist.Save(baseDir); err != nil {
		conlog.Printf("savehistory: %v\n", err)
		return nil
	}
	conlog.Printf("saved %d casts\n", sess.hist.Len())
	return nil
}

func loadHistoryCmd(_ cbuf.Arguments) error {
	if err := sess.hist.Load(baseDir); err != nil {
		conlog.Printf("loadhistory: %v\n", err)
		return nil
	}
	conlog.Printf("loaded %d casts\n", sess.hist.Len())
	return nil
}

func scatterCmd(a cbuf.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 2 || args[0].Int() < 1 {
		conlog.Printf("scatter <count> <seed>\n")
		return nil
	}
	n := sess.scatter(args[0].Int(), uint32(args[1].Int()))
	conlog.Printf("scattered %d boxes\n", n)
	return nil
}

// scatter adds count random boxes resting on y = 0 and returns how many were
// linked.
func (s *session) scatter(count int, seed uint32) int {
	g := rand.New(seed)
	linked := 0
	next := 0
	for i := 0; i < count; i++ {
		name := ""
		for {
			name = fmt.Sprintf("scatter%d", next)
			next++
			if _, ok := s.world.ByName(name); !ok {
				break
			}
		}
		c := g.Vec3In(vec.Vec3{X: -worldSize / 2, Z: -worldSize / 2}, vec.Vec3{X: worldSize / 2, Z: worldSize / 2})
		h := g.Vec3In(vec.Vec3{X: 0.25, Y: 0.25, Z: 0.25}, vec.Vec3{X: 4, Y: 4, Z: 4})
		mins := vec.Vec3{X: c.X - h.X, Y: 0, Z: c.Z - h.Z}
		maxs := vec.Vec3{X: c.X + h.X, Y: 2 * h.Y, Z: c.Z + h.Z}
		if err := s.world.Link(physics.NewBody(name, physics.NewBox(mins, maxs))); err != nil {
			conlog.Printf("%v\n", err)
			continue
		}
		linked++
	}
	return linked
}

func echoCmd(a cbuf.Arguments) error {
	conlog.Printf("%s\n", a.ArgumentString())
	return nil
}

// execCmd queues a script file in front of the command buffer.
func execCmd(a cbuf.Arguments) error {
	args := a.Args()
	if len(args) != 2 {
		conlog.Printf("exec <filename> : execute a script file\n")
		return nil
	}
	b, err := os.ReadFile(args[1].String())
	if err != nil {
		conlog.Printf("couldn't exec %v\n", args[1])
		return nil
	}
	conlog.Printf("execing %v\n", args[1])
	cbuffer.InsertText(string(b))
	return nil
}
