// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"zinnia/cbuf"
	"zinnia/cmd"
	"zinnia/conlog"
)

var (
	cvarArray  []*Cvar
	cvarByName = make(map[string]*Cvar)
)

type flag uint64

const (
	// cvar flags bitfield
	NONE    flag = 0
	ARCHIVE flag = 1
	NOTIFY  flag = 1 << 1
	ROM     flag = 1 << 6
)

type CallbackFunc func(cv *Cvar)

type Cvar struct {
	archive  bool
	notify   bool
	rom      bool
	user     bool
	callback CallbackFunc
	name     string
	// stringValue is the truth, value the derived one
	stringValue  string
	value        float32
	defaultValue string
	id           int
}

func All() []*Cvar {
	return cvarArray
}

func (cv *Cvar) Archive() bool {
	return cv.archive
}

func (cv *Cvar) Notify() bool {
	return cv.notify
}

func (cv *Cvar) UserDefined() bool {
	return cv.user
}

// SetCallback sets a function called after every change of the value.
func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.callback = cb
}

func (cv *Cvar) SetByString(s string) {
	if cv.rom {
		return
	}
	cv.stringValue = s
	pf, _ := strconv.ParseFloat(cv.stringValue, 32)
	cv.value = float32(pf)
	if cv.callback != nil {
		cv.callback(cv)
	}
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) String() string {
	return cv.stringValue
}

func (cv *Cvar) Default() string {
	return cv.defaultValue
}

func (cv *Cvar) ID() int {
	return cv.id
}

func (cv *Cvar) Name() string {
	return cv.name
}

func (cv *Cvar) Value() float32 {
	return cv.value
}

// Int returns the value truncated towards zero.
func (cv *Cvar) Int() int {
	return int(cv.value)
}

func (cv *Cvar) SetValue(value float32) {
	if float32(int(value)) == value {
		v := strconv.FormatInt(int64(value), 10)
		cv.SetByString(v)
	} else {
		v := strconv.FormatFloat(float64(value), 'f', -1, 32)
		cv.SetByString(v)
	}
}

func (cv *Cvar) Toggle() {
	if cv.String() == "1" {
		cv.SetByString("0")
	} else {
		cv.SetByString("1")
	}
}

func (cv *Cvar) Bool() bool {
	return cv.stringValue != "0"
}

func Get(name string) (*Cvar, bool) {
	cv, ok := cvarByName[name]
	return cv, ok
}

func GetByID(id int) (*Cvar, error) {
	if id < 0 || id >= len(cvarArray) {
		return nil, errors.Errorf("cvar id %d out of bounds", id)
	}
	return cvarArray[id], nil
}

func create(name, value string) *Cvar {
	cv := &Cvar{name: name, defaultValue: value}
	cv.SetByString(value)
	pos := len(cvarArray)
	cvarArray = append(cvarArray, cv)
	cvarByName[name] = cv
	cv.id = pos
	return cv
}

func Register(name, value string, flags flag) (*Cvar, error) {
	if _, ok := cvarByName[name]; ok {
		return nil, errors.Errorf("can't register variable %s, already defined", name)
	}

	cv := create(name, value)

	if flags&ARCHIVE != 0 {
		cv.archive = true
	}
	if flags&NOTIFY != 0 {
		cv.notify = true
	}
	if flags&ROM != 0 {
		cv.rom = true
	}

	return cv, nil
}

func MustRegister(n, v string, flag flag) *Cvar {
	cv, err := Register(n, v, flag)
	if err != nil {
		panic(err.Error())
	}
	return cv
}

// Execute shows or sets the cvar named by the first argument. It has the
// cbuf.Efunc signature.
func Execute(_ *cbuf.CommandBuffer, a cbuf.Arguments) (bool, error) {
	args := a.Args()
	if len(args) == 0 {
		return false, nil
	}
	cv, ok := Get(args[0].String())
	if !ok {
		return false, nil
	}
	if len(args) == 1 {
		conlog.Printf("\"%s\" is \"%s\"\n", cv.Name(), cv.String())
		return true, nil
	}
	cv.SetByString(args[1].String())
	return true, nil
}

func init() {
	cmd.Must(cmd.AddCommand("cvarlist", list))
	cmd.Must(cmd.AddCommand("cycle", cycle))
	cmd.Must(cmd.AddCommand("inc", inc))
	cmd.Must(cmd.AddCommand("reset", reset))
	cmd.Must(cmd.AddCommand("resetall", resetAll))
	cmd.Must(cmd.AddCommand("set", set))
	cmd.Must(cmd.AddCommand("toggle", toggle))
}

func set(a cbuf.Arguments) error {
	args := a.Args()[1:]
	switch {
	case len(args) >= 2:
		if cmd.Exists(args[0].String()) {
			conlog.Printf("conflict with command\n")
			return nil
		}
		if cv, ok := cvarByName[args[0].String()]; ok {
			cv.SetByString(args[1].String())
		} else {
			cv := create(args[0].String(), args[1].String())
			cv.user = true
		}
	default:
		conlog.Printf("set <cvar> <value>\n")
	}
	return nil
}

func toggle(a cbuf.Arguments) error {
	args := a.Args()[1:]
	switch c := len(args); c {
	case 1:
		arg := args[0].String()
		if cv, ok := Get(arg); ok {
			cv.Toggle()
		} else {
			conlog.Printf("toggle: variable %v not found\n", arg)
		}
	default:
		conlog.Printf("toggle <cvar> : toggle cvar\n")
	}
	return nil
}

func incr(n string, v float32) {
	if cv, ok := Get(n); ok {
		cv.SetValue(cv.Value() + v)
	} else {
		conlog.Printf("inc: variable %v not found\n", n)
	}
}

func inc(a cbuf.Arguments) error {
	args := a.Args()[1:]
	switch c := len(args); c {
	case 1:
		incr(args[0].String(), 1)
	case 2:
		incr(args[0].String(), args[1].Float32())
	default:
		conlog.Printf("inc <cvar> [amount] : increment cvar\n")
	}
	return nil
}

func reset(a cbuf.Arguments) error {
	args := a.Args()[1:]
	switch c := len(args); c {
	case 1:
		arg := args[0].String()
		if cv, ok := Get(arg); ok {
			cv.Reset()
		} else {
			conlog.Printf("reset: variable %v not found\n", arg)
		}
	default:
		conlog.Printf("reset <cvar> : reset cvar to default\n")
	}
	return nil
}

func resetAll(_ cbuf.Arguments) error {
	for _, cv := range All() {
		cv.Reset()
	}
	return nil
}

func list(a cbuf.Arguments) error {
	args := a.Args()
	prefix := ""
	if len(args) > 1 {
		prefix = args[1].String()
	}
	count := 0
	for _, v := range All() {
		if !strings.HasPrefix(v.Name(), prefix) {
			continue
		}
		count++
		archive := " "
		if v.Archive() {
			archive = "*"
		}
		notify := " "
		if v.Notify() {
			notify = "s"
		}
		conlog.SafePrintf("%s%s %s \"%s\"\n", archive, notify, v.Name(), v.String())
	}
	if prefix != "" {
		conlog.SafePrintf("%v cvars beginning with \"%s\"\n", count, prefix)
		return nil
	}
	conlog.SafePrintf("%v cvars\n", count)
	return nil
}

func cycle(a cbuf.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 2 {
		conlog.Printf("cycle <cvar> <value list>: cycle cvar through a list of values\n")
		return nil
	}
	cv, ok := Get(args[0].String())
	if !ok {
		conlog.Printf("cycle: variable %v not found\n", args[0].String())
		return nil
	}
	oldValue := cv.String()
	i := 0
	for i < len(args)-1 {
		i++
		if oldValue == args[i].String() {
			break
		}
	}
	i %= len(args) - 1
	i++
	cv.SetByString(args[i].String())
	return nil
}
