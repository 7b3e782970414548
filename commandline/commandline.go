// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var (
	conDebug bool

	frames = boolInt{false, 1}

	basedir string
	exec    string
)

type boolInt struct {
	set bool
	num int
}

func (b *boolInt) IsBoolFlag() bool {
	// We can not support both "-flag" and "-flag 10"
	// This allows "-flag", and "-flag=10"
	// and also "-flag=true" and "-flag=false"
	// but not "-flag 10"
	return true
}

func (b *boolInt) Set(s string) error {
	v, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		v, err := strconv.ParseBool(s)
		b.set = v
		return err
	}
	b.set = true
	b.num = int(v)
	return nil
}

func (b *boolInt) String() string {
	return fmt.Sprintf("Set: %v, Num: %v", b.set, b.num)
}

func init() {
	flag.BoolVar(&conDebug, "condebug", false, "enable console debugging")
	flag.Var(&frames, "frames", "run frames after the scripts, optional number of frames")
	flag.StringVar(&basedir, "basedir", ".", "directory of the cast history")
	flag.StringVar(&exec, "exec", "", "console script to run at startup")
}

func BaseDirectory() string {
	return basedir
}

func ExecFile() string {
	return exec
}

func ConsoleDebug() bool {
	return conDebug
}

func Frames() bool {
	return frames.set
}

func FrameCount() int {
	return frames.num
}

// ConsoleCommands turns the arguments left after the flags into console
// text. Every argument starting with '+' begins a new command:
//
//	+pose 0 1 0 0 0 +cast
//
// becomes two lines. Arguments before the first '+' are ignored.
func ConsoleCommands(args []string) string {
	var b strings.Builder
	started := false
	for _, a := range args {
		if strings.HasPrefix(a, "+") && len(a) > 1 {
			if started {
				b.WriteByte('\n')
			}
			started = true
			b.WriteString(a[1:])
			continue
		}
		if !started {
			continue
		}
		b.WriteByte(' ')
		if strings.ContainsAny(a, " \t;") {
			a = strconv.Quote(a)
		}
		b.WriteString(a)
	}
	if started {
		b.WriteByte('\n')
	}
	return b.String()
}
