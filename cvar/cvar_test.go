// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"zinnia/cbuf"
	"zinnia/cmd"
	"zinnia/conlog"
)

func run(t *testing.T, line string) {
	t.Helper()
	a := cbuf.Parse(line)
	if ok, err := cmd.Execute(nil, a); err != nil || !ok {
		if ok, err := Execute(nil, a); err != nil || !ok {
			t.Fatalf("%q was not handled: %v", line, err)
		}
	}
}

func TestRegister(t *testing.T) {
	cv := MustRegister("test_register", "2.5", ARCHIVE)
	if cv.Value() != 2.5 || cv.String() != "2.5" || !cv.Archive() {
		t.Errorf("registered %v %q archive %v", cv.Value(), cv.String(), cv.Archive())
	}
	if _, err := Register("test_register", "1", NONE); err == nil {
		t.Errorf("registering twice succeeded")
	}
	got, ok := Get("test_register")
	if !ok || got != cv {
		t.Errorf("Get() = %v, %v", got, ok)
	}
	byID, err := GetByID(cv.ID())
	if err != nil || byID != cv {
		t.Errorf("GetByID(%d) = %v, %v", cv.ID(), byID, err)
	}
	if _, err := GetByID(-1); err == nil {
		t.Errorf("GetByID(-1) succeeded")
	}
}

func TestSetValue(t *testing.T) {
	cv := MustRegister("test_setvalue", "0", NONE)
	changes := 0
	cv.SetCallback(func(*Cvar) { changes++ })
	for _, tc := range []struct {
		in   float32
		want string
	}{
		{10, "10"},
		{-3, "-3"},
		{0.25, "0.25"},
	} {
		cv.SetValue(tc.in)
		if cv.String() != tc.want {
			t.Errorf("SetValue(%v) = %q want %q", tc.in, cv.String(), tc.want)
		}
	}
	if changes != 3 {
		t.Errorf("callback called %d times want 3", changes)
	}
	cv.Reset()
	if cv.String() != "0" || cv.Default() != "0" {
		t.Errorf("Reset() = %q", cv.String())
	}
}

func TestROM(t *testing.T) {
	cv := MustRegister("test_rom", "1", ROM)
	cv.SetByString("2")
	if cv.Value() != 1 {
		t.Errorf("read only cvar changed to %v", cv.Value())
	}
}

func TestCommands(t *testing.T) {
	cv := MustRegister("test_commands", "0", NONE)
	for _, tc := range []struct {
		line string
		want string
	}{
		{"toggle test_commands", "1"},
		{"toggle test_commands", "0"},
		{"inc test_commands", "1"},
		{"inc test_commands 2.5", "3.5"},
		{"set test_commands 7", "7"},
		{"test_commands 8", "8"},
		{"reset test_commands", "0"},
		{"cycle test_commands a b c", "a"},
		{"cycle test_commands a b c", "b"},
		{"cycle test_commands a b c", "c"},
		{"cycle test_commands a b c", "a"},
	} {
		run(t, tc.line)
		if cv.String() != tc.want {
			t.Errorf("after %q value is %q want %q", tc.line, cv.String(), tc.want)
		}
	}
	run(t, "set test_user 4")
	user, ok := Get("test_user")
	if !ok || !user.UserDefined() || user.Value() != 4 {
		t.Errorf("set did not create a user cvar: %v %v", user, ok)
	}
}

func TestCvarList(t *testing.T) {
	var b bytes.Buffer
	conlog.SetOutput(&b)
	defer conlog.SetOutput(os.Stdout)

	MustRegister("test_list_a", "1", ARCHIVE)
	MustRegister("test_list_b", "x", NOTIFY)
	run(t, "cvarlist test_list_")
	want := "*  test_list_a \"1\"\n s test_list_b \"x\"\n2 cvars beginning with \"test_list_\"\n"
	if got := b.String(); got != want {
		t.Errorf("cvarlist printed %q, want %q", got, want)
	}
	b.Reset()
	run(t, "test_list_b")
	if got := b.String(); !strings.Contains(got, `"test_list_b" is "x"`) {
		t.Errorf("showing a cvar printed %q", got)
	}
}
