// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"flag"
	"fmt"
	"os"

	"zinnia/castlib"
	cmdl "zinnia/commandline"
	"zinnia/conlog"
)

func run() error {
	conlog.SetDebug(cmdl.ConsoleDebug())
	castlib.SetBaseDir(cmdl.BaseDirectory())

	if f := cmdl.ExecFile(); f != "" {
		if err := castlib.Execute(fmt.Sprintf("exec %q", f)); err != nil {
			return err
		}
	}
	if err := castlib.Execute(cmdl.ConsoleCommands(flag.Args())); err != nil {
		return err
	}
	if cmdl.Frames() {
		if err := castlib.Execute(fmt.Sprintf("frames %d", cmdl.FrameCount())); err != nil {
			return err
		}
	}
	// run what is left behind a wait
	cb := castlib.Buffer()
	for !cb.Empty() {
		if err := cb.Execute(); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		conlog.Logger().Error("console", "err", err)
		os.Exit(1)
	}
}
