// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"zinnia/cbuf"
)

type QFunc func(args cbuf.Arguments) error

type Commands map[string]QFunc

func New() *Commands {
	c := make(Commands)
	return &c
}

func (c *Commands) Add(name string, f QFunc) error {
	ln := strings.ToLower(name)
	if _, ok := (*c)[ln]; ok {
		return errors.Errorf("AddCommand: %s already defined", ln)
	}
	(*c)[ln] = f
	return nil
}

func (c *Commands) Exists(cmdName string) bool {
	name := strings.ToLower(cmdName)
	_, ok := (*c)[name]
	return ok
}

func (c *Commands) List() []string {
	cmds := make([]string, 0, len(*c))
	for cmd := range *c {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)
	return cmds
}

// Execute runs the command named by the first argument. It has the
// cbuf.Efunc signature.
func (c *Commands) Execute(_ *cbuf.CommandBuffer, a cbuf.Arguments) (bool, error) {
	n := a.Args()
	if len(n) == 0 {
		return false, nil
	}
	name := strings.ToLower(n[0].String())
	if cmd, ok := (*c)[name]; ok {
		if err := cmd(a); err != nil {
			return false, errors.Wrapf(err, "%s", name)
		}
		return true, nil
	}
	return false, nil
}

var (
	commands = make(Commands)
)

func init() {
	Must(AddCommand("cmdlist", commands.printCmdList()))
}

// Global returns the registry used by AddCommand.
func Global() *Commands {
	return &commands
}

func Must(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func AddCommand(name string, f QFunc) error {
	return commands.Add(name, f)
}

func Exists(cmdName string) bool {
	return commands.Exists(cmdName)
}

func Execute(cb *cbuf.CommandBuffer, a cbuf.Arguments) (bool, error) {
	return commands.Execute(cb, a)
}

func List() []string {
	return commands.List()
}
