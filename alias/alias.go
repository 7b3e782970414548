// SPDX-License-Identifier: GPL-2.0-or-later

// Package alias implements console aliases, names standing for a line of
// console commands.
package alias

import (
	"sort"
	"strings"

	"zinnia/cbuf"
	"zinnia/cmd"
	"zinnia/conlog"
)

type Aliases struct {
	m map[string]string
}

func New() *Aliases {
	return &Aliases{m: make(map[string]string)}
}

// Register adds the alias, unalias and unaliasall commands to c.
func (al *Aliases) Register(c *cmd.Commands) error {
	if err := c.Add("alias", al.alias); err != nil {
		return err
	}
	if err := c.Add("unalias", al.unalias); err != nil {
		return err
	}
	return c.Add("unaliasall", al.unaliasAll)
}

func (al *Aliases) alias(a cbuf.Arguments) error {
	args := a.Args()[1:]
	switch len(args) {
	case 0:
		al.list()
	case 1:
		name := args[0].String()
		if v, ok := al.m[name]; ok {
			conlog.Printf("  %s: %s", name, v)
		}
	default:
		// the parts have '"' already removed
		parts := make([]string, 0, len(args)-1)
		for _, p := range args[1:] {
			parts = append(parts, p.String())
		}
		al.m[args[0].String()] = strings.TrimSpace(strings.Join(parts, " ")) + "\n"
	}
	return nil
}

func (al *Aliases) list() {
	if len(al.m) == 0 {
		conlog.SafePrintf("no alias commands found\n")
		return
	}
	names := make([]string, 0, len(al.m))
	for k := range al.m {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		// each alias value ends with a '\n'
		conlog.SafePrintf("  %s: %s", k, al.m[k])
	}
	conlog.SafePrintf("%v alias command(s)\n", len(al.m))
}

func (al *Aliases) unalias(a cbuf.Arguments) error {
	args := a.Args()[1:]
	switch len(args) {
	case 1:
		name := args[0].String()
		if _, ok := al.m[name]; ok {
			delete(al.m, name)
		} else {
			conlog.Printf("No alias named %s\n", name)
		}
	default:
		conlog.Printf("unalias <name> : delete alias\n")
	}
	return nil
}

func (al *Aliases) unaliasAll(_ cbuf.Arguments) error {
	al.m = make(map[string]string)
	return nil
}

func (al *Aliases) Get(name string) (string, bool) {
	a, ok := al.m[name]
	return a, ok
}

// Execute returns the executor expanding aliases in front of the buffer.
func (al *Aliases) Execute() cbuf.Efunc {
	return func(cb *cbuf.CommandBuffer, a cbuf.Arguments) (bool, error) {
		args := a.Args()
		if len(args) == 0 {
			return false, nil
		}
		if v, ok := al.Get(args[0].String()); ok {
			cb.InsertText(v)
			return true, nil
		}
		return false, nil
	}
}
