// SPDX-License-Identifier: GPL-2.0-or-later

package cbuf

import (
	"strings"

	"zinnia/conlog"
)

// Efunc runs a parsed line. It returns false if it does not know the command.
type Efunc func(*CommandBuffer, Arguments) (bool, error)

type CommandBuffer struct {
	buf string
	// set by the wait command, the rest of the buffer runs with the next
	// call to Execute
	wait      bool
	executors []Efunc
}

func (c *CommandBuffer) SetCommandExecutors(e []Efunc) {
	c.executors = e
}

func (c *CommandBuffer) AddText(text string) {
	c.buf += text
}

// InsertText puts text in front of the buffer, it runs before anything
// already queued.
func (c *CommandBuffer) InsertText(text string) {
	c.buf = text + "\n" + c.buf
}

func (c *CommandBuffer) Empty() bool {
	return len(c.buf) == 0
}

// Wait stops Execute after the current line.
func (c *CommandBuffer) Wait() {
	c.wait = true
}

// Execute runs lines split at newlines and unquoted ';' until the buffer is
// empty or a wait command is found. The first executor error stops execution
// and the remaining buffer is kept.
func (c *CommandBuffer) Execute() error {
	for len(c.buf) != 0 {
		i := 0
		quote := false
	LineLoop:
		for i = 0; i < len(c.buf); i++ {
			switch c.buf[i] {
			case '"':
				quote = !quote
			case ';':
				if !quote {
					break LineLoop
				}
			case '\n':
				break LineLoop
			}
		}
		line := c.buf[:i]
		if i < len(c.buf) {
			i++
		}
		c.buf = c.buf[i:]
		if err := c.execute(line); err != nil {
			return err
		}
		if c.wait {
			c.wait = false
			return nil
		}
	}
	return nil
}

func (c *CommandBuffer) execute(s string) error {
	a := Parse(s)
	args := a.Args()
	if len(args) == 0 {
		return nil // no tokens
	}
	if strings.EqualFold(args[0].String(), "wait") {
		c.wait = true
		return nil
	}
	for _, e := range c.executors {
		if ok, err := e(c, a); err != nil {
			return err
		} else if ok {
			return nil
		}
	}
	name := args[0].String()
	conlog.Logger().Debug("unknown command", "name", name)
	conlog.Printf("Unknown command \"%s\"\n", name)
	return nil
}
