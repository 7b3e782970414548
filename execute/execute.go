// SPDX-License-Identifier: GPL-2.0-or-later

package execute

import (
	"zinnia/cbuf"
	"zinnia/cmd"
	"zinnia/cvar"
)

// Executors is the console executor chain, commands shadow cvars.
func Executors() []cbuf.Efunc {
	return []cbuf.Efunc{cmd.Execute, cvar.Execute}
}

// NewBuffer returns a command buffer running the console executor chain
// followed by extra.
func NewBuffer(extra ...cbuf.Efunc) *cbuf.CommandBuffer {
	cb := &cbuf.CommandBuffer{}
	cb.SetCommandExecutors(append(Executors(), extra...))
	return cb
}

// Execute runs s and everything it queued.
func Execute(cb *cbuf.CommandBuffer, s string) error {
	cb.AddText(s + "\n")
	return cb.Execute()
}
