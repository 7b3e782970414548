// SPDX-License-Identifier: GPL-2.0-or-later

package cbuf

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"zinnia/conlog"
)

type QArg struct {
	a string
}

func NewQArg(s string) QArg {
	return QArg{s}
}

func (a QArg) String() string {
	return a.a
}

func (a QArg) Int() int {
	r, err := strconv.ParseInt(a.a, 10, 0)
	if err != nil {
		return 0
	}
	return int(r)
}

func (a QArg) Float32() float32 {
	r, err := strconv.ParseFloat(a.a, 32)
	if err != nil {
		return 0
	}
	return float32(r)
}

// ParseFloat32 is Float32 with the parse error.
func (a QArg) ParseFloat32() (float32, error) {
	r, err := strconv.ParseFloat(a.a, 32)
	return float32(r), err
}

func (a QArg) Bool() bool {
	switch a.a {
	case "1", "t", "T", "true", "TRUE", "True", "On", "ON", "on":
		return true
	default:
		return false
	}
}

type Arguments struct {
	// each arg on its own
	args []QArg
	// the trimmed input line
	full string
}

func (c *Arguments) Argv(i int) QArg {
	if i < 0 || i >= len(c.args) {
		conlog.Logger().Debug("argument out of bounds", "index", i, "count", len(c.args))
		return QArg{""}
	}
	return c.args[i]
}

func (c *Arguments) Full() string {
	return c.full
}

func (c *Arguments) Args() []QArg {
	return c.args
}

func (c *Arguments) ArgumentString() string {
	// args[0] is the cmd
	if len(c.args) < 2 {
		return ""
	}
	r := strings.TrimPrefix(c.full, c.args[0].String())
	r = strings.TrimLeftFunc(r, unicode.IsSpace)
	if len(r) > 1 && r[0] == '"' {
		r = strings.Trim(r, "\"\t\n\v\f\r ")
	}
	return r
}

// Message returns everything after the second argument.
// Expects the first two arguments to be cmd and target.
func (c *Arguments) Message() string {
	if len(c.args) < 3 {
		return ""
	}
	t := c.args[1].String()
	return c.full[strings.Index(c.full, t)+len(t)+1:]
}

// Parse splits a single console line into arguments. Quoted strings are one
// argument, // starts a comment.
func Parse(s string) (args Arguments) {
	args.full = strings.TrimFunc(s, unicode.IsSpace)
	args.args = []QArg{}

	l := lexer{input: args.full}
	for {
		i := l.nextItem()
		switch i.typ {
		case itemWord:
			args.args = append(args.args, QArg{i.val})
		case itemString:
			v := strings.TrimPrefix(i.val, `"`)
			v = strings.TrimSuffix(v, `"`)
			args.args = append(args.args, QArg{v})
		case itemSpace:
			continue
		case itemEOF:
			return
		default:
			conlog.Logger().Debug("parse error", "line", args.full, "item", i.String())
			return
		}
	}
}

type itemType int

const (
	itemError itemType = iota
	itemEOF
	itemString // quoted string includes quotes
	itemSpace
	itemWord
)

const eof = -1

type item struct {
	typ itemType
	val string
}

func (i item) String() string {
	switch i.typ {
	case itemEOF:
		return "EOF"
	case itemError:
		return i.val
	}
	if len(i.val) > 10 {
		return fmt.Sprintf("%.10q...", i.val)
	}
	return fmt.Sprintf("%q", i.val)
}

type lexer struct {
	input string
	start int
	pos   int
	width int
}

func (l *lexer) nextItem() item {
	r := l.next()
	switch {
	case r == eof || isEndOfLine(r):
		return l.emit(itemEOF)
	case isSpace(r):
		for isSpace(l.peek()) {
			l.next()
		}
		return l.emit(itemSpace)
	case r == '"':
		for {
			switch l.next() {
			case '"':
				return l.emit(itemString)
			case eof, '\n':
				return item{itemError, "unterminated string"}
			}
		}
	case r == '/' && strings.HasPrefix(l.input[l.pos:], "/"):
		// drop the rest of the line
		return l.emit(itemEOF)
	case isWordRune(r):
		for isWordRune(l.peek()) {
			l.next()
		}
		return l.emit(itemWord)
	default:
		return item{itemError, fmt.Sprintf("unhandled char: %#U", r)}
	}
}

func (l *lexer) emit(t itemType) item {
	i := item{t, l.input[l.start:l.pos]}
	l.start = l.pos
	return i
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += l.width
	return r
}

func (l *lexer) backup() {
	l.pos -= l.width
}

func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func isWordRune(r rune) bool {
	return r > ' '
}

func isEndOfLine(r rune) bool {
	return r == '\r' || r == '\n'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
