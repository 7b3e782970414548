// SPDX-License-Identifier: GPL-2.0-or-later

// Package conlog is the console output. Console text goes to the output
// writer unchanged, debug text and everything logged through Logger is
// structured by log/slog.
package conlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	out    io.Writer = os.Stdout
	logOut io.Writer = os.Stderr
	level            = new(slog.LevelVar)
	logger           = slog.New(slog.NewTextHandler(logSink{}, &slog.HandlerOptions{Level: level}))
)

// logSink writes log records to the output set at the time of the write.
type logSink struct{}

func (logSink) Write(p []byte) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	return logOut.Write(p)
}

// SetOutput redirects console text and log records to w. Loggers returned
// by Logger before the call follow the redirect.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	logOut = w
}

// SetDebug enables debug records.
func SetDebug(b bool) {
	if b {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

func Debug() bool {
	return level.Level() <= slog.LevelDebug
}

// Logger returns the logger writing to the current output.
func Logger() *slog.Logger {
	return logger
}

func Printf(format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, format, v...)
}

// SafePrintf is Printf for text that must not scroll past the console
// notify lines. There is no notify area here so it is the same as Printf.
func SafePrintf(format string, v ...interface{}) {
	Printf(format, v...)
}

// DPrintf prints only in debug mode.
func DPrintf(format string, v ...interface{}) {
	if !Debug() {
		return
	}
	Logger().Debug(fmt.Sprintf(format, v...))
}
