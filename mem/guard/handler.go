package guard

import (
	"os"
	"sync/atomic"

	"github.com/joshuapare/safemem/internal/logger"
)

// Handler is called when corruption is detected. file and line identify the
// first caller outside the engine. A handler normally does not return; if it
// does, the operation reports types.Corrupted.
type Handler func(file string, line int)

// ExitCode is the process exit code used by the default handler.
const ExitCode = 2

var exit = os.Exit

var handler atomic.Pointer[Handler]

// DefaultHandler logs the location and terminates the process.
func DefaultHandler(file string, line int) {
	logger.Error("safemem fatal memory corruption", "file", file, "line", line)
	exit(ExitCode)
}

// PanicHandler panics with a *Fault carrying the location.
func PanicHandler(file string, line int) {
	panic(&Fault{File: file, Line: line})
}

// LogHandler logs the location and returns.
func LogHandler(file string, line int) {
	logger.Error("safemem memory corruption", "file", file, "line", line)
}

// SetHandler installs h and returns the previously installed handler. A nil h
// restores DefaultHandler.
func SetHandler(h Handler) Handler {
	var next *Handler
	if h != nil {
		next = &h
	}
	prev := handler.Swap(next)
	if prev == nil {
		return DefaultHandler
	}
	return *prev
}

// CurrentHandler returns the installed handler.
func CurrentHandler() Handler {
	if h := handler.Load(); h != nil {
		return *h
	}
	return DefaultHandler
}

// Report logs err at debug level and dispatches the caller location to the
// installed handler.
func Report(err *ValidationError) {
	file, line := Locate()
	if err != nil {
		logger.Debug("guard check failed", "error", err.Error(), "file", file, "line", line)
	}
	CurrentHandler()(file, line)
}
