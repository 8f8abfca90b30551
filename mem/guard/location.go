package guard

import (
	"runtime"
	"strings"
)

const enginePkg = "github.com/joshuapare/safemem/mem"

// Locate returns the file and line of the first caller outside the engine
// packages. Test files always count as callers. It returns "unknown", 0 when
// no such frame exists.
func Locate() (file string, line int) {
	var pcs [32]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if f.Function != "" && !inEngine(f) {
			return f.File, f.Line
		}
		if !more {
			return "unknown", 0
		}
	}
}

func inEngine(f runtime.Frame) bool {
	if strings.HasSuffix(f.File, "_test.go") {
		return false
	}
	return strings.HasPrefix(f.Function, enginePkg+".") || strings.HasPrefix(f.Function, enginePkg+"/")
}
