package log

import (
	"path/filepath"
	"runtime"
	"strconv"
)

var skipFunc = map[string]bool{
	"chain/log.Printkv":            true,
	"chain/log.Printf":             true,
	"chain/log.Error":              true,
	"chain/log.Fatalkv":            true,
	"chain/log.RecoverAndLogError": true,
}

// SkipFunc adds the named function to the set skipped by
// callerSkippingFuncs. Write, Messagef and Error compute their
// at=[file:line] entries with caller, which does not consult this
// set, so SkipFunc does not change what they print.
// The provided name should be a fully-qualified function name
// comprising the import path and identifier separated by a dot.
// For example, chain/log.Printkv.
// SkipFunc must not be called concurrently with any function
// in this package (including itself).
func SkipFunc(name string) {
	skipFunc[name] = true
}

// callerSkippingFuncs returns a string containing filename and line number of
// the deepest function invocation on the calling goroutine's stack,
// after skipping functions in skipFunc.
// If no stack information is available, it returns "?:?".
func callerSkippingFuncs() string {
	for i := 1; ; i++ {
		// NOTE(kr): This is quadratic in the number of frames we
		// ultimately have to skip. Consider using Callers instead.
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			return "?:?"
		}
		if !skipFunc[runtime.FuncForPC(pc).Name()] {
			return filepath.Base(file) + ":" + strconv.Itoa(line)
		}
	}
}
