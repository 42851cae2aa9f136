package logger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"envcheck/internal/version"
)

// FatalError is the panic value used by Fatal. main recovers it and exits
// with a failure status after cleanup.
type FatalError struct{}

// Fatal logs msg together with build information and the call stack, then
// panics with FatalError.
func Fatal(ctx context.Context, msg any, args ...any) {
	now := time.Now()

	pc := make([]uintptr, 32)
	n := runtime.Callers(2, pc)
	frames := runtime.CallersFrames(pc[:n])

	wd, _ := os.Getwd()
	var trace []string
	for i := 0; ; i++ {
		frame, more := frames.Next()
		file := frame.File
		if wd != "" {
			if rel, err := filepath.Rel(wd, file); err == nil && !strings.HasPrefix(rel, "..") {
				file = "./" + filepath.ToSlash(rel)
			}
		}
		trace = append(trace, fmt.Sprintf("  %2d: {{_File_}}%s{{|-|}}:%d ({{_Var_}}%s{{|-|}})", i, file, frame.Line, filepath.Base(frame.Function)))
		if !more {
			break
		}
	}

	output := []any{
		"### BEGIN SYSTEM INFORMATION AND STACK TRACE ###",
		"  " + version.String(),
		trace,
		"### END SYSTEM INFORMATION AND STACK TRACE ###",
		"",
		formatMsg(msg, args...),
	}
	logAt(ctx, now, LevelFatal, output)
	panic(FatalError{})
}

func formatMsg(msg any, args ...any) string {
	s := resolveMsg(msg)
	if len(args) > 0 {
		s = fmt.Sprintf(s, args...)
	}
	return s
}

// Recover turns an unexpected panic into a Fatal log entry.
// Usage: defer logger.Recover(ctx)
func Recover(ctx context.Context) {
	if r := recover(); r != nil {
		if _, ok := r.(FatalError); ok {
			panic(r)
		}
		Fatal(ctx, "panic: %v", r)
	}
}
