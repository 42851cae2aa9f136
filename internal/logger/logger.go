package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"envcheck/internal/console"

	"github.com/lmittmann/tint"
)

// Custom log levels
const (
	LevelTrace  = slog.Level(-8)
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.Level(-2)
	LevelNotice = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
	LevelFatal  = slog.Level(12)
)

// LevelVar is the console level; FileLevelVar is the log file level.
var LevelVar = new(slog.LevelVar)
var FileLevelVar = new(slog.LevelVar)

func init() {
	LevelVar.Set(LevelNotice)
	FileLevelVar.Set(LevelInfo)
}

// SetLevel sets the console level. The log file always keeps at least Info.
func SetLevel(level slog.Level) {
	LevelVar.Set(level)
	if level < LevelInfo {
		FileLevelVar.Set(level)
	} else {
		FileLevelVar.Set(LevelInfo)
	}
}

var levelLabels = map[slog.Level]string{
	LevelTrace:  "[TRACE ]",
	LevelDebug:  "[DEBUG ]",
	LevelInfo:   "[INFO  ]",
	LevelNotice: "[NOTICE]",
	LevelWarn:   "[WARN  ]",
	LevelError:  "[ERROR ]",
	LevelFatal:  "[FATAL ]",
}

var levelColors = map[slog.Level]string{
	LevelTrace:  console.CodeBlue,
	LevelDebug:  console.CodeBlue,
	LevelInfo:   console.CodeBlue,
	LevelNotice: console.CodeGreen,
	LevelWarn:   console.CodeYellow,
	LevelError:  console.CodeRed,
	LevelFatal:  console.CodeRedBg + console.CodeWhite,
}

// levelReplacer renders the level attribute as a fixed-width label.
func levelReplacer(color bool) func([]string, slog.Attr) slog.Attr {
	return func(_ []string, a slog.Attr) slog.Attr {
		if a.Key != slog.LevelKey {
			return a
		}
		level, _ := a.Value.Any().(slog.Level)
		label, ok := levelLabels[level]
		if !ok {
			return slog.String(a.Key, "["+level.String()+"]")
		}
		if color {
			label = levelColors[level] + label + console.CodeReset
		}
		return slog.String(a.Key, label+"  ")
	}
}

// NewLogger builds the console handler on w and, when file is not nil, a
// plain-text handler on file.
func NewLogger(w *os.File, file io.Writer) *slog.Logger {
	isTTY := false
	if stat, err := w.Stat(); err == nil {
		isTTY = (stat.Mode() & os.ModeCharDevice) != 0
	}

	handlers := []slog.Handler{
		tint.NewHandler(w, &tint.Options{
			Level:       LevelVar,
			TimeFormat:  "2006-01-02 15:04:05",
			NoColor:     !isTTY,
			ReplaceAttr: levelReplacer(isTTY),
		}),
	}
	if file != nil {
		handlers = append(handlers, NewFileHandler(file))
	}
	return slog.New(&FanoutHandler{handlers: handlers})
}

// NewFileHandler returns an uncoloured handler that strips colour tags and
// escape codes from messages.
func NewFileHandler(w io.Writer) slog.Handler {
	replace := levelReplacer(false)
	return tint.NewHandler(w, &tint.Options{
		Level:      FileLevelVar,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.MessageKey {
				return slog.String(a.Key, console.Strip(a.Value.String()))
			}
			return replace(groups, a)
		},
	})
}

// OpenLogFile opens path for appending, creating it and its directory.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// FanoutHandler broadcasts records to multiple handlers
type FanoutHandler struct {
	handlers []slog.Handler
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: newHandlers}
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &FanoutHandler{handlers: newHandlers}
}

func resolveMsg(msg any) string {
	switch v := msg.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	case []any:
		var parts []string
		for _, item := range v {
			parts = append(parts, resolveMsg(item))
		}
		return strings.Join(parts, "\n")
	default:
		return fmt.Sprint(v)
	}
}

func log(ctx context.Context, level slog.Level, msg any, args ...any) {
	logAt(ctx, time.Now(), level, msg, args...)
}

// logAt formats msg with args when it has verbs, resolves colour tags and
// emits one record per line.
func logAt(ctx context.Context, t time.Time, level slog.Level, msg any, args ...any) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}

	msgStr := resolveMsg(msg)
	if len(args) > 0 && strings.Contains(msgStr, "%") {
		msgStr = fmt.Sprintf(msgStr, args...)
		args = nil
	}
	msgStr = console.Parse(msgStr)

	for i, line := range strings.Split(msgStr, "\n") {
		// Reset on every line so colours never bleed into the next timestamp
		r := slog.NewRecord(t, level, line+console.CodeReset, 0)
		if i == 0 {
			r.Add(args...)
		}
		_ = h.Handle(ctx, r)
	}
}

func Trace(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelTrace, msg, args...)
}

func Debug(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelInfo, msg, args...)
}

func Notice(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelError, msg, args...)
}
