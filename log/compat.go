// Package log provides a go-ethereum-flavoured logging facade, so the
// mempool engine and its surrounding CLI can log with the familiar
// Debug/Info/Warn/Error(msg, "key", value, ...) call shape. It is backed
// directly by github.com/ethereum/go-ethereum/log rather than luxfi/log:
// luxfi/log's Logger has no way to accept a caller-built slog.Handler (its
// own NewLogger discards the handler it's given and hands back the root
// logger unchanged), which would make --log-file, --log-verbosity, and
// --log-vmodule no-ops. go-ethereum/log's Logger wraps the handler for
// real, which is what rotation and glog-style filtering need.
package log

import (
	"io"
	"log/slog"
	"os"

	gethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Logger is the handle returned by New and accepted by SetDefault.
type Logger = gethlog.Logger

// Root returns the process-wide default logger.
var Root = gethlog.Root

// New creates a logger that prefixes every record with ctx.
func New(ctx ...interface{}) Logger {
	return gethlog.New(ctx...)
}

func Trace(msg string, ctx ...interface{}) { gethlog.Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...interface{}) { gethlog.Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...interface{})  { gethlog.Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...interface{})  { gethlog.Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...interface{}) { gethlog.Root().Error(msg, ctx...) }
func Crit(msg string, ctx ...interface{})  { gethlog.Root().Crit(msg, ctx...) }

// SetDefault installs l as the process-wide default logger.
func SetDefault(l Logger) {
	gethlog.SetDefault(l)
}

// NewLogger wraps h as a Logger: records handled by the returned Logger
// flow through h, so a GlogHandler's filtering and a file handler's
// rotation both actually take effect.
func NewLogger(h slog.Handler) Logger {
	return gethlog.NewLogger(h)
}

// NewTerminalHandler builds a handler that writes human-readable, optionally
// colorized records to w, the way an interactive mempoold session does.
func NewTerminalHandler(w io.Writer, useColor bool) slog.Handler {
	if useColor {
		w = colorable.NewColorable(asFile(w))
	}
	return gethlog.NewTerminalHandler(w, useColor)
}

// NewFileHandler writes plain (uncolored) records to path, creating or
// appending to it.
func NewFileHandler(path string) (slog.Handler, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return slog.NewTextHandler(f, nil), nil
}

// IsTerminal reports whether f is an interactive terminal, for callers
// deciding whether to colorize NewTerminalHandler's output.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func asFile(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return os.Stderr
}
