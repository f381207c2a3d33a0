package log

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// GlogHandler mimics the filtering features of Google's glog logger: a
// global verbosity ceiling, overridable per call-site by a Vmodule ruleset
// matched against the source file that emitted the record.
type GlogHandler struct {
	handler slog.Handler

	level    *levelBox
	lock     sync.RWMutex
	patterns []pattern
}

// levelBox lets WithAttrs/WithGroup hand back a handler that still shares
// its parent's verbosity ceiling, rather than freezing a copy of it.
type levelBox struct {
	v atomic.Int32
}

func (b *levelBox) store(level slog.Level) { b.v.Store(int32(level)) }
func (b *levelBox) load() slog.Level       { return slog.Level(b.v.Load()) }

// pattern is one compiled Vmodule rule: files matching it log at level
// instead of the handler's global verbosity ceiling.
type pattern struct {
	pattern *regexp.Regexp
	level   slog.Level
}

// NewGlogHandler wraps h with glog-style verbosity filtering.
func NewGlogHandler(h slog.Handler) *GlogHandler {
	return &GlogHandler{handler: h, level: &levelBox{}}
}

// Handle implements slog.Handler.
func (h *GlogHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.enabled(r.Level, r.PC) {
		return nil
	}
	return h.handler.Handle(ctx, r)
}

// Enabled implements slog.Handler. Call-site pattern overrides in Vmodule
// can only be applied once a record's PC is known, so while any pattern is
// installed this reports true and leaves the decision to Handle; otherwise
// it reports whether level clears the global ceiling.
func (h *GlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	h.lock.RLock()
	hasPatterns := len(h.patterns) > 0
	h.lock.RUnlock()
	return hasPatterns || level >= h.level.load()
}

func (h *GlogHandler) enabled(level slog.Level, pc uintptr) bool {
	if file, ok := callerFile(pc); ok {
		h.lock.RLock()
		for _, p := range h.patterns {
			if p.pattern.MatchString(file) {
				h.lock.RUnlock()
				return level >= p.level
			}
		}
		h.lock.RUnlock()
	}
	return level >= h.level.load()
}

func callerFile(pc uintptr) (string, bool) {
	if pc == 0 {
		return "", false
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "", false
	}
	return frame.File, true
}

// WithAttrs implements slog.Handler.
func (h *GlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.clone(h.handler.WithAttrs(attrs))
}

// WithGroup implements slog.Handler.
func (h *GlogHandler) WithGroup(name string) slog.Handler {
	return h.clone(h.handler.WithGroup(name))
}

func (h *GlogHandler) clone(wrapped slog.Handler) *GlogHandler {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return &GlogHandler{
		handler:  wrapped,
		level:    h.level,
		patterns: append([]pattern(nil), h.patterns...),
	}
}

// Verbosity sets the glog verbosity ceiling: records below level are
// dropped unless a Vmodule pattern matches their call site.
func (h *GlogHandler) Verbosity(level slog.Level) {
	h.level.store(level)
}

// Vmodule parses a glog-style ruleset, e.g. "mempool=-4,queue=0", and
// installs it as the handler's per-call-site overrides. An empty ruleset
// clears all overrides.
func (h *GlogHandler) Vmodule(ruleset string) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if ruleset == "" {
		h.patterns = h.patterns[:0]
		return nil
	}

	var patterns []pattern
	for _, rule := range strings.Split(ruleset, ",") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}

		parts := strings.SplitN(rule, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid vmodule rule %q: want file=level", rule)
		}

		name := strings.TrimSpace(parts[0])
		levelStr := strings.TrimSpace(parts[1])
		if name == "" || levelStr == "" {
			return fmt.Errorf("invalid vmodule rule %q: want file=level", rule)
		}

		n, err := strconv.Atoi(levelStr)
		if err != nil {
			return fmt.Errorf("invalid vmodule rule %q: level must be an integer: %w", rule, err)
		}

		candidates := []string{regexp.QuoteMeta(name)}
		if strings.Contains(name, "/") {
			candidates = append(candidates, regexp.QuoteMeta(name)+`.*`)
		}

		var filter *regexp.Regexp
		for _, cand := range candidates {
			if f, err := regexp.Compile(cand); err == nil {
				filter = f
				break
			}
		}
		if filter == nil {
			return fmt.Errorf("invalid vmodule rule %q: pattern did not compile", rule)
		}

		patterns = append(patterns, pattern{pattern: filter, level: slog.Level(n)})
	}

	h.patterns = patterns
	return nil
}
