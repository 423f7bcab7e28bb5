package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// SlogHandler adapts the process's own log/slog output into console
// events, so anything logged through slog shows up in the console
// overlay. Attributes are rendered into the entry's context text.
type SlogHandler struct {
	b     *Broadcaster
	level slog.Level

	// attrs holds pre-rendered "key=value" fragments accumulated via
	// WithAttrs; prefix is the dotted group path applied to attrs
	// added after WithGroup.
	attrs  []string
	prefix string
}

var _ slog.Handler = (*SlogHandler)(nil)

// NewSlogHandler creates a handler publishing to b at or above level.
func NewSlogHandler(b *Broadcaster, level slog.Level) *SlogHandler {
	return &SlogHandler{b: b, level: level}
}

// Enabled implements slog.Handler.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler. It publishes the record as a console
// event; it never returns an error.
func (h *SlogHandler) Handle(_ context.Context, rec slog.Record) error {
	var sb strings.Builder
	for _, frag := range h.attrs {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(frag)
	}
	rec.Attrs(func(a slog.Attr) bool {
		if frag := renderAttr(h.prefix, a); frag != "" {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(frag)
		}
		return true
	})

	h.b.Publish(Event{
		Level:   levelFromSlog(rec.Level),
		Message: rec.Message,
		Context: sb.String(),
	})
	return nil
}

// renderAttr formats one attribute as "prefixkey=value", empty for the
// zero attr.
func renderAttr(prefix string, a slog.Attr) string {
	if a.Equal(slog.Attr{}) {
		return ""
	}
	return fmt.Sprintf("%s%s=%v", prefix, a.Key, a.Value.Resolve())
}

// WithAttrs implements slog.Handler. The current group prefix is baked
// into the keys now, matching slog's grouping semantics.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	out.attrs = append([]string{}, h.attrs...)
	for _, a := range attrs {
		if frag := renderAttr(h.prefix, a); frag != "" {
			out.attrs = append(out.attrs, frag)
		}
	}
	return &out
}

// WithGroup implements slog.Handler.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	out := *h
	out.prefix = h.prefix + name + "."
	return &out
}

// levelFromSlog folds slog's levels into the console's three.
func levelFromSlog(l slog.Level) Level {
	switch {
	case l >= slog.LevelError:
		return LevelError
	case l >= slog.LevelWarn:
		return LevelWarning
	default:
		return LevelInfo
	}
}
