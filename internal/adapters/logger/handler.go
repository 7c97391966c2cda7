package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/cmakekit/internal/ui/output"
	"go.trai.ch/cmakekit/internal/ui/style"
)

// levelStyle is the icon and color a level is printed with.
type levelStyle struct {
	icon  string
	color lipgloss.Color
}

var levelStyles = map[slog.Level]levelStyle{
	slog.LevelDebug: {color: style.Slate},
	slog.LevelInfo:  {color: style.Slate},
	slog.LevelWarn:  {icon: style.Warning, color: style.Yellow},
	slog.LevelError: {icon: style.Cross, color: style.Red},
}

// PrettyHandler is a slog.Handler that prints one colored line per record.
// Attributes follow the message as key=value pairs; values with spaces are quoted.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []string
	groups []string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	ls := styleFor(r.Level)

	msg := r.Message
	if ls.icon != "" {
		msg = ls.icon + " " + msg
	}
	line := h.out.String(msg).Foreground(termenv.RGBColor(string(ls.color))).String()

	attrs := h.attrs
	if r.NumAttrs() > 0 {
		attrs = append(attrs[:len(attrs):len(attrs)], h.render(h.groups, recordAttrs(r))...)
	}
	if len(attrs) > 0 {
		line += " " + h.out.String(strings.Join(attrs, " ")).Faint().String()
	}

	_, err := io.WriteString(h.out, line+"\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], h.render(h.groups, attrs)...)
	return &clone
}

// WithGroup returns a new Handler that nests later attributes under name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(h.groups[:len(h.groups):len(h.groups)], name)
	return &clone
}

func styleFor(level slog.Level) levelStyle {
	switch {
	case level >= slog.LevelError:
		return levelStyles[slog.LevelError]
	case level >= slog.LevelWarn:
		return levelStyles[slog.LevelWarn]
	case level >= slog.LevelInfo:
		return levelStyles[slog.LevelInfo]
	default:
		return levelStyles[slog.LevelDebug]
	}
}

func recordAttrs(r slog.Record) []slog.Attr {
	attrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	return attrs
}

// render flattens attrs into key=value pairs, expanding group values.
func (h *PrettyHandler) render(groups []string, attrs []slog.Attr) []string {
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}
		if a.Value.Kind() == slog.KindGroup {
			nested := groups
			if a.Key != "" {
				nested = append(groups[:len(groups):len(groups)], a.Key)
			}
			parts = append(parts, h.render(nested, a.Value.Group())...)
			continue
		}
		key := strings.Join(append(groups[:len(groups):len(groups)], a.Key), ".")
		parts = append(parts, key+"="+quote(a.Value.String()))
	}
	return parts
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
