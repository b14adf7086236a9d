package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// Delimiters used when rendering a record to text. Exported at the
// package (lowercase, test-visible) level so the handler's own test
// suite can parse its own output back apart.
const (
	lvlDelim     = " "
	msgAttrDelim = "  "
	attrDelim    = " "
	groupDelim   = "."
)

// logHandler is a [slog.Handler] that renders records the way
// [Logger]'s printf-style and structured methods are documented to:
// "LVL message  k1=v1 k2=v2", multi-line messages and multi-line
// attribute values each getting their own indented line.
type logHandler struct {
	mu      *sync.Mutex
	w       io.Writer
	leveler slog.Leveler
	style   *Style

	group string // dotted group prefix accumulated via WithGroup
	attrs []kv   // pre-flattened attrs accumulated via WithAttrs
}

type kv struct {
	key string
	val slog.Value
}

func newLogHandler(w io.Writer, leveler slog.Leveler, style *Style) *logHandler {
	return &logHandler{
		mu:      new(sync.Mutex),
		w:       w,
		leveler: leveler,
		style:   style,
	}
}

func (h *logHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.leveler.Level()
}

func (h *logHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var flat []kv
	flattenAttrs(h.group, attrs, &flat)
	if len(flat) == 0 {
		return h
	}

	nh := *h
	nh.attrs = append(append([]kv(nil), h.attrs...), flat...)
	return &nh
}

func (h *logHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	if nh.group == "" {
		nh.group = name
	} else {
		nh.group = nh.group + groupDelim + name
	}
	return &nh
}

func flattenAttrs(prefix string, attrs []slog.Attr, out *[]kv) {
	for _, a := range attrs {
		flattenAttr(prefix, a, out)
	}
}

func flattenAttr(prefix string, a slog.Attr, out *[]kv) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	full := key
	if prefix != "" && key != "" {
		full = prefix + groupDelim + key
	} else if prefix != "" {
		full = prefix
	}

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}
		flattenAttrs(full, group, out)
		return
	}

	*out = append(*out, kv{key: full, val: a.Value})
}

func (h *logHandler) Handle(_ context.Context, rec slog.Record) error {
	var recAttrs []kv
	rec.Attrs(func(a slog.Attr) bool {
		flattenAttr(h.group, a, &recAttrs)
		return true
	})

	all := make([]kv, 0, len(h.attrs)+len(recAttrs))
	all = append(all, h.attrs...)
	all = append(all, recAttrs...)

	level := Level(rec.Level)
	label := h.style.LevelLabels.Get(level).String()

	var buf strings.Builder
	writeRecord(&buf, h.style, label, rec.Message, all)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write([]byte(buf.String()))
	return err
}

func writeRecord(buf *strings.Builder, style *Style, label, msg string, attrs []kv) {
	trailingNewline := strings.HasSuffix(msg, "\n")
	msg = strings.TrimRight(msg, "\n")
	msg = strings.TrimRight(msg, " \t")

	lines := strings.Split(msg, "\n")

	multilineAttr := false
	for _, a := range attrs {
		if a.val.Kind() == slog.KindString && strings.Contains(a.val.String(), "\n") {
			multilineAttr = true
			break
		}
	}

	for _, line := range lines[:len(lines)-1] {
		buf.WriteString(label)
		buf.WriteString(lvlDelim)
		buf.WriteString(line)
		buf.WriteString("\n")
	}

	last := lines[len(lines)-1]
	buf.WriteString(label)
	buf.WriteString(lvlDelim)
	buf.WriteString(last)

	switch {
	case len(attrs) == 0:
		buf.WriteString("\n")

	case multilineAttr:
		buf.WriteString(msgAttrDelim)
		buf.WriteString("\n")
		writeAttrBlock(buf, style, attrs)

	case trailingNewline:
		buf.WriteString("\n")
		writeAttrBlock(buf, style, attrs)

	default:
		buf.WriteString(msgAttrDelim)
		buf.WriteString(formatAttrsInline(style, attrs))
		buf.WriteString("\n")
	}
}

func formatAttrsInline(style *Style, attrs []kv) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = formatAttr(style, a)
	}
	return strings.Join(parts, attrDelim)
}

func formatAttr(style *Style, a kv) string {
	return style.Key.Render(a.key) + style.KeyValueDelimiter.String() + formatValue(style, a.key, a.val)
}

// writeAttrBlock renders each top-level attr on its own indented line,
// giving a multi-line string value its own nested block prefixed with
// style.MultilinePrefix.
func writeAttrBlock(buf *strings.Builder, style *Style, attrs []kv) {
	const indent = "  "
	for _, a := range attrs {
		if a.val.Kind() == slog.KindString && strings.Contains(a.val.String(), "\n") {
			buf.WriteString(indent)
			buf.WriteString(style.Key.Render(a.key))
			buf.WriteString(style.KeyValueDelimiter.String())
			buf.WriteString("\n")
			for _, line := range strings.Split(a.val.String(), "\n") {
				buf.WriteString(indent)
				buf.WriteString(style.MultilinePrefix.String())
				buf.WriteString(line)
				buf.WriteString("\n")
			}
			continue
		}

		buf.WriteString(indent)
		buf.WriteString(formatAttr(style, a))
		buf.WriteString("\n")
	}
}

func formatValue(style *Style, key string, v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if sty, ok := style.Values[key]; ok {
			return sty.Render(s)
		}
		return s
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format("3:04PM")
	case slog.KindAny:
		any := v.Any()
		if s, ok := any.(fmt.Stringer); ok {
			return s.String()
		}
		if err, ok := any.(error); ok {
			return err.Error()
		}
		return fmt.Sprint(any)
	default:
		return v.String()
	}
}
