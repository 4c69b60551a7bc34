package alog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/alog/sanitizer"
)

// OutputMode selects the wire shape PatternFormatter renders.
type OutputMode string

const (
	ModeTxt  OutputMode = "txt"
	ModeJSON OutputMode = "json"
	ModeRaw  OutputMode = "raw"
)

// PatternFormatter is the package's concrete Formatter. It renders a
// Record's timestamp, severity, logger name and arguments into one of
// three output modes, routing every argument value through a
// sanitizer.Serializer so per-type rendering and quoting rules live in
// one place.
type PatternFormatter struct {
	mode            OutputMode
	timestampFormat string
	showTimestamp   bool
	showLevel       bool
	san             *sanitizer.Sanitizer
}

// NewPatternFormatter creates a formatter rendering in mode. A nil
// sanitizer disables string sanitization entirely (a fresh passthrough
// sanitizer is substituted so the formatter never holds a nil one).
func NewPatternFormatter(mode OutputMode, san *sanitizer.Sanitizer) *PatternFormatter {
	if san == nil {
		san = sanitizer.New()
	}
	return &PatternFormatter{
		mode:            mode,
		timestampFormat: time.RFC3339Nano,
		showTimestamp:   true,
		showLevel:       true,
		san:             san,
	}
}

// WithTimestampFormat overrides the time.Time layout used when rendering.
func (f *PatternFormatter) WithTimestampFormat(layout string) *PatternFormatter {
	if layout == "" {
		layout = time.RFC3339Nano
	}
	f.timestampFormat = layout
	return f
}

// WithFields toggles whether timestamp/level are rendered.
func (f *PatternFormatter) WithFields(showTimestamp, showLevel bool) *PatternFormatter {
	f.showTimestamp = showTimestamp
	f.showLevel = showLevel
	return f
}

// Clone returns an independent formatter sharing only the immutable
// configuration and the sanitizer (which is itself reused read-only
// across rules).
func (f *PatternFormatter) Clone() Formatter {
	return &PatternFormatter{
		mode:            f.mode,
		timestampFormat: f.timestampFormat,
		showTimestamp:   f.showTimestamp,
		showLevel:       f.showLevel,
		san:             f.san,
	}
}

func (f *PatternFormatter) sanitize(s string) string {
	return f.san.Sanitize(s)
}

// serializer builds the format-specific value writer every argument is
// routed through, instead of hand-rolling per-type quoting and escaping
// here.
func (f *PatternFormatter) serializer() *sanitizer.Serializer {
	return sanitizer.NewSerializer(string(f.mode), f.san)
}

// Format renders rec, appending to out and returning the extended slice.
func (f *PatternFormatter) Format(rec *Record, out []byte) []byte {
	switch f.mode {
	case ModeRaw:
		return f.formatRaw(rec, out)
	case ModeJSON:
		return f.formatJSON(rec, out)
	default:
		return f.formatTxt(rec, out)
	}
}

func (f *PatternFormatter) formatRaw(rec *Record, out []byte) []byte {
	se := f.serializer()
	se.WriteString(&out, rec.Message)
	for _, arg := range rec.Args {
		out = append(out, ' ')
		f.convertValue(&out, arg, se)
	}
	return out
}

func (f *PatternFormatter) formatTxt(rec *Record, out []byte) []byte {
	needsSpace := false
	if f.showTimestamp {
		out = rec.Time.AppendFormat(out, f.timestampFormat)
		needsSpace = true
	}
	if f.showLevel {
		if needsSpace {
			out = append(out, ' ')
		}
		out = append(out, strings.ToUpper(rec.Severity.String())...)
		needsSpace = true
	}
	if rec.Logger != "" {
		if needsSpace {
			out = append(out, ' ')
		}
		out = append(out, '[')
		out = append(out, rec.Logger...)
		out = append(out, ']')
		needsSpace = true
	}
	if needsSpace {
		out = append(out, ' ')
	}
	out = append(out, f.sanitize(rec.Message)...)

	se := f.serializer()
	for _, arg := range rec.Args {
		out = append(out, ' ')
		f.convertValue(&out, arg, se)
	}
	out = append(out, '\n')
	return out
}

func (f *PatternFormatter) formatJSON(rec *Record, out []byte) []byte {
	se := f.serializer()
	out = append(out, '{')
	needsComma := false
	if f.showTimestamp {
		out = append(out, `"time":"`...)
		out = rec.Time.AppendFormat(out, f.timestampFormat)
		out = append(out, '"')
		needsComma = true
	}
	if f.showLevel {
		if needsComma {
			out = append(out, ',')
		}
		out = append(out, `"level":"`...)
		out = append(out, rec.Severity.String()...)
		out = append(out, '"')
		needsComma = true
	}
	if rec.Logger != "" {
		if needsComma {
			out = append(out, ',')
		}
		out = append(out, `"logger":`...)
		se.WriteString(&out, rec.Logger)
		needsComma = true
	}
	if needsComma {
		out = append(out, ',')
	}
	out = append(out, `"msg":`...)
	se.WriteString(&out, rec.Message)

	if len(rec.Args) > 0 {
		out = append(out, `,"fields":[`...)
		for i, arg := range rec.Args {
			if i > 0 {
				out = append(out, ',')
			}
			f.convertValue(&out, arg, se)
		}
		out = append(out, ']')
	}
	out = append(out, '}', '\n')
	return out
}

// convertValue dispatches one argument to the serializer's type-specific
// write method.
func (f *PatternFormatter) convertValue(out *[]byte, v any, se *sanitizer.Serializer) {
	switch val := v.(type) {
	case string:
		se.WriteString(out, val)
	case []byte:
		se.WriteString(out, string(val))
	case int:
		se.WriteNumber(out, string(strconv.AppendInt(nil, int64(val), 10)))
	case int64:
		se.WriteNumber(out, string(strconv.AppendInt(nil, val, 10)))
	case uint:
		se.WriteNumber(out, string(strconv.AppendUint(nil, uint64(val), 10)))
	case uint64:
		se.WriteNumber(out, string(strconv.AppendUint(nil, val, 10)))
	case float32:
		se.WriteNumber(out, string(strconv.AppendFloat(nil, float64(val), 'f', -1, 32)))
	case float64:
		se.WriteNumber(out, string(strconv.AppendFloat(nil, val, 'f', -1, 64)))
	case bool:
		se.WriteBool(out, val)
	case nil:
		se.WriteNil(out)
	case time.Time:
		se.WriteString(out, val.Format(f.timestampFormat))
	case error:
		se.WriteString(out, val.Error())
	case fmt.Stringer:
		se.WriteString(out, val.String())
	default:
		se.WriteComplex(out, val)
	}
}
