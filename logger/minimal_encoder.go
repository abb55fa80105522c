package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette holds the ANSI colors for one console theme
type palette struct {
	time     string
	name     string
	key      string
	number   string
	warn     string
	warnBg   string
	err      string
	errBg    string
	fg       string
	altNames []string
}

var themes = map[string]palette{
	// Gruvbox Dark (warm, muted)
	"gruvbox": {
		time:     "\x1b[38;5;108m",
		name:     "\x1b[38;5;208m",
		key:      "\x1b[38;5;109m",
		number:   "\x1b[38;5;175m",
		warn:     "\x1b[38;5;214m",
		warnBg:   "\x1b[48;5;58m",
		err:      "\x1b[38;5;167m",
		errBg:    "\x1b[48;5;88m",
		fg:       "\x1b[38;5;223m",
		altNames: []string{"\x1b[38;5;208m", "\x1b[38;5;214m"},
	},
	// Everforest Dark (forest greens)
	"everforest": {
		time:     "\x1b[38;5;107m",
		name:     "\x1b[38;5;108m",
		key:      "\x1b[38;5;65m",
		number:   "\x1b[38;5;108m",
		warn:     "\x1b[38;5;179m",
		warnBg:   "\x1b[48;5;58m",
		err:      "\x1b[38;5;167m",
		errBg:    "\x1b[48;5;52m",
		fg:       "\x1b[38;5;223m",
		altNames: []string{"\x1b[38;5;108m", "\x1b[38;5;65m", "\x1b[38;5;208m"},
	},
}

var currentTheme = "everforest"

var bufferPool = buffer.NewPool()

// SetTheme configures the color scheme for console output.
// Unknown theme names are ignored.
func SetTheme(theme string) {
	if _, ok := themes[theme]; ok {
		currentTheme = theme
	}
}

func colors() palette {
	return themes[currentTheme]
}

// colorComponent picks a stable color per logger name
func colorComponent(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	alt := colors().altNames
	return alt[hash%len(alt)]
}

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  generate  Cluster sampled  cluster=3 rows=120"
//
// Context fields added with With() are kept in the embedded map encoder and
// printed (sorted by key) before the entry's own fields.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := newMinimalEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := bufferPool.Get()

	final.AppendString(c.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only shown for WARN and above
	if ent.Level > zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent(ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(c.fg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if rendered := enc.renderFields(fields); rendered != "" {
		final.AppendString("  ")
		final.AppendString(rendered)
	}

	final.AppendString("\n")
	return final, nil
}

// renderFields prints every context and entry field as key=value.
// Nothing is dropped: unknown field types fall back to %v.
func (enc *minimalEncoder) renderFields(fields []zapcore.Field) string {
	c := colors()
	var parts []string

	contextKeys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		contextKeys = append(contextKeys, k)
	}
	sort.Strings(contextKeys)
	for _, k := range contextKeys {
		parts = append(parts, formatPair(c, k, enc.Fields[k]))
	}

	if len(fields) > 0 {
		scratch := zapcore.NewMapObjectEncoder()
		for _, f := range fields {
			if f.Type == zapcore.SkipType {
				continue
			}
			f.AddTo(scratch)
			if v, ok := scratch.Fields[f.Key]; ok {
				parts = append(parts, formatPair(c, f.Key, v))
			}
		}
	}

	return strings.Join(parts, " ")
}

func formatPair(c palette, key string, value interface{}) string {
	valueColor := c.fg
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		valueColor = c.number
	}
	return c.key + key + "=" + colorReset + valueColor + fmt.Sprintf("%v", value) + colorReset
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	c := colors()
	switch level {
	case zapcore.WarnLevel:
		return colorBold + c.warnBg + c.warn + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + c.errBg + c.err + "ERROR" + colorReset
	default:
		return colorBold + c.errBg + c.err + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens nested component names: dataset.parquet -> d.parquet
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}
