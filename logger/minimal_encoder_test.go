package logger

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

// The console encoder must never silently discard fields.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	encoder := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Date(2024, 5, 1, 13, 4, 35, 0, time.UTC),
		LoggerName: "generate",
		Message:    "Cluster sampled",
	}

	testFields := []struct {
		field    zapcore.Field
		mustFind string
	}{
		{zap.Int("cluster", 3), "cluster=3"},
		{zap.Int64("rows", 9999999), "rows=9999999"},
		{zap.Float64("center_min", -2.5), "center_min=-2.5"},
		{zap.String("file", "/tmp/out/t.parquet"), "file=/tmp/out/t.parquet"},
		{zap.Bool("overwrite", true), "overwrite=true"},
		{zap.Strings("columns", []string{"ax0", "cluster"}), "columns=[ax0 cluster]"},
		{zap.Error(errors.New("disk full")), "error=disk full"},
		{zap.Error(nil), ""},
		{zap.String("field.with.dots", "x"), "field.with.dots=x"},
	}

	var fields []zapcore.Field
	for _, tf := range testFields {
		fields = append(fields, tf.field)
	}

	buf, err := encoder.EncodeEntry(entry, fields)
	require.NoError(t, err)
	out := stripANSI(buf.String())

	assert.True(t, strings.HasPrefix(out, "13:04:35  generate  Cluster sampled  "), out)
	for _, tf := range testFields {
		if tf.mustFind == "" {
			continue
		}
		assert.Contains(t, out, tf.mustFind)
	}
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestMinimalEncoderContextFields(t *testing.T) {
	encoder := newMinimalEncoder()
	zap.String("run_id", "abc").AddTo(encoder)
	zap.Int("seed", 42).AddTo(encoder)

	clone := encoder.Clone().(*minimalEncoder)
	zap.String("only_in_clone", "yes").AddTo(clone)

	entry := zapcore.Entry{Level: zapcore.WarnLevel, Time: time.Now(), Message: "Unknown config key"}
	buf, err := clone.EncodeEntry(entry, []zapcore.Field{zap.String("key", "cluster_cnt")})
	require.NoError(t, err)
	out := stripANSI(buf.String())

	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "only_in_clone=yes run_id=abc seed=42 key=cluster_cnt")

	_, present := encoder.Fields["only_in_clone"]
	assert.False(t, present, "clone must not leak fields into its parent")
}

func TestAbbreviateName(t *testing.T) {
	assert.Equal(t, "generate", abbreviateName("generate"))
	assert.Equal(t, "d.parquet", abbreviateName("dataset.parquet"))
	assert.Equal(t, "s.silhouette.worker", abbreviateName("score.silhouette.worker"))
}

func TestSetTheme(t *testing.T) {
	defer SetTheme("everforest")

	SetTheme("gruvbox")
	assert.Equal(t, "gruvbox", currentTheme)

	SetTheme("solarized")
	assert.Equal(t, "gruvbox", currentTheme, "unknown themes are ignored")
}
