package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/clustergen/dataset"
	"github.com/teranos/clustergen/errors"
	"github.com/teranos/clustergen/logger"
)

const pointMassTOML = `name = "t"
cluster_count = 2
dim_count = 1
min_cluster_size = 10
max_cluster_size = 10
center_min = 0.0
center_max = 0.0
std_min = 0.0
std_max = 0.0
`

const spreadTOML = `name = "spread"
cluster_count = 4
dim_count = 2
min_cluster_size = 20
max_cluster_size = 30
center_min = -100.0
center_max = 100.0
std_min = 0.5
std_max = 1.0
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// execute runs the command tree with args and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerate_PointMass(t *testing.T) {
	cfgPath := writeConfig(t, pointMassTOML)
	outDir := t.TempDir()

	stdout, _, err := execute(t, cfgPath, outDir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "rows: 20")

	ds, err := dataset.ReadParquet(filepath.Join(outDir, "t.parquet"))
	require.NoError(t, err)
	require.Equal(t, 20, ds.Rows())
	assert.Equal(t, []string{"ax0", "cluster"}, ds.Columns())
	for i := 0; i < 20; i++ {
		assert.Equal(t, 0.0, ds.Axes[0][i])
		assert.Equal(t, int64(i/10), ds.Cluster[i])
	}
}

func TestGenerate_ByteIdenticalRuns(t *testing.T) {
	cfgPath := writeConfig(t, spreadTOML)
	first, second := t.TempDir(), t.TempDir()

	_, _, err := execute(t, cfgPath, first)
	require.NoError(t, err)
	_, _, err = execute(t, cfgPath, second)
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(first, "spread.parquet"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(second, "spread.parquet"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_SeedChangesOutput(t *testing.T) {
	cfgPath := writeConfig(t, spreadTOML)
	first, second := t.TempDir(), t.TempDir()

	_, _, err := execute(t, cfgPath, first)
	require.NoError(t, err)
	_, _, err = execute(t, "--seed", "7", cfgPath, second)
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(first, "spread.parquet"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(second, "spread.parquet"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerate_MissingKeyWritesNothing(t *testing.T) {
	body := strings.Replace(pointMassTOML, "dim_count = 1\n", "", 1)
	cfgPath := writeConfig(t, body)
	outDir := t.TempDir()

	_, _, err := execute(t, cfgPath, outDir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfigParse))
	assert.Contains(t, err.Error(), "dim_count")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_MissingConfig(t *testing.T) {
	_, _, err := execute(t, filepath.Join(t.TempDir(), "absent.toml"), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfigNotFound))
}

func TestGenerate_MissingOutputDirectory(t *testing.T) {
	cfgPath := writeConfig(t, pointMassTOML)
	outDir := filepath.Join(t.TempDir(), "missing")

	_, _, err := execute(t, cfgPath, outDir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOutputWrite))

	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_WrongArgCount(t *testing.T) {
	_, _, err := execute(t, writeConfig(t, pointMassTOML))
	assert.Error(t, err)
}

func TestGenerate_JSONEvents(t *testing.T) {
	cfgPath := writeConfig(t, pointMassTOML)

	stdout, _, err := execute(t, "--json", cfgPath, t.TempDir())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.NotEmpty(t, lines)

	var last struct {
		Type  string                 `json:"type"`
		RunID string                 `json:"run_id"`
		Data  map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &last))
	assert.Equal(t, "complete", last.Type)
	assert.NotEmpty(t, last.RunID)
	assert.Equal(t, float64(20), last.Data["rows"])
}

func TestScore(t *testing.T) {
	cfgPath := writeConfig(t, spreadTOML)
	outDir := t.TempDir()
	_, _, err := execute(t, cfgPath, outDir)
	require.NoError(t, err)

	stdout, _, err := execute(t, "score", "--json", filepath.Join(outDir, "spread.parquet"))
	require.NoError(t, err)

	var report struct {
		Score      float64            `json:"silhouette"`
		Rows       int                `json:"rows"`
		Clusters   int                `json:"clusters"`
		PerCluster map[string]float64 `json:"per_cluster"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 4, report.Clusters)
	assert.Len(t, report.PerCluster, 4)
	// centers span [-100, 100] with unit-scale spread
	assert.Greater(t, report.Score, 0.5)
	assert.LessOrEqual(t, report.Score, 1.0)
}

func TestScore_NearestPoint(t *testing.T) {
	cfgPath := writeConfig(t, spreadTOML)
	outDir := t.TempDir()
	_, _, err := execute(t, cfgPath, outDir)
	require.NoError(t, err)
	path := filepath.Join(outDir, "spread.parquet")

	var mean, nearest struct {
		Method string  `json:"method"`
		Score  float64 `json:"silhouette"`
	}
	stdout, _, err := execute(t, "score", "--json", path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &mean))

	stdout, _, err = execute(t, "score", "--json", "--nearest-point", path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &nearest))

	assert.Equal(t, "mean", mean.Method)
	assert.Equal(t, "nearest", nearest.Method)
	// without singletons the nearest foreign point is never farther than the
	// nearest foreign mean, so b(i) and s(i) can only shrink
	assert.LessOrEqual(t, nearest.Score, mean.Score)
}

func TestScore_TextOutput(t *testing.T) {
	cfgPath := writeConfig(t, spreadTOML)
	outDir := t.TempDir()
	_, _, err := execute(t, cfgPath, outDir)
	require.NoError(t, err)

	stdout, _, err := execute(t, "score", filepath.Join(outDir, "spread.parquet"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "Silhouette Score: "))
}

func TestScore_MissingFile(t *testing.T) {
	_, _, err := execute(t, "score", filepath.Join(t.TempDir(), "none.parquet"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestConfigShow(t *testing.T) {
	cfgPath := writeConfig(t, spreadTOML)

	stdout, _, err := execute(t, "config", "show", cfgPath, "--format", "json")
	require.NoError(t, err)

	var shown map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &shown))
	assert.Equal(t, "spread", shown["name"])
	assert.Equal(t, float64(4), shown["cluster_count"])

	stdout, _, err = execute(t, "config", "show", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "cluster_count = 4")
}

func TestConfigShow_BadFormat(t *testing.T) {
	_, _, err := execute(t, "config", "show", writeConfig(t, spreadTOML), "--format", "xml")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestConfigValidate(t *testing.T) {
	stdout, _, err := execute(t, "config", "validate", writeConfig(t, spreadTOML))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration is valid")
	assert.Contains(t, stdout, "spread.parquet")

	bad := strings.Replace(spreadTOML, "std_min = 0.5", "std_min = 5.0", 1)
	_, _, err = execute(t, "config", "validate", writeConfig(t, bad))
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "clustergen")

	stdout, _, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Contains(t, info, "version")
}

func TestPrintError_JSONLogs(t *testing.T) {
	var cmdOut, logs bytes.Buffer
	t.Cleanup(func() {
		require.NoError(t, logger.InitializeWithWriter(io.Discard, false, logger.VerbosityUser))
	})

	_, _, err := execute(t, "config", "validate", "--log-json", filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	require.True(t, logger.JSONOutput)

	// point the JSON logger at a buffer we can inspect
	require.NoError(t, logger.InitializeWithWriter(&logs, true, logger.VerbosityUser))
	PrintError(&cmdOut, err)

	assert.Empty(t, cmdOut.String())
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "Command failed", entry["msg"])
	assert.Equal(t, "error", entry["level"])
	assert.Contains(t, entry[logger.FieldError], "absent.toml")
	assert.NotEmpty(t, entry["hints"])
}

func TestPrintError_Hints(t *testing.T) {
	var buf bytes.Buffer
	err := errors.WithHint(errors.New("boom"), "try again")
	PrintError(&buf, err)
	assert.Equal(t, "Error: boom\nHint: try again\n", buf.String())
}
