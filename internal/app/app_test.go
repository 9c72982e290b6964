package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ryabkov82/table-merger/internal/config"
)

func testConfig(t *testing.T, dir string) *config.Config {
	t.Helper()
	out := t.TempDir()
	return &config.Config{
		InputDir:       dir,
		BasicOutput:    filepath.Join(out, config.DefaultBasicOutput),
		AdvancedOutput: filepath.Join(out, config.DefaultAdvancedOutput),
		SplitColumn:    config.DefaultSplitColumn,
		Workers:        2,
	}
}

func writeInput(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_CSVAndJSON(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "a.csv", "id,city,M1\n1,NY,10\n2,NY,20\n")
	writeInput(t, dir, "b.json", `{"recs":[{"id":"1","city":"NY","M1":"5"}]}`)
	cfg := testConfig(t, dir)

	res, err := Run(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "M1 city id\n10 NY 1\n20 NY 2\n5 NY 1\n", readOutput(t, cfg.BasicOutput))
	assert.Equal(t, 3, res.BasicRows)
	assert.Equal(t, []string{cfg.BasicOutput}, res.OutputFiles)

	// M1 стоит первой после сортировки, поэтому city и id считаются метриками
	assert.Contains(t, res.AdvancedError, "city")
	assert.NoFileExists(t, cfg.AdvancedOutput)
}

func TestRun_GroupsByKeyColumns(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "a.csv", "D1,D2,M1,M2\nb,y,1,2\na,x,10,20\n")
	writeInput(t, dir, "b.json", `{"r":[{"D1":"a","D2":"x","M1":5,"M2":6},{"D1":"c","D2":"z","M1":7,"M2":8}]}`)
	writeInput(t, dir, "c.xml", `<root><objects>`+
		`<object name="D1"><value>b</value></object>`+
		`<object name="D2"><value>y</value></object>`+
		`<object name="M1"><value>100</value></object>`+
		`<object name="M2"><value>200</value></object>`+
		`</objects></root>`)
	cfg := testConfig(t, dir)

	res, err := Run(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "D1 D2 MS1 MS2\na x 15 26\nb y 101 202\nc z 7 8\n", readOutput(t, cfg.AdvancedOutput))
	assert.Equal(t, 3, res.AdvancedRows)
}

func TestRun_MissingSplitColumnKeepsBasicOutput(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "a.csv", "id,value\n1,2\n")
	cfg := testConfig(t, dir)

	res, err := Run(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "id value\n1 2\n", readOutput(t, cfg.BasicOutput))
	assert.Contains(t, res.AdvancedError, "M1")
	assert.NoFileExists(t, cfg.AdvancedOutput)
}

func TestRun_NonIntegerMetricKeepsBasicOutput(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "a.csv", "D1,M1\na,1\na,x\n")
	cfg := testConfig(t, dir)

	res, err := Run(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.FileExists(t, cfg.BasicOutput)
	assert.NotEmpty(t, res.AdvancedError)
	assert.NoFileExists(t, cfg.AdvancedOutput)
}

func TestRun_NoSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "notes.txt", "nothing here")
	cfg := testConfig(t, dir)

	res, err := Run(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "\n", readOutput(t, cfg.BasicOutput))
	assert.NoFileExists(t, cfg.AdvancedOutput)
	assert.Empty(t, res.AdvancedError)
}

func TestRun_MissingDirectory(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing"))

	res, err := Run(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.NotEmpty(t, res.DiscoverError)
	assert.Equal(t, "\n", readOutput(t, cfg.BasicOutput))
	assert.NoFileExists(t, cfg.AdvancedOutput)
}

func TestRun_BrokenFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "a.csv", "id,M1\n1,10\n")
	writeInput(t, dir, "b.json", "")
	writeInput(t, dir, "c.yml", "")
	cfg := testConfig(t, dir)

	res, err := Run(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "M1 id\n10 1\n", readOutput(t, cfg.BasicOutput))
	require.Len(t, res.Report.Skipped, 2)
	assert.Equal(t, "MS1 id\n10 1\n", readOutput(t, cfg.AdvancedOutput))
}

func TestRun_WritesXLSXAndIgnoresOwnResults(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "a.csv", "D1,M1\na,1\na,2\n")
	cfg := testConfig(t, dir)
	cfg.BasicOutput = filepath.Join(dir, "basic.tsv")
	cfg.AdvancedOutput = filepath.Join(dir, "advanced.tsv")
	cfg.XLSX = true

	res, err := Run(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, res.OutputFiles, 4)
	assert.FileExists(t, filepath.Join(dir, "basic.xlsx"))

	// повторный запуск не должен читать собственные xlsx результаты
	res, err = Run(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Report.FilesSeen)
	assert.Equal(t, "D1 MS1\na 3\n", readOutput(t, cfg.AdvancedOutput))
}

func TestRun_AdvancedRowsHaveUniqueKeys(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "a.csv", "D1,D2,M1\na,x,1\na,x,2\nb,x,3\na,y,4\nb,x,5\na,x,6\n")
	cfg := testConfig(t, dir)

	_, err := Run(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "D1 D2 MS1\na x 9\na y 4\nb x 8\n", readOutput(t, cfg.AdvancedOutput))
}
