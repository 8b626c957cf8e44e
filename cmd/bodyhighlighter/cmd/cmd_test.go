package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	configPath, renderData, renderOut, statsData = "", "", "examples_output", ""
	renderModels, renderColors, renderBody = nil, nil, ""
	statsAll, statsClick = false, nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRender_WritesBothModels(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, "week.yaml", "- name: Squat\n  muscles: [quads, glutes]\n  frequency: 2\n")

	out := run(t, "render", "--data", data, "--out", dir, "--colors", "#111,#222")
	assert.Contains(t, out, "Done!")

	front, err := os.ReadFile(filepath.Join(dir, "anterior.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(front), "fill: #222;")

	back, err := os.ReadFile(filepath.Join(dir, "posterior.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(back), `data-muscle="gluteal"`)
}

func TestRender_SingleModel(t *testing.T) {
	dir := t.TempDir()
	run(t, "render", "--out", dir, "--model", "back")

	_, err := os.Stat(filepath.Join(dir, "posterior.svg"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "anterior.svg"))
	assert.True(t, os.IsNotExist(err))
}

func TestStats_Table(t *testing.T) {
	out := run(t, "stats")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "MUSCLE")
	assert.Contains(t, out, "Lower Back")
	assert.Contains(t, out, "Deadlift, Extensions lombaires")
	assert.NotContains(t, out, "Calves")
}

func TestStats_ClickLines(t *testing.T) {
	out := run(t, "stats", "--click", "Erector Spinae", "--click", "calves")
	assert.Equal(t, "LOWER-BACK (2) -> [\"Deadlift\",\"Extensions lombaires\"]\nCALVES (0) -> []\n", out)
}

func TestStats_ReportsUnrecognised(t *testing.T) {
	data := writeFile(t, "odd.json", `[{"name":"Mystery","muscles":["tail","chest"]}]`)
	out := run(t, "stats", "--data", data)
	assert.Contains(t, out, "1 unrecognised muscle reference(s) skipped: tail")
}
