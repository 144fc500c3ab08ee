package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		planPath, outPath, comparePlans, dbPath, scenarioID, seedPlan = "", "", nil, "", "", ""
	})
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestParseFloats(t *testing.T) {
	got, err := parseFloats("0.04, 0.06,,0.08")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.04, 0.06, 0.08}, got)

	_, err = parseFloats("0.04,abc")
	assert.Error(t, err)
}

func TestProjectDefaultPlan(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "rows.csv")
	out := run(t, "project", "--out", csvPath)
	assert.Contains(t, out, "Base Case: 7 units, 36 months from 2026-01")
	assert.Contains(t, out, "Wrote ")
	assert.FileExists(t, csvPath)
}

func TestInitThenCompare(t *testing.T) {
	dir := t.TempDir()
	plan := filepath.Join(dir, "base.yaml")
	run(t, "init", plan)
	out := run(t, "compare", "--plan", plan, "--plan", plan)
	assert.Contains(t, out, "Base Case")
}

func TestSweep(t *testing.T) {
	out := run(t, "sweep", "--param", "yield_apr", "--values", "0.04,0.08")
	assert.Contains(t, out, "yield_apr")
	assert.Contains(t, out, "0.04")
}

func TestSeedAndSnapshot(t *testing.T) {
	db := filepath.Join(t.TempDir(), "revenue.db")
	assert.Contains(t, run(t, "seed", "--db", db), "Seeded \"Base Case\" with 7 units")
	assert.Contains(t, run(t, "seed", "--db", db), "nothing to do")
	assert.Contains(t, run(t, "snapshot", "save", "--db", db), "Saved snapshot")
	assert.Contains(t, run(t, "snapshot", "restore", "--db", db), "Reset \"Base Case\"")
}
