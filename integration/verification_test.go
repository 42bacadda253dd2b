//go:build integration

// Package integration contains integration tests for git-summary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"strconv"
	"testing"

	"github.com/FractalWire/git-tools/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, dir string, args ...string) []byte {
	t.Helper()
	cmd := exec.Command(getBinary(t), args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	require.NoError(t, cmd.Run(), stderr.String())
	return stdout.Bytes()
}

// TestSummaryMatchesGitLog runs git-summary summary and verifies totals against git itself.
func TestSummaryMatchesGitLog(t *testing.T) {
	dir := newScenarioRepo(t)

	for _, backend := range []string{"exec", "gogit"} {
		t.Run(backend, func(t *testing.T) {
			var summary schema.Summary
			out := run(t, dir, "summary", "--output", "json", "--backend", backend, "--color", "no")
			require.NoError(t, json.Unmarshal(out, &summary))

			count, err := strconv.Atoi(git(t, dir, "2025-01-08T09:00:00Z", "rev-list", "--count", "HEAD"))
			require.NoError(t, err)
			assert.Equal(t, count, summary.TotalCommits)
			assert.Equal(t, 150, summary.TotalLinesAdded)
			assert.Equal(t, 30, summary.TotalLinesDeleted)

			assert.Equal(t, 1, summary.Categories[schema.FeatureCategory].CommitCount)
			assert.Equal(t, 1, summary.Categories[schema.FixCategory].CommitCount)
			assert.Equal(t, 1, summary.Categories[schema.DocsCategory].CommitCount)

			require.Contains(t, summary.Directories, "src")
			assert.Equal(t, 3, summary.Directories["src"].CommitCount)
			assert.InDelta(t, 0.12, summary.Estimate.KLOC, 1e-9)
		})
	}
}

// TestEstimateScenario checks both COCOMO modes against the +100, +50, -30 history.
func TestEstimateScenario(t *testing.T) {
	dir := newScenarioRepo(t)

	var report schema.EstimateReport
	require.NoError(t, json.Unmarshal(run(t, dir, "estimate", "--output", "json"), &report))

	assert.Equal(t, 3, report.TotalCommits)
	assert.InDelta(t, 0.12, report.Pure.KLOC, 1e-9)
	assert.InDeltaSlice(t, []float64{0.1, 0.15, 0.12}, report.Incremental.SizeHistory, 1e-9)
	assert.InDelta(t, report.Pure.PersonMonths, report.Incremental.PersonMonths, 1e-9)
}

// TestTwoWindowUnitsFail checks that conflicting windows abort before any output.
func TestTwoWindowUnitsFail(t *testing.T) {
	dir := newScenarioRepo(t)

	cmd := exec.Command(getBinary(t), "summary", "--days", "3", "--weeks", "1", "--output", "json")
	cmd.Dir = dir
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	assert.Error(t, cmd.Run())
	assert.Empty(t, stdout.String())
}

// TestEmails lists the only author of the scenario.
func TestEmails(t *testing.T) {
	dir := newScenarioRepo(t)
	assert.Equal(t, "alice@example.com\n", string(run(t, dir, "emails", "--output", "text")))
}
