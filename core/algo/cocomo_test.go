package algo

import (
	"testing"
	"time"

	"github.com/FractalWire/git-tools/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)

// history builds newest-first commits from oldest-first net line deltas.
func history(deltas ...int) []schema.CommitRecord {
	commits := make([]schema.CommitRecord, len(deltas))
	for i, d := range deltas {
		fc := schema.FileChange{Path: "main.go"}
		if d >= 0 {
			fc.LinesAdded = d
		} else {
			fc.LinesDeleted = -d
		}
		commits[len(deltas)-1-i] = schema.CommitRecord{
			ID:          string(rune('a' + i)),
			Timestamp:   t0.Add(time.Duration(i) * time.Hour),
			FileChanges: []schema.FileChange{fc},
		}
	}
	return commits
}

func TestEffortAndSchedule(t *testing.T) {
	assert.Zero(t, Effort(0))
	assert.Zero(t, Effort(-1))
	assert.Zero(t, Schedule(0))
	assert.InDelta(t, 26.928442903247127, Effort(10), 1e-9)
	assert.InDelta(t, 8.738165793274268, Schedule(Effort(10)), 1e-9)
}

func TestEstimatePure(t *testing.T) {
	tests := []struct {
		name     string
		added    int
		deleted  int
		salary   float64
		expected schema.CocomoEstimate
	}{
		{
			name:    "ten thousand lines",
			added:   12000,
			deleted: 2000,
			salary:  60000,
			expected: schema.CocomoEstimate{
				Mode: schema.PureMode, Salary: 60000, KLOC: 10,
				PersonMonths: 26.928442903247127, CalendarMonths: 8.738165793274268,
				AveragePeople: 3.081704277569767, EstimatedCost: 134642.21451623563,
			},
		},
		{
			name:     "zero net lines",
			added:    500,
			deleted:  500,
			salary:   50000,
			expected: schema.CocomoEstimate{Mode: schema.PureMode, Salary: 50000},
		},
		{
			name:     "more deletions than additions",
			added:    100,
			deleted:  400,
			salary:   50000,
			expected: schema.CocomoEstimate{Mode: schema.PureMode, Salary: 50000},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimatePure(tt.added, tt.deleted, tt.salary)
			assert.Equal(t, tt.expected.Mode, got.Mode)
			assert.InDelta(t, tt.expected.KLOC, got.KLOC, 1e-9)
			assert.InDelta(t, tt.expected.PersonMonths, got.PersonMonths, 1e-9)
			assert.InDelta(t, tt.expected.CalendarMonths, got.CalendarMonths, 1e-9)
			assert.InDelta(t, tt.expected.AveragePeople, got.AveragePeople, 1e-9)
			assert.InDelta(t, tt.expected.EstimatedCost, got.EstimatedCost, 1e-6)
			assert.Nil(t, got.SizeHistory)
		})
	}
}

func TestEstimateScenario(t *testing.T) {
	commits := history(100, 50, -30)

	pure := Estimate(commits, schema.PureMode, 50000)
	assert.InDelta(t, 0.12, pure.KLOC, 1e-9)
	assert.InDelta(t, 0.2590308854226159, pure.PersonMonths, 1e-9)
	assert.InDelta(t, 1.4962825037430438, pure.CalendarMonths, 1e-9)
	assert.InDelta(t, 1079.295355927566, pure.EstimatedCost, 1e-6)

	incremental := Estimate(commits, schema.IncrementalMode, 50000)
	assert.Equal(t, schema.IncrementalMode, incremental.Mode)
	assert.InDelta(t, 0.12, incremental.KLOC, 1e-9)
	assert.InDeltaSlice(t, []float64{0.1, 0.15, 0.12}, incremental.SizeHistory, 1e-9)
	// without hitting the zero floor the marginal efforts telescope to the pure effort
	assert.InDelta(t, pure.PersonMonths, incremental.PersonMonths, 1e-9)
}

func TestEstimateIncrementalSingleCommitMatchesPure(t *testing.T) {
	for _, delta := range []int{0, 1, 250, 4000, -20} {
		commits := history(delta)
		pure := Estimate(commits, schema.PureMode, 75000)
		incremental := EstimateIncremental(commits, 75000)
		assert.InDelta(t, pure.KLOC, incremental.KLOC, 1e-12)
		assert.InDelta(t, pure.PersonMonths, incremental.PersonMonths, 1e-12)
		assert.InDelta(t, pure.EstimatedCost, incremental.EstimatedCost, 1e-9)
	}
}

func TestEstimateIncrementalFloorIsPathDependent(t *testing.T) {
	// +100, -300, +50: the running size is floored at zero after the second commit
	commits := history(100, -300, 50)

	incremental := EstimateIncremental(commits, 50000)
	assert.InDeltaSlice(t, []float64{0.1, 0, 0.05}, incremental.SizeHistory, 1e-12)
	assert.InDelta(t, 0.05, incremental.KLOC, 1e-12)
	assert.InDelta(t, 0.10330699911980817, incremental.PersonMonths, 1e-9)

	pure := Estimate(commits, schema.PureMode, 50000)
	assert.Zero(t, pure.PersonMonths)

	// same commits in another order give another result
	reordered := history(100, 50, -300)
	assert.InDelta(t, 0, EstimateIncremental(reordered, 50000).PersonMonths, 1e-12)
}

func TestEstimateIncrementalOrdersByTimestamp(t *testing.T) {
	commits := history(100, 50, -30)
	shuffled := []schema.CommitRecord{commits[1], commits[2], commits[0]}

	got := EstimateIncremental(shuffled, 50000)
	assert.InDeltaSlice(t, []float64{0.1, 0.15, 0.12}, got.SizeHistory, 1e-9)
	// the input is not reordered
	assert.Equal(t, commits[1].ID, shuffled[0].ID)
}

func TestEstimateNoCommits(t *testing.T) {
	for _, mode := range []schema.EstimateMode{schema.PureMode, schema.IncrementalMode} {
		got := Estimate(nil, mode, 50000)
		assert.Equal(t, mode, got.Mode)
		assert.Zero(t, got.KLOC)
		assert.Zero(t, got.PersonMonths)
		assert.Zero(t, got.CalendarMonths)
		assert.Zero(t, got.AveragePeople)
		assert.Zero(t, got.EstimatedCost)
	}
}

func TestEstimateBoth(t *testing.T) {
	pure, incremental := EstimateBoth(history(1000, 1000), 50000)
	require.Equal(t, schema.PureMode, pure.Mode)
	require.Equal(t, schema.IncrementalMode, incremental.Mode)
	assert.InDelta(t, 2.0, pure.KLOC, 1e-12)
	assert.InDelta(t, pure.PersonMonths, incremental.PersonMonths, 1e-9)
}
