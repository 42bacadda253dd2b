// Package algo has the numerical models applied to aggregated history.
package algo

import (
	"math"
	"sort"

	"github.com/FractalWire/git-tools/schema"
)

// Basic COCOMO coefficients for organic projects.
const (
	CoefficientA = 2.4
	ExponentB    = 1.05
	CoefficientC = 2.5
	ExponentD    = 0.38

	linesPerKLOC  = 1000.0
	monthsPerYear = 12.0
)

// Effort returns the person-months for a size in KLOC. Non-positive sizes cost nothing.
func Effort(kloc float64) float64 {
	if kloc <= 0 {
		return 0
	}
	return CoefficientA * math.Pow(kloc, ExponentB)
}

// Schedule returns the development time in calendar months for an effort.
func Schedule(personMonths float64) float64 {
	if personMonths <= 0 {
		return 0
	}
	return CoefficientC * math.Pow(personMonths, ExponentD)
}

// Estimate runs the model in the requested mode. Unknown modes fall back to pure.
func Estimate(commits []schema.CommitRecord, mode schema.EstimateMode, salary float64) schema.CocomoEstimate {
	if mode == schema.IncrementalMode {
		return EstimateIncremental(commits, salary)
	}
	added, deleted := 0, 0
	for _, c := range commits {
		added += c.LinesAdded()
		deleted += c.LinesDeleted()
	}
	return EstimatePure(added, deleted, salary)
}

// EstimateBoth returns the pure and incremental estimates of the same commits.
func EstimateBoth(commits []schema.CommitRecord, salary float64) (pure, incremental schema.CocomoEstimate) {
	return Estimate(commits, schema.PureMode, salary), EstimateIncremental(commits, salary)
}

// EstimatePure sizes the project by its net line count over the whole history.
func EstimatePure(added, deleted int, salary float64) schema.CocomoEstimate {
	kloc := float64(max(added-deleted, 0)) / linesPerKLOC
	return finish(schema.CocomoEstimate{
		Mode:   schema.PureMode,
		Salary: salary,
		KLOC:   kloc,
	}, Effort(kloc))
}

// EstimateIncremental replays the commits oldest first. The running size never drops
// below zero, and each commit adds the effort difference between the size after and
// before it. The result therefore depends on the order of the commits.
func EstimateIncremental(commits []schema.CommitRecord, salary float64) schema.CocomoEstimate {
	ordered := chronological(commits)

	size, personMonths := 0.0, 0.0
	var history []float64
	for _, c := range ordered {
		delta := float64(c.LinesAdded()-c.LinesDeleted()) / linesPerKLOC
		next := math.Max(size+delta, 0)
		personMonths += Effort(next) - Effort(size)
		size = next
		history = append(history, size)
	}

	return finish(schema.CocomoEstimate{
		Mode:        schema.IncrementalMode,
		Salary:      salary,
		KLOC:        size,
		SizeHistory: history,
	}, personMonths)
}

// chronological returns a copy of the commits ordered oldest first.
// Commits sharing a timestamp keep the reverse of their input order.
func chronological(commits []schema.CommitRecord) []schema.CommitRecord {
	ordered := make([]schema.CommitRecord, len(commits))
	for i, c := range commits {
		ordered[len(commits)-1-i] = c
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})
	return ordered
}

func finish(est schema.CocomoEstimate, personMonths float64) schema.CocomoEstimate {
	if personMonths < 0 {
		personMonths = 0
	}
	est.PersonMonths = personMonths
	est.CalendarMonths = Schedule(personMonths)
	if est.CalendarMonths > 0 {
		est.AveragePeople = personMonths / est.CalendarMonths
	}
	est.EstimatedCost = personMonths * est.Salary / monthsPerYear
	return est
}
