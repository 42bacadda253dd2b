// Package main provides a performance benchmarking tool for the git-summary CLI.
// It measures execution times of every command on both extractor backends,
// running each test multiple times and averaging the successful runs,
// and writes a CSV file for performance analysis and documentation.
//
// Prerequisites:
// - git-summary binary installed and available in PATH
// - Test repositories cloned to the specified base directory
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the average time of one command on one backend.
type BenchmarkResult struct {
	Repository string
	Command    string
	Backend    string
	AvgTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase  string
	Timeout   time.Duration
	Runs      int
	TestRepos []string
	Backends  []string
	Commands  [][]string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		RepoBase:  os.Args[1],
		Timeout:   5 * time.Minute,
		Runs:      3,
		TestRepos: []string{"csv-parser", "fd", "git"},
		Backends:  []string{"exec", "gogit"},
		Commands: [][]string{
			{"summary", "--output", "json"},
			{"summary", "--years", "1", "--dir-level", "2", "--output", "json"},
			{"estimate", "--output", "json"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Benchmark complete\n")
	for _, r := range results {
		fmt.Printf("  %-12s %-7s %-40s %s\n", r.Repository, r.Backend, r.Command, r.AvgTime)
	}
}

// checkPrerequisites verifies that the binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("git-summary"); err != nil {
		return fmt.Errorf("git-summary binary not found in PATH")
	}
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}
	return nil
}

// runBenchmarks executes every command on every backend across configured repositories
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d runs\n", len(config.TestRepos), config.Timeout, config.Runs)

	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		for _, backend := range config.Backends {
			for _, command := range config.Commands {
				args := append([]string{}, command...)
				args = append(args, "--backend", backend)
				fmt.Printf("Running %v on %s\n", args, repo)

				results = append(results, BenchmarkResult{
					Repository: repo,
					Command:    fmt.Sprint(command),
					Backend:    backend,
					AvgTime:    averageTime(config, repoPath, args),
				})
			}
		}
	}
	return results
}

// averageTime runs a command several times and averages the successful runs
func averageTime(config BenchmarkConfig, repoPath string, args []string) string {
	var sum float64
	var ok int
	for run := 1; run <= config.Runs; run++ {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		cmd := exec.CommandContext(ctx, "git-summary", args...)
		cmd.Dir = repoPath

		start := time.Now()
		err := cmd.Run()
		elapsed := time.Since(start).Seconds()
		cancel()

		if err == nil {
			sum += elapsed
			ok++
		}
	}
	if ok == 0 {
		return "FAILED"
	}
	return fmt.Sprintf("%.3fs", sum/float64(ok))
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/git_summary_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"repo", "backend", "cmd", "avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Repository, r.Backend, r.Command, r.AvgTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}
