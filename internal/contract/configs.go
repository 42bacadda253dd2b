package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/FractalWire/git-tools/schema"
	"github.com/mitchellh/go-homedir"
)

// Default values for configuration.
const (
	DefaultDirLevel  = 1
	DefaultSalary    = 50000.0
	DefaultTop       = 5
	MaxTop           = 100
	DefaultDirLimit  = 10
	DefaultPrecision = 2
)

// DateFormat is the calendar date representation used in reports.
const DateFormat = "2006-01-02"

// Config holds the runtime configuration for a summary run.
// This struct is the "final, validated" config.
type Config struct {
	RepoPath string

	// Commit selection
	Emails        []string // lower-cased, deduplicated
	EmailContains string
	Mine          bool
	DivergedFrom  string
	SkipMerges    bool
	Excludes      []string
	SkipVendor    bool

	// Relative time window; WindowCount == 0 means no window
	WindowUnit  schema.TimeUnit
	WindowCount int
	Now         time.Time // reference instant for the window cutoff

	// Aggregation and estimate
	DirLevel     int
	Top          int
	DirLimit     int
	Salary       float64
	EstimateMode schema.EstimateMode

	// Extraction and rendering
	Backend    schema.Backend
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	UseEmojis  bool
	Verbose    bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Emails        string `mapstructure:"emails"`
	EmailContains string `mapstructure:"email-contains"`
	Mine          bool   `mapstructure:"mine"`
	Days          int    `mapstructure:"days"`
	Weeks         int    `mapstructure:"weeks"`
	Months        int    `mapstructure:"months"`
	Years         int    `mapstructure:"years"`
	DivergedFrom  string `mapstructure:"diverged-from"`
	SkipMerges    bool   `mapstructure:"skip-merges"`
	Exclude       string `mapstructure:"exclude"`
	SkipVendor    bool   `mapstructure:"skip-vendor"`
	Backend       string `mapstructure:"backend"`
	Output        string `mapstructure:"output"`
	OutputFile    string `mapstructure:"output-file"`
	Precision     int    `mapstructure:"precision"`
	Width         int    `mapstructure:"width"`
	Color         string `mapstructure:"color"`
	Emoji         string `mapstructure:"emoji"`
	Verbose       bool   `mapstructure:"verbose"`

	// --- Fields from summaryCmd / estimateCmd flags ---
	DirLevel int     `mapstructure:"dir-level"`
	Top      int     `mapstructure:"top"`
	DirLimit int     `mapstructure:"dir-limit"`
	Salary   float64 `mapstructure:"salary"`
	Mode     string  `mapstructure:"mode"`
}

// NewRawInput returns raw inputs holding every default value.
// The MCP server starts from it since it has no flag layer.
func NewRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		RepoPathStr: ".",
		DirLevel:    DefaultDirLevel,
		Top:         DefaultTop,
		DirLimit:    DefaultDirLimit,
		Salary:      DefaultSalary,
		Mode:        string(schema.PureMode),
		Backend:     string(schema.ExecBackend),
		Output:      string(schema.TextOut),
		Precision:   DefaultPrecision,
		Color:       "yes",
		Emoji:       "no",
	}
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Emails = slices.Clone(c.Emails)
	clone.Excludes = slices.Clone(c.Excludes)
	return &clone
}

// HasWindow reports whether a relative time window is configured.
func (c *Config) HasWindow() bool {
	return c.WindowCount > 0
}

// WindowStart returns the cutoff instant of the configured window, or the zero time.
func (c *Config) WindowStart() time.Time {
	if !c.HasWindow() {
		return time.Time{}
	}
	return WindowStart(c.WindowUnit, c.WindowCount, c.Now)
}

// WindowDays returns the length of the configured window in days, or 0.
func (c *Config) WindowDays() float64 {
	if !c.HasWindow() {
		return 0
	}
	return c.Now.Sub(c.WindowStart()).Hours() / 24
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct. Every validation error wraps ErrInvalidConfiguration.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if err := processTimeWindow(cfg, input); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if err := processEstimate(cfg, input); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if err := resolveGitPath(ctx, cfg, client, input); err != nil {
		return err
	}
	return processEmails(ctx, cfg, client, input)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.SkipMerges = input.SkipMerges
	cfg.SkipVendor = input.SkipVendor
	cfg.Verbose = input.Verbose
	cfg.DivergedFrom = strings.TrimSpace(input.DivergedFrom)
	cfg.Excludes = SplitList(input.Exclude)

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// --- 1. Aggregation limits ---
	if input.DirLevel < 1 {
		return fmt.Errorf("dir-level must be at least 1 (received %d)", input.DirLevel)
	}
	cfg.DirLevel = input.DirLevel

	if input.Top <= 0 || input.Top > MaxTop {
		return fmt.Errorf("top must be greater than 0 and cannot exceed %d (received %d)", MaxTop, input.Top)
	}
	cfg.Top = input.Top

	if input.DirLimit < 0 {
		return fmt.Errorf("dir-limit cannot be negative (received %d)", input.DirLimit)
	}
	cfg.DirLimit = input.DirLimit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 3. Backend Validation ---
	cfg.Backend = schema.Backend(strings.ToLower(input.Backend))
	if _, ok := schema.ValidBackends[cfg.Backend]; !ok {
		return fmt.Errorf("invalid backend '%s'. must be exec, gogit", input.Backend)
	}

	return nil
}

// processTimeWindow accepts at most one of days, weeks, months and years.
func processTimeWindow(cfg *Config, input *ConfigRawInput) error {
	cfg.Now = time.Now().UTC()

	candidates := []struct {
		unit  schema.TimeUnit
		count int
	}{
		{schema.DayUnit, input.Days},
		{schema.WeekUnit, input.Weeks},
		{schema.MonthUnit, input.Months},
		{schema.YearUnit, input.Years},
	}

	var set []schema.TimeUnit
	for _, c := range candidates {
		if c.count < 0 {
			return fmt.Errorf("--%s cannot be negative (received %d)", c.unit, c.count)
		}
		if c.count == 0 {
			continue
		}
		set = append(set, c.unit)
		cfg.WindowUnit = c.unit
		cfg.WindowCount = c.count
	}

	if len(set) > 1 {
		return fmt.Errorf("only one time window may be set, got %s", joinUnits(set))
	}
	return nil
}

// processEstimate validates the COCOMO inputs.
func processEstimate(cfg *Config, input *ConfigRawInput) error {
	if input.Salary <= 0 {
		return fmt.Errorf("salary must be positive (received %.2f)", input.Salary)
	}
	cfg.Salary = input.Salary

	cfg.EstimateMode = schema.EstimateMode(strings.ToLower(input.Mode))
	if _, ok := schema.ValidEstimateModes[cfg.EstimateMode]; !ok {
		return fmt.Errorf("invalid mode '%s'. must be pure, incremental", input.Mode)
	}
	return nil
}

// resolveGitPath resolves the Git repository root from the positional path.
func resolveGitPath(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}
	expanded, err := homedir.Expand(searchPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	absSearchPath, err := filepath.Abs(expanded)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	absSearchPath = filepath.Clean(absSearchPath)

	gitContextPath := absSearchPath
	if info, statErr := os.Stat(absSearchPath); statErr == nil && !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return err
	}
	cfg.RepoPath = gitRoot
	return nil
}

// processEmails normalizes the email allow-list and appends the configured user email for --mine.
func processEmails(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	cfg.EmailContains = strings.ToLower(strings.TrimSpace(input.EmailContains))
	cfg.Mine = input.Mine

	emails := SplitList(input.Emails)
	if cfg.Mine {
		own, err := client.GetUserEmail(ctx, cfg.RepoPath)
		if err != nil {
			return err
		}
		if own == "" {
			return fmt.Errorf("%w: --mine requires user.email to be configured", ErrInvalidConfiguration)
		}
		emails = append(emails, own)
	}
	cfg.Emails = NormalizeEmails(emails)
	return nil
}

// NormalizeEmails lower-cases, trims and deduplicates emails, keeping first-seen order.
func NormalizeEmails(emails []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

func joinUnits(units []schema.TimeUnit) string {
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = "--" + string(u)
	}
	return strings.Join(parts, ", ")
}
