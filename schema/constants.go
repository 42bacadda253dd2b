package schema

// Custom string types for type safety.
type (
	// Category is the intent assigned to a commit from its subject line.
	Category string

	// OutputMode represents the format of the output.
	OutputMode string

	// EstimateMode selects how KLOC is derived for the COCOMO estimate.
	EstimateMode string

	// Backend selects the commit extractor implementation.
	Backend string

	// TimeUnit is the unit of the relative time window filter.
	TimeUnit string

	// FrequencyPeriod is the period used to express commit frequency.
	FrequencyPeriod string
)

// All commit categories supported.
const (
	FeatureCategory     Category = "Feature"
	FixCategory         Category = "Fix"
	ImprovementCategory Category = "Improvement"
	RefactorCategory    Category = "Refactor"
	DocsCategory        Category = "Docs"
	ChoreCategory       Category = "Chore"
	OtherCategory       Category = "Other" // default
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All estimate modes supported.
const (
	PureMode        EstimateMode = "pure" // default
	IncrementalMode EstimateMode = "incremental"
)

// All extractor backends supported.
const (
	ExecBackend  Backend = "exec" // default
	GoGitBackend Backend = "gogit"
)

// All time window units supported.
const (
	DayUnit   TimeUnit = "days"
	WeekUnit  TimeUnit = "weeks"
	MonthUnit TimeUnit = "months"
	YearUnit  TimeUnit = "years"
)

// All frequency periods supported.
const (
	PerDay   FrequencyPeriod = "day"
	PerWeek  FrequencyPeriod = "week"
	PerMonth FrequencyPeriod = "month"
)

// AllCategories lists every category in report order.
var AllCategories = []Category{
	FeatureCategory,
	FixCategory,
	ImprovementCategory,
	RefactorCategory,
	DocsCategory,
	ChoreCategory,
	OtherCategory,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidEstimateModes lists all valid estimate modes.
var ValidEstimateModes = map[EstimateMode]struct{}{
	PureMode:        {},
	IncrementalMode: {},
}

// ValidBackends lists all valid extractor backends.
var ValidBackends = map[Backend]struct{}{
	ExecBackend:  {},
	GoGitBackend: {},
}
