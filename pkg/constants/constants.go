// Package constants provides shared constants for the plantainpro application.
package constants

// Production constants
const (
	// FlourYieldRatio is the fraction of raw plantain mass that ends up as flour.
	FlourYieldRatio = 0.25

	// VariableCostPerKg is the production cost of one kg of flour.
	VariableCostPerKg = 800.0

	// MonthlyOperatingCost is the fixed monthly operating cost.
	MonthlyOperatingCost = 3_500_000.0

	// AnnualOperatingCost is the fixed yearly cost used for the ROI figure.
	AnnualOperatingCost = 42_000_000.0
)

// Capital components. InitialCapital is their sum.
const (
	EquipmentCost   = 15_000_000.0
	FacilityCost    = 8_000_000.0
	WorkingCapital  = 5_000_000.0
	InitialCapital  = EquipmentCost + FacilityCost + WorkingCapital
	LoanCapitalRate = 0.7
)

// Staffing constants
const (
	// BaseStaff is the minimum crew of the factory.
	BaseStaff = 8

	// StaffCapacityStep is the capacity increment (kg/day) that adds staff.
	StaffCapacityStep = 500

	// StaffPerStep is the number of employees added per capacity step.
	StaffPerStep = 2
)

// Calendar constants
const (
	DaysPerMonth   = 30
	DaysPerYear    = 365
	DaysPerQuarter = 90
	MonthsPerYear  = 12

	// MonthsPerQuarter is the frequency for quarterly figures
	MonthsPerQuarter = 3

	// QuartersPerYear is the length of the quarterly projections
	QuartersPerYear = 4

	// QuarterlyGrowthRate is the linear growth applied per quarter.
	QuarterlyGrowthRate = 0.15
)

// Currency constants
const (
	// CurrencySymbol is the Nigerian Naira sign.
	CurrencySymbol = "₦"

	// DepreciationRiskThreshold marks factors that indicate significant risk.
	DepreciationRiskThreshold = 1.2

	// NotApplicable replaces figures that cannot be displayed.
	NotApplicable = "N/A"
)

// Default assumptions for a new session
const (
	DefaultDailyCapacity              = 1000.0
	DefaultSellingPrice               = 2000.0
	DefaultCurrencyDepreciationFactor = 1.0
)

// Input hints for the assumption fields
const (
	MinDailyCapacity  = 100.0
	StepDailyCapacity = 100.0

	MinSellingPrice  = 1000.0
	StepSellingPrice = 100.0

	MinDepreciationFactor  = 0.5
	MaxDepreciationFactor  = 3.0
	StepDepreciationFactor = 0.1
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultSessionTTL is how long an idle session keeps its model
	DefaultSessionTTL = "30m"

	// DefaultSweepSchedule is the cron spec of the idle-session sweep
	DefaultSweepSchedule = "@every 1m"

	// DefaultMaxSessions caps the number of live sessions
	DefaultMaxSessions = 10000

	// SessionCookieName holds the session id
	SessionCookieName = "plantainpro_session"

	// AddressEnvVar overrides the listen address
	AddressEnvVar = "PLANTAINPRO_ADDRESS"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 kobo)
	CurrencyTolerance = 0.01

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)
