package domain

// PrecisionMode reports which ephemeris engine backs a computation.
type PrecisionMode string

const (
	// PrecisionPrecise means the configured ephemeris data files were found.
	PrecisionPrecise PrecisionMode = "precise"
	// PrecisionAnalytic means the built-in analytic model is in use.
	// Lower accuracy; operators should be able to see this.
	PrecisionAnalytic PrecisionMode = "analytic"
)

// CenterDerivation selects how center activation state is produced.
type CenterDerivation string

const (
	// DeriveFromChannels derives center activation from defined channels
	// through the gate→center table. Astronomically consistent; default.
	DeriveFromChannels CenterDerivation = "channels"
	// DeriveSimulated reproduces the legacy hash-seeded center simulation.
	// Kept for output compatibility; decoupled from planetary positions.
	DeriveSimulated CenterDerivation = "simulated"
)

// Chart is the full result of one computation. Both reading lists carry the
// 13 bodies in the fixed Bodies order.
type Chart struct {
	ID        string `json:"chart_id"`
	InputDate string `json:"input_date"` // local civil time echo, "2006-01-02 15:04"

	Personality []BodyReading `json:"personality_list"`
	Design      []BodyReading `json:"design_list"`

	BirthJD  float64 `json:"birth_jd"`
	DesignJD float64 `json:"design_jd"`

	Type            string    `json:"type"`
	Strategy        string    `json:"strategy"`
	Authority       string    `json:"authority"`
	DecisionMode    string    `json:"decision_mode"`
	Profile         string    `json:"profile"`
	NotSelfTheme    string    `json:"not_self_theme"`
	DefinedGates    []int     `json:"defined_gates"`
	DefinedCenters  []Center  `json:"defined_centers"`
	DefinedChannels []Channel `json:"defined_channels"`

	PrecisionMode     PrecisionMode    `json:"precision_mode"`
	TimezoneEstimated bool             `json:"timezone_estimated"`
	CenterDerivation  CenterDerivation `json:"center_derivation"`
}

// ChartAudit is the append-only operational record of one computation.
type ChartAudit struct {
	ChartID           string
	InputDate         string
	Timezone          string
	PrecisionMode     PrecisionMode
	CenterDerivation  CenterDerivation
	TimezoneEstimated bool
	HashFallbacks     int // readings produced by the hash generator
	SolverIterations  int
	SolverConverged   bool
	DurationMs        int64
	ComputedAt        int64 // Unix ms
}
