package domain

// GeneKey is one record of the external Gene Keys reference table, keyed by
// gate number 1-64. The content fields are opaque to the chart pipeline.
type GeneKey struct {
	Gate           int    `json:"gate"`
	Name           string `json:"name"`
	Meaning        string `json:"meaning"`
	Shadow         string `json:"shadow"`
	Manifestation  string `json:"manifestation"`
	Gift           string `json:"gift"`
	Transformation string `json:"transformation"`
	Siddhi         string `json:"siddhi"`
	FinalState     string `json:"finalState"`
	Synthesis      string `json:"synthesis"`
}
