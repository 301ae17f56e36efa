package domain

// Center is one of the 9 energy centers of the bodygraph.
type Center string

const (
	CenterHead        Center = "Head"
	CenterAjna        Center = "Ajna"
	CenterThroat      Center = "Throat"
	CenterG           Center = "G"
	CenterEgo         Center = "Ego"
	CenterSpleen      Center = "Spleen"
	CenterSacral      Center = "Sacral"
	CenterSolarPlexus Center = "Solar_Plexus"
	CenterRoot        Center = "Root"
)

// Centers lists all 9 centers in the order the health endpoint reports them.
var Centers = []Center{
	CenterHead,
	CenterAjna,
	CenterThroat,
	CenterG,
	CenterEgo,
	CenterSpleen,
	CenterSacral,
	CenterSolarPlexus,
	CenterRoot,
}

// MotorCenters are the driving-energy centers used for type classification.
// Sacral is also a motor but is handled separately by the type rules.
var MotorCenters = []Center{CenterEgo, CenterSolarPlexus, CenterRoot}

// CenterState maps each center to its defined flag. Always holds all 9 keys.
type CenterState map[Center]bool

// NewCenterState returns a state with every center undefined.
func NewCenterState() CenterState {
	s := make(CenterState, len(Centers))
	for _, c := range Centers {
		s[c] = false
	}
	return s
}

// DefinedCount returns the number of defined centers.
func (s CenterState) DefinedCount() int {
	n := 0
	for _, defined := range s {
		if defined {
			n++
		}
	}
	return n
}

// Defined returns the defined centers in canonical order.
func (s CenterState) Defined() []Center {
	out := make([]Center, 0, len(Centers))
	for _, c := range Centers {
		if s[c] {
			out = append(out, c)
		}
	}
	return out
}
