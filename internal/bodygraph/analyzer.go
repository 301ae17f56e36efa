package bodygraph

import (
	"fmt"
	"sort"

	"humandesign/internal/domain"
	"humandesign/internal/idhash"
)

// Analysis carries everything derived from the two reading lists.
type Analysis struct {
	ActivatedGates  []int
	DefinedChannels []domain.Channel
	Centers         domain.CenterState
	Derivation      domain.CenterDerivation

	Type         string
	Strategy     string
	Authority    string
	DecisionMode string
	Profile      string
	NotSelfTheme string
}

// Analyze runs the full classification for a chart. seedDate is the
// formatted birth date/time ("2006-01-02-15-04") consumed only by the
// simulated center derivation.
func Analyze(personality, design []domain.BodyReading, derivation domain.CenterDerivation, seedDate string) Analysis {
	gates := ActivatedGates(personality, design)
	channels := DefinedChannels(gates)

	var centers domain.CenterState
	switch derivation {
	case domain.DeriveSimulated:
		centers = SimulatedCenters(seedDate)
	default:
		derivation = domain.DeriveFromChannels
		centers = CentersFromChannels(channels)
	}

	typeName, strategy := TypeAndStrategy(centers)

	a := Analysis{
		ActivatedGates:  sortedGates(gates),
		DefinedChannels: channels,
		Centers:         centers,
		Derivation:      derivation,
		Type:            typeName,
		Strategy:        strategy,
		Authority:       Authority(centers),
		DecisionMode:    DecisionMode(centers, channels),
		NotSelfTheme:    NotSelfTheme(typeName),
	}
	if len(personality) > 0 && len(design) > 0 {
		a.Profile = Profile(personality[0].Line, design[0].Line)
	}
	return a
}

// ActivatedGates collects the union of gates across both reading lists.
func ActivatedGates(personality, design []domain.BodyReading) map[int]bool {
	gates := make(map[int]bool)
	for _, r := range personality {
		gates[r.Gate] = true
	}
	for _, r := range design {
		gates[r.Gate] = true
	}
	return gates
}

// DefinedChannels returns the channels whose endpoint gates are both
// activated, sorted by gate pair for stable output.
func DefinedChannels(gates map[int]bool) []domain.Channel {
	var out []domain.Channel
	for ch := range ChannelCenters {
		if gates[ch.GateA] && gates[ch.GateB] {
			out = append(out, ch)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GateA != out[j].GateA {
			return out[i].GateA < out[j].GateA
		}
		return out[i].GateB < out[j].GateB
	})
	return out
}

// CentersFromChannels derives center activation from defined channels
// through the gate→center table: both endpoint gates of every defined
// channel light their centers.
func CentersFromChannels(channels []domain.Channel) domain.CenterState {
	state := domain.NewCenterState()
	for _, ch := range channels {
		if c, ok := GateToCenter[ch.GateA]; ok {
			state[c] = true
		}
		if c, ok := GateToCenter[ch.GateB]; ok {
			state[c] = true
		}
	}
	return state
}

// SimulatedCenters reproduces the legacy hash-seeded center activation:
// 3-7 centers toggled on deterministically from the date seed, with a
// ~5% chance of forcing all centers off. Decoupled from planetary
// positions; kept only for compatibility output.
func SimulatedCenters(seedDate string) domain.CenterState {
	state := domain.NewCenterState()

	numDefined := 3 + int(idhash.SeedMod(seedDate, 5))
	seedIdx := int(idhash.SeedMod(seedDate, uint64(len(domain.Centers))))

	chosen := make(map[int]bool, numDefined)
	for i := 0; i < numDefined; i++ {
		idx := (seedIdx + i*37) % len(domain.Centers)
		for chosen[idx] {
			idx = (idx + 1) % len(domain.Centers)
		}
		chosen[idx] = true
		state[domain.Centers[idx]] = true
	}

	if idhash.SeedMod(seedDate, 100) < 5 {
		for _, c := range domain.Centers {
			state[c] = false
		}
	}
	return state
}

// TypeAndStrategy classifies the chart type from Sacral and Throat
// definition. "Throat connected to a motor" is the simplified rule:
// Throat defined together with any defined motor center.
func TypeAndStrategy(state domain.CenterState) (typeName, strategy string) {
	if state.DefinedCount() == 0 {
		return "Reflector", "wait a lunar cycle (28 days)"
	}

	throatToMotor := false
	if state[domain.CenterThroat] {
		for _, motor := range domain.MotorCenters {
			if state[motor] {
				throatToMotor = true
				break
			}
		}
	}

	if state[domain.CenterSacral] {
		if throatToMotor {
			return "Manifesting Generator", "inform then act, then await response"
		}
		return "Generator", "await response"
	}
	if throatToMotor {
		return "Manifestor", "inform"
	}
	return "Projector", "await invitation"
}

// Authority resolves inner authority by fixed priority, first match wins.
func Authority(state domain.CenterState) string {
	switch {
	case state[domain.CenterSolarPlexus]:
		return "emotional authority"
	case state[domain.CenterSacral]:
		return "sacral authority"
	case state[domain.CenterSpleen]:
		return "splenic authority"
	case state[domain.CenterEgo]:
		return "ego authority"
	case state[domain.CenterG]:
		return "self-projected authority"
	default:
		return "environmental/lunar authority"
	}
}

// DecisionMode counts connected components of the graph whose nodes are
// defined centers and whose edges are defined channels bridging two
// defined centers.
func DecisionMode(state domain.CenterState, channels []domain.Channel) string {
	defined := state.Defined()
	if len(defined) == 0 {
		return "undefined"
	}

	adj := make(map[domain.Center][]domain.Center, len(defined))
	for _, c := range defined {
		adj[c] = nil
	}
	for _, ch := range channels {
		ends, ok := ChannelCenters[ch]
		if !ok {
			continue
		}
		if state[ends[0]] && state[ends[1]] {
			adj[ends[0]] = append(adj[ends[0]], ends[1])
			adj[ends[1]] = append(adj[ends[1]], ends[0])
		}
	}

	visited := make(map[domain.Center]bool, len(defined))
	components := 0
	for _, c := range defined {
		if visited[c] {
			continue
		}
		components++
		stack := []domain.Center{c}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[node] {
				continue
			}
			visited[node] = true
			stack = append(stack, adj[node]...)
		}
	}

	switch components {
	case 1:
		return "single definition"
	case 2:
		return "split definition"
	case 3:
		return "triple split"
	default:
		return "quadruple split"
	}
}

// Profile formats the personality and design Sun lines, e.g. "6/2".
func Profile(personalitySunLine, designSunLine int) string {
	return fmt.Sprintf("%d/%d", personalitySunLine, designSunLine)
}

// NotSelfTheme is the fixed per-type theme lookup.
func NotSelfTheme(typeName string) string {
	switch typeName {
	case "Reflector":
		return "disappointment"
	case "Manifestor":
		return "anger"
	case "Projector":
		return "bitterness"
	case "Generator", "Manifesting Generator":
		return "frustration"
	default:
		return "unknown"
	}
}

func sortedGates(gates map[int]bool) []int {
	out := make([]int, 0, len(gates))
	for g := range gates {
		out = append(out, g)
	}
	sort.Ints(out)
	return out
}
