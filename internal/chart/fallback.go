package chart

import (
	"fmt"

	"humandesign/internal/domain"
	"humandesign/internal/idhash"
	"humandesign/internal/mandala"
)

// FallbackReading produces a deterministic pseudo-random reading for a body
// when the ephemeris is unavailable. The seed ties gate and line to the
// civil birth minute, the body, and the layer, so repeated requests return
// identical charts. seedDate is formatted "YYYY-MM-DD-HH-MM".
func FallbackReading(seedDate string, body domain.Body, conscious bool) domain.BodyReading {
	layer := "design"
	if conscious {
		layer = "conscious"
	}
	seed := fmt.Sprintf("%s-%s-%s", seedDate, body, layer)

	gate := int(idhash.SeedMod(seed, 64)) + 1
	line := int(idhash.SeedMod(seed, 6)) + 1

	r := domain.BodyReading{
		Body:   body,
		Gate:   gate,
		Line:   line,
		Sign:   mandala.GateSign(gate),
		Source: domain.SourceHashFallback,
	}
	r.GateLine = r.Label()
	return r
}
