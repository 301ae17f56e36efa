package domain

import "fmt"

// Channel is a fixed pairing of two gates, normalized so GateA < GateB.
type Channel struct {
	GateA int `json:"gate_a"`
	GateB int `json:"gate_b"`
}

// NewChannel returns the normalized channel for a gate pair.
func NewChannel(g1, g2 int) Channel {
	if g1 > g2 {
		g1, g2 = g2, g1
	}
	return Channel{GateA: g1, GateB: g2}
}

// String returns the conventional "a-b" channel name, e.g. "34-57".
func (c Channel) String() string {
	return fmt.Sprintf("%d-%d", c.GateA, c.GateB)
}
