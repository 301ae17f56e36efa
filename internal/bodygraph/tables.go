// Package bodygraph derives centers, channels and the classification
// attributes (type, authority, decision mode) from gate activations.
package bodygraph

import "humandesign/internal/domain"

// ChannelCenters maps each of the 36 fixed channels to the two centers
// it bridges. Keys are normalized (smaller gate first). The table is the
// behavioral reference for type and decision-mode output and must not be
// edited to "correct" individual endpoints.
var ChannelCenters = map[domain.Channel][2]domain.Center{
	// Head - Ajna
	{GateA: 4, GateB: 63}:  {domain.CenterHead, domain.CenterAjna},
	{GateA: 11, GateB: 56}: {domain.CenterHead, domain.CenterAjna},
	{GateA: 17, GateB: 62}: {domain.CenterHead, domain.CenterAjna},
	{GateA: 24, GateB: 61}: {domain.CenterHead, domain.CenterAjna},
	{GateA: 23, GateB: 43}: {domain.CenterHead, domain.CenterAjna},
	{GateA: 47, GateB: 64}: {domain.CenterHead, domain.CenterAjna},
	// Ajna - Throat
	{GateA: 1, GateB: 8}:   {domain.CenterAjna, domain.CenterThroat},
	{GateA: 7, GateB: 31}:  {domain.CenterAjna, domain.CenterThroat},
	{GateA: 13, GateB: 33}: {domain.CenterAjna, domain.CenterThroat},
	// Throat group
	{GateA: 2, GateB: 14}:  {domain.CenterSacral, domain.CenterThroat},
	{GateA: 5, GateB: 15}:  {domain.CenterSacral, domain.CenterThroat},
	{GateA: 16, GateB: 48}: {domain.CenterThroat, domain.CenterG},
	{GateA: 10, GateB: 20}: {domain.CenterThroat, domain.CenterG},
	{GateA: 10, GateB: 34}: {domain.CenterThroat, domain.CenterSacral},
	{GateA: 20, GateB: 34}: {domain.CenterThroat, domain.CenterSacral},
	{GateA: 10, GateB: 57}: {domain.CenterThroat, domain.CenterG},
	{GateA: 20, GateB: 57}: {domain.CenterThroat, domain.CenterG},
	{GateA: 29, GateB: 46}: {domain.CenterSacral, domain.CenterThroat},
	{GateA: 35, GateB: 36}: {domain.CenterThroat, domain.CenterSolarPlexus},
	// Ego group
	{GateA: 21, GateB: 45}: {domain.CenterEgo, domain.CenterThroat},
	{GateA: 26, GateB: 44}: {domain.CenterEgo, domain.CenterSpleen},
	{GateA: 25, GateB: 51}: {domain.CenterG, domain.CenterEgo},
	// Sacral group
	{GateA: 3, GateB: 60}:  {domain.CenterSacral, domain.CenterRoot},
	{GateA: 9, GateB: 52}:  {domain.CenterSacral, domain.CenterRoot},
	{GateA: 34, GateB: 57}: {domain.CenterSacral, domain.CenterG},
	{GateA: 42, GateB: 53}: {domain.CenterSacral, domain.CenterRoot},
	{GateA: 27, GateB: 50}: {domain.CenterSacral, domain.CenterSpleen},
	// Solar Plexus group
	{GateA: 6, GateB: 59}:  {domain.CenterSolarPlexus, domain.CenterSacral},
	{GateA: 12, GateB: 22}: {domain.CenterSolarPlexus, domain.CenterThroat},
	{GateA: 37, GateB: 40}: {domain.CenterSolarPlexus, domain.CenterG},
	{GateA: 39, GateB: 55}: {domain.CenterSolarPlexus, domain.CenterRoot},
	// Spleen group
	{GateA: 18, GateB: 58}: {domain.CenterSpleen, domain.CenterRoot},
	{GateA: 28, GateB: 38}: {domain.CenterSpleen, domain.CenterRoot},
	{GateA: 32, GateB: 54}: {domain.CenterSpleen, domain.CenterSacral},
	// Root group
	{GateA: 19, GateB: 49}: {domain.CenterRoot, domain.CenterSacral},
	{GateA: 30, GateB: 41}: {domain.CenterRoot, domain.CenterG},
}

// GateToCenter assigns every gate 1-64 to its center. Used when deriving
// center activation from defined channels.
var GateToCenter = map[int]domain.Center{
	// Head
	61: domain.CenterHead, 63: domain.CenterHead, 64: domain.CenterHead,
	// Ajna
	4: domain.CenterAjna, 11: domain.CenterAjna, 17: domain.CenterAjna,
	24: domain.CenterAjna, 43: domain.CenterAjna, 47: domain.CenterAjna,
	// Throat
	8: domain.CenterThroat, 12: domain.CenterThroat, 16: domain.CenterThroat,
	23: domain.CenterThroat, 31: domain.CenterThroat, 33: domain.CenterThroat,
	35: domain.CenterThroat, 45: domain.CenterThroat, 56: domain.CenterThroat,
	62: domain.CenterThroat,
	// G
	1: domain.CenterG, 2: domain.CenterG, 7: domain.CenterG,
	10: domain.CenterG, 13: domain.CenterG, 15: domain.CenterG,
	25: domain.CenterG, 46: domain.CenterG,
	// Ego
	21: domain.CenterEgo, 26: domain.CenterEgo, 40: domain.CenterEgo,
	51: domain.CenterEgo,
	// Sacral
	3: domain.CenterSacral, 5: domain.CenterSacral, 6: domain.CenterSacral,
	9: domain.CenterSacral, 14: domain.CenterSacral, 19: domain.CenterSacral,
	22: domain.CenterSacral, 27: domain.CenterSacral, 29: domain.CenterSacral,
	36: domain.CenterSacral, 37: domain.CenterSacral, 42: domain.CenterSacral,
	49: domain.CenterSacral, 52: domain.CenterSacral, 53: domain.CenterSacral,
	59: domain.CenterSacral, 60: domain.CenterSacral,
	// Solar Plexus
	30: domain.CenterSolarPlexus, 39: domain.CenterSolarPlexus,
	41: domain.CenterSolarPlexus, 55: domain.CenterSolarPlexus,
	// Spleen
	18: domain.CenterSpleen, 20: domain.CenterSpleen, 28: domain.CenterSpleen,
	32: domain.CenterSpleen, 34: domain.CenterSpleen, 44: domain.CenterSpleen,
	48: domain.CenterSpleen, 50: domain.CenterSpleen, 57: domain.CenterSpleen,
	// Root
	38: domain.CenterRoot, 54: domain.CenterRoot, 58: domain.CenterRoot,
}
