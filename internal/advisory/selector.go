package advisory

// Signal priority, highest first. Exactly one signal is ever surfaced
// so the consumer never shows conflicting advisories at once.
var priority = map[Type]int{
	TypeFreeDay:     4,
	TypeEveningSoon: 3,
	TypeNightActive: 2,
	TypeEarlyBird:   1,
}

// Select reduces a signal set to the single highest-priority signal.
// Returns (nil, false) for an empty set. Pure and deterministic.
func Select(signals []Signal) (Signal, bool) {
	var best Signal
	bestRank := 0
	for _, s := range signals {
		if r := priority[s.SignalType()]; r > bestRank {
			best, bestRank = s, r
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}
