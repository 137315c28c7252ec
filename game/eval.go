package game

// EvaluateNetWorth scores the current player's net worth against the richest
// opponent to produce a relative score between -1 and 1. Used as the rollout
// cutoff evaluation in search.
func EvaluateNetWorth(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}

	current := float64(gs.NetWorth(gs.Current))
	best := 0.0
	for i := range gs.Players {
		if i == gs.Current {
			continue
		}
		if worth := float64(gs.NetWorth(i)); worth > best {
			best = worth
		}
	}

	return normalize(current, best)
}

// normalize converts two values into a single score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
