package gamedomain

// ResolveTier returns the rank with the highest threshold strictly below points, or nil.
func ResolveTier(points int, ranks []Rank) *Rank {
	var best *Rank
	for i := range ranks {
		if ranks[i].Threshold >= points {
			continue
		}
		if best == nil || ranks[i].Threshold > best.Threshold {
			best = &ranks[i]
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}
