package gamedomain

// ComputeDelta returns the signed point change for player. Products truncate toward zero.
func ComputeDelta(won bool, player Player, tier *Rank, lobby Lobby, comp Competition) int {
	if won {
		modifier := comp.DefaultWinModifier
		if tier != nil && tier.WinModifier != nil {
			modifier = *tier.WinModifier
		}
		delta := int(float64(modifier) * lobby.Multiplier)
		if lobby.HighLimit != nil && player.Points > *lobby.HighLimit {
			delta = int(float64(delta) * lobby.ReductionPercent)
		}
		return delta
	}

	magnitude := comp.DefaultLossModifier
	if tier != nil && tier.LossModifier != nil {
		magnitude = *tier.LossModifier
	}
	if lobby.MultiplyLossValue {
		magnitude = int(float64(magnitude) * lobby.Multiplier)
	}
	if magnitude < 0 {
		magnitude = -magnitude
	}
	return -magnitude
}
