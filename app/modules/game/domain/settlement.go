package gamedomain

// PlayerSettlement is the result of settling one player.
type PlayerSettlement struct {
	Player    Player     `json:"player"`
	Delta     int        `json:"delta"`
	PriorTier *Rank      `json:"prior_tier,omitempty"`
	Change    RankChange `json:"change"`
	NewTier   *Rank      `json:"new_tier,omitempty"`
}

// ScoreUpdate returns the audit row for this settlement.
func (s PlayerSettlement) ScoreUpdate(ref GameRef) ScoreUpdate {
	return ScoreUpdate{Ref: ref, UserID: s.Player.UserID, ModifyAmount: s.Delta}
}

// ScoringContext is the configuration a settlement reads.
type ScoringContext struct {
	Lobby       Lobby
	Competition Competition
	Ranks       []Rank
}

// SettlePlayer applies a win or loss to p.
func SettlePlayer(p Player, won bool, sc ScoringContext) PlayerSettlement {
	prior := ResolveTier(p.Points, sc.Ranks)
	delta := ComputeDelta(won, p, prior, sc.Lobby, sc.Competition)

	p.Points += delta
	if won {
		p.Wins++
	} else {
		p.Losses++
		p.Points = clampPoints(p.Points, sc.Competition.AllowNegativeScore)
	}

	next := ResolveTier(p.Points, sc.Ranks)

	change := RankChangeNone
	if won {
		if next != nil && (prior == nil || next.RoleID != prior.RoleID) {
			change = RankChangeUp
		}
	} else if prior != nil && next != nil && p.Points < prior.Threshold && next.Threshold < prior.Threshold {
		change = RankChangeDerank
	}

	return PlayerSettlement{
		Player:    p,
		Delta:     delta,
		PriorTier: prior,
		Change:    change,
		NewTier:   next,
	}
}

// SettleTeam settles every roster member found in players. Unknown members are skipped.
func SettleTeam(roster []string, players map[string]Player, won bool, sc ScoringContext) []PlayerSettlement {
	out := make([]PlayerSettlement, 0, len(roster))
	for _, userID := range roster {
		p, ok := players[userID]
		if !ok {
			continue
		}
		out = append(out, SettlePlayer(p, won, sc))
	}
	return out
}

// Unsettle reverses one score update on p.
func Unsettle(p Player, u ScoreUpdate, allowNegative bool) Player {
	if u.ModifyAmount < 0 {
		p.Losses--
	} else {
		p.Wins--
	}
	p.Points = clampPoints(p.Points-u.ModifyAmount, allowNegative)
	return p
}

// ApplyDraw records a draw for p without touching points.
func ApplyDraw(p Player) Player {
	p.Draws++
	return p
}

func clampPoints(points int, allowNegative bool) int {
	if !allowNegative && points < 0 {
		return 0
	}
	return points
}
