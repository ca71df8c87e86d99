package gamedomain

// CheckDecide validates the Undecided -> Decided transition.
func CheckDecide(g Game, winner TeamSelector) *RejectionError {
	switch g.State {
	case StateDecided, StateDraw:
		return ErrAlreadyResolved
	case StateUndecided:
	default:
		return ErrDecideState
	}
	if !winner.Valid() {
		return ErrInvalidTeam
	}
	return nil
}

// CheckDraw validates the Undecided -> Draw transition.
func CheckDraw(g Game) *RejectionError {
	switch g.State {
	case StateUndecided:
		return nil
	case StateDecided, StateDraw:
		return ErrAlreadyResolved
	default:
		return ErrDrawState
	}
}

// CheckCancel validates the Undecided/Picking -> Canceled transition.
func CheckCancel(g Game) *RejectionError {
	if g.State == StateUndecided || g.State == StatePicking {
		return nil
	}
	return ErrCancelState
}

// CheckUndo validates the Decided -> Undecided transition.
func CheckUndo(g Game) *RejectionError {
	if g.State != StateDecided {
		return ErrUndoState
	}
	return nil
}

// Decide moves g to Decided.
func (g *Game) Decide(winner TeamSelector, comment, submitter string) {
	w := winner
	g.State = StateDecided
	g.WinningTeam = &w
	g.Comment = comment
	g.Submitter = submitter
}

// Draw moves g to Draw.
func (g *Game) Draw(comment, submitter string) {
	g.State = StateDraw
	g.WinningTeam = nil
	g.Comment = comment
	g.Submitter = submitter
}

// Cancel moves g to Canceled.
func (g *Game) Cancel(comment, submitter string) {
	g.State = StateCanceled
	g.WinningTeam = nil
	g.Comment = comment
	g.Submitter = submitter
}

// Reopen moves a decided game back to Undecided. Votes and the vote lock are kept.
func (g *Game) Reopen() {
	g.State = StateUndecided
	g.WinningTeam = nil
}

// CheckFinishPicking validates the Picking -> Undecided transition.
func CheckFinishPicking(g Game) *RejectionError {
	if g.State != StatePicking {
		return ErrPickingState
	}
	return nil
}

// FinishPicking opens a picking game for results.
func (g *Game) FinishPicking() {
	g.State = StateUndecided
}

// CheckRoster validates team membership for a new or re-picked game.
func CheckRoster(r Roster) *RejectionError {
	if len(r.Team1) == 0 || len(r.Team2) == 0 {
		return ErrEmptyTeam
	}
	seen := make(map[string]struct{}, r.Size())
	for _, userID := range r.Members() {
		if _, dup := seen[userID]; dup {
			return ErrDuplicateSlot
		}
		seen[userID] = struct{}{}
	}
	return nil
}
