package gamedomain

import (
	"errors"
	"testing"
)

func TestTransitionChecks(t *testing.T) {
	states := []GameState{StateUndecided, StatePicking, StateDecided, StateDraw, StateCanceled}

	tests := []struct {
		name  string
		check func(Game) *RejectionError
		allow map[GameState]bool
	}{
		{name: "decide", check: func(g Game) *RejectionError { return CheckDecide(g, Team1) }, allow: map[GameState]bool{StateUndecided: true}},
		{name: "draw", check: CheckDraw, allow: map[GameState]bool{StateUndecided: true}},
		{name: "cancel", check: CheckCancel, allow: map[GameState]bool{StateUndecided: true, StatePicking: true}},
		{name: "undo", check: CheckUndo, allow: map[GameState]bool{StateDecided: true}},
		{name: "finish picking", check: CheckFinishPicking, allow: map[GameState]bool{StatePicking: true}},
	}

	for _, tt := range tests {
		for _, st := range states {
			t.Run(tt.name+"/"+string(st), func(t *testing.T) {
				rej := tt.check(Game{State: st})
				if tt.allow[st] {
					if rej != nil {
						t.Fatalf("expected %s to be allowed from %s, got %v", tt.name, st, rej)
					}
					return
				}
				if rej == nil {
					t.Fatalf("expected %s to be rejected from %s", tt.name, st)
				}
				if !errors.Is(rej, ErrInvalidState) {
					t.Fatalf("expected invalid state rejection, got %v", rej)
				}
			})
		}
	}
}

func TestCheckDecideReasons(t *testing.T) {
	if rej := CheckDecide(Game{State: StateDecided}, Team1); rej != ErrAlreadyResolved {
		t.Errorf("decided game: got %v, want %v", rej, ErrAlreadyResolved)
	}
	if rej := CheckDecide(Game{State: StateDraw}, Team2); rej != ErrAlreadyResolved {
		t.Errorf("drawn game: got %v, want %v", rej, ErrAlreadyResolved)
	}
	if rej := CheckDecide(Game{State: StateUndecided}, TeamSelector(3)); rej != ErrInvalidTeam {
		t.Errorf("bad team: got %v, want %v", rej, ErrInvalidTeam)
	}
}

func TestGameTransitions(t *testing.T) {
	g := Game{State: StateUndecided, VoteComplete: true}

	g.Decide(Team2, "gg", "mod")
	if g.State != StateDecided || g.WinningTeam == nil || *g.WinningTeam != Team2 || g.Submitter != "mod" {
		t.Fatalf("unexpected decided game %+v", g)
	}

	g.Reopen()
	if g.State != StateUndecided || g.WinningTeam != nil {
		t.Fatalf("unexpected reopened game %+v", g)
	}
	if !g.VoteComplete {
		t.Fatalf("reopen must keep the vote lock")
	}

	g.Draw("even", "mod")
	if g.State != StateDraw || g.Comment != "even" {
		t.Fatalf("unexpected drawn game %+v", g)
	}

	g2 := Game{State: StatePicking}
	g2.Cancel("", "mod")
	if g2.State != StateCanceled {
		t.Fatalf("unexpected canceled game %+v", g2)
	}
}

func TestRejectionErrorUnwrap(t *testing.T) {
	var err error = ErrAlreadyVoted
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized kind")
	}
	rej, ok := AsRejection(err)
	if !ok || rej.Reason == "" {
		t.Fatalf("expected a rejection with a reason")
	}
	if _, ok := AsRejection(errors.New("boom")); ok {
		t.Fatalf("plain errors are not rejections")
	}
}

func TestCheckRoster(t *testing.T) {
	tests := []struct {
		name   string
		roster Roster
		want   *RejectionError
	}{
		{name: "two vs two", roster: Roster{Team1: []string{"a", "b"}, Team2: []string{"c", "d"}}},
		{name: "uneven teams", roster: Roster{Team1: []string{"a"}, Team2: []string{"b", "c"}}},
		{name: "empty team", roster: Roster{Team1: []string{"a"}}, want: ErrEmptyTeam},
		{name: "same player on both teams", roster: Roster{Team1: []string{"a"}, Team2: []string{"a"}}, want: ErrDuplicateSlot},
		{name: "same player twice on one team", roster: Roster{Team1: []string{"a", "a"}, Team2: []string{"b"}}, want: ErrDuplicateSlot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckRoster(tt.roster); got != tt.want {
				t.Errorf("CheckRoster() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFinishPicking(t *testing.T) {
	g := Game{State: StatePicking}
	g.FinishPicking()
	if g.State != StateUndecided {
		t.Errorf("state = %s, want %s", g.State, StateUndecided)
	}
}
