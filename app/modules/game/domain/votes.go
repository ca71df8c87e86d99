package gamedomain

import (
	"strconv"
	"strings"
)

// VoteValue is a vote relative to the voter's own team.
type VoteValue string

const (
	VoteWin    VoteValue = "win"
	VoteLose   VoteValue = "lose"
	VoteDraw   VoteValue = "draw"
	VoteCancel VoteValue = "cancel"
)

// VoteValues lists the accepted votes in display order.
func VoteValues() []VoteValue {
	return []VoteValue{VoteWin, VoteLose, VoteDraw, VoteCancel}
}

// ParseVoteValue parses a vote case-insensitively. Team numbers are refused.
func ParseVoteValue(s string) (VoteValue, *RejectionError) {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, err := strconv.Atoi(s); err == nil {
		return "", ErrNumericVote
	}
	for _, v := range VoteValues() {
		if s == string(v) {
			return v, nil
		}
	}
	return "", ErrUnknownVote
}

// CheckVote validates a new vote by voter before it is recorded.
func CheckVote(g Game, roster Roster, votes []Vote, voter string) *RejectionError {
	if g.State != StateUndecided {
		return ErrVoteState
	}
	if g.VoteComplete {
		return ErrVoteLocked
	}
	if _, ok := roster.TeamOf(voter); !ok {
		return ErrNotOnRoster
	}
	for _, v := range votes {
		if v.UserID == voter {
			return ErrAlreadyVoted
		}
	}
	return nil
}

// Tally counts the votes cast, with win/lose votes folded onto the team they favour.
type Tally struct {
	Team1Wins int `json:"team1_wins"`
	Team2Wins int `json:"team2_wins"`
	Draws     int `json:"draws"`
	Cancels   int `json:"cancels"`
	Total     int `json:"total"`
}

// TallyVotes counts votes against roster. Votes from non-members only add to Total.
func TallyVotes(votes []Vote, roster Roster) Tally {
	var t Tally
	for _, v := range votes {
		t.Total++
		switch v.Value {
		case VoteDraw:
			t.Draws++
			continue
		case VoteCancel:
			t.Cancels++
			continue
		}
		team, ok := roster.TeamOf(v.UserID)
		if !ok {
			continue
		}
		favoured := team
		if v.Value == VoteLose {
			favoured = team.Opponent()
		}
		if favoured == Team1 {
			t.Team1Wins++
		} else {
			t.Team2Wins++
		}
	}
	return t
}

// QuorumReached reports a strict majority of the combined roster.
func QuorumReached(votesCast, rosterSize int) bool {
	return votesCast*2 > rosterSize
}

// Consensus is the unanimous result of a vote.
type Consensus string

const (
	ConsensusNone   Consensus = ""
	ConsensusTeam1  Consensus = "team1"
	ConsensusTeam2  Consensus = "team2"
	ConsensusDraw   Consensus = "draw"
	ConsensusCancel Consensus = "cancel"
)

// Unanimous returns the category every cast vote agrees on, checked team1, team2, draw, cancel.
func (t Tally) Unanimous() Consensus {
	if t.Total == 0 {
		return ConsensusNone
	}
	switch t.Total {
	case t.Team1Wins:
		return ConsensusTeam1
	case t.Team2Wins:
		return ConsensusTeam2
	case t.Draws:
		return ConsensusDraw
	case t.Cancels:
		return ConsensusCancel
	}
	return ConsensusNone
}

// VoteOutcomeKind is the effect of a cast vote.
type VoteOutcomeKind string

const (
	VoteRecorded           VoteOutcomeKind = "recorded"
	VoteResolvedWin        VoteOutcomeKind = "resolved_win"
	VoteResolvedDraw       VoteOutcomeKind = "resolved_draw"
	VoteResolvedCancel     VoteOutcomeKind = "resolved_cancel"
	VoteLockedForModerator VoteOutcomeKind = "locked_for_moderator"
)

// VoteOutcome is returned by a successful vote.
type VoteOutcome struct {
	Kind        VoteOutcomeKind    `json:"kind"`
	WinningTeam *TeamSelector      `json:"winning_team,omitempty"`
	Tally       Tally              `json:"tally"`
	Settlements []PlayerSettlement `json:"settlements,omitempty"`
}

// Resolution decides what a vote set does to the game once recorded.
func Resolution(votes []Vote, roster Roster) (VoteOutcomeKind, *TeamSelector, Tally) {
	tally := TallyVotes(votes, roster)
	if !QuorumReached(tally.Total, roster.Size()) {
		return VoteRecorded, nil, tally
	}
	switch tally.Unanimous() {
	case ConsensusTeam1:
		t := Team1
		return VoteResolvedWin, &t, tally
	case ConsensusTeam2:
		t := Team2
		return VoteResolvedWin, &t, tally
	case ConsensusDraw:
		return VoteResolvedDraw, nil, tally
	case ConsensusCancel:
		return VoteResolvedCancel, nil, tally
	}
	return VoteLockedForModerator, nil, tally
}
