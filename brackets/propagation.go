package brackets

import (
	"errors"

	"github.com/tlemaire/savate-tournament/models"
)

var (
	// ErrWinnerNotParticipant rejects a declared winner that does not
	// occupy one of the match's filled slots.
	ErrWinnerNotParticipant = errors.New("winner must be one of the match participants")
	// ErrMatchAlreadyDecided rejects a second result on a decided match.
	ErrMatchAlreadyDecided = errors.New("match result has already been recorded")
	// ErrInvalidResultStatus rejects statuses other than COMPLETED or FORFEIT.
	ErrInvalidResultStatus = errors.New("result status must be COMPLETED or FORFEIT")
)

// DownstreamFill is the single slot write a completed bracket match
// pushes into its linked downstream match.
type DownstreamFill struct {
	MatchID   int
	Slot      int // 1 or 2
	FighterID int
}

// ApplyResult runs the result-entry state machine on one match. All
// validation happens before any mutation: on error the match is returned
// untouched. On success the match's status and winner are set, and if the
// match is a bracket bout with a forward link the returned fill says which
// slot of the downstream match receives the winner. Slot choice follows
// bracket-position parity (even position feeds slot 1, odd feeds slot 2),
// matching the pairing convention of LinkBrackets so sibling winners land
// in distinct corners. Pool results never propagate.
func ApplyResult(m *models.Match, winnerID *int, status models.MatchStatus) (*DownstreamFill, error) {
	if status != models.MatchStatusCompleted && status != models.MatchStatusForfeit {
		return nil, ErrInvalidResultStatus
	}
	if m.Status != models.MatchStatusPending {
		return nil, ErrMatchAlreadyDecided
	}
	if winnerID != nil && !m.HasParticipant(*winnerID) {
		return nil, ErrWinnerNotParticipant
	}

	m.Status = status
	m.WinnerID = winnerID

	if m.Kind != models.MatchKindBracket || m.NextMatchID == nil {
		return nil, nil
	}
	if status != models.MatchStatusCompleted || winnerID == nil {
		return nil, nil
	}

	slot := 1
	if m.BracketPosition != nil && *m.BracketPosition%2 == 1 {
		slot = 2
	}
	return &DownstreamFill{
		MatchID:   *m.NextMatchID,
		Slot:      slot,
		FighterID: *winnerID,
	}, nil
}
