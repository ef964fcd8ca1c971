package brackets

import (
	"sort"

	"github.com/tlemaire/savate-tournament/models"
)

// BracketRef is the minimal view of a persisted bracket match the linker
// needs: its database id and its place in the bracket.
type BracketRef struct {
	ID       int
	Round    models.BracketRound
	Position int
}

// LinkUpdate tells the caller which forward link to store on a match.
// NextMatchID stays nil when the downstream counterpart is missing; the
// hosting layer may be displaying a bracket that is still being filled in
// by hand, so a hole is not an error.
type LinkUpdate struct {
	ID          int
	NextMatchID *int
}

// LinkBrackets computes the winner-advancement links for a flat set of
// bracket matches. Matches are grouped by round, each round sorted by
// position, and rounds walked in canonical order (HUITIEME, QUART, DEMI,
// FINAL), skipping rounds with no matches so shorter brackets still link.
// A hand-built bracket missing a middle round therefore chains across the
// gap: QUART feeds FINAL directly when no DEMI exists.
// The match at position idx advances into position idx/2 of the next
// round, so siblings 2p and 2p+1 always converge into one downstream slot.
// Matches of the last present round get no update.
func LinkBrackets(matches []BracketRef) []LinkUpdate {
	byRound := make(map[models.BracketRound][]BracketRef)
	for _, m := range matches {
		byRound[m.Round] = append(byRound[m.Round], m)
	}

	present := make([]models.BracketRound, 0, len(models.RoundOrder))
	for _, r := range models.RoundOrder {
		if len(byRound[r]) > 0 {
			sort.Slice(byRound[r], func(i, j int) bool {
				return byRound[r][i].Position < byRound[r][j].Position
			})
			present = append(present, r)
		}
	}

	updates := make([]LinkUpdate, 0, len(matches))
	for i := 0; i+1 < len(present); i++ {
		current := byRound[present[i]]
		next := byRound[present[i+1]]

		for idx, m := range current {
			update := LinkUpdate{ID: m.ID}
			if target := idx / 2; target < len(next) {
				id := next[target].ID
				update.NextMatchID = &id
			}
			updates = append(updates, update)
		}
	}

	return updates
}
