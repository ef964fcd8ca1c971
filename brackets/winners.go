package brackets

import "github.com/tlemaire/savate-tournament/models"

// DirectWinner is a fighter surfaced as "vainqueur direct": either alone
// in a single-slot match (no opponent existed in the category) or a
// TOURNOI-type fighter whose only bout is an interclub friendly that does
// not count toward the ranking.
type DirectWinner struct {
	Fighter  *models.Fighter `json:"fighter"`
	Category string          `json:"category"`
	Sex      models.Sex      `json:"sex"`
	Source   string          `json:"source"` // "solo" or "interclub"
}

// ExtractDirectWinners scans loaded matches (fighter relations populated)
// for direct winners.
func ExtractDirectWinners(matches []*models.Match) []DirectWinner {
	winners := make([]DirectWinner, 0)

	category := func(m *models.Match) string {
		if m.CategoryDisplay != "" {
			return m.CategoryDisplay
		}
		return m.WeightCategory
	}

	for _, m := range matches {
		if m.Fighter1 != nil && m.Fighter2 == nil {
			winners = append(winners, DirectWinner{Fighter: m.Fighter1, Category: category(m), Sex: m.Sex, Source: "solo"})
		} else if m.Fighter1 == nil && m.Fighter2 != nil {
			winners = append(winners, DirectWinner{Fighter: m.Fighter2, Category: category(m), Sex: m.Sex, Source: "solo"})
		}
	}

	for _, m := range matches {
		if !m.IsInterclub() && !m.IsMixte() && !m.IsManuel() {
			continue
		}
		if m.Fighter1 != nil && m.Fighter1.CompetitionType == models.CompetitionTournoi {
			winners = append(winners, DirectWinner{Fighter: m.Fighter1, Category: category(m), Sex: m.Sex, Source: "interclub"})
		}
		if m.Fighter2 != nil && m.Fighter2.CompetitionType == models.CompetitionTournoi {
			winners = append(winners, DirectWinner{Fighter: m.Fighter2, Category: category(m), Sex: m.Sex, Source: "interclub"})
		}
	}

	return winners
}
