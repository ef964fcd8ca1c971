package brackets

import (
	"math/rand"

	"github.com/tlemaire/savate-tournament/models"
)

// SequenceItem is one line of the running order: either a match or the
// separator between confirmed bouts and provisional placeholders.
type SequenceItem struct {
	Match     *models.Match `json:"match,omitempty"`
	Separator bool          `json:"separator,omitempty"`
}

// SequenceForDisplay builds a human-consumable running order. Matches
// with at least one known fighter come first, placeholders awaiting
// earlier results follow after a separator. Within each part, matches are
// grouped by (sex, age, weight, gloves) in encounter order and phased so
// pools run before semifinals before finals, then a randomized greedy
// pass spreads each fighter's bouts at least minSpacing matches apart.
//
// The spacing pass is best effort, not a hard constraint: the list is
// shuffled with rng, then the first match whose fighters are absent from
// the last minSpacing placed matches is picked; when no candidate
// qualifies the head of the remaining queue is placed unconditionally, so
// the pass always terminates even when the category structure makes full
// separation infeasible. Callers seed rng to get a reproducible order.
func SequenceForDisplay(matches []*models.Match, minSpacing int, rng *rand.Rand) []SequenceItem {
	resolved := make([]*models.Match, 0, len(matches))
	provisional := make([]*models.Match, 0)
	for _, m := range matches {
		if m.SlotsState() == models.SlotsUnresolved {
			provisional = append(provisional, m)
		} else {
			resolved = append(resolved, m)
		}
	}

	items := make([]SequenceItem, 0, len(matches)+1)
	for _, m := range spaceOut(phaseOrder(resolved), minSpacing, rng) {
		items = append(items, SequenceItem{Match: m})
	}
	if len(resolved) > 0 && len(provisional) > 0 {
		items = append(items, SequenceItem{Separator: true})
	}
	for _, m := range spaceOut(phaseOrder(provisional), minSpacing, rng) {
		items = append(items, SequenceItem{Match: m})
	}
	return items
}

// phaseOrder groups matches by full category and orders each group
// others, pools, semifinals, finals. Groups keep their first-encounter
// order.
func phaseOrder(matches []*models.Match) []*models.Match {
	type key struct {
		sex                 models.Sex
		age, weight, gloves string
	}

	index := make(map[key]int)
	groups := make([][]*models.Match, 0)
	for _, m := range matches {
		k := key{sex: m.Sex, age: m.AgeCategory, weight: m.WeightCategory, gloves: m.Gloves}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], m)
	}

	ordered := make([]*models.Match, 0, len(matches))
	for _, group := range groups {
		var autres, poules, demis, finales []*models.Match
		for _, m := range group {
			switch {
			case m.IsDemi():
				demis = append(demis, m)
			case m.IsFinale():
				finales = append(finales, m)
			case m.IsPoule():
				poules = append(poules, m)
			default:
				autres = append(autres, m)
			}
		}
		ordered = append(ordered, autres...)
		ordered = append(ordered, poules...)
		ordered = append(ordered, demis...)
		ordered = append(ordered, finales...)
	}
	return ordered
}

// spaceOut shuffles then greedily places matches so that no fighter
// reappears within the last minSpacing placed matches, falling back to the
// queue head when nothing qualifies.
func spaceOut(matches []*models.Match, minSpacing int, rng *rand.Rand) []*models.Match {
	if len(matches) == 0 {
		return nil
	}

	remaining := make([]*models.Match, len(matches))
	copy(remaining, matches)
	rng.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})

	result := make([]*models.Match, 0, len(remaining))
	for len(remaining) > 0 {
		placed := false
		for i, m := range remaining {
			if len(result) == 0 || canPlace(m, result, minSpacing) {
				result = append(result, m)
				remaining = append(remaining[:i], remaining[i+1:]...)
				placed = true
				break
			}
		}
		if !placed {
			result = append(result, remaining[0])
			remaining = remaining[1:]
		}
	}
	return result
}

func canPlace(m *models.Match, placed []*models.Match, minSpacing int) bool {
	window := placed
	if len(window) > minSpacing {
		window = window[len(window)-minSpacing:]
	}
	for _, id := range []*int{m.Fighter1ID, m.Fighter2ID} {
		if id == nil {
			continue
		}
		for _, prev := range window {
			if prev.HasParticipant(*id) {
				return false
			}
		}
	}
	return true
}
