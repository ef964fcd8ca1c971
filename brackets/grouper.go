package brackets

import "github.com/tlemaire/savate-tournament/models"

// CategoryGroup holds the fighters sharing one (sex, weight category) pair
// within a tournament. Age category and club deliberately stay out of the
// key: they only steer pairing heuristics, so a thin weight class with
// mixed ages still produces a schedule.
type CategoryGroup struct {
	Sex            models.Sex
	WeightCategory string
	Fighters       []*models.Fighter
}

// GroupByCategory partitions the roster into disjoint category groups.
// Groups appear in first-encounter order and fighters keep their input
// order, so the whole generation pass stays deterministic.
func GroupByCategory(fighters []*models.Fighter) []CategoryGroup {
	type key struct {
		sex    models.Sex
		weight string
	}

	index := make(map[key]int)
	groups := make([]CategoryGroup, 0)

	for _, f := range fighters {
		k := key{sex: f.Sex, weight: f.WeightCategory}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, CategoryGroup{Sex: f.Sex, WeightCategory: f.WeightCategory})
		}
		groups[i].Fighters = append(groups[i].Fighters, f)
	}

	return groups
}
