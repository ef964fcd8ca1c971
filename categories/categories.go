// Package categories implements the FFSbf&DA 2025-2026 classification
// rules: season age, age categories and weight categories. The labels it
// produces are stored on the fighter record and consumed verbatim by match
// generation.
package categories

import (
	"fmt"
	"time"

	"github.com/tlemaire/savate-tournament/models"
)

// Unclassified is returned when the birth year is missing.
const Unclassified = "—"

// SeasonAge is the federation age: current year minus birth year.
func SeasonAge(birthYear int) int {
	return time.Now().Year() - birthYear
}

// AgeCategory maps a birth year to its federation age category label.
func AgeCategory(birthYear *int) string {
	if birthYear == nil || *birthYear == 0 {
		return Unclassified
	}
	age := SeasonAge(*birthYear)
	switch {
	case age <= 9:
		return "Pré-poussins"
	case age <= 11:
		return "Poussins"
	case age <= 13:
		return "Benjamins"
	case age <= 15:
		return "Minimes"
	case age <= 17:
		return "Cadets"
	case age <= 20:
		return "Juniors"
	case age <= 34:
		return "Seniors"
	case age <= 39:
		return "Vétérans Combat"
	default:
		return "Vétérans"
	}
}

type weightBand struct {
	max  float64
	name string
}

// Youth bands apply up to and including Cadets.
var youthBands = []weightBand{
	{24, "Moustique"},
	{27, "Pré-mini-mouche"},
	{30, "Pré-mini-coq"},
	{33, "Pré-mini-plume"},
	{36, "Pré-mini-léger"},
	{39, "Mini-mouche"},
	{42, "Mini-coq"},
	{45, "Mini-plume"},
	{48, "Mini-léger"},
	{51, "Mouche"},
	{54, "Coq"},
	{57, "Plume"},
	{60, "Super-plume"},
	{63, "Léger"},
	{66, "Super-léger"},
	{70, "Mi-moyen"},
	{74, "Super-mi-moyen"},
	{79, "Moyen"},
	{85, "Mi-lourd"},
	{0, "Lourd"}, // open-ended
}

var seniorMenBands = []weightBand{
	{48, "Mouche"},
	{52, "Coq"},
	{56, "Plume"},
	{60, "Léger"},
	{65, "Super-léger"},
	{70, "Mi-moyen"},
	{75, "Super-mi-moyen"},
	{80, "Moyen"},
	{85, "Mi-lourd"},
	{0, "Lourd"},
}

var seniorWomenBands = []weightBand{
	{48, "Mouche"},
	{52, "Coq"},
	{56, "Plume"},
	{60, "Léger"},
	{65, "Super-léger"},
	{70, "Mi-moyen"},
	{75, "Super-mi-moyen"},
	{0, "Moyen"},
}

// WeightCategory maps a weigh-in weight to its display label, e.g.
// "Plume (52-56kg)" or "Lourd (+85kg)". Youth fighters (Cadets and below)
// use the shared youth table regardless of sex.
func WeightCategory(weight float64, sex models.Sex, birthYear *int) string {
	if birthYear == nil || *birthYear == 0 {
		return Unclassified
	}

	bands := seniorMenBands
	if SeasonAge(*birthYear) <= 17 {
		bands = youthBands
	} else if sex == models.SexFemale {
		bands = seniorWomenBands
	}

	min := 0.0
	for _, b := range bands {
		if b.max == 0 {
			return fmt.Sprintf("%s (+%gkg)", b.name, min)
		}
		if weight <= b.max {
			return fmt.Sprintf("%s (%g-%gkg)", b.name, min, b.max)
		}
		min = b.max
	}
	return "Non classé"
}

// Glove is a technical or competition grade, used as a pairing tie-break
// signal, never as a category key.
type Glove struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Grade string `json:"grade"`
}

var Gloves = []Glove{
	{Value: "bleu", Label: "Gant Bleu", Grade: "1er degré"},
	{Value: "vert", Label: "Gant Vert", Grade: "2e degré"},
	{Value: "rouge", Label: "Gant Rouge", Grade: "3e degré"},
	{Value: "blanc", Label: "Gant Blanc", Grade: "4e degré"},
	{Value: "jaune", Label: "Gant Jaune", Grade: "5e degré"},
	{Value: "bronze", Label: "Gant de Bronze", Grade: "Compétition"},
	{Value: "argent", Label: "Gant d'Argent", Grade: "Compétition"},
	{Value: "or", Label: "Gant d'Or", Grade: "Compétition"},
}

// GloveLabel returns the display label for a glove value, or the raw value
// when unknown.
func GloveLabel(value string) string {
	for _, g := range Gloves {
		if g.Value == value {
			return g.Label
		}
	}
	return value
}

// Classify recomputes the derived labels on a fighter in place.
func Classify(f *models.Fighter) {
	f.AgeCategory = AgeCategory(f.BirthYear)
	f.WeightCategory = WeightCategory(f.Weight, f.Sex, f.BirthYear)
}
