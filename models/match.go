package models

import "time"

type MatchKind string

const (
	MatchKindBracket MatchKind = "BRACKET"
	MatchKindPool    MatchKind = "POOL"
)

// BracketRound values in advancement order. The linker walks them from
// HUITIEME toward FINAL.
type BracketRound string

const (
	RoundHuitieme BracketRound = "HUITIEME"
	RoundQuart    BracketRound = "QUART"
	RoundDemi     BracketRound = "DEMI"
	RoundFinal    BracketRound = "FINAL"
)

// RoundOrder is the canonical advancement order of bracket rounds.
var RoundOrder = []BracketRound{RoundHuitieme, RoundQuart, RoundDemi, RoundFinal}

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "PENDING"
	MatchStatusCompleted MatchStatus = "COMPLETED"
	MatchStatusForfeit   MatchStatus = "FORFEIT"
)

// Reserved pool names for matches created outside the regular pool
// generation: hybrid placeholders and ad-hoc operator matches.
const (
	PoolDemi1     = "DEMI 1"
	PoolDemi2     = "DEMI 2"
	PoolFinale    = "FINALE"
	PoolManuel    = "MANUEL"
	PoolInterclub = "INTERCLUB"
	PoolMixte     = "MIXTE"
)

// SlotState is the tagged pairing state of a match, derived from its two
// fighter slots. It replaces repeated nil-checks in propagation and
// display code.
type SlotState int

const (
	// SlotsUnresolved: both slots empty, placeholder awaiting earlier results.
	SlotsUnresolved SlotState = iota
	// SlotsSinglePending: exactly one slot filled, opponent not yet known.
	SlotsSinglePending
	// SlotsResolved: both fighters known.
	SlotsResolved
)

// Match is the schedulable unit. Kind-specific fields: bracket matches
// carry a round, a position within the round and a forward link to the
// match that receives their winner; pool matches carry a pool name.
type Match struct {
	ID           int  `json:"id" db:"id"`
	TournamentID int  `json:"tournament_id" db:"tournament_id"`
	Fighter1ID   *int `json:"fighter1_id" db:"fighter1_id"`
	Fighter2ID   *int `json:"fighter2_id" db:"fighter2_id"`

	Kind            MatchKind `json:"kind" db:"kind"`
	Sex             Sex       `json:"sex" db:"sex"`
	AgeCategory     string    `json:"age_category" db:"age_category"`
	WeightCategory  string    `json:"weight_category" db:"weight_category"`
	Gloves          string    `json:"gloves" db:"gloves"`
	CategoryDisplay string    `json:"category_display" db:"category_display"`

	BracketRound    *BracketRound `json:"bracket_round,omitempty" db:"bracket_round"`
	BracketPosition *int          `json:"bracket_position,omitempty" db:"bracket_position"`
	NextMatchID     *int          `json:"next_match_id,omitempty" db:"next_match_id"`

	PoolName *string `json:"pool_name,omitempty" db:"pool_name"`

	Status         MatchStatus `json:"status" db:"status"`
	WinnerID       *int        `json:"winner_id,omitempty" db:"winner_id"`
	Fighter2Manual bool        `json:"fighter2_manual" db:"fighter2_manual"`
	DisplayOrder   int         `json:"display_order" db:"display_order"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`

	Fighter1 *Fighter `json:"fighter1,omitempty" db:"-"`
	Fighter2 *Fighter `json:"fighter2,omitempty" db:"-"`
	Winner   *Fighter `json:"winner,omitempty" db:"-"`
}

// SlotsState reports the pairing state of the two fighter slots.
func (m *Match) SlotsState() SlotState {
	switch {
	case m.Fighter1ID != nil && m.Fighter2ID != nil:
		return SlotsResolved
	case m.Fighter1ID != nil || m.Fighter2ID != nil:
		return SlotsSinglePending
	default:
		return SlotsUnresolved
	}
}

// HasParticipant reports whether fighterID occupies one of the filled slots.
func (m *Match) HasParticipant(fighterID int) bool {
	if m.Fighter1ID != nil && *m.Fighter1ID == fighterID {
		return true
	}
	return m.Fighter2ID != nil && *m.Fighter2ID == fighterID
}

// IsDemi covers both bracket semifinals and the reserved "DEMI n" pool
// placeholders used by hybrid structures.
func (m *Match) IsDemi() bool {
	if m.BracketRound != nil && *m.BracketRound == RoundDemi {
		return true
	}
	return m.PoolName != nil && len(*m.PoolName) >= 4 && (*m.PoolName)[:4] == "DEMI"
}

// IsFinale covers bracket finals and the reserved "FINALE" pool placeholder.
func (m *Match) IsFinale() bool {
	if m.BracketRound != nil && *m.BracketRound == RoundFinal {
		return true
	}
	return m.PoolName != nil && *m.PoolName == PoolFinale
}

// IsPoule is a regular round-robin pool match, excluding the reserved
// hybrid and manual pool names.
func (m *Match) IsPoule() bool {
	if m.Kind != MatchKindPool || m.IsDemi() || m.IsFinale() {
		return false
	}
	return m.PoolName == nil || *m.PoolName != PoolManuel
}

// IsInterclub reports whether the bout involves an interclub-only fighter
// or was filed under the reserved INTERCLUB pool.
func (m *Match) IsInterclub() bool {
	if m.PoolName != nil && *m.PoolName == PoolInterclub {
		return true
	}
	if m.Fighter1 != nil && m.Fighter1.CompetitionType == CompetitionInterclub {
		return true
	}
	return m.Fighter2 != nil && m.Fighter2.CompetitionType == CompetitionInterclub
}

// IsManuel reports whether the match was created or completed by hand.
func (m *Match) IsManuel() bool {
	if m.Fighter2Manual {
		return true
	}
	return m.PoolName != nil && *m.PoolName == PoolManuel
}

func (m *Match) IsMixte() bool {
	return m.PoolName != nil && *m.PoolName == PoolMixte
}
