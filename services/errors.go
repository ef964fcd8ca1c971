package services

import "errors"

// Shared sentinel errors, mapped to HTTP statuses by the handlers layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed            = errors.New("validation failed")
	ErrClubNameRequired            = errors.New("club name is required")
	ErrFighterNameRequired         = errors.New("fighter first and last name are required")
	ErrFighterInvalidSex           = errors.New("fighter sex must be M or F")
	ErrFighterInvalidWeight        = errors.New("fighter weight must be positive")
	ErrFighterInvalidCompetition   = errors.New("competition type must be TOURNOI or INTERCLUB")
	ErrTournamentNameRequired      = errors.New("tournament name is required")
	ErrMatchFightersRequired       = errors.New("both fighters are required for a manual match")
	ErrMatchSelfOpponent           = errors.New("a fighter cannot face themselves")
	ErrMatchAlreadyPaired          = errors.New("match already has a second fighter")
	ErrMatchWeightCategoryMismatch = errors.New("fighters must share the same weight category")
	ErrFighterNotEnrolled          = errors.New("fighter is not enrolled in this tournament")

	// Precondition conflicts
	ErrMatchesAlreadyExist    = errors.New("matches already exist for this tournament")
	ErrClubNameConflict       = errors.New("club name already exists")
	ErrClubHasFighters        = errors.New("club still has registered fighters")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrFighterAlreadyEnrolled = errors.New("fighter is already enrolled in this tournament")
	ErrFighterInMatches       = errors.New("fighter is referenced by existing matches")

	// Optional infrastructure
	ErrLogoStorageUnavailable = errors.New("logo storage is not configured")

	// Entity lookups
	ErrClubNotFound       = errors.New("club not found")
	ErrFighterNotFound    = errors.New("fighter not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
)
