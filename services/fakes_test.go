package services

import (
	"context"

	"github.com/tlemaire/savate-tournament/models"
	"github.com/tlemaire/savate-tournament/repositories"
)

type fakeTournamentRepo struct {
	repositories.TournamentRepository
	tournaments map[int]*models.Tournament
}

func newFakeTournamentRepo(ids ...int) *fakeTournamentRepo {
	r := &fakeTournamentRepo{tournaments: make(map[int]*models.Tournament)}
	for _, id := range ids {
		r.tournaments[id] = &models.Tournament{ID: id, Name: "Open"}
	}
	return r
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return t, nil
}

type fakeClubRepo struct {
	repositories.ClubRepository
	clubs map[int]*models.Club
}

func newFakeClubRepo(clubs ...*models.Club) *fakeClubRepo {
	r := &fakeClubRepo{clubs: make(map[int]*models.Club)}
	for _, c := range clubs {
		r.clubs[c.ID] = c
	}
	return r
}

func (r *fakeClubRepo) GetByID(_ context.Context, id int) (*models.Club, error) {
	c, ok := r.clubs[id]
	if !ok {
		return nil, repositories.ErrClubNotFound
	}
	return c, nil
}

type fakeFighterRepo struct {
	repositories.FighterRepository
	byTournament map[int][]*models.Fighter
}

func newFakeFighterRepo() *fakeFighterRepo {
	return &fakeFighterRepo{byTournament: make(map[int][]*models.Fighter)}
}

func (r *fakeFighterRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.Fighter, error) {
	return r.byTournament[tournamentID], nil
}

func (r *fakeFighterRepo) Create(_ context.Context, fighter *models.Fighter) error {
	fighter.ID = 1
	return nil
}

type slotUpdate struct {
	matchID   int
	slot      int
	fighterID int
	manual    bool
}

type fakeMatchRepo struct {
	repositories.MatchRepository
	matches map[int]*models.Match
	nextID  int

	slotUpdates   []slotUpdate
	resultUpdates []int
	linkUpdates   int
	wipes         []int

	// failCreateAt makes the nth Create call return createErr.
	failCreateAt int
	createErr    error
	creates      int
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{matches: make(map[int]*models.Match), nextID: 1}
	for _, m := range matches {
		if m.ID >= r.nextID {
			r.nextID = m.ID + 1
		}
		r.matches[m.ID] = m
	}
	return r
}

func (r *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	r.creates++
	if r.createErr != nil && r.creates >= r.failCreateAt {
		return r.createErr
	}
	match.ID = r.nextID
	r.nextID++
	r.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) UpdateNextMatchID(_ context.Context, _ repositories.SQLExecutor, matchID int, nextMatchID *int) error {
	m, ok := r.matches[matchID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.NextMatchID = nextMatchID
	r.linkUpdates++
	return nil
}

func (r *fakeMatchRepo) DeleteByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID int) error {
	for id, m := range r.matches {
		if m.TournamentID == tournamentID {
			delete(r.matches, id)
		}
	}
	r.wipes = append(r.wipes, tournamentID)
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return m, nil
}

func (r *fakeMatchRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.Match, error) {
	out := make([]*models.Match, 0)
	for id := 1; id < r.nextID; id++ {
		if m, ok := r.matches[id]; ok && m.TournamentID == tournamentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) CountByTournament(_ context.Context, tournamentID int) (int, error) {
	n := 0
	for _, m := range r.matches {
		if m.TournamentID == tournamentID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMatchRepo) UpdateResult(_ context.Context, _ repositories.SQLExecutor, matchID int, winnerID *int, status models.MatchStatus) error {
	m, ok := r.matches[matchID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.WinnerID = winnerID
	m.Status = status
	r.resultUpdates = append(r.resultUpdates, matchID)
	return nil
}

func (r *fakeMatchRepo) UpdateFighterSlot(_ context.Context, _ repositories.SQLExecutor, matchID, slot, fighterID int, manual bool) error {
	m, ok := r.matches[matchID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	if slot == 1 {
		m.Fighter1ID = &fighterID
	} else {
		m.Fighter2ID = &fighterID
		m.Fighter2Manual = manual
	}
	r.slotUpdates = append(r.slotUpdates, slotUpdate{matchID, slot, fighterID, manual})
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}
