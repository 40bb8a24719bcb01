package services

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/google/uuid"
)

// ------------------------
// In-memory store shared by the fake repositories
// ------------------------

type memStore struct {
	mu          sync.Mutex
	tournaments map[string]models.Tournament
	players     map[string]models.Player
	playerOrder []string
	rounds      map[string]models.Round // key: tournamentID/roundNumber
}

func newMemStore() *memStore {
	return &memStore{
		tournaments: make(map[string]models.Tournament),
		players:     make(map[string]models.Player),
		rounds:      make(map[string]models.Round),
	}
}

func roundKey(tournamentID string, number int) string {
	return tournamentID + "/" + strconv.Itoa(number)
}

func cloneRound(r models.Round) models.Round {
	out := r
	out.Pairings = make([]models.Pairing, len(r.Pairings))
	for i, p := range r.Pairings {
		out.Pairings[i] = p
		if p.BlackPlayerID != nil {
			black := *p.BlackPlayerID
			out.Pairings[i].BlackPlayerID = &black
		}
	}
	return out
}

func (s *memStore) snapshot() *memStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := newMemStore()
	for k, v := range s.tournaments {
		cp.tournaments[k] = v
	}
	for k, v := range s.players {
		cp.players[k] = v.Clone()
	}
	cp.playerOrder = append([]string(nil), s.playerOrder...)
	for k, v := range s.rounds {
		cp.rounds[k] = cloneRound(v)
	}
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments = from.tournaments
	s.players = from.players
	s.playerOrder = from.playerOrder
	s.rounds = from.rounds
}

// ------------------------
// Fake Transactor
// ------------------------

// FakeTx restores the store when fn fails, like a rolled back transaction.
type FakeTx struct {
	store   *memStore
	commits int
	aborts  int
}

func (f *FakeTx) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	snap := f.store.snapshot()
	if err := fn(nil); err != nil {
		f.store.restore(snap)
		f.aborts++
		return err
	}
	f.commits++
	return nil
}

var _ Transactor = (*FakeTx)(nil)

// ------------------------
// Fake Tournament Repo
// ------------------------

type FakeTournamentRepo struct {
	store *memStore
	mu    sync.Mutex
	trace []string

	UpdateFunc func(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament) error
}

func (f *FakeTournamentRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeTournamentRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeTournamentRepo) Create(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament) error {
	f.record("Create")
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Now()
	f.store.tournaments[t.ID] = *t
	return nil
}

func (f *FakeTournamentRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id string) (*models.Tournament, error) {
	f.record("GetByID")
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	t, ok := f.store.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &t, nil
}

func (f *FakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	f.record("List")
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	out := make([]models.Tournament, 0, len(f.store.tournaments))
	for _, t := range f.store.tournaments {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *FakeTournamentRepo) Update(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, exec, t)
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	stored, ok := f.store.tournaments[t.ID]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	stored.Name = t.Name
	stored.Date = t.Date
	stored.TimeControl = t.TimeControl
	stored.RoundsCompleted = t.RoundsCompleted
	stored.Status = t.Status
	f.store.tournaments[t.ID] = stored
	return nil
}

func (f *FakeTournamentRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id string) error {
	f.record("Delete")
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(f.store.tournaments, id)
	for pid, p := range f.store.players {
		if p.TournamentID == id {
			delete(f.store.players, pid)
		}
	}
	for k, r := range f.store.rounds {
		if r.TournamentID == id {
			delete(f.store.rounds, k)
		}
	}
	return nil
}

var _ repositories.TournamentRepository = (*FakeTournamentRepo)(nil)

// ------------------------
// Fake Player Repo
// ------------------------

type FakePlayerRepo struct {
	store *memStore
	mu    sync.Mutex
	trace []string

	ReplaceForTournamentFunc func(ctx context.Context, exec repositories.SQLExecutor, tournamentID string, players []models.Player) error
}

func (f *FakePlayerRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakePlayerRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakePlayerRepo) Create(ctx context.Context, exec repositories.SQLExecutor, p *models.Player) error {
	f.record("Create")
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.tournaments[p.TournamentID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	for _, existing := range f.store.players {
		if existing.TournamentID == p.TournamentID && existing.Name == p.Name {
			return repositories.ErrPlayerNameConflict
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	f.store.players[p.ID] = p.Clone()
	f.store.playerOrder = append(f.store.playerOrder, p.ID)
	return nil
}

func (f *FakePlayerRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID string) ([]models.Player, error) {
	f.record("ListByTournament")
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	out := make([]models.Player, 0)
	for _, id := range f.store.playerOrder {
		p, ok := f.store.players[id]
		if ok && p.TournamentID == tournamentID {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (f *FakePlayerRepo) ReplaceForTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID string, players []models.Player) error {
	f.record("ReplaceForTournament")
	if f.ReplaceForTournamentFunc != nil {
		return f.ReplaceForTournamentFunc(ctx, exec, tournamentID, players)
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, p := range players {
		stored, ok := f.store.players[p.ID]
		if !ok || stored.TournamentID != tournamentID {
			return repositories.ErrPlayerNotFound
		}
		updated := p.Clone()
		updated.Name = stored.Name
		updated.Rating = stored.Rating
		f.store.players[p.ID] = updated
	}
	return nil
}

func (f *FakePlayerRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, tournamentID, playerID string) error {
	f.record("Delete")
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	p, ok := f.store.players[playerID]
	if !ok || p.TournamentID != tournamentID {
		return repositories.ErrPlayerNotFound
	}
	delete(f.store.players, playerID)
	return nil
}

var _ repositories.PlayerRepository = (*FakePlayerRepo)(nil)

// ------------------------
// Fake Round Repo
// ------------------------

type FakeRoundRepo struct {
	store *memStore
	mu    sync.Mutex
	trace []string

	CreateFunc func(ctx context.Context, exec repositories.SQLExecutor, round *models.Round) error
}

func (f *FakeRoundRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeRoundRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRoundRepo) Create(ctx context.Context, exec repositories.SQLExecutor, round *models.Round) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, exec, round)
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	key := roundKey(round.TournamentID, round.RoundNumber)
	if _, exists := f.store.rounds[key]; exists {
		return repositories.ErrRoundAlreadyExists
	}
	if round.ID == "" {
		round.ID = uuid.NewString()
	}
	f.store.rounds[key] = cloneRound(*round)
	return nil
}

func (f *FakeRoundRepo) GetByNumber(ctx context.Context, exec repositories.SQLExecutor, tournamentID string, roundNumber int) (*models.Round, error) {
	f.record("GetByNumber")
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	r, ok := f.store.rounds[roundKey(tournamentID, roundNumber)]
	if !ok {
		return nil, repositories.ErrRoundNotFound
	}
	out := cloneRound(r)
	return &out, nil
}

func (f *FakeRoundRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID string) ([]models.Round, error) {
	f.record("ListByTournament")
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	out := make([]models.Round, 0)
	for _, r := range f.store.rounds {
		if r.TournamentID == tournamentID {
			out = append(out, cloneRound(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoundNumber < out[j].RoundNumber })
	return out, nil
}

func (f *FakeRoundRepo) Update(ctx context.Context, exec repositories.SQLExecutor, round *models.Round) error {
	f.record("Update")
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	key := roundKey(round.TournamentID, round.RoundNumber)
	if _, ok := f.store.rounds[key]; !ok {
		return repositories.ErrRoundNotFound
	}
	f.store.rounds[key] = cloneRound(*round)
	return nil
}

func (f *FakeRoundRepo) UpdatePairingResult(ctx context.Context, exec repositories.SQLExecutor, pairingID string, result models.Result) error {
	f.record("UpdatePairingResult")
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for key, r := range f.store.rounds {
		for i := range r.Pairings {
			if r.Pairings[i].ID == pairingID {
				r.Pairings[i].Result = result
				f.store.rounds[key] = r
				return nil
			}
		}
	}
	return repositories.ErrPairingNotFound
}

var _ repositories.RoundRepository = (*FakeRoundRepo)(nil)

// ------------------------
// Fake Notifier / Archiver
// ------------------------

type publishedEvent struct {
	TournamentID string
	Type         string
	Payload      interface{}
}

type FakeNotifier struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *FakeNotifier) PublishTournamentEvent(tournamentID, eventType string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{TournamentID: tournamentID, Type: eventType, Payload: payload})
}

func (f *FakeNotifier) Types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Type
	}
	return out
}

type FakeArchiver struct {
	ArchiveTournamentFunc func(ctx context.Context, t *models.Tournament) error
	archived              []*models.Tournament
}

func (f *FakeArchiver) ArchiveTournament(ctx context.Context, t *models.Tournament) error {
	f.archived = append(f.archived, t)
	if f.ArchiveTournamentFunc != nil {
		return f.ArchiveTournamentFunc(ctx, t)
	}
	return nil
}
