package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitchsidehq/pitchside/internal/domain/favorite"
	"github.com/pitchsidehq/pitchside/internal/domain/league"
	"github.com/pitchsidehq/pitchside/internal/domain/match"
	"github.com/pitchsidehq/pitchside/internal/domain/player"
	"github.com/pitchsidehq/pitchside/internal/domain/providerpayload"
	"github.com/pitchsidehq/pitchside/internal/domain/syncrun"
	"github.com/pitchsidehq/pitchside/internal/domain/team"
	"github.com/pitchsidehq/pitchside/internal/domain/user"
)

// Hand stubs shared by the service tests. Batch sync runs them from
// multiple workers, so every mutating stub takes its own lock.

type seqIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%03d", g.n)
}

type stubLeagueRepository struct {
	mu       sync.Mutex
	byID     map[string]league.League
	byRef    map[string]league.League
	upserts  int
	listErr  error
	upsertFn func(item league.League) error
}

func newStubLeagueRepository() *stubLeagueRepository {
	return &stubLeagueRepository{
		byID:  map[string]league.League{},
		byRef: map[string]league.League{},
	}
}

func (r *stubLeagueRepository) List(context.Context) ([]league.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]league.League, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}
	return out, nil
}

func (r *stubLeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[leagueID]
	return item, ok, nil
}

func (r *stubLeagueRepository) GetByExternalRef(_ context.Context, ref string) (league.League, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byRef[ref]
	return item, ok, nil
}

func (r *stubLeagueRepository) Upsert(_ context.Context, item league.League) (league.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertFn != nil {
		if err := r.upsertFn(item); err != nil {
			return league.League{}, err
		}
	}
	if existing, ok := r.byRef[item.ExternalRef]; ok {
		item.ID = existing.ID
	}
	r.byID[item.ID] = item
	r.byRef[item.ExternalRef] = item
	r.upserts++
	return item, nil
}

type stubTeamRepository struct {
	mu    sync.Mutex
	byID  map[string]team.Team
	byRef map[string]team.Team
	total int
	pages [][2]int
}

func newStubTeamRepository() *stubTeamRepository {
	return &stubTeamRepository{
		byID:  map[string]team.Team{},
		byRef: map[string]team.Team{},
	}
}

func (r *stubTeamRepository) add(item team.Team) {
	r.byID[item.ID] = item
	r.byRef[item.ExternalRef] = item
}

func (r *stubTeamRepository) ListPage(_ context.Context, _ team.Filter, limit, offset int) ([]team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = append(r.pages, [2]int{limit, offset})
	out := make([]team.Team, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}
	return out, nil
}

func (r *stubTeamRepository) Count(context.Context, team.Filter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.total > 0 {
		return r.total, nil
	}
	return len(r.byID), nil
}

func (r *stubTeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]team.Team, 0)
	for _, item := range r.byID {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubTeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[teamID]
	return item, ok, nil
}

func (r *stubTeamRepository) GetByExternalRef(_ context.Context, ref string) (team.Team, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byRef[ref]
	return item, ok, nil
}

func (r *stubTeamRepository) Upsert(_ context.Context, item team.Team) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byRef[item.ExternalRef]; ok {
		item.ID = existing.ID
	}
	r.add(item)
	return item, nil
}

type stubPlayerRepository struct {
	mu    sync.Mutex
	byID  map[string]player.Player
	byRef map[string]player.Player
}

func newStubPlayerRepository() *stubPlayerRepository {
	return &stubPlayerRepository{
		byID:  map[string]player.Player{},
		byRef: map[string]player.Player{},
	}
}

func (r *stubPlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]player.Player, 0)
	for _, item := range r.byID {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubPlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[playerID]
	return item, ok, nil
}

func (r *stubPlayerRepository) Upsert(_ context.Context, item player.Player) (player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byRef[item.ExternalRef]; ok {
		item.ID = existing.ID
	}
	r.byID[item.ID] = item
	r.byRef[item.ExternalRef] = item
	return item, nil
}

type stubMatchRepository struct {
	mu             sync.Mutex
	byID           map[string]match.Match
	byRef          map[string]match.Match
	pages          [][2]int
	insightUpdates int
	updateErr      error
	getCalls       int
}

func newStubMatchRepository() *stubMatchRepository {
	return &stubMatchRepository{
		byID:  map[string]match.Match{},
		byRef: map[string]match.Match{},
	}
}

func (r *stubMatchRepository) ListPage(_ context.Context, filter match.Filter, limit, offset int) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = append(r.pages, [2]int{limit, offset})
	out := make([]match.Match, 0)
	for _, item := range r.byID {
		if filter.LeagueID != "" && item.LeagueID != filter.LeagueID {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *stubMatchRepository) Count(context.Context, match.Filter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID), nil
}

func (r *stubMatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	item, ok := r.byID[matchID]
	return item, ok, nil
}

func (r *stubMatchRepository) Upsert(_ context.Context, item match.Match) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byRef[item.ExternalRef]; ok {
		item.ID = existing.ID
		item.Insights = existing.Insights
	}
	r.byID[item.ID] = item
	r.byRef[item.ExternalRef] = item
	return item, nil
}

func (r *stubMatchRepository) UpdateInsights(_ context.Context, matchID string, insights match.Insights) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	item, ok := r.byID[matchID]
	if !ok {
		return fmt.Errorf("match %s not found", matchID)
	}
	item.Insights = insights
	r.byID[matchID] = item
	r.insightUpdates++
	return nil
}

type stubFavoriteRepository struct {
	mu    sync.Mutex
	pairs map[string]favorite.Favorite
}

func newStubFavoriteRepository() *stubFavoriteRepository {
	return &stubFavoriteRepository{pairs: map[string]favorite.Favorite{}}
}

func favoritePairKey(userID, teamID string) string {
	return userID + "/" + teamID
}

func (r *stubFavoriteRepository) Add(_ context.Context, item favorite.Favorite) (favorite.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := favoritePairKey(item.UserID, item.TeamID)
	if _, ok := r.pairs[key]; ok {
		return favorite.Favorite{}, favorite.ErrDuplicate
	}
	r.pairs[key] = item
	return item, nil
}

func (r *stubFavoriteRepository) Remove(_ context.Context, userID, teamID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := favoritePairKey(userID, teamID)
	if _, ok := r.pairs[key]; !ok {
		return false, nil
	}
	delete(r.pairs, key)
	return true, nil
}

func (r *stubFavoriteRepository) ListByUser(_ context.Context, userID string) ([]favorite.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]favorite.Favorite, 0)
	for _, item := range r.pairs {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

type stubUserRepository struct {
	byToken map[string]user.User
}

func (r *stubUserRepository) GetByID(_ context.Context, id string) (user.User, bool, error) {
	for _, item := range r.byToken {
		if item.ID == id {
			return item, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *stubUserRepository) GetByAPIToken(_ context.Context, token string) (user.User, bool, error) {
	item, ok := r.byToken[token]
	return item, ok, nil
}

type stubRunRepository struct {
	mu   sync.Mutex
	runs map[string]syncrun.SyncRun
}

func newStubRunRepository() *stubRunRepository {
	return &stubRunRepository{runs: map[string]syncrun.SyncRun{}}
}

func (r *stubRunRepository) Save(_ context.Context, run syncrun.SyncRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = run
	return nil
}

func (r *stubRunRepository) GetByID(_ context.Context, id string) (syncrun.SyncRun, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	return run, ok, nil
}

type stubPayloadRepository struct {
	mu    sync.Mutex
	items []providerpayload.Payload
	err   error
}

func (r *stubPayloadRepository) UpsertMany(_ context.Context, items []providerpayload.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.items = append(r.items, items...)
	return nil
}

type stubProvider struct {
	leagues    []ExternalLeague
	teams      map[string][]ExternalTeam
	players    map[string][]ExternalPlayer
	matches    map[string][]ExternalMatch
	leaguesErr error
}

func (p *stubProvider) FetchLeagues(context.Context) ([]ExternalLeague, []providerpayload.Payload, error) {
	if p.leaguesErr != nil {
		return nil, nil, p.leaguesErr
	}
	return p.leagues, []providerpayload.Payload{{Source: "stub", EntityType: "league", EntityKey: "all"}}, nil
}

func (p *stubProvider) FetchTeams(_ context.Context, leagueKey string) ([]ExternalTeam, []providerpayload.Payload, error) {
	return p.teams[leagueKey], nil, nil
}

func (p *stubProvider) FetchPlayers(_ context.Context, teamKey string) ([]ExternalPlayer, []providerpayload.Payload, error) {
	return p.players[teamKey], nil, nil
}

func (p *stubProvider) FetchMatches(_ context.Context, leagueKey string) ([]ExternalMatch, []providerpayload.Payload, error) {
	return p.matches[leagueKey], nil, nil
}

type stubTextGenerator struct {
	mu       sync.Mutex
	calls    int
	last     MatchPrompt
	insights match.Insights
	err      error
	block    chan struct{}
}

func (g *stubTextGenerator) GenerateMatchInsights(_ context.Context, prompt MatchPrompt) (match.Insights, error) {
	g.mu.Lock()
	g.calls++
	g.last = prompt
	block := g.block
	g.mu.Unlock()
	if block != nil {
		<-block
	}
	if g.err != nil {
		return match.Insights{}, g.err
	}
	return g.insights, nil
}

func (g *stubTextGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *stubTextGenerator) lastPrompt() MatchPrompt {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}
