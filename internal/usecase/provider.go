package usecase

import (
	"context"
	"time"

	"github.com/pitchsidehq/pitchside/internal/domain/match"
	"github.com/pitchsidehq/pitchside/internal/domain/providerpayload"
)

// FootballDataProvider is the sports-data API boundary. Every fetch also
// returns the raw payload snapshots it decoded so the sync pipeline can
// archive them.
type FootballDataProvider interface {
	FetchLeagues(ctx context.Context) ([]ExternalLeague, []providerpayload.Payload, error)
	FetchTeams(ctx context.Context, leagueKey string) ([]ExternalTeam, []providerpayload.Payload, error)
	FetchPlayers(ctx context.Context, teamKey string) ([]ExternalPlayer, []providerpayload.Payload, error)
	FetchMatches(ctx context.Context, leagueKey string) ([]ExternalMatch, []providerpayload.Payload, error)
}

// MatchTextGenerator is the generative-text boundary for lazy match
// enrichment.
type MatchTextGenerator interface {
	GenerateMatchInsights(ctx context.Context, prompt MatchPrompt) (match.Insights, error)
}

// MatchPrompt carries the fields the text provider needs to write about
// a match.
type MatchPrompt struct {
	HomeTeam  string
	AwayTeam  string
	League    string
	KickoffAt time.Time
	Status    string
	HomeScore *int
	AwayScore *int
}

// External* records are provider payloads already decoded and mapped to
// neutral field names at the client boundary.

type ExternalLeague struct {
	Key     string
	Name    string
	Country string
	LogoURL string
}

type ExternalTeam struct {
	Key             string
	Name            string
	Country         string
	LogoURL         string
	FoundedYear     int
	StadiumName     string
	StadiumCity     string
	StadiumCapacity int
	VenueAddress    string
	Coach           string
	Description     string
}

type ExternalPlayer struct {
	Key         string
	FullName    string
	Position    string
	ThumbURL    string
	Age         int
	ShirtNumber int
}

type ExternalMatch struct {
	Key          string
	HomeTeamKey  string
	AwayTeamKey  string
	HomeTeamName string
	AwayTeamName string
	KickoffAt    time.Time
	Venue        string
	Status       string
	HomeScore    *int
	AwayScore    *int
	Statistics   map[string]any
}
