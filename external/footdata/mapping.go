package footdata

import (
	"strconv"
	"strings"
	"time"

	"github.com/pitchsidehq/pitchside/internal/usecase"
)

// Provider records. The API returns nearly everything as strings, so
// each record parses into typed fields on the way out.

type leagueRecord struct {
	LeagueKey   string `json:"league_id"`
	LeagueName  string `json:"league_name"`
	CountryName string `json:"country_name"`
	LeagueLogo  string `json:"league_logo"`
}

func (r leagueRecord) toExternal() usecase.ExternalLeague {
	return usecase.ExternalLeague{
		Key:     strings.TrimSpace(r.LeagueKey),
		Name:    strings.TrimSpace(r.LeagueName),
		Country: strings.TrimSpace(r.CountryName),
		LogoURL: strings.TrimSpace(r.LeagueLogo),
	}
}

type teamRecord struct {
	TeamKey         string         `json:"team_key"`
	TeamName        string         `json:"team_name"`
	TeamCountry     string         `json:"team_country"`
	TeamBadge       string         `json:"team_badge"`
	TeamFounded     string         `json:"team_founded"`
	VenueName       string         `json:"venue_name"`
	VenueCity       string         `json:"venue_city"`
	VenueCapacity   string         `json:"venue_capacity"`
	VenueAddress    string         `json:"venue_address"`
	Coaches         []coachRecord  `json:"coaches"`
	TeamDescription string         `json:"team_description"`
	Players         []playerRecord `json:"players"`
}

type coachRecord struct {
	CoachName string `json:"coach_name"`
}

func (r teamRecord) toExternal() usecase.ExternalTeam {
	coach := ""
	if len(r.Coaches) > 0 {
		coach = strings.TrimSpace(r.Coaches[0].CoachName)
	}

	return usecase.ExternalTeam{
		Key:             strings.TrimSpace(r.TeamKey),
		Name:            strings.TrimSpace(r.TeamName),
		Country:         strings.TrimSpace(r.TeamCountry),
		LogoURL:         strings.TrimSpace(r.TeamBadge),
		FoundedYear:     parseInt(r.TeamFounded),
		StadiumName:     strings.TrimSpace(r.VenueName),
		StadiumCity:     strings.TrimSpace(r.VenueCity),
		StadiumCapacity: parseInt(r.VenueCapacity),
		VenueAddress:    strings.TrimSpace(r.VenueAddress),
		Coach:           coach,
		Description:     strings.TrimSpace(r.TeamDescription),
	}
}

type playerRecord struct {
	PlayerKey    string `json:"player_id"`
	PlayerName   string `json:"player_name"`
	PlayerType   string `json:"player_type"`
	PlayerImage  string `json:"player_image"`
	PlayerAge    string `json:"player_age"`
	PlayerNumber string `json:"player_number"`
}

func (r playerRecord) toExternal() usecase.ExternalPlayer {
	return usecase.ExternalPlayer{
		Key:         strings.TrimSpace(r.PlayerKey),
		FullName:    strings.TrimSpace(r.PlayerName),
		Position:    strings.TrimSpace(r.PlayerType),
		ThumbURL:    strings.TrimSpace(r.PlayerImage),
		Age:         parseInt(r.PlayerAge),
		ShirtNumber: parseInt(r.PlayerNumber),
	}
}

type matchRecord struct {
	MatchKey      string       `json:"match_id"`
	HomeTeamKey   string       `json:"match_hometeam_id"`
	AwayTeamKey   string       `json:"match_awayteam_id"`
	HomeTeamName  string       `json:"match_hometeam_name"`
	AwayTeamName  string       `json:"match_awayteam_name"`
	MatchDate     string       `json:"match_date"`
	MatchTime     string       `json:"match_time"`
	HomeTeamScore string       `json:"match_hometeam_score"`
	AwayTeamScore string       `json:"match_awayteam_score"`
	MatchStatus   string       `json:"match_status"`
	MatchStadium  string       `json:"match_stadium"`
	MatchLive     string       `json:"match_live"`
	Statistics    []statRecord `json:"statistics"`
}

type statRecord struct {
	Type string `json:"type"`
	Home string `json:"home"`
	Away string `json:"away"`
}

func (r matchRecord) toExternal() usecase.ExternalMatch {
	return usecase.ExternalMatch{
		Key:          strings.TrimSpace(r.MatchKey),
		HomeTeamKey:  strings.TrimSpace(r.HomeTeamKey),
		AwayTeamKey:  strings.TrimSpace(r.AwayTeamKey),
		HomeTeamName: strings.TrimSpace(r.HomeTeamName),
		AwayTeamName: strings.TrimSpace(r.AwayTeamName),
		KickoffAt:    parseKickoff(r.MatchDate, r.MatchTime),
		Venue:        strings.TrimSpace(r.MatchStadium),
		Status:       normalizeMatchStatus(r.MatchStatus, r.MatchLive),
		HomeScore:    parseScore(r.HomeTeamScore),
		AwayScore:    parseScore(r.AwayTeamScore),
		Statistics:   mapStatistics(r.Statistics),
	}
}

// parseKickoff combines the provider's separate date and time columns.
// A missing time defaults to midnight so the match still lands on the
// right calendar day.
func parseKickoff(date, clock string) time.Time {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return time.Time{}
	}
	if clock == "" {
		clock = "00:00"
	}

	at, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		at, err = time.Parse("2006-01-02", date)
		if err != nil {
			return time.Time{}
		}
	}

	return at.UTC()
}

// normalizeMatchStatus folds the provider's mixed status column
// (minute counts, "Finished", "FT", empty for scheduled) into the
// internal vocabulary.
func normalizeMatchStatus(status, live string) string {
	status = strings.TrimSpace(status)
	switch strings.ToLower(status) {
	case "", "scheduled", "not started", "postponed":
		return "upcoming"
	case "finished", "ft", "aet", "pen", "after pen.", "after ext":
		return "finished"
	case "half time", "ht":
		return "live"
	}
	if strings.TrimSpace(live) == "1" {
		return "live"
	}
	if _, err := strconv.Atoi(strings.TrimSuffix(status, "'")); err == nil {
		return "live"
	}

	return strings.ToLower(status)
}

// parseScore keeps an unplayed match's score null rather than zero.
func parseScore(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" || value == "?" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}

	return &parsed
}

func mapStatistics(items []statRecord) map[string]any {
	if len(items) == 0 {
		return nil
	}

	out := make(map[string]any, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Type)
		if name == "" {
			continue
		}
		out[name] = map[string]any{
			"home": strings.TrimSpace(item.Home),
			"away": strings.TrimSpace(item.Away),
		}
	}

	return out
}

func parseInt(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}

	return parsed
}
