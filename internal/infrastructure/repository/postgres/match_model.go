package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/pitchsidehq/pitchside/internal/domain/match"
)

type matchTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	LeagueID     string         `db:"league_public_id"`
	HomeTeamID   string         `db:"home_team_public_id"`
	AwayTeamID   string         `db:"away_team_public_id"`
	HomeTeamName string         `db:"home_team_name"`
	AwayTeamName string         `db:"away_team_name"`
	KickoffAt    time.Time      `db:"kickoff_at"`
	Venue        sql.NullString `db:"venue"`
	Status       string         `db:"status"`
	HomeScore    sql.NullInt64  `db:"home_score"`
	AwayScore    sql.NullInt64  `db:"away_score"`
	ExternalRef  string         `db:"external_ref"`
	Insights     []byte         `db:"insights"`
	Statistics   []byte         `db:"statistics"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type matchInsertModel struct {
	PublicID     string         `db:"public_id"`
	LeagueID     string         `db:"league_public_id"`
	HomeTeamID   string         `db:"home_team_public_id"`
	AwayTeamID   string         `db:"away_team_public_id"`
	HomeTeamName string         `db:"home_team_name"`
	AwayTeamName string         `db:"away_team_name"`
	KickoffAt    time.Time      `db:"kickoff_at"`
	Venue        sql.NullString `db:"venue"`
	Status       string         `db:"status"`
	HomeScore    sql.NullInt64  `db:"home_score"`
	AwayScore    sql.NullInt64  `db:"away_score"`
	ExternalRef  string         `db:"external_ref"`
	Statistics   []byte         `db:"statistics"`
}

// matchInsightsDocument is the jsonb shape of the generated text block.
type matchInsightsDocument struct {
	Overview           string `json:"overview,omitempty"`
	TacticalAnalysis   string `json:"tactical_analysis,omitempty"`
	Preview            string `json:"preview,omitempty"`
	Prediction         string `json:"prediction,omitempty"`
	PredictedScoreHome *int   `json:"predicted_score_home,omitempty"`
	PredictedScoreAway *int   `json:"predicted_score_away,omitempty"`
}

func marshalInsights(insights match.Insights) ([]byte, error) {
	if insights.Empty() {
		return nil, nil
	}

	doc := matchInsightsDocument{
		Overview:           insights.Overview,
		TacticalAnalysis:   insights.TacticalAnalysis,
		Preview:            insights.Preview,
		Prediction:         insights.Prediction,
		PredictedScoreHome: insights.PredictedScoreHome,
		PredictedScoreAway: insights.PredictedScoreAway,
	}

	raw, err := sonic.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal match insights: %w", err)
	}

	return raw, nil
}

func unmarshalInsights(raw []byte) (match.Insights, error) {
	if len(raw) == 0 {
		return match.Insights{}, nil
	}

	var doc matchInsightsDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return match.Insights{}, fmt.Errorf("unmarshal match insights: %w", err)
	}

	return match.Insights{
		Overview:           doc.Overview,
		TacticalAnalysis:   doc.TacticalAnalysis,
		Preview:            doc.Preview,
		Prediction:         doc.Prediction,
		PredictedScoreHome: doc.PredictedScoreHome,
		PredictedScoreAway: doc.PredictedScoreAway,
	}, nil
}

func marshalStatistics(stats map[string]any) ([]byte, error) {
	if len(stats) == 0 {
		return nil, nil
	}

	raw, err := sonic.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("marshal match statistics: %w", err)
	}

	return raw, nil
}

func unmarshalStatistics(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var stats map[string]any
	if err := sonic.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("unmarshal match statistics: %w", err)
	}

	return stats, nil
}
