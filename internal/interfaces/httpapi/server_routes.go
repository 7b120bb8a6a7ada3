package httpapi

import "net/http"

func registerHealthRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.GetLeagueStandings)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListTeamPlayers)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
}

func registerFavoriteRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/favorites", RequireAuth(verifier, http.HandlerFunc(handler.ListFavorites)))
	mux.Handle("POST /v1/favorites", RequireAuth(verifier, http.HandlerFunc(handler.AddFavorite)))
	mux.Handle("DELETE /v1/favorites/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveFavorite)))
}

func registerInternalSyncRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/sync/leagues", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SyncLeagues)))
	mux.Handle("POST /v1/internal/sync/teams", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SyncTeams)))
	mux.Handle("POST /v1/internal/sync/players", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SyncPlayers)))
	mux.Handle("POST /v1/internal/sync/matches", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SyncMatches)))
	mux.Handle("POST /v1/internal/sync/all", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SyncAll)))
	mux.Handle("GET /v1/internal/sync/runs/{runID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.GetSyncRun)))
}
