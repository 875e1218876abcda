package httpapi

import (
	"net/http"

	"github.com/riskibarqy/college-baseball-live/internal/platform/logging"
)

const notificationStreamPath = "/v1/notifications/stream"

func NewRouter(handler *Handler, logger *logging.Logger, corsAllowedOrigins []string) http.Handler {
	logger = logging.OrDefault(logger).Named("http")

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerScoreRoutes(mux, handler)
	registerReferenceRoutes(mux, handler)
	registerFavoriteRoutes(mux, handler)
	registerPreferenceRoutes(mux, handler)
	registerClientRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/status", handler.Status)
}

func registerScoreRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/scoreboard", handler.GetScoreboard)
	mux.HandleFunc("POST /v1/scoreboard/refetch", handler.RefetchScoreboard)
	mux.HandleFunc("GET /v1/games/{eventID}", handler.GetGame)
}

func registerReferenceRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/conferences", handler.ListConferences)
	mux.HandleFunc("GET /v1/rankings", handler.ListRankings)
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}/schedule", handler.GetTeamSchedule)
	mux.HandleFunc("GET /v1/stats", handler.GetStats)
}

func registerFavoriteRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/favorites", handler.ListFavorites)
	mux.HandleFunc("GET /v1/favorites/schedule", handler.GetFavoriteSchedule)
	mux.HandleFunc("PUT /v1/favorites/{teamID}", handler.AddFavorite)
	mux.HandleFunc("DELETE /v1/favorites/{teamID}", handler.RemoveFavorite)
	mux.HandleFunc("POST /v1/favorites/{teamID}/toggle", handler.ToggleFavorite)
}

func registerPreferenceRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/preferences/notifications", handler.GetNotificationPrefs)
	mux.HandleFunc("PUT /v1/preferences/notifications", handler.PutNotificationPrefs)
	mux.HandleFunc("GET /v1/preferences/theme", handler.GetTheme)
	mux.HandleFunc("PUT /v1/preferences/theme", handler.PutTheme)
	mux.HandleFunc("PUT /v1/preferences/standings-conference", handler.PutStandingsConference)
}

func registerClientRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("PUT /v1/visibility", handler.PutVisibility)
	mux.HandleFunc("GET "+notificationStreamPath, handler.StreamNotifications)
}
