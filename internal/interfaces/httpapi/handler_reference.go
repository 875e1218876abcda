package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/college-baseball-live/internal/domain/schedule"
	"github.com/riskibarqy/college-baseball-live/internal/domain/stats"
	"github.com/riskibarqy/college-baseball-live/internal/usecase"
)

func (h *Handler) ListConferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListConferences")
	defer span.End()

	if err := h.engine.Conferences.Poller().WaitLoaded(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, conferencesToDTO(h.engine.Conferences.Conferences()))
}

func (h *Handler) ListRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRankings")
	defer span.End()

	snap, err := h.engine.Rankings.Snapshot(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !snap.HasData && snap.Err != nil {
		h.logger.WarnContext(ctx, "rankings unavailable", "error", snap.Err)
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, snap.Err))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, rankingsToDTO(snap.Data))
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	view, err := h.engine.Standings.View(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if len(view.Conferences) == 0 && view.Err != nil {
		h.logger.WarnContext(ctx, "standings unavailable", "error", view.Err)
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, view.Err))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(view))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.engine.TeamDirectory.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err))
		return
	}

	favorites := h.engine.Preferences.Favorites()
	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t, favorites))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamSchedule")
	defer span.End()

	teamID := r.PathValue("teamID")
	filter, err := schedule.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	view, err := h.engine.TeamSchedules.Get(ctx, teamID, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "get team schedule failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamScheduleToDTO(view))
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStats")
	defer span.End()

	q, err := parseStatsQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	normalized, snap, err := h.engine.Stats.Leaderboard(ctx, q)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !snap.HasData && snap.Err != nil {
		h.logger.WarnContext(ctx, "stats unavailable", "error", snap.Err)
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, snap.Err))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsDTO{
		Tab:          normalized.Tab,
		SortStat:     normalized.SortStat,
		SortDir:      string(normalized.SortDir),
		Page:         normalized.Page,
		PageSize:     snap.Data.PageSize,
		TotalCount:   snap.Data.TotalCount,
		Season:       normalized.Season,
		ConferenceID: normalized.ConferenceID,
		TeamID:       normalized.TeamID,
		Rows:         snap.Data.Rows,
		IsLoading:    snap.IsLoading,
		Error:        errorText(snap.Err),
	})
}

func parseStatsQuery(values url.Values) (stats.Query, error) {
	q := stats.Query{
		Tab:          stats.Tab(strings.ToLower(strings.TrimSpace(values.Get("tab")))),
		SortStat:     strings.TrimSpace(values.Get("sort")),
		SortDir:      stats.SortDir(strings.ToLower(strings.TrimSpace(values.Get("dir")))),
		ConferenceID: strings.TrimSpace(values.Get("conference")),
	}

	if raw := strings.TrimSpace(values.Get("qual")); raw != "" {
		qualified, err := strconv.ParseBool(raw)
		if err != nil {
			return stats.Query{}, fmt.Errorf("%w: parse qual: %v", usecase.ErrInvalidInput, err)
		}
		q.Qualified = qualified
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{name: "page", dst: &q.Page},
		{name: "team", dst: &q.TeamID},
		{name: "season", dst: &q.Season},
	}
	for _, item := range ints {
		raw := strings.TrimSpace(values.Get(item.name))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return stats.Query{}, fmt.Errorf("%w: parse %s: %v", usecase.ErrInvalidInput, item.name, err)
		}
		*item.dst = v
	}
	return q, nil
}
