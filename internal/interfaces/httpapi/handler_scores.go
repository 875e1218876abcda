package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
	"github.com/riskibarqy/college-baseball-live/internal/platform/dates"
	"github.com/riskibarqy/college-baseball-live/internal/usecase"
)

func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreboard")
	defer span.End()

	query := r.URL.Query()
	date := dates.Today(h.now(), h.location)
	if raw := strings.TrimSpace(query.Get("date")); raw != "" {
		parsed, err := dates.ParseUpstream(raw, h.location)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
			return
		}
		date = parsed
	}

	status, err := game.ParseStatusFilter(query.Get("status"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	filter := usecase.ScoreboardFilter{
		Status:        status,
		ConferenceID:  strings.TrimSpace(query.Get("conference")),
		FavoritesOnly: strings.EqualFold(query.Get("favorites"), "true"),
	}
	snap, err := h.engine.Scoreboard.Load(ctx, date, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "load scoreboard failed", "date", dates.ToUpstream(date), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreboardToDTO(snap, h.engine.Preferences.Favorites()))
}

func (h *Handler) RefetchScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefetchScoreboard")
	defer span.End()

	if err := h.engine.Scoreboard.Refetch(ctx); err != nil {
		h.logger.WarnContext(ctx, "refetch scoreboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	snap := h.engine.Scoreboard.Snapshot()
	snap.Games = h.engine.Scoreboard.Filter(usecase.ScoreboardFilter{Status: game.FilterAll})
	writeSuccess(ctx, w, http.StatusOK, scoreboardToDTO(snap, h.engine.Preferences.Favorites()))
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	eventID := r.PathValue("eventID")
	snap, err := h.engine.GameDetail.Summary(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "load game summary failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !snap.HasData && snap.Err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, snap.Err))
		return
	}

	out := summaryToDTO(snap.Data, h.engine.Preferences.Favorites())
	out.IsLoading = snap.IsLoading
	out.Error = errorText(snap.Err)
	out.UpdatedAt = snap.UpdatedAt
	writeSuccess(ctx, w, http.StatusOK, out)
}
