package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFavorites")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, favoritesDTO{TeamIDs: h.engine.Preferences.Favorites().IDs()})
}

func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddFavorite")
	defer span.End()

	favorites, err := h.engine.Preferences.AddFavorite(ctx, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, favoritesDTO{TeamIDs: favorites.IDs()})
}

func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveFavorite")
	defer span.End()

	favorites, err := h.engine.Preferences.RemoveFavorite(ctx, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, favoritesDTO{TeamIDs: favorites.IDs()})
}

func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleFavorite")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	isFavorite, err := h.engine.Preferences.ToggleFavorite(ctx, teamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toggleFavoriteDTO{
		TeamID:     teamID,
		IsFavorite: isFavorite,
		TeamIDs:    h.engine.Preferences.Favorites().IDs(),
	})
}

func (h *Handler) GetFavoriteSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFavoriteSchedule")
	defer span.End()

	ids := h.engine.Preferences.Favorites().IDs()
	result, err := h.engine.FavoriteSchedules.Load(ctx, ids, true)
	if err != nil {
		h.logger.WarnContext(ctx, "load favorite schedules failed", "favorites", len(ids), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, dateGroupsToDTO(result.Groups))
}
