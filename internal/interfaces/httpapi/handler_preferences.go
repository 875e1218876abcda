package httpapi

import (
	"net/http"

	"github.com/riskibarqy/college-baseball-live/internal/domain/preference"
)

func (h *Handler) GetNotificationPrefs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNotificationPrefs")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, notificationPrefsToDTO(h.engine.Preferences.NotificationPrefs()))
}

func (h *Handler) PutNotificationPrefs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PutNotificationPrefs")
	defer span.End()

	var req notificationPrefsRequest
	if err := h.decodeBody(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved := h.engine.Preferences.SetNotificationPrefs(ctx, preference.NotificationPrefs{
		Enabled:     *req.Enabled,
		GameStart:   *req.GameStart,
		ScoreChange: *req.ScoreChange,
		GameEnd:     *req.GameEnd,
	})
	writeSuccess(ctx, w, http.StatusOK, notificationPrefsToDTO(saved))
}

func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTheme")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"theme": string(h.engine.Preferences.Theme())})
}

func (h *Handler) PutTheme(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PutTheme")
	defer span.End()

	var req themeRequest
	if err := h.decodeBody(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	theme, err := h.engine.Preferences.SetTheme(ctx, req.Theme)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"theme": string(theme)})
}

func (h *Handler) PutStandingsConference(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PutStandingsConference")
	defer span.End()

	var req standingsConferenceRequest
	if err := h.decodeBody(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	selected := h.engine.Standings.SelectConference(ctx, req.ConferenceID)
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"conferenceId": selected})
}
