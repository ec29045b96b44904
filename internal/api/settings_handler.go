package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/kangactor123/ssalon-de-api/internal/domain/settings"
)

type SettingsStore interface {
	List(ctx context.Context) ([]settings.Setting, error)
	Upsert(ctx context.Context, items []settings.Setting) error
}

type SettingsHandler struct {
	store SettingsStore
	log   *slog.Logger
}

func NewSettingsHandler(store SettingsStore, log *slog.Logger) *SettingsHandler {
	return &SettingsHandler{store: store, log: log}
}

func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.log.Error("settings list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if items == nil {
		items = []settings.Setting{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": items})
}

// Put принимает пачку настроек. Значение цели — только цифры.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req []settings.Setting
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if len(req) == 0 {
		writeError(w, http.StatusBadRequest, "settings_required")
		return
	}
	for _, s := range req {
		if s.Name == "" {
			writeError(w, http.StatusBadRequest, "name_required")
			return
		}
		if s.Name == settings.NameGoal && !digitsOnly(s.Value) {
			writeError(w, http.StatusBadRequest, "value_must_be_numeric")
			return
		}
	}
	if err := h.store.Upsert(r.Context(), req); err != nil {
		h.log.Error("settings upsert failed", "err", err)
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
