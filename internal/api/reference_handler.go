package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// ReferenceType — элемент справочника (тип услуги, тип оплаты).
type ReferenceType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ReferenceStore interface {
	List(ctx context.Context) ([]ReferenceType, error)
	Create(ctx context.Context, name string) (*ReferenceType, error)
	UpdateName(ctx context.Context, id int64, name string) (*ReferenceType, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ReferenceHandler — общий CRUD для обоих справочников; kind попадает
// в ключ ответа и в логи ("serviceTypes" / "paymentTypes").
type ReferenceHandler struct {
	store ReferenceStore
	kind  string
	log   *slog.Logger
}

func NewReferenceHandler(store ReferenceStore, kind string, log *slog.Logger) *ReferenceHandler {
	return &ReferenceHandler{store: store, kind: kind, log: log}
}

type referenceRequest struct {
	Name string `json:"name"`
}

func (h *ReferenceHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.log.Error("reference list failed", "kind", h.kind, "err", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if items == nil {
		items = []ReferenceType{}
	}
	writeJSON(w, http.StatusOK, map[string]any{h.kind: items})
}

func (h *ReferenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req referenceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}
	item, err := h.store.Create(r.Context(), name)
	if err != nil {
		h.log.Error("reference create failed", "kind", h.kind, "err", err)
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ReferenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var req referenceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}
	item, err := h.store.UpdateName(r.Context(), id, name)
	if err != nil {
		h.log.Error("reference update failed", "kind", h.kind, "err", err, "id", id)
		writeError(w, http.StatusInternalServerError, "update_failed")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ReferenceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	deleted, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.log.Error("reference delete failed", "kind", h.kind, "err", err, "id", id)
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
