package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kangactor123/ssalon-de-api/internal/domain/settings"
)

type SaleTotals interface {
	TotalByPeriod(ctx context.Context, from, to time.Time) (int64, error)
}

type SettingReader interface {
	Get(ctx context.Context, name string) (*settings.Setting, error)
}

// DashboardHandler отдаёт виджету цель месяца и набранную выручку.
type DashboardHandler struct {
	totals   SaleTotals
	settings SettingReader
	log      *slog.Logger
}

func NewDashboardHandler(totals SaleTotals, settings SettingReader, log *slog.Logger) *DashboardHandler {
	return &DashboardHandler{totals: totals, settings: settings, log: log}
}

type targetTotalResponse struct {
	TargetSales int64 `json:"targetSales"`
	TotalSales  int64 `json:"totalSales"`
}

// TargetTotal обрабатывает GET /api/dashboard/target-total?month=YYYY-MM.
// Цель не задана — отдаём 0, виджет сам покажет «настройте цель».
func (h *DashboardHandler) TargetTotal(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseMonth(r.URL.Query().Get("month"))
	if !ok {
		writeError(w, http.StatusBadRequest, "month_required")
		return
	}

	var resp targetTotalResponse

	goal, err := h.settings.Get(r.Context(), settings.NameGoal)
	if err != nil {
		h.log.Error("goal setting load failed", "err", err)
		writeError(w, http.StatusInternalServerError, "target_failed")
		return
	}
	if goal != nil {
		if n, err := strconv.ParseInt(goal.Value, 10, 64); err == nil {
			resp.TargetSales = n
		}
	}

	total, err := h.totals.TotalByPeriod(r.Context(), from, to)
	if err != nil {
		h.log.Error("sales total failed", "err", err)
		writeError(w, http.StatusInternalServerError, "total_failed")
		return
	}
	resp.TotalSales = total

	writeJSON(w, http.StatusOK, resp)
}
