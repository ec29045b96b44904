package api

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kangactor123/ssalon-de-api/internal/domain/sales"
	"github.com/kangactor123/ssalon-de-api/internal/form"
	"github.com/kangactor123/ssalon-de-api/internal/infra/metrics"
)

type SaleStore interface {
	Create(ctx context.Context, s *sales.Sale) (*sales.Sale, error)
	Update(ctx context.Context, s *sales.Sale) (*sales.Sale, error)
	GetByID(ctx context.Context, id int64) (*sales.Sale, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*sales.Sale, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Notifier получает событие о новой продаже (телеграм-оповещение
// админа). Может быть nil.
type Notifier interface {
	SaleCreated(s *sales.Sale)
}

type SalesHandler struct {
	store    SaleStore
	services ReferenceStore
	notifier Notifier
	log      *slog.Logger
}

func NewSalesHandler(store SaleStore, services ReferenceStore, notifier Notifier, log *slog.Logger) *SalesHandler {
	return &SalesHandler{store: store, services: services, notifier: notifier, log: log}
}

type paymentDTO struct {
	TypeID int64  `json:"typeId"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

type saleDTO struct {
	ID          int64        `json:"id"`
	Date        string       `json:"date"` // RFC3339, "" — запись без даты
	Amount      int64        `json:"amount"`
	Gender      string       `json:"gender"`
	IsFirst     bool         `json:"isFirst"`
	Description string       `json:"description"`
	Payments    []paymentDTO `json:"payments"`
	Services    []int64      `json:"services"`
}

type saleRequest struct {
	Date        string       `json:"date"`
	Gender      string       `json:"gender"`
	IsFirst     bool         `json:"isFirst"`
	Description string       `json:"description"`
	Payments    []paymentDTO `json:"payments"`
	Services    []int64      `json:"services"`
}

func toDTO(s *sales.Sale) saleDTO {
	dto := saleDTO{
		ID:          s.ID,
		Amount:      s.Amount,
		Gender:      string(s.Gender),
		IsFirst:     s.IsFirst,
		Description: s.Description,
		Payments:    make([]paymentDTO, 0, len(s.Payments)),
		Services:    s.Services,
	}
	if s.Date != nil {
		dto.Date = s.Date.UTC().Format(time.RFC3339)
	}
	if dto.Services == nil {
		dto.Services = []int64{}
	}
	for _, p := range s.Payments {
		dto.Payments = append(dto.Payments, paymentDTO{TypeID: p.TypeID, Name: p.Name, Amount: p.Amount})
	}
	return dto
}

// toSnapshot прогоняет запрос через те же правила, что и форма:
// сумма — производная от оплат, дата и время живут парой.
func (req saleRequest) toSnapshot() form.Snapshot {
	payments := make([]form.PaymentAllocation, 0, len(req.Payments))
	for _, p := range req.Payments {
		payments = append(payments, form.PaymentAllocation{
			TypeID: strconv.FormatInt(p.TypeID, 10),
			Name:   p.Name,
			Amount: strconv.FormatInt(p.Amount, 10),
		})
	}
	snap := form.Snapshot{
		Gender:   form.Gender(req.Gender),
		Payments: payments,
	}
	snap.Amount = form.TotalAmount(payments)
	if t, err := time.Parse(time.RFC3339, req.Date); err == nil {
		snap.Date = t.Format("2006-01-02")
		snap.Time = t.Format("15:04")
	}
	return snap
}

func (h *SalesHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (*sales.Sale, bool) {
	var req saleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return nil, false
	}
	if req.Gender != string(sales.GenderMale) && req.Gender != string(sales.GenderFemale) {
		writeError(w, http.StatusBadRequest, "invalid_gender")
		return nil, false
	}

	if res := form.Validate(req.toSnapshot()); !res.OK {
		metrics.ValidationFailures.Inc()
		writeError(w, http.StatusBadRequest, res.Message)
		return nil, false
	}

	s := &sales.Sale{
		Gender:      sales.Gender(req.Gender),
		IsFirst:     req.IsFirst,
		Description: req.Description,
	}
	if req.Date != "" {
		t, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date")
			return nil, false
		}
		s.Date = &t
	}
	for i, p := range req.Payments {
		if p.Amount < 0 {
			writeError(w, http.StatusBadRequest, "invalid_amount")
			return nil, false
		}
		s.Amount += p.Amount
		s.Payments = append(s.Payments, sales.Payment{
			TypeID: p.TypeID, Name: p.Name, Amount: p.Amount, Position: i,
		})
	}

	// устаревшие id услуг молча отбрасываются, как в форме
	s.Services = h.filterServices(r.Context(), req.Services)
	return s, true
}

func (h *SalesHandler) filterServices(ctx context.Context, ids []int64) []int64 {
	out := []int64{}
	live, err := h.services.List(ctx)
	if err != nil {
		h.log.Error("service types load failed", "err", err)
		return out
	}
	known := make(map[int64]bool, len(live))
	for _, st := range live {
		known[st.ID] = true
	}
	for _, id := range ids {
		if known[id] {
			out = append(out, id)
		}
	}
	return out
}

// List обрабатывает GET /api/sales?month=YYYY-MM.
func (h *SalesHandler) List(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseMonth(r.URL.Query().Get("month"))
	if !ok {
		writeError(w, http.StatusBadRequest, "month_required")
		return
	}
	items, err := h.store.ListByPeriod(r.Context(), from, to)
	if err != nil {
		h.log.Error("sales list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	dtos := make([]saleDTO, 0, len(items))
	for _, s := range items {
		dtos = append(dtos, toDTO(s))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sales": dtos})
}

func (h *SalesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	s, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error("sale get failed", "err", err, "sale_id", id)
		writeError(w, http.StatusInternalServerError, "get_failed")
		return
	}
	if s == nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, toDTO(s))
}

func (h *SalesHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}
	created, err := h.store.Create(r.Context(), s)
	if err != nil {
		h.log.Error("sale create failed", "err", err)
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}
	metrics.SalesCreated.Inc()
	if h.notifier != nil {
		h.notifier.SaleCreated(created)
	}
	writeJSON(w, http.StatusCreated, toDTO(created))
}

func (h *SalesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	s, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}
	s.ID = id
	updated, err := h.store.Update(r.Context(), s)
	if err != nil {
		h.log.Error("sale update failed", "err", err, "sale_id", id)
		writeError(w, http.StatusInternalServerError, "update_failed")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	metrics.SalesUpdated.Inc()
	writeJSON(w, http.StatusOK, toDTO(updated))
}

func (h *SalesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	deleted, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.log.Error("sale delete failed", "err", err, "sale_id", id)
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Export отдаёт продажи месяца одним xlsx-файлом.
func (h *SalesHandler) Export(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	from, to, ok := parseMonth(month)
	if !ok {
		writeError(w, http.StatusBadRequest, "month_required")
		return
	}
	items, err := h.store.ListByPeriod(r.Context(), from, to)
	if err != nil {
		h.log.Error("sales export query failed", "err", err)
		writeError(w, http.StatusInternalServerError, "export_failed")
		return
	}

	svcNames := map[int64]string{}
	if live, err := h.services.List(r.Context()); err == nil {
		for _, st := range live {
			svcNames[st.ID] = st.Name
		}
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{"id", "date", "time", "amount", "gender", "is_first", "payments", "services", "description"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		writeError(w, http.StatusInternalServerError, "export_failed")
		return
	}

	row := 2
	for _, s := range items {
		date, clock := "", ""
		if s.Date != nil {
			date = s.Date.UTC().Format("2006-01-02")
			clock = s.Date.UTC().Format("15:04")
		}
		pays := make([]string, 0, len(s.Payments))
		for _, p := range s.Payments {
			pays = append(pays, fmt.Sprintf("%s:%d", p.Name, p.Amount))
		}
		svcs := make([]string, 0, len(s.Services))
		for _, id := range s.Services {
			name := svcNames[id]
			if name == "" {
				name = strconv.FormatInt(id, 10)
			}
			svcs = append(svcs, name)
		}
		excelRow := []interface{}{
			s.ID, date, clock, s.Amount, string(s.Gender), s.IsFirst,
			strings.Join(pays, "; "), strings.Join(svcs, "; "), s.Description,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "export_failed")
			return
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			writeError(w, http.StatusInternalServerError, "export_failed")
			return
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		h.log.Error("sales export write failed", "err", err)
		writeError(w, http.StatusInternalServerError, "export_failed")
		return
	}

	fileName := fmt.Sprintf("sales_%s.xlsx", month)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	_, _ = w.Write(buf.Bytes())
}
