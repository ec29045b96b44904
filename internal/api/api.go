package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// API агрегирует хендлеры дашборда и вешает их на mux.
type API struct {
	Sales        *SalesHandler
	ServiceTypes *ReferenceHandler
	PaymentTypes *ReferenceHandler
	Settings     *SettingsHandler
	Dashboard    *DashboardHandler
}

func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/sales", a.Sales.List)
	mux.HandleFunc("GET /api/sales/export", a.Sales.Export)
	mux.HandleFunc("GET /api/sales/{id}", a.Sales.Get)
	mux.HandleFunc("POST /api/sales", a.Sales.Create)
	mux.HandleFunc("PUT /api/sales/{id}", a.Sales.Update)
	mux.HandleFunc("DELETE /api/sales/{id}", a.Sales.Delete)

	mux.HandleFunc("GET /api/service-types", a.ServiceTypes.List)
	mux.HandleFunc("POST /api/service-types", a.ServiceTypes.Create)
	mux.HandleFunc("PUT /api/service-types/{id}", a.ServiceTypes.Update)
	mux.HandleFunc("DELETE /api/service-types/{id}", a.ServiceTypes.Delete)

	mux.HandleFunc("GET /api/payment-types", a.PaymentTypes.List)
	mux.HandleFunc("POST /api/payment-types", a.PaymentTypes.Create)
	mux.HandleFunc("PUT /api/payment-types/{id}", a.PaymentTypes.Update)
	mux.HandleFunc("DELETE /api/payment-types/{id}", a.PaymentTypes.Delete)

	mux.HandleFunc("GET /api/settings", a.Settings.List)
	mux.HandleFunc("PUT /api/settings", a.Settings.Put)

	mux.HandleFunc("GET /api/dashboard/target-total", a.Dashboard.TargetTotal)
}

func decodeJSON(r *http.Request, v any) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseMonth разбирает "YYYY-MM" в границы месяца [from, to).
func parseMonth(s string) (time.Time, time.Time, bool) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return t, t.AddDate(0, 1, 0), true
}
