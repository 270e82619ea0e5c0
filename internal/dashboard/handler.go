package dashboard

import (
	"net/http"
	"strconv"

	"github.com/ErdhyErnando/moneta/internal"
	"github.com/ErdhyErnando/moneta/internal/auth"
	"github.com/ErdhyErnando/moneta/internal/record"
	"github.com/ErdhyErnando/moneta/internal/transport"
	"github.com/ErdhyErnando/moneta/pkg/logger"
)

type ServiceAPI interface {
	Summary(userID int64, period Period) (*Summary, error)
	RecentTransactions(userID int64, period Period, limit int) ([]Transaction, error)
	ChartSeries(userID int64, period Period) ([]ChartPoint, error)
	CategoryBreakdown(userID int64, kind record.Kind, period Period) ([]CategorySlice, error)
	MonthlySeries(userID int64, kind record.Kind, year int) ([]MonthlyPoint, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	period, err := ParsePeriod(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	summary, err := h.Service.Summary(user.ID, period)
	if err != nil {
		// never fail the whole dashboard page; serve a zeroed summary
		h.writeDegraded(w, err, map[string]interface{}{"summary": &Summary{}})
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"summary": summary})
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	period, err := ParsePeriod(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	limit := DefaultTransactionLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			h.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	transactions, err := h.Service.RecentTransactions(user.ID, period, limit)
	if err != nil {
		h.writeDegraded(w, err, map[string]interface{}{"transactions": []Transaction{}})
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"transactions": transactions})
}

func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	period, err := ParsePeriod(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	series, err := h.Service.ChartSeries(user.ID, period)
	if err != nil {
		h.writeDegraded(w, err, map[string]interface{}{"chartData": []ChartPoint{}})
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"chartData": series})
}

func (h *Handler) GetCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	kind, err := ParseKind(r.URL.Query().Get("kind"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	period, err := ParsePeriod(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	slices, err := h.Service.CategoryBreakdown(user.ID, kind, period)
	if err != nil {
		h.writeDegraded(w, err, map[string]interface{}{"categories": []CategorySlice{}})
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": slices})
}

func (h *Handler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	kind, err := ParseKind(r.URL.Query().Get("kind"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	year, err := ParseYear(r.URL.Query().Get("year"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	points, err := h.Service.MonthlySeries(user.ID, kind, year)
	if err != nil {
		h.writeDegraded(w, err, map[string]interface{}{"monthlyData": []MonthlyPoint{}})
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"monthlyData": points})
}

// writeDegraded reports a dashboard failure without breaking the page: the
// caller gets a safe empty payload for the expected data key alongside the
// error. Validation errors keep their own status codes.
func (h *Handler) writeDegraded(w http.ResponseWriter, err error, defaults map[string]interface{}) {
	if appErr, ok := internal.IsAppError(err); ok && appErr.Type != internal.ErrorTypeInternal {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Error("dashboard endpoint degraded", "error", err)
	body := map[string]interface{}{"error": "failed to load dashboard data"}
	for k, v := range defaults {
		body[k] = v
	}
	h.WriteJSON(w, http.StatusInternalServerError, body)
}
