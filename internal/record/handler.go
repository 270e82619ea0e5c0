package record

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ErdhyErnando/moneta/internal/auth"
	"github.com/ErdhyErnando/moneta/internal/transport"
	"github.com/ErdhyErnando/moneta/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListRecords(kind Kind, userID int64) ([]*Record, error)
	CreateRecord(ctx context.Context, kind Kind, userID int64, dto *WriteRecordDTO) (*Record, error)
	UpdateRecord(ctx context.Context, kind Kind, id, userID int64, dto *WriteRecordDTO) (*Record, error)
	DeleteRecord(ctx context.Context, kind Kind, id, userID int64) error
}

// Handler serves one record kind; the router mounts one instance per kind
// under /incomes, /expenses and /starting-balances.
type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Kind    Kind
}

func NewHandler(kind Kind, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
		Kind:        kind,
	}
}

// listKey matches the response keys the web UI consumes per kind.
func (h *Handler) listKey() string {
	switch h.Kind {
	case KindIncome:
		return "incomes"
	case KindExpense:
		return "expenses"
	default:
		return "startingBalances"
	}
}

func (h *Handler) itemKey() string {
	switch h.Kind {
	case KindIncome:
		return "income"
	case KindExpense:
		return "expense"
	default:
		return "startingBalance"
	}
}

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := h.Service.ListRecords(h.Kind, user.ID)
	if err != nil {
		h.Logger.Error("ListRecords: service error", "error", err, "kind", h.Kind, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{h.listKey(): records})
}

func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto WriteRecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateRecord: invalid request body", "error", err, "kind", h.Kind)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.CreateRecord(r.Context(), h.Kind, user.ID, &dto)
	if err != nil {
		h.Logger.Error("CreateRecord: service error", "error", err, "kind", h.Kind, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{h.itemKey(): rec})
}

func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.recordID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid record ID")
		return
	}

	var dto WriteRecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateRecord: invalid request body", "error", err, "kind", h.Kind)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.UpdateRecord(r.Context(), h.Kind, id, user.ID, &dto)
	if err != nil {
		h.Logger.Error("UpdateRecord: service error", "error", err, "kind", h.Kind, "record_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{h.itemKey(): rec})
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.recordID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid record ID")
		return
	}

	if err := h.Service.DeleteRecord(r.Context(), h.Kind, id, user.ID); err != nil {
		h.Logger.Error("DeleteRecord: service error", "error", err, "kind", h.Kind, "record_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) recordID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
