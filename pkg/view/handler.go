package view

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/finanzapp/finanzapp/internal/rest"
	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/pkg/export"
	"github.com/finanzapp/finanzapp/pkg/stats"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// NotificationSource hands out the notifications queued since the last call.
type NotificationSource interface {
	Drain() []Notification
}

type Handler struct {
	controller    *Controller
	notifications NotificationSource
}

func NewHandler(controller *Controller, notifications NotificationSource) *Handler {
	return &Handler{controller: controller, notifications: notifications}
}

type ViewDTO struct {
	View  View `json:"view"`
	Model any  `json:"model"`
}

type TransactionDTO struct {
	Kind        string      `json:"kind"`
	Amount      json.Number `json:"amount"`
	Date        string      `json:"date"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
}

type CategoryDTO struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// BudgetDTO takes a zero-based month.
type BudgetDTO struct {
	Category string      `json:"category"`
	Amount   json.Number `json:"amount"`
	Month    *int        `json:"month"`
	Year     *int        `json:"year"`
}

type IdDTO struct {
	ID int `json:"id"`
}

type CategoryDeletedDTO struct {
	RemovedTransactions int `json:"removedTransactions"`
}

func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	v, model := h.controller.Navigate(mux.Vars(r)["view"])
	rest.WriteJSON(w, http.StatusOK, ViewDTO{View: v, Model: model})
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := stats.TransactionFilter{
		Kind:     query.Get("kind"),
		Category: query.Get("category"),
		Search:   query.Get("q"),
	}
	if month := query.Get("month"); month != "" {
		p, err := types.ParsePeriod(month)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid month format", "'month' must be formatted as YYYY-MM")
			return
		}
		filter.Period = &p
	}
	rest.WriteJSON(w, http.StatusOK, h.controller.SetTransactionFilter(filter))
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	h.saveTransaction(w, r, 0, http.StatusCreated)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	h.saveTransaction(w, r, id, http.StatusOK)
}

func (h *Handler) saveTransaction(w http.ResponseWriter, r *http.Request, id int, status int) {
	var dto TransactionDTO
	if !decode(w, r, &dto) {
		return
	}
	savedId, err := h.controller.SaveTransaction(r.Context(), TransactionInput{
		ID:          id,
		Kind:        dto.Kind,
		Amount:      dto.Amount.String(),
		Date:        dto.Date,
		Category:    dto.Category,
		Description: dto.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, status, IdDTO{ID: savedId})
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	if err := h.controller.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	fileName, content, err := h.controller.Export()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(content)); err != nil {
		log.Errorf("failed to write export: %v", err)
	}
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	h.saveCategory(w, r, 0, http.StatusCreated)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	h.saveCategory(w, r, id, http.StatusOK)
}

func (h *Handler) saveCategory(w http.ResponseWriter, r *http.Request, id int, status int) {
	var dto CategoryDTO
	if !decode(w, r, &dto) {
		return
	}
	savedId, err := h.controller.SaveCategory(r.Context(), CategoryInput{
		ID:    id,
		Name:  dto.Name,
		Color: dto.Color,
		Icon:  dto.Icon,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, status, IdDTO{ID: savedId})
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	removed, err := h.controller.DeleteCategory(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, CategoryDeletedDTO{RemovedTransactions: removed})
}

func (h *Handler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	p := h.controller.State().BudgetPeriod()
	if month := r.URL.Query().Get("month"); month != "" {
		parsed, err := types.ParsePeriod(month)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid month format", "'month' must be formatted as YYYY-MM")
			return
		}
		p = parsed
	}
	rest.WriteJSON(w, http.StatusOK, h.controller.SetBudgetPeriod(p))
}

func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	h.saveBudget(w, r, 0, http.StatusCreated)
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	h.saveBudget(w, r, id, http.StatusOK)
}

func (h *Handler) saveBudget(w http.ResponseWriter, r *http.Request, id int, status int) {
	var dto BudgetDTO
	if !decode(w, r, &dto) {
		return
	}
	savedId, err := h.controller.SaveBudget(r.Context(), BudgetInput{
		ID:       id,
		Category: dto.Category,
		Amount:   dto.Amount.String(),
		Month:    dto.Month,
		Year:     dto.Year,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, status, IdDTO{ID: savedId})
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	if err := h.controller.DeleteBudget(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, h.notifications.Drain())
}

func pathId(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid id", "'id' must be a positive integer")
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		rest.WriteError(w, http.StatusBadRequest, "Validation failed", joinProblems(ve.Problems))
	case errors.Is(err, export.ErrNothingToExport):
		rest.WriteError(w, http.StatusNotFound, "Nothing to export", err.Error())
	default:
		rest.WriteError(w, http.StatusInternalServerError, "Storage failure", "Please try again")
	}
}
