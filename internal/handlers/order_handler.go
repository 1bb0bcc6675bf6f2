package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tomward0606/StockSystem/internal/models"
	"github.com/tomward0606/StockSystem/internal/services"
	"github.com/tomward0606/StockSystem/pkg/utils"
)

type OrderHandler struct {
	Service *services.LedgerService
}

func NewOrderHandler(s *services.LedgerService) *OrderHandler {
	return &OrderHandler{Service: s}
}

// CreateOrder records a new parts order for an engineer.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.Service.CreateOrder(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, order)
}

// Outstanding lists an engineer's order lines with quantity still to send.
func (h *OrderHandler) Outstanding(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	lines, err := h.Service.Outstanding(r.Context(), email)
	if err != nil {
		respondError(w, err)
		return
	}
	if lines == nil {
		lines = []*models.OrderLine{}
	}

	utils.JSON(w, http.StatusOK, lines)
}

// BackOrders lists an engineer's flagged lines.
func (h *OrderHandler) BackOrders(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	lines, err := h.Service.BackOrders(r.Context(), email)
	if err != nil {
		respondError(w, err)
		return
	}
	if lines == nil {
		lines = []*models.OrderLine{}
	}

	utils.JSON(w, http.StatusOK, lines)
}

// Summary returns outstanding totals grouped by engineer.
func (h *OrderHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if summary == nil {
		summary = []*models.OutstandingSummary{}
	}

	utils.JSON(w, http.StatusOK, summary)
}

// RemoveLine deletes one order line; the parent order goes with it when this
// was its last line. The engineer email query parameter is the fallback for
// cache invalidation when the line is already gone.
func (h *OrderHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid line id")
		return
	}

	email, err := h.Service.RemoveLine(r.Context(), id, r.URL.Query().Get("email"))
	if err != nil {
		respondError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"status":         "deleted",
		"engineer_email": email,
	})
}
