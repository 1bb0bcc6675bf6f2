package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tomward0606/StockSystem/internal/models"
	"github.com/tomward0606/StockSystem/internal/services"
	"github.com/tomward0606/StockSystem/pkg/utils"
)

type DispatchHandler struct {
	Service *services.LedgerService
	Reports *services.ReportService
}

func NewDispatchHandler(s *services.LedgerService, reports *services.ReportService) *DispatchHandler {
	return &DispatchHandler{Service: s, Reports: reports}
}

// Apply runs one dispatch transaction for an engineer: send quantities plus
// back-order flag changes, all or nothing.
func (h *DispatchHandler) Apply(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	var req models.DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.Service.ApplyDispatch(r.Context(), email, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

// List returns all dispatch notes, newest first.
func (h *DispatchHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.Service.ListDispatches(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if notes == nil {
		notes = []*models.DispatchNote{}
	}

	utils.JSON(w, http.StatusOK, notes)
}

// ListForEngineer returns one engineer's dispatch history, newest first.
func (h *DispatchHandler) ListForEngineer(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	notes, err := h.Service.DispatchesForEngineer(r.Context(), email)
	if err != nil {
		respondError(w, err)
		return
	}
	if notes == nil {
		notes = []*models.DispatchNote{}
	}

	utils.JSON(w, http.StatusOK, notes)
}

// Get returns one dispatch note with its lines.
func (h *DispatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid note id")
		return
	}

	note, err := h.Service.GetDispatchNote(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, note)
}

// PDF streams a printable rendering of one dispatch note.
func (h *DispatchHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid note id")
		return
	}

	data, err := h.Reports.DispatchNotePDF(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=dispatch_note_%d.pdf", id))
	w.Write(data)
}
