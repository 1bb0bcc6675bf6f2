package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tomward0606/StockSystem/internal/middleware"
	"github.com/tomward0606/StockSystem/internal/models"
	"github.com/tomward0606/StockSystem/internal/repositories"
	"github.com/tomward0606/StockSystem/pkg/utils"
)

// HiddenPartHandler manages the deny-list that filters catalogue listings.
type HiddenPartHandler struct {
	Repo *repositories.HiddenPartRepository
}

func NewHiddenPartHandler(repo *repositories.HiddenPartRepository) *HiddenPartHandler {
	return &HiddenPartHandler{Repo: repo}
}

func (h *HiddenPartHandler) List(w http.ResponseWriter, r *http.Request) {
	parts, err := h.Repo.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if parts == nil {
		parts = []*models.HiddenPart{}
	}

	utils.JSON(w, http.StatusOK, parts)
}

func (h *HiddenPartHandler) Hide(w http.ResponseWriter, r *http.Request) {
	var req models.HidePartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.PartNumber) == "" {
		utils.Error(w, http.StatusBadRequest, "part_number is required")
		return
	}

	createdBy := req.CreatedBy
	if email, ok := middleware.GetEmailFromContext(r.Context()); ok {
		createdBy = email
	}

	part := &models.HiddenPart{
		PartNumber: req.PartNumber,
		Reason:     req.Reason,
		CreatedBy:  createdBy,
	}
	if err := h.Repo.Hide(r.Context(), part); err != nil {
		respondError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, part)
}

func (h *HiddenPartHandler) Unhide(w http.ResponseWriter, r *http.Request) {
	partNumber := mux.Vars(r)["partNumber"]
	if err := h.Repo.Unhide(r.Context(), partNumber); err != nil {
		respondError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "unhidden", "part_number": partNumber})
}
