package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tomward0606/StockSystem/internal/models"
	"github.com/tomward0606/StockSystem/internal/services"
	"github.com/tomward0606/StockSystem/pkg/utils"
)

type CatalogueHandler struct {
	Service *services.CatalogueService
}

func NewCatalogueHandler(s *services.CatalogueService) *CatalogueHandler {
	return &CatalogueHandler{Service: s}
}

// List returns the visible catalogue, optionally filtered by ?search= and
// ?category=.
func (h *CatalogueHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	list, err := h.Service.List(r.Context(), q.Get("search"), q.Get("category"))
	if err != nil {
		respondError(w, err)
		return
	}
	if list.Entries == nil {
		list.Entries = []models.CatalogueEntry{}
	}
	if list.Categories == nil {
		list.Categories = []string{}
	}

	utils.JSON(w, http.StatusOK, list)
}

// Get returns one entry by product code.
func (h *CatalogueHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Service.Get(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		respondError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, entry)
}

// Add inserts a new catalogue entry.
func (h *CatalogueHandler) Add(w http.ResponseWriter, r *http.Request) {
	var entry models.CatalogueEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.Add(r.Context(), &entry); err != nil {
		respondError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, entry)
}

// Update patches one entry; omitted fields keep their prior values.
func (h *CatalogueHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update models.CatalogueUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	code := mux.Vars(r)["code"]
	if err := h.Service.Update(r.Context(), code, &update); err != nil {
		respondError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "updated", "product_code": code})
}

// Delete removes one entry by product code.
func (h *CatalogueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := h.Service.Delete(r.Context(), code); err != nil {
		respondError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted", "product_code": code})
}

// Export streams the raw catalogue CSV exactly as stored remotely.
func (h *CatalogueHandler) Export(w http.ResponseWriter, r *http.Request) {
	content, err := h.Service.Export(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=catalogue.csv")
	w.Write(content)
}
