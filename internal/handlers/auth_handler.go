package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tomward0606/StockSystem/internal/auth"
	"github.com/tomward0606/StockSystem/internal/config"
	"github.com/tomward0606/StockSystem/pkg/utils"
)

// AuthHandler authenticates the single admin account configured in the
// environment and hands out JWTs for the API.
type AuthHandler struct {
	Config     *config.Config
	JWTManager *auth.JWTManager
}

func NewAuthHandler(cfg *config.Config, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{Config: cfg, JWTManager: jwtManager}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !strings.EqualFold(req.Email, h.Config.Admin.Email) ||
		!auth.VerifyPassword(h.Config.Admin.PasswordHash, req.Password) {
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.JWTManager.GenerateToken(h.Config.Admin.Email)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	utils.JSON(w, http.StatusOK, loginResponse{Token: token, Email: h.Config.Admin.Email})
}
