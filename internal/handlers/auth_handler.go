package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"plp-bookstore/internal/constants"
	"plp-bookstore/internal/models"
	"plp-bookstore/internal/utils"
)

// Credentials is the single operator account allowed to mutate the catalogue.
type Credentials struct {
	UserId       string
	Username     string
	UserPassword string
}

func (c Credentials) match(username, password string) bool {
	if c.Username == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(c.UserPassword), []byte(password)) == 1
	return userOK && passOK
}

type AuthHandler struct {
	ConfigCreds Credentials
	AuditLogger utils.Logger
	Logger      *slog.Logger
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// POST /login
//
// A successful login opens an operator session. Its ID is the run_id of every
// audit entry written with the returned token, starting with the LOGIN entry.
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if !a.ConfigCreds.match(req.Username, req.Password) {
		logger.WarnContext(r.Context(), "login rejected", slog.String("username", req.Username))
		utils.JSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID := a.ConfigCreds.UserId
	if userID == "" {
		userID = a.ConfigCreds.Username
	}
	token, claims, err := utils.IssueToken(userID)
	if err != nil {
		utils.JSONError(w, "Token generation failed", http.StatusInternalServerError)
		return
	}

	ctx := utils.ContextWithRunID(r.Context(), claims.ID)
	if err := a.AuditLogger.Log(ctx, models.SessionEntity, constants.Login, claims.UserID,
		map[string]any{"username": req.Username, "expires_at": claims.ExpiresAt.Time}); err != nil {
		logger.WarnContext(ctx, "audit log failed",
			slog.String("entity", models.SessionEntity),
			slog.String("action", constants.Login),
			slog.Any("error", err),
		)
	}

	json.NewEncoder(w).Encode(LoginResponse{
		Token:     token,
		SessionID: claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}
