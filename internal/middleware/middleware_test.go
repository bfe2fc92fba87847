package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"plp-bookstore/internal/middleware"
	"plp-bookstore/internal/utils"
)

func TestJWTAuthMiddleware(t *testing.T) {
	utils.InitJwtSecret("middleware-secret")
	valid, claims, err := utils.IssueToken("admin-1")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	anonymous, _, err := utils.IssueToken("")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
		wantRun    string
	}{
		{"Missing header", "", http.StatusUnauthorized, "", ""},
		{"Wrong scheme", "Basic abc", http.StatusUnauthorized, "", ""},
		{"Garbage token", "Bearer not-a-token", http.StatusUnauthorized, "", ""},
		{"Token without user", "Bearer " + anonymous, http.StatusUnauthorized, "", ""},
		{"Valid token", "Bearer " + valid, http.StatusOK, "admin-1", claims.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser, gotRun string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser = middleware.UserID(r.Context())
				gotRun = utils.RunIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPut, "/books/Clean%20Code/price", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			middleware.JWTAuthMiddleware(next).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if gotUser != tt.wantUser {
				t.Errorf("user = %q, want %q", gotUser, tt.wantUser)
			}
			if gotRun != tt.wantRun {
				t.Errorf("run id = %q, want %q", gotRun, tt.wantRun)
			}
			if tt.wantStatus == http.StatusUnauthorized && w.Header().Get("WWW-Authenticate") == "" {
				t.Errorf("missing WWW-Authenticate challenge")
			}
		})
	}
}

func TestJSONMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	w := httptest.NewRecorder()

	middleware.JSONMiddleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
}
