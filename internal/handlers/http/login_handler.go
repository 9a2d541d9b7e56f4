// internal/handlers/http/login_handler.go
package http

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"well-dashboard/internal/middleware"
	"well-dashboard/internal/util"
)

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"` // epoch seconds
	User      string `json:"user"`
	Role      string `json:"role"`
}

type LoginDeps struct {
	User     string
	PassHash string // bcrypt
	Secret   string // HS256
	TTL      time.Duration
	Clock    util.Clock
}

func NewLoginHandler(d LoginDeps) http.HandlerFunc {
	if d.TTL <= 0 {
		d.TTL = 24 * time.Hour
	}
	if d.Clock == nil {
		d.Clock = util.RealClock{}
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in loginReq
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		if d.User == "" || d.PassHash == "" || d.Secret == "" {
			http.Error(w, "admin not configured", http.StatusForbidden)
			return
		}
		if in.Username != d.User {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(d.PassHash), []byte(in.Password)) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		token, exp, err := middleware.GenerateAdminToken(d.Secret, d.User, d.Clock.Now(), d.TTL)
		if err != nil {
			http.Error(w, "token error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, loginResp{
			Token:     token,
			ExpiresAt: exp,
			User:      d.User,
			Role:      "admin",
		})
	}
}
