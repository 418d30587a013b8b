// internal/handlers/http/login_handler.go
package http

import (
	"crypto/subtle"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"weather-xml/internal/middleware"
	"weather-xml/internal/util"
	"weather-xml/internal/xmlcodec"
)

// LoginHandler exchanges the admin credentials for a bearer token that
// unlocks city writes when the guard is enabled.
type LoginHandler struct {
	User      string
	PassHash  string // bcrypt
	JWTSecret string
	TTL       time.Duration
	Clock     util.Clock
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.User == "" || h.PassHash == "" || h.JWTSecret == "" {
		writeErrorMessage(w, http.StatusForbidden, "admin not configured")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid XML payload: "+err.Error())
		return
	}
	user, pass, err := xmlcodec.DecodeLogin(body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if subtle.ConstantTimeCompare([]byte(user), []byte(h.User)) != 1 {
		writeError(w, r, util.Unauthorized("invalid credentials"))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(h.PassHash), []byte(pass)) != nil {
		writeError(w, r, util.Unauthorized("invalid credentials"))
		return
	}

	clock := h.Clock
	if clock == nil {
		clock = util.RealClock{}
	}
	ttl := h.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token, exp, err := middleware.GenerateAdminToken(h.JWTSecret, h.User, clock.Now(), ttl)
	if err != nil {
		writeError(w, r, util.Internal("sign token", err))
		return
	}

	doc, err := xmlcodec.EncodeFields("token",
		xmlcodec.Field{Name: "value", Value: token},
		xmlcodec.Field{Name: "expires_at", Value: strconv.FormatInt(exp, 10)},
		xmlcodec.Field{Name: "user", Value: h.User},
		xmlcodec.Field{Name: "role", Value: "admin"},
	)
	writeDoc(w, r, http.StatusOK, doc, err)
}
