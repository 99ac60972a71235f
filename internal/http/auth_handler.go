package httpapi

import (
	"net/http"

	"hda-data/internal/service"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login accepts {identity, secret}; email/password are accepted as aliases.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Identity string `json:"identity"`
		Email    string `json:"email"`
		Secret   string `json:"secret"`
		Password string `json:"password"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("body must be a JSON object"))
		return
	}
	if body.Identity == "" {
		body.Identity = body.Email
	}
	if body.Secret == "" {
		body.Secret = body.Password
	}

	resp, err := h.authService.Login(r.Context(), service.LoginRequest{
		Identity:  body.Identity,
		Secret:    body.Secret,
		IPAddress: getClientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// Session echoes the identity and role the bearer token resolves to.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Result[any]{Code: ResultTokenExpired, Type: "error", Message: "missing session"})
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"userId":    session.UserID,
		"role":      session.Role,
		"expiresAt": session.ExpiresAt,
	}))
}
