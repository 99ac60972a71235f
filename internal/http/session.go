package httpapi

import (
	"context"
	"net/http"
	"strings"

	"hda-data/internal/service"

	"go.uber.org/zap"
)

type sessionKey struct{}

// SessionFromContext returns the session resolved by RequireSession.
func SessionFromContext(ctx context.Context) (*service.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*service.Session)
	return s, ok && s != nil
}

// ownerFromContext is "" outside RequireSession, which the services reject.
func ownerFromContext(ctx context.Context) string {
	if s, ok := SessionFromContext(ctx); ok {
		return s.UserID
	}
	return ""
}

// RequireSession resolves the bearer token before calling next.
func RequireSession(auth service.AuthService, logger *zap.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		session, err := auth.Authenticate(r.Context(), token)
		if err != nil {
			logger.Debug("Session rejected",
				zap.String("path", r.URL.Path),
				zap.String("ip_address", getClientIP(r)),
				zap.Error(err),
			)
			writeError(w, logger, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, session)))
	}
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
