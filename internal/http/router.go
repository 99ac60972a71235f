package httpapi

import (
	"net/http"

	"hda-data/internal/service"

	"go.uber.org/zap"
)

// Router uses the standard library http.ServeMux
type Router struct {
	mux    *http.ServeMux
	auth   service.AuthService
	logger *zap.Logger
}

func NewRouter(auth service.AuthService, logger *zap.Logger) *Router {
	r := &Router{
		mux:    http.NewServeMux(),
		auth:   auth,
		logger: logger,
	}
	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		writeJSON(w, http.StatusOK, Ok("ok"))
	})
	return r
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleSession registers h behind the bearer session check.
func (r *Router) HandleSession(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, RequireSession(r.auth, r.logger, h))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/auth/api/v1/login", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.Login(w, req)
	})
	r.HandleSession("/auth/api/v1/session", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.Session(w, req)
	})
}

// RegisterRecordRoutes serves /data/api/v1/{collection}[/{id}|/export].
func (r *Router) RegisterRecordRoutes(h *RecordsHandler) {
	r.HandleSession("/data/api/v1/", h.ServeHTTP)
}

// RegisterCacheRoutes serves /local/api/v1/cache/{key} and the
// /local/api/v1/cache:reset action, which sits outside the key space.
func (r *Router) RegisterCacheRoutes(h *CacheHandler) {
	r.HandleSession("/local/api/v1/cache:reset", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.Reset(w, req)
	})
	r.HandleSession("/local/api/v1/cache/", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.Get(w, req)
		case http.MethodPut:
			h.Put(w, req)
		case http.MethodDelete:
			h.Delete(w, req)
		default:
			methodNotAllowed(w)
		}
	})
}

func (r *Router) RegisterHoneyBookRoutes(h *HoneyBookHandler) {
	get := func(fn http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			if req.Method != http.MethodGet {
				methodNotAllowed(w)
				return
			}
			fn(w, req)
		}
	}
	post := func(fn http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			if req.Method != http.MethodPost {
				methodNotAllowed(w)
				return
			}
			fn(w, req)
		}
	}
	r.HandleSession("/integrations/api/v1/honeybook/status", get(h.Status))
	r.HandleSession("/integrations/api/v1/honeybook/contacts", get(h.Contacts))
	r.HandleSession("/integrations/api/v1/honeybook/projects", get(h.Projects))
	r.HandleSession("/integrations/api/v1/honeybook/leads", post(h.SyncLead))
	r.HandleSession("/integrations/api/v1/honeybook/bookings", post(h.SyncBooking))
}
