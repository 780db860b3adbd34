package api

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofrs/uuid/v5"

	"mintverde/api/handlers"
	"mintverde/core/auth"
	"mintverde/core/rbac"
)

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if s.logger != nil {
					s.logger.Errorf("PANIC %s %s: %v\n%s", r.Method, r.URL.Path, rec, string(debug.Stack()))
				}
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Reflecting the Origin together with the credentials flag lets
		// browsers send the session cookie cross-site, so that pair is
		// only ever emitted for an explicitly configured allow-list.
		// With no allow-list configured the response is wildcard and
		// credential-free.
		origin := r.Header.Get("Origin")
		if origin != "" {
			if len(s.cfg.Security.AllowedOrigins) == 0 {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			} else if s.originAllowed(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Set("Vary", "Origin")
			}
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, o := range s.cfg.Security.AllowedOrigins {
		if o == origin || o == "*" {
			return true
		}
	}
	return false
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.Must(uuid.NewV4()).String()
		w.Header().Set("X-Request-ID", reqID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if s.logger != nil {
			user := "-"
			if p := auth.PrincipalFromContext(r.Context()); p != nil {
				user = p.Email()
			}
			s.logger.Printf("RESP %s %s req=%s user=%s status=%d dur=%s bytes=%d",
				r.Method, r.URL.Path, reqID, user, rec.status, time.Since(start), rec.size)
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// withSession is the authorization gate: extract the cookie token,
// re-validate it with the identity provider, then match the verified
// email against the usuarios allow-list. The resolved principal travels
// in the request context only.
func (s *Server) withSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(handlers.SessionCookieName)
		if err != nil || cookie.Value == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
			return
		}
		ident, err := s.identity.CurrentUser(r.Context(), cookie.Value)
		if err != nil || ident == nil {
			if s.logger != nil {
				s.logger.Printf("AUTH fail (provider) %s %s: %v", r.Method, r.URL.Path, err)
			}
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid session"})
			return
		}
		appUser, err := s.usuarios.FindByEmail(r.Context(), ident.Email)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
			return
		}
		if appUser == nil {
			if s.logger != nil {
				s.logger.Printf("AUTH fail (not allow-listed) %s %s email=%s", r.Method, r.URL.Path, ident.Email)
			}
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "User not authorized"})
			return
		}
		ctx := auth.WithPrincipal(r.Context(), &auth.Principal{Identity: ident, Usuario: appUser})
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (s *Server) requirePermission(perm rbac.Permission) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			p := auth.PrincipalFromContext(r.Context())
			if p == nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
				return
			}
			if !s.policy.Allowed(p.Role(), perm) {
				if s.logger != nil {
					s.logger.Printf("PERM fail %s %s user=%s need=%s", r.Method, r.URL.Path, p.Email(), perm)
				}
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "Admin access required"})
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
