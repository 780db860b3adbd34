package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"mintverde/config"
	"mintverde/core/auth"
	"mintverde/core/store"
	"mintverde/core/utils"
)

// SessionCookieName carries the opaque identity-provider token. The
// middleware, not this handler, validates it on every request.
const SessionCookieName = "mintverde_session"

type AuthHandler struct {
	cfg      *config.AppConfig
	identity auth.IdentityService
	usuarios store.UsuariosStore
	logger   *utils.Logger
}

func NewAuthHandler(cfg *config.AppConfig, identity auth.IdentityService, usuarios store.UsuariosStore, logger *utils.Logger) *AuthHandler {
	return &AuthHandler{cfg: cfg, identity: identity, usuarios: usuarios, logger: logger}
}

func (h *AuthHandler) RedirectURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.identity.RedirectURL(r.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("AUTH redirect_url: %v", err)
		}
		writeError(w, http.StatusInternalServerError, "identity provider unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"redirectUrl": url})
}

func (h *AuthHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Code) == "" {
		writeError(w, http.StatusBadRequest, "No authorization code provided")
		return
	}
	token, err := h.identity.ExchangeCode(r.Context(), body.Code)
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("AUTH exchange: %v", err)
		}
		writeError(w, http.StatusUnauthorized, "Invalid authorization code")
		return
	}
	h.setSessionCookie(w, token, int(h.cfg.EffectiveCookieTTL().Seconds()))
	writeSuccess(w)
}

// Me returns the provider identity merged with the local allow-list row.
// The session middleware has already resolved both.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalFromContext(r.Context())
	if p == nil || p.Identity == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       p.Identity.ID,
		"email":    p.Identity.Email,
		"name":     p.Identity.Nombre,
		"app_user": p.Usuario,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		// Best effort: the cookie is cleared regardless.
		if err := h.identity.DeleteSession(r.Context(), cookie.Value); err != nil && h.logger != nil {
			h.logger.Errorf("AUTH logout: %v", err)
		}
	}
	h.setSessionCookie(w, "", -1)
	writeSuccess(w)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.Security.CookieSecure,
		SameSite: http.SameSiteNoneMode,
	})
}
