package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"mintverde/core/auth"
	"mintverde/core/store"
	"mintverde/core/utils"
)

// AdminHandler exposes raw store access. Both endpoints sit behind the
// admin permission gate; within that gate the capability is deliberately
// unconstrained.
type AdminHandler struct {
	admin  store.AdminStore
	logger *utils.Logger
}

func NewAdminHandler(admin store.AdminStore, logger *utils.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

func (h *AdminHandler) Query(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SQL string `json:"sql"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.SQL) == "" {
		writeError(w, http.StatusBadRequest, "sql is required")
		return
	}
	if h.logger != nil {
		if p := auth.PrincipalFromContext(r.Context()); p != nil {
			h.logger.Printf("ADMIN query user=%s", p.Email())
		}
	}
	results, err := h.admin.Query(r.Context(), body.SQL)
	if err != nil {
		// The store error is surfaced verbatim: the caller is an admin
		// debugging their own SQL.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *AdminHandler) Tables(w http.ResponseWriter, r *http.Request) {
	names, err := h.admin.Tables(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	out := make([]map[string]string, 0, len(names))
	for _, n := range names {
		out = append(out, map[string]string{"name": n})
	}
	writeJSON(w, http.StatusOK, out)
}
