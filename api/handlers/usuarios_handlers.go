package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"mintverde/core/store"
	"mintverde/core/utils"
)

type UsuariosHandler struct {
	usuarios store.UsuariosStore
	logger   *utils.Logger
}

func NewUsuariosHandler(usuarios store.UsuariosStore, logger *utils.Logger) *UsuariosHandler {
	return &UsuariosHandler{usuarios: usuarios, logger: logger}
}

type usuarioRequest struct {
	Email   string  `json:"email"`
	Nombre  *string `json:"nombre"`
	IsAdmin bool    `json:"is_admin"`
}

func (h *UsuariosHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.usuarios.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if items == nil {
		items = []store.Usuario{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *UsuariosHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body usuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email := strings.TrimSpace(body.Email)
	if email == "" || !strings.Contains(email, "@") {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	id, err := h.usuarios.Create(r.Context(), email, body.Nombre, body.IsAdmin)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "email already registered")
			return
		}
		if h.logger != nil {
			h.logger.Errorf("USUARIOS create %s: %v", email, err)
		}
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeCreated(w, id)
}

func (h *UsuariosHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var body usuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.usuarios.Update(r.Context(), id, body.Nombre, body.IsAdmin); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "usuario not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeSuccess(w)
}

func (h *UsuariosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.usuarios.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeSuccess(w)
}
