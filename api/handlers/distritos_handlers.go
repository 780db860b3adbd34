package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"mintverde/core/store"
)

type DistritosHandler struct {
	distritos store.DistritosStore
}

func NewDistritosHandler(distritos store.DistritosStore) *DistritosHandler {
	return &DistritosHandler{distritos: distritos}
}

func (h *DistritosHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.distritos.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if items == nil {
		items = []store.Distrito{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *DistritosHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Nombre string `json:"nombre"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(body.Nombre) == "" {
		writeError(w, http.StatusBadRequest, "nombre is required")
		return
	}
	id, err := h.distritos.Create(r.Context(), body.Nombre)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeCreated(w, id)
}
