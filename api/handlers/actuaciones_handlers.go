package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"mintverde/core/store"
)

type ActuacionesHandler struct {
	actuaciones store.ActuacionesStore
}

func NewActuacionesHandler(actuaciones store.ActuacionesStore) *ActuacionesHandler {
	return &ActuacionesHandler{actuaciones: actuaciones}
}

type actuacionRequest struct {
	NombreActuacion string `json:"nombre_actuacion"`
	DistritoID      *int64 `json:"distrito_id"`
}

func (h *ActuacionesHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.actuaciones.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if items == nil {
		items = []store.Actuacion{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ActuacionesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body actuacionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(body.NombreActuacion) == "" {
		writeError(w, http.StatusBadRequest, "nombre_actuacion is required")
		return
	}
	id, err := h.actuaciones.Create(r.Context(), &store.Actuacion{
		NombreActuacion: body.NombreActuacion,
		DistritoID:      body.DistritoID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeCreated(w, id)
}

func (h *ActuacionesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var body actuacionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(body.NombreActuacion) == "" {
		writeError(w, http.StatusBadRequest, "nombre_actuacion is required")
		return
	}
	err := h.actuaciones.Update(r.Context(), id, &store.Actuacion{
		NombreActuacion: body.NombreActuacion,
		DistritoID:      body.DistritoID,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "actuacion not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeSuccess(w)
}

func (h *ActuacionesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.actuaciones.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeSuccess(w)
}
