package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"mintverde/core/store"
)

type ProgramasHandler struct {
	programas store.ProgramasStore
}

func NewProgramasHandler(programas store.ProgramasStore) *ProgramasHandler {
	return &ProgramasHandler{programas: programas}
}

type programaRequest struct {
	NombrePrograma string  `json:"nombre_programa"`
	IDActuacion    int64   `json:"id_actuacion"`
	FechaInicio    *string `json:"fecha_inicio"`
	FechaFin       *string `json:"fecha_fin"`
	DistritoID     *int64  `json:"distrito_id"`
}

func (b *programaRequest) validate() string {
	if strings.TrimSpace(b.NombrePrograma) == "" {
		return "nombre_programa is required"
	}
	if b.IDActuacion <= 0 {
		return "id_actuacion is required"
	}
	return ""
}

func (b *programaRequest) toModel() *store.Programa {
	return &store.Programa{
		NombrePrograma: b.NombrePrograma,
		IDActuacion:    b.IDActuacion,
		FechaInicio:    b.FechaInicio,
		FechaFin:       b.FechaFin,
		DistritoID:     b.DistritoID,
	}
}

func (h *ProgramasHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.programas.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if items == nil {
		items = []store.Programa{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ProgramasHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body programaRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	id, err := h.programas.Create(r.Context(), body.toModel())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeCreated(w, id)
}

func (h *ProgramasHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var body programaRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err := h.programas.Update(r.Context(), id, body.toModel()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "programa not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeSuccess(w)
}

func (h *ProgramasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.programas.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeSuccess(w)
}
