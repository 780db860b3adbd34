package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"mintverde/core/auth"
	"mintverde/core/store"
)

type EjecucionesHandler struct {
	ejecuciones store.EjecucionesStore
}

func NewEjecucionesHandler(ejecuciones store.EjecucionesStore) *EjecucionesHandler {
	return &EjecucionesHandler{ejecuciones: ejecuciones}
}

type ejecucionRequest struct {
	IDPrograma      int64   `json:"id_programa"`
	IDElemento      *int64  `json:"id_elemento"`
	FechaInicio     string  `json:"fecha_inicio"`
	FechaFin        *string `json:"fecha_fin"`
	Periodicidad    string  `json:"periodicidad"`
	RepeticionesMax *int64  `json:"repeticiones_max"`
	Estado          string  `json:"estado"`
	AsignadoA       *string `json:"asignado_a"`
	Notas           *string `json:"notas"`
	Imagen1URL      *string `json:"imagen_1_url"`
	Imagen2URL      *string `json:"imagen_2_url"`
	DistritoID      *int64  `json:"distrito_id"`
}

func (b *ejecucionRequest) validate() string {
	if b.IDPrograma <= 0 {
		return "id_programa is required"
	}
	if strings.TrimSpace(b.FechaInicio) == "" {
		return "fecha_inicio is required"
	}
	if b.Periodicidad == "" {
		b.Periodicidad = store.PeriodicidadUnica
	}
	if !store.ValidPeriodicidad(b.Periodicidad) {
		return fmt.Sprintf("periodicidad %q is not valid", b.Periodicidad)
	}
	if b.Estado == "" {
		b.Estado = store.EstadoPendiente
	}
	if !store.ValidEstado(b.Estado) {
		return fmt.Sprintf("estado %q is not valid", b.Estado)
	}
	return ""
}

func (b *ejecucionRequest) toModel() *store.Ejecucion {
	return &store.Ejecucion{
		IDPrograma:      b.IDPrograma,
		IDElemento:      b.IDElemento,
		FechaInicio:     b.FechaInicio,
		FechaFin:        b.FechaFin,
		Periodicidad:    b.Periodicidad,
		RepeticionesMax: b.RepeticionesMax,
		Estado:          b.Estado,
		AsignadoA:       b.AsignadoA,
		Notas:           b.Notas,
		Imagen1URL:      b.Imagen1URL,
		Imagen2URL:      b.Imagen2URL,
		DistritoID:      b.DistritoID,
	}
}

// List narrows visibility to the caller's own assignments unless the
// caller is an admin. The restriction lives in the store query.
func (h *EjecucionesHandler) List(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalFromContext(r.Context())
	if p == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var scope *string
	if !p.IsAdmin() {
		email := p.Email()
		scope = &email
	}
	items, err := h.ejecuciones.List(r.Context(), scope)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if items == nil {
		items = []store.Ejecucion{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *EjecucionesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body ejecucionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	id, err := h.ejecuciones.Create(r.Context(), body.toModel())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeCreated(w, id)
}

func (h *EjecucionesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var body ejecucionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err := h.ejecuciones.Update(r.Context(), id, body.toModel()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "ejecucion not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeSuccess(w)
}

func (h *EjecucionesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.ejecuciones.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeSuccess(w)
}
