package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"mintverde/core/store"
	"mintverde/core/utils"
)

type InventarioHandler struct {
	inventario store.InventarioStore
	logger     *utils.Logger
}

func NewInventarioHandler(inventario store.InventarioStore, logger *utils.Logger) *InventarioHandler {
	return &InventarioHandler{inventario: inventario, logger: logger}
}

type inventarioRequest struct {
	IDElemento     string `json:"id_elemento"`
	NombreElemento string `json:"nombre_elemento"`
	TipoInventario string `json:"tipo_inventario"`
	DistritoID     *int64 `json:"distrito_id"`
}

func (b *inventarioRequest) validate() string {
	if strings.TrimSpace(b.IDElemento) == "" {
		return "id_elemento is required"
	}
	if strings.TrimSpace(b.NombreElemento) == "" {
		return "nombre_elemento is required"
	}
	if strings.TrimSpace(b.TipoInventario) == "" {
		return "tipo_inventario is required"
	}
	return ""
}

func (b *inventarioRequest) toModel() *store.Inventario {
	return &store.Inventario{
		IDElemento:     b.IDElemento,
		NombreElemento: b.NombreElemento,
		TipoInventario: b.TipoInventario,
		DistritoID:     b.DistritoID,
	}
}

func (h *InventarioHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventario.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if items == nil {
		items = []store.Inventario{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *InventarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body inventarioRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	id, err := h.inventario.Create(r.Context(), body.toModel())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeCreated(w, id)
}

func (h *InventarioHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var body inventarioRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err := h.inventario.Update(r.Context(), id, body.toModel()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "elemento not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeSuccess(w)
}

func (h *InventarioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.inventario.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeSuccess(w)
}

// BulkCreate imports a whole batch in a single transaction: either every
// row lands or none does.
func (h *InventarioHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var bodies []inventarioRequest
	if err := json.NewDecoder(r.Body).Decode(&bodies); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(bodies) == 0 {
		writeError(w, http.StatusBadRequest, "empty batch")
		return
	}
	items := make([]store.Inventario, 0, len(bodies))
	for i := range bodies {
		if msg := bodies[i].validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		items = append(items, *bodies[i].toModel())
	}
	if err := h.inventario.BulkCreate(r.Context(), items); err != nil {
		if h.logger != nil {
			h.logger.Errorf("INVENTARIO bulk n=%d: %v", len(items), err)
		}
		writeError(w, http.StatusBadRequest, "bulk import failed, no rows inserted")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "count": len(items)})
}
