package store

import "time"

// Periodicidad and Estado are closed enumerations; anything else is a
// client error at the API boundary.
var Periodicidades = []string{"Única", "Diaria", "Semanal", "Quincenal", "Mensual", "Anual"}

var Estados = []string{"Pendiente", "En Progreso", "Completada", "Completado-Informado Mint", "Cancelada"}

const (
	PeriodicidadUnica = "Única"
	EstadoPendiente   = "Pendiente"
	EstadoCompletada  = "Completada"
)

func ValidPeriodicidad(v string) bool {
	for _, p := range Periodicidades {
		if p == v {
			return true
		}
	}
	return false
}

func ValidEstado(v string) bool {
	for _, e := range Estados {
		if e == v {
			return true
		}
	}
	return false
}

type Distrito struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Usuario struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Nombre    *string   `json:"nombre"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Inventario is one inventoried element (table mint_sve). IDElemento is
// the external element code, not a foreign key.
type Inventario struct {
	ID             int64     `json:"id"`
	IDElemento     string    `json:"id_elemento"`
	NombreElemento string    `json:"nombre_elemento"`
	TipoInventario string    `json:"tipo_inventario"`
	DistritoID     *int64    `json:"distrito_id"`
	DistritoNombre *string   `json:"distrito_nombre,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Actuacion struct {
	ID              int64     `json:"id"`
	NombreActuacion string    `json:"nombre_actuacion"`
	DistritoID      *int64    `json:"distrito_id"`
	DistritoNombre  *string   `json:"distrito_nombre,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Programa struct {
	ID              int64     `json:"id"`
	NombrePrograma  string    `json:"nombre_programa"`
	IDActuacion     int64     `json:"id_actuacion"`
	FechaInicio     *string   `json:"fecha_inicio"`
	FechaFin        *string   `json:"fecha_fin"`
	DistritoID      *int64    `json:"distrito_id"`
	NombreActuacion *string   `json:"nombre_actuacion,omitempty"`
	DistritoNombre  *string   `json:"distrito_nombre,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Ejecucion is one scheduled occurrence of a programa (table
// ejecuciones_programadas). The Nombre*/Codigo* fields are display joins
// populated by List only.
type Ejecucion struct {
	ID              int64   `json:"id"`
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

	NombrePrograma  *string `json:"nombre_programa,omitempty"`
	IDActuacion     *int64  `json:"id_actuacion,omitempty"`
	NombreActuacion *string `json:"nombre_actuacion,omitempty"`
	NombreElemento  *string `json:"nombre_elemento,omitempty"`
	CodigoElemento  *string `json:"codigo_elemento,omitempty"`
	TipoInventario  *string `json:"tipo_inventario,omitempty"`
	DistritoNombre  *string `json:"distrito_nombre,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EjecucionSerie is a recurrence candidate: the latest completed
// occurrence of its series plus the count of occurrences so far.
type EjecucionSerie struct {
	Ejecucion
	SerieTotal int64 `json:"serie_total"`
}
