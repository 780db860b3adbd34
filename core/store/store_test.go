package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"mintverde/config"
	"mintverde/core/store"
	"mintverde/core/utils"
)

func newTestDB(t *testing.T) *config.AppConfig {
	t.Helper()
	return &config.AppConfig{
		DBDriver: store.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "test.db"),
	}
}

func openStore(t *testing.T) *storeSet {
	t.Helper()
	cfg := newTestDB(t)
	logger := utils.NewLogger()
	db, err := store.NewDB(cfg, logger)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.ApplyMigrations(context.Background(), db, cfg.DBDriver, logger); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return &storeSet{
		distritos:   store.NewDistritosStore(db),
		usuarios:    store.NewUsuariosStore(db),
		inventario:  store.NewInventarioStore(db),
		actuaciones: store.NewActuacionesStore(db),
		programas:   store.NewProgramasStore(db),
		ejecuciones: store.NewEjecucionesStore(db),
		admin:       store.NewAdminStore(db, cfg.DBDriver),
	}
}

type storeSet struct {
	distritos   store.DistritosStore
	usuarios    store.UsuariosStore
	inventario  store.InventarioStore
	actuaciones store.ActuacionesStore
	programas   store.ProgramasStore
	ejecuciones store.EjecucionesStore
	admin       store.AdminStore
}

func strPtr(s string) *string { return &s }
func intPtr(i int64) *int64   { return &i }

func TestDistritosCreateAndList(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	id, err := s.distritos.Create(ctx, "Centro")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected id 1, got %d", id)
	}
	items, err := s.distritos.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Nombre != "Centro" {
		t.Fatalf("unexpected list: %+v", items)
	}
	if items[0].CreatedAt.IsZero() || items[0].UpdatedAt.IsZero() {
		t.Fatalf("timestamps not populated: %+v", items[0])
	}
}

func TestUsuariosFindByEmail(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	if u, err := s.usuarios.FindByEmail(ctx, "nadie@example.com"); err != nil || u != nil {
		t.Fatalf("expected nil,nil for unknown email, got %v,%v", u, err)
	}
	if _, err := s.usuarios.Create(ctx, "Ana@Example.com", strPtr("Ana"), true); err != nil {
		t.Fatalf("create: %v", err)
	}
	u, err := s.usuarios.FindByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if u == nil || !u.IsAdmin || u.Email != "ana@example.com" {
		t.Fatalf("unexpected usuario: %+v", u)
	}
}

func TestUsuariosUpdateMissingReturnsNotFound(t *testing.T) {
	s := openStore(t)
	err := s.usuarios.Update(context.Background(), 42, strPtr("x"), false)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInventarioUpdateReplacesAndStampsUpdatedAt(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	id, err := s.inventario.Create(ctx, &store.Inventario{
		IDElemento:     "ARB-001",
		NombreElemento: "Plátano de sombra",
		TipoInventario: "Arbolado",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before, _ := s.inventario.List(ctx)
	if len(before) != 1 {
		t.Fatalf("expected one row, got %d", len(before))
	}
	err = s.inventario.Update(ctx, id, &store.Inventario{
		IDElemento:     "ARB-001",
		NombreElemento: "Plátano de paseo",
		TipoInventario: "Arbolado",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	after, _ := s.inventario.List(ctx)
	if after[0].NombreElemento != "Plátano de paseo" {
		t.Fatalf("update not applied: %+v", after[0])
	}
	if !after[0].CreatedAt.Equal(before[0].CreatedAt) {
		t.Fatalf("created_at changed on update")
	}
	if !after[0].UpdatedAt.After(before[0].UpdatedAt) {
		t.Fatalf("updated_at not advanced: before=%v after=%v", before[0].UpdatedAt, after[0].UpdatedAt)
	}
}

func TestInventarioDeleteIsIdempotent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	id, err := s.inventario.Create(ctx, &store.Inventario{
		IDElemento: "A", NombreElemento: "B", TipoInventario: "C",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.inventario.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.inventario.Delete(ctx, id); err != nil {
		t.Fatalf("second delete should not error: %v", err)
	}
	items, _ := s.inventario.List(ctx)
	if len(items) != 0 {
		t.Fatalf("expected empty list, got %d rows", len(items))
	}
}

func TestInventarioBulkCreateRollsBackOnFailure(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	err := s.inventario.BulkCreate(ctx, []store.Inventario{
		{IDElemento: "A1", NombreElemento: "Uno", TipoInventario: "Arbolado"},
		// References a missing distrito; foreign keys are enforced.
		{IDElemento: "A2", NombreElemento: "Dos", TipoInventario: "Arbolado", DistritoID: intPtr(999)},
	})
	if err == nil {
		t.Fatalf("expected bulk insert to fail")
	}
	items, listErr := s.inventario.List(ctx)
	if listErr != nil {
		t.Fatalf("list: %v", listErr)
	}
	if len(items) != 0 {
		t.Fatalf("expected rollback to remove all rows, got %d", len(items))
	}
}

func TestEjecucionesListScopesByAsignado(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	actID, _ := s.actuaciones.Create(ctx, &store.Actuacion{NombreActuacion: "Poda"})
	progID, _ := s.programas.Create(ctx, &store.Programa{NombrePrograma: "Poda 2024", IDActuacion: actID})
	mk := func(asignado string) {
		_, err := s.ejecuciones.Create(ctx, &store.Ejecucion{
			IDPrograma:   progID,
			FechaInicio:  "2024-02-01",
			Periodicidad: store.PeriodicidadUnica,
			Estado:       store.EstadoPendiente,
			AsignadoA:    strPtr(asignado),
		})
		if err != nil {
			t.Fatalf("create ejecucion: %v", err)
		}
	}
	mk("ana@example.com")
	mk("luis@example.com")
	all, err := s.ejecuciones.List(ctx, nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rows for admin scope, got %d", len(all))
	}
	mine, err := s.ejecuciones.List(ctx, strPtr("ana@example.com"))
	if err != nil {
		t.Fatalf("list scoped: %v", err)
	}
	if len(mine) != 1 || mine[0].AsignadoA == nil || *mine[0].AsignadoA != "ana@example.com" {
		t.Fatalf("scope filter leaked rows: %+v", mine)
	}

	// An empty email is a real scope value, not "no restriction".
	none, err := s.ejecuciones.List(ctx, strPtr(""))
	if err != nil {
		t.Fatalf("list empty scope: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("empty-email scope must match nothing, got %d rows", len(none))
	}
}

func TestEjecucionesListJoinsDisplayNames(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	distID, _ := s.distritos.Create(ctx, "Centro")
	actID, _ := s.actuaciones.Create(ctx, &store.Actuacion{NombreActuacion: "Poda", DistritoID: intPtr(distID)})
	progID, _ := s.programas.Create(ctx, &store.Programa{
		NombrePrograma: "Poda 2024", IDActuacion: actID, FechaInicio: strPtr("2024-01-01"),
	})
	elemID, _ := s.inventario.Create(ctx, &store.Inventario{
		IDElemento: "ARB-007", NombreElemento: "Olmo", TipoInventario: "Arbolado", DistritoID: intPtr(distID),
	})
	if _, err := s.ejecuciones.Create(ctx, &store.Ejecucion{
		IDPrograma:   progID,
		IDElemento:   intPtr(elemID),
		FechaInicio:  "2024-02-01",
		Periodicidad: store.PeriodicidadUnica,
		Estado:       store.EstadoPendiente,
		DistritoID:   intPtr(distID),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	rows, err := s.ejecuciones.List(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	e := rows[0]
	if e.NombrePrograma == nil || *e.NombrePrograma != "Poda 2024" {
		t.Fatalf("missing nombre_programa join: %+v", e)
	}
	if e.NombreActuacion == nil || *e.NombreActuacion != "Poda" {
		t.Fatalf("missing nombre_actuacion join: %+v", e)
	}
	if e.NombreElemento == nil || *e.NombreElemento != "Olmo" {
		t.Fatalf("missing nombre_elemento join: %+v", e)
	}
	if e.CodigoElemento == nil || *e.CodigoElemento != "ARB-007" {
		t.Fatalf("missing codigo_elemento join: %+v", e)
	}
	if e.DistritoNombre == nil || *e.DistritoNombre != "Centro" {
		t.Fatalf("missing distrito_nombre join: %+v", e)
	}
}

func TestListRepetiblesReturnsLatestCompletedOfSeries(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	actID, _ := s.actuaciones.Create(ctx, &store.Actuacion{NombreActuacion: "Riego"})
	progID, _ := s.programas.Create(ctx, &store.Programa{NombrePrograma: "Riego semanal", IDActuacion: actID})
	mk := func(fecha, estado string) {
		_, err := s.ejecuciones.Create(ctx, &store.Ejecucion{
			IDPrograma:   progID,
			FechaInicio:  fecha,
			Periodicidad: "Semanal",
			Estado:       estado,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	mk("2024-01-01", store.EstadoCompletada)
	mk("2024-01-08", store.EstadoCompletada)
	cands, err := s.ejecuciones.ListRepetibles(ctx, 10)
	if err != nil {
		t.Fatalf("repetibles: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("expected only the latest of the series, got %d", len(cands))
	}
	if cands[0].FechaInicio != "2024-01-08" || cands[0].SerieTotal != 2 {
		t.Fatalf("unexpected candidate: %+v", cands[0])
	}

	// A pending latest occurrence blocks the series.
	mk("2024-01-15", store.EstadoPendiente)
	cands, err = s.ejecuciones.ListRepetibles(ctx, 10)
	if err != nil {
		t.Fatalf("repetibles: %v", err)
	}
	if len(cands) != 0 {
		t.Fatalf("pending latest should block generation, got %+v", cands)
	}
}

func TestListRepetiblesBreaksDateTiesByID(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	actID, _ := s.actuaciones.Create(ctx, &store.Actuacion{NombreActuacion: "Riego"})
	progID, _ := s.programas.Create(ctx, &store.Programa{NombrePrograma: "Riego semanal", IDActuacion: actID})
	var lastID int64
	for i := 0; i < 2; i++ {
		id, err := s.ejecuciones.Create(ctx, &store.Ejecucion{
			IDPrograma:   progID,
			FechaInicio:  "2024-03-01",
			Periodicidad: "Semanal",
			Estado:       store.EstadoCompletada,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		lastID = id
	}
	cands, err := s.ejecuciones.ListRepetibles(ctx, 10)
	if err != nil {
		t.Fatalf("repetibles: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("same-date series must yield one candidate, got %d", len(cands))
	}
	if cands[0].ID != lastID || cands[0].SerieTotal != 2 {
		t.Fatalf("unexpected candidate: %+v", cands[0])
	}
}

func TestUsuariosCreateDuplicateEmail(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	if _, err := s.usuarios.Create(ctx, "ana@example.com", nil, false); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := s.usuarios.Create(ctx, "Ana@Example.com", nil, true)
	if !errors.Is(err, store.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAdminQueryAndTables(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	if _, err := s.usuarios.Create(ctx, "ana@example.com", nil, true); err != nil {
		t.Fatalf("create: %v", err)
	}
	rows, err := s.admin.Query(ctx, "SELECT email FROM usuarios LIMIT 1")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 1 || rows[0]["email"] != "ana@example.com" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if _, err := s.admin.Query(ctx, "SELEC broken"); err == nil {
		t.Fatalf("expected error for invalid sql")
	}
	tables, err := s.admin.Tables(ctx)
	if err != nil {
		t.Fatalf("tables: %v", err)
	}
	found := false
	for _, name := range tables {
		if name == "usuarios" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected usuarios in table list, got %v", tables)
	}
}
