package appbootstrap

import (
	"database/sql"

	"mintverde/api"
	"mintverde/config"
	"mintverde/core/auth"
	"mintverde/core/rbac"
	"mintverde/core/scheduler"
	"mintverde/core/store"
	"mintverde/core/utils"
)

type Runtime struct {
	Server  *api.Server
	Workers []api.BackgroundWorker
}

func ComposeRuntime(cfg *config.AppConfig, db *sql.DB, logger *utils.Logger) (*Runtime, error) {
	policy, err := rbac.NewPolicy()
	if err != nil {
		return nil, err
	}
	usuarios := store.NewUsuariosStore(db)
	distritos := store.NewDistritosStore(db)
	inventario := store.NewInventarioStore(db)
	actuaciones := store.NewActuacionesStore(db)
	programas := store.NewProgramasStore(db)
	ejecuciones := store.NewEjecucionesStore(db)
	admin := store.NewAdminStore(db, cfg.DBDriver)
	identity := auth.NewIdentityClient(cfg.Identity)

	server := api.NewServer(api.ServerDeps{
		Cfg:         cfg,
		Logger:      logger,
		Identity:    identity,
		Policy:      policy,
		Usuarios:    usuarios,
		Distritos:   distritos,
		Inventario:  inventario,
		Actuaciones: actuaciones,
		Programas:   programas,
		Ejecuciones: ejecuciones,
		Admin:       admin,
	})

	recurrence := scheduler.NewRecurrenceScheduler(cfg.Scheduler, ejecuciones, logger)
	return &Runtime{
		Server:  server,
		Workers: []api.BackgroundWorker{recurrence},
	}, nil
}
