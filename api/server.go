package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mintverde/api/handlers"
	"mintverde/config"
	"mintverde/core/auth"
	"mintverde/core/rbac"
	"mintverde/core/store"
	"mintverde/core/utils"
)

// BackgroundWorker is anything started alongside the HTTP server.
type BackgroundWorker interface {
	Start() error
	Stop()
}

type ServerDeps struct {
	Cfg         *config.AppConfig
	Logger      *utils.Logger
	Identity    auth.IdentityService
	Policy      *rbac.Policy
	Usuarios    store.UsuariosStore
	Distritos   store.DistritosStore
	Inventario  store.InventarioStore
	Actuaciones store.ActuacionesStore
	Programas   store.ProgramasStore
	Ejecuciones store.EjecucionesStore
	Admin       store.AdminStore
}

type Server struct {
	cfg         *config.AppConfig
	logger      *utils.Logger
	identity    auth.IdentityService
	policy      *rbac.Policy
	usuarios    store.UsuariosStore
	distritos   store.DistritosStore
	inventario  store.InventarioStore
	actuaciones store.ActuacionesStore
	programas   store.ProgramasStore
	ejecuciones store.EjecucionesStore
	admin       store.AdminStore
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		cfg:         deps.Cfg,
		logger:      deps.Logger,
		identity:    deps.Identity,
		policy:      deps.Policy,
		usuarios:    deps.Usuarios,
		distritos:   deps.Distritos,
		inventario:  deps.Inventario,
		actuaciones: deps.Actuaciones,
		programas:   deps.Programas,
		ejecuciones: deps.Ejecuciones,
		admin:       deps.Admin,
	}
}

type routeHandlers struct {
	auth        *handlers.AuthHandler
	distritos   *handlers.DistritosHandler
	usuarios    *handlers.UsuariosHandler
	inventario  *handlers.InventarioHandler
	actuaciones *handlers.ActuacionesHandler
	programas   *handlers.ProgramasHandler
	ejecuciones *handlers.EjecucionesHandler
	admin       *handlers.AdminHandler
}

func (s *Server) newRouteHandlers() routeHandlers {
	return routeHandlers{
		auth:        handlers.NewAuthHandler(s.cfg, s.identity, s.usuarios, s.logger),
		distritos:   handlers.NewDistritosHandler(s.distritos),
		usuarios:    handlers.NewUsuariosHandler(s.usuarios, s.logger),
		inventario:  handlers.NewInventarioHandler(s.inventario, s.logger),
		actuaciones: handlers.NewActuacionesHandler(s.actuaciones),
		programas:   handlers.NewProgramasHandler(s.programas),
		ejecuciones: handlers.NewEjecucionesHandler(s.ejecuciones),
		admin:       handlers.NewAdminHandler(s.admin, s.logger),
	}
}

func (s *Server) Router() http.Handler {
	h := s.newRouteHandlers()
	r := chi.NewRouter()
	r.Use(s.recoverMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.loggingMiddleware)

	withSession := s.withSession
	require := s.requirePermission

	// Session boundary: these run before a principal exists.
	r.MethodFunc(http.MethodGet, "/api/health", s.handleHealth)
	r.MethodFunc(http.MethodGet, "/api/oauth/google/redirect_url", h.auth.RedirectURL)
	r.MethodFunc(http.MethodPost, "/api/sessions", h.auth.CreateSession)
	r.MethodFunc(http.MethodGet, "/api/logout", h.auth.Logout)

	r.MethodFunc(http.MethodGet, "/api/users/me", withSession(h.auth.Me))

	r.MethodFunc(http.MethodGet, "/api/distritos", withSession(require(rbac.PermDistritos)(h.distritos.List)))
	r.MethodFunc(http.MethodPost, "/api/distritos", withSession(require(rbac.PermDistritos)(h.distritos.Create)))

	r.MethodFunc(http.MethodGet, "/api/usuarios", withSession(require(rbac.PermUsuarios)(h.usuarios.List)))
	r.MethodFunc(http.MethodPost, "/api/usuarios", withSession(require(rbac.PermUsuarios)(h.usuarios.Create)))
	r.MethodFunc(http.MethodPut, "/api/usuarios/{id:[0-9]+}", withSession(require(rbac.PermUsuarios)(h.usuarios.Update)))
	r.MethodFunc(http.MethodDelete, "/api/usuarios/{id:[0-9]+}", withSession(require(rbac.PermUsuarios)(h.usuarios.Delete)))

	r.MethodFunc(http.MethodGet, "/api/inventario", withSession(require(rbac.PermInventario)(h.inventario.List)))
	r.MethodFunc(http.MethodPost, "/api/inventario", withSession(require(rbac.PermInventario)(h.inventario.Create)))
	r.MethodFunc(http.MethodPost, "/api/inventario/bulk", withSession(require(rbac.PermBulkImport)(h.inventario.BulkCreate)))
	r.MethodFunc(http.MethodPut, "/api/inventario/{id:[0-9]+}", withSession(require(rbac.PermInventario)(h.inventario.Update)))
	r.MethodFunc(http.MethodDelete, "/api/inventario/{id:[0-9]+}", withSession(require(rbac.PermInventario)(h.inventario.Delete)))

	r.MethodFunc(http.MethodGet, "/api/actuaciones", withSession(require(rbac.PermActuaciones)(h.actuaciones.List)))
	r.MethodFunc(http.MethodPost, "/api/actuaciones", withSession(require(rbac.PermActuaciones)(h.actuaciones.Create)))
	r.MethodFunc(http.MethodPut, "/api/actuaciones/{id:[0-9]+}", withSession(require(rbac.PermActuaciones)(h.actuaciones.Update)))
	r.MethodFunc(http.MethodDelete, "/api/actuaciones/{id:[0-9]+}", withSession(require(rbac.PermActuaciones)(h.actuaciones.Delete)))

	r.MethodFunc(http.MethodGet, "/api/programas", withSession(require(rbac.PermProgramas)(h.programas.List)))
	r.MethodFunc(http.MethodPost, "/api/programas", withSession(require(rbac.PermProgramas)(h.programas.Create)))
	r.MethodFunc(http.MethodPut, "/api/programas/{id:[0-9]+}", withSession(require(rbac.PermProgramas)(h.programas.Update)))
	r.MethodFunc(http.MethodDelete, "/api/programas/{id:[0-9]+}", withSession(require(rbac.PermProgramas)(h.programas.Delete)))

	r.MethodFunc(http.MethodGet, "/api/ejecuciones", withSession(require(rbac.PermEjecuciones)(h.ejecuciones.List)))
	r.MethodFunc(http.MethodPost, "/api/ejecuciones", withSession(require(rbac.PermEjecuciones)(h.ejecuciones.Create)))
	r.MethodFunc(http.MethodPut, "/api/ejecuciones/{id:[0-9]+}", withSession(require(rbac.PermEjecuciones)(h.ejecuciones.Update)))
	r.MethodFunc(http.MethodDelete, "/api/ejecuciones/{id:[0-9]+}", withSession(require(rbac.PermEjecuciones)(h.ejecuciones.Delete)))

	r.MethodFunc(http.MethodPost, "/api/admin/query", withSession(require(rbac.PermAdminQuery)(h.admin.Query)))
	r.MethodFunc(http.MethodGet, "/api/admin/tables", withSession(require(rbac.PermAdminTables)(h.admin.Tables)))

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
