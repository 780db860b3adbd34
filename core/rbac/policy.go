package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

type Permission string

const (
	PermDistritos   Permission = "distritos.manage"
	PermInventario  Permission = "inventario.manage"
	PermActuaciones Permission = "actuaciones.manage"
	PermProgramas   Permission = "programas.manage"
	PermEjecuciones Permission = "ejecuciones.manage"
	PermUsuarios    Permission = "usuarios.manage"
	PermBulkImport  Permission = "inventario.bulk"
	PermAdminQuery  Permission = "admin.query"
	PermAdminTables Permission = "admin.tables"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

const modelText = `
[request_definition]
r = sub, perm

[policy_definition]
p = sub, perm

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.perm == p.perm
`

// staffPermissions are granted to every allow-listed user; admin inherits
// them and adds the admin-only set.
var staffPermissions = []Permission{
	PermDistritos,
	PermInventario,
	PermActuaciones,
	PermProgramas,
	PermEjecuciones,
}

var adminPermissions = []Permission{
	PermUsuarios,
	PermBulkImport,
	PermAdminQuery,
	PermAdminTables,
}

// Policy answers per-operation authorization questions. Row-level
// visibility (ejecuciones scoped to the assignee) is not decided here; it
// is pushed into the store query.
type Policy struct {
	enforcer *casbin.Enforcer
}

func NewPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	for _, perm := range staffPermissions {
		if _, err := e.AddPolicy(RoleStaff, string(perm)); err != nil {
			return nil, err
		}
	}
	for _, perm := range adminPermissions {
		if _, err := e.AddPolicy(RoleAdmin, string(perm)); err != nil {
			return nil, err
		}
	}
	if _, err := e.AddGroupingPolicy(RoleAdmin, RoleStaff); err != nil {
		return nil, err
	}
	return &Policy{enforcer: e}, nil
}

func (p *Policy) Allowed(role string, perm Permission) bool {
	if p == nil || p.enforcer == nil {
		return false
	}
	ok, err := p.enforcer.Enforce(role, string(perm))
	return err == nil && ok
}
