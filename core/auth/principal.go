package auth

import (
	"context"

	"mintverde/core/rbac"
	"mintverde/core/store"
)

type contextKey string

// PrincipalContextKey carries the resolved principal through the handler
// chain. It is only ever set by the session middleware.
const PrincipalContextKey contextKey = "mintverde.principal"

// Principal is the provider identity plus the matching allow-list row.
type Principal struct {
	Identity *Identity
	Usuario  *store.Usuario
}

func (p *Principal) Role() string {
	if p != nil && p.Usuario != nil && p.Usuario.IsAdmin {
		return rbac.RoleAdmin
	}
	return rbac.RoleStaff
}

func (p *Principal) Email() string {
	if p == nil || p.Usuario == nil {
		return ""
	}
	return p.Usuario.Email
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Usuario != nil && p.Usuario.IsAdmin
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, PrincipalContextKey, p)
}

func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(PrincipalContextKey).(*Principal)
	return p
}
