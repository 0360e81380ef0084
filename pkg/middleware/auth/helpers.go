package auth

import "context"

type contextKey struct{ name string }

var userCtxKey = &contextKey{"user"}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}

// GetUser is nil-safe so callers holding an optional *Middleware need no check.
func (m *Middleware) GetUser(ctx context.Context) User {
	if user, ok := ctx.Value(userCtxKey).(User); ok {
		return user
	}
	return User{}
}

func (m *Middleware) IsRole(ctx context.Context, role Role) bool {
	if u, ok := ctx.Value(userCtxKey).(User); ok {
		return u.Role.Name == role.Name || m.isAdminRole(u.Role.Name)
	}
	return false
}

func (m *Middleware) IsAdmin(ctx context.Context) bool {
	if u, ok := ctx.Value(userCtxKey).(User); ok {
		return m.isAdminRole(u.Role.Name)
	}
	return false
}

func (m *Middleware) IsUser(ctx context.Context, username string) bool {
	if u, ok := ctx.Value(userCtxKey).(User); ok {
		return u.Username == username || m.isAdminRole(u.Role.Name)
	}
	return false
}

func (m *Middleware) IsAuthenticated(ctx context.Context) bool {
	u, ok := ctx.Value(userCtxKey).(User)
	return ok && u.Username != ""
}

func (m *Middleware) isAdminRole(name string) bool {
	return m != nil && m.cfg.AdminRole != "" && name == m.cfg.AdminRole
}
