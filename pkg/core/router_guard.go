package core

import (
	"net/http"

	manifest "github.com/joeydtaylor/steeze-items/pkg/manifest"
	"github.com/joeydtaylor/steeze-items/pkg/middleware/auth"
)

func withGuard(next http.HandlerFunc, a *auth.Middleware, g manifest.Guard) http.HandlerFunc {
	if g.Open() {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		// Without auth wired nobody can satisfy a guard.
		if a == nil {
			writeError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := r.Context()
		u := a.GetUser(ctx)
		if u.Username == "" {
			writeError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if len(g.Users) > 0 {
			for _, x := range g.Users {
				if u.Username == x {
					next(w, r)
					return
				}
			}
			writeError(w, "Forbidden", http.StatusForbidden)
			return
		}
		if len(g.Roles) > 0 {
			if a.IsAdmin(ctx) {
				next(w, r)
				return
			}
			for _, x := range g.Roles {
				if u.Role.Name == x {
					next(w, r)
					return
				}
			}
			writeError(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
