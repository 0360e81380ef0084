package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Middleware resolves the caller identity and stores it on the request
// context. Anonymous requests pass through; only a rejected session cookie
// short-circuits with 401.
func (m *Middleware) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.cfg.DevBypass {
				if u := devUserFromHeaders(r); u.Username != "" {
					next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
					return
				}
			}

			// 1) If assertion cookie present, validate locally
			if ac, _ := r.Cookie(m.cfg.AssertCookieName); ac != nil && ac.Value != "" && m.getKey() != nil {
				if u, err := m.validateAssertion(ac.Value); err == nil {
					next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
					return
				}
				// fall through on error; do not 401 yet
			}

			// 2) Fallback to session API if session cookie present
			if m.cfg.CookieName != "" {
				if c, err := r.Cookie(m.cfg.CookieName); err == nil && c.Value != "" {
					if u, err := m.validateSession(r.Context(), c); err == nil && u.Username != "" {
						next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
						return
					}
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					_, _ = w.Write([]byte(`{"success":false,"error":"Unauthorized"}`))
					return
				}
			}

			// 3) No cookies; continue unauthenticated
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) validateSession(ctx context.Context, c *http.Cookie) (User, error) {
	if m.cfg.SessionAPI == "" {
		return User{}, errors.New("SESSION_STATE_API not set")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.cfg.SessionAPI, nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.AddCookie(c)

	res, err := m.httpClient.Do(req)
	if err != nil {
		return User{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("session api status %d", res.StatusCode)
	}

	var u User
	if err := json.NewDecoder(res.Body).Decode(&u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Dev-only user injection via headers when AUTH_DEV_BYPASS=true
func devUserFromHeaders(r *http.Request) User {
	user := r.Header.Get("X-Dev-User")
	if user == "" {
		return User{}
	}
	return User{
		Username:             user,
		AuthenticationSource: AuthenticationSource{Provider: r.Header.Get("X-Dev-Provider")},
		Role:                 Role{Name: r.Header.Get("X-Dev-Role")},
	}
}
