package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	k, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return k
}

func sign(t *testing.T, k *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(k)
	require.NoError(t, err)
	return s
}

// serve runs the middleware and returns the user seen by the next handler.
func serve(m *Middleware, req *http.Request) (User, *httptest.ResponseRecorder) {
	var seen User
	h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = m.GetUser(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return seen, w
}

func TestMiddleware_AssertionCookie(t *testing.T) {
	k := newKey(t)
	m := New(Config{AssertIssuer: "issuer", AssertAudience: "items"}, WithAssertionKey(&k.PublicKey))

	tok := sign(t, k, jwt.MapClaims{
		"iss":  "issuer",
		"aud":  []string{"items"},
		"uid":  "alice",
		"role": "editor",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Minute).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "assert", Value: tok})

	u, w := serve(m, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "editor", u.Role.Name)
	assert.Equal(t, "assert", u.AuthenticationSource.Provider)
}

func TestMiddleware_AssertionRejectedFallsThroughAnonymous(t *testing.T) {
	k := newKey(t)
	m := New(Config{AssertAudience: "items"}, WithAssertionKey(&k.PublicKey))

	tests := map[string]jwt.MapClaims{
		"wrong audience": {"aud": "other", "uid": "bob", "exp": time.Now().Add(time.Minute).Unix()},
		"expired":        {"aud": "items", "uid": "bob", "exp": time.Now().Add(-time.Hour).Unix()},
		"missing uid":    {"aud": "items", "exp": time.Now().Add(time.Minute).Unix()},
	}
	for name, claims := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: "assert", Value: sign(t, k, claims)})

			u, w := serve(m, req)
			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Empty(t, u.Username)
		})
	}
}

func TestMiddleware_SessionAPI(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("sid")
		if err != nil || c.Value != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(User{Username: "carol", Role: Role{Name: "admin"}})
	}))
	defer api.Close()

	m := New(Config{SessionAPI: api.URL, CookieName: "sid", AdminRole: "admin"}, WithHTTPClient(api.Client()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "good"})
	u, w := serve(m, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "carol", u.Username)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "bad"})
	_, w = serve(m, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Unauthorized"}`, w.Body.String())

	_, w = serve(m, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMiddleware_DevBypass(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Dev-User", "dev")
	req.Header.Set("X-Dev-Role", "ops")

	u, _ := serve(New(Config{DevBypass: true}), req)
	assert.Equal(t, "dev", u.Username)
	assert.Equal(t, "ops", u.Role.Name)

	u, _ = serve(New(Config{}), req)
	assert.Empty(t, u.Username)
}

func TestPredicates(t *testing.T) {
	m := New(Config{AdminRole: "admin"})
	ctx := WithUser(context.Background(), User{Username: "ann", Role: Role{Name: "admin"}})

	assert.True(t, m.IsAuthenticated(ctx))
	assert.True(t, m.IsAdmin(ctx))
	assert.True(t, m.IsRole(ctx, Role{Name: "viewer"}))
	assert.True(t, m.IsUser(ctx, "someone-else"))

	anon := context.Background()
	assert.False(t, m.IsAuthenticated(anon))
	assert.False(t, m.IsAdmin(anon))

	var nilM *Middleware
	assert.Equal(t, "ann", nilM.GetUser(ctx).Username)
	assert.False(t, nilM.IsAdmin(ctx))
}

func TestRefreshAssertionKey_PEM(t *testing.T) {
	k := newKey(t)
	der, err := x509.MarshalPKIXPublicKey(&k.PublicKey)
	require.NoError(t, err)
	body := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		w.Header().Set("Cache-Control", "public, max-age=120")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	m := New(Config{AssertKeyURL: srv.URL + "/key.pem"}, WithHTTPClient(srv.Client()))
	require.NoError(t, m.refreshAssertionKey(context.Background()))
	assert.True(t, m.getKey().Equal(&k.PublicKey))
	assert.Equal(t, 120*time.Second, m.getCacheTTL())
	first := m.KeyFetchedAt()
	assert.False(t, first.IsZero())

	require.NoError(t, m.refreshAssertionKey(context.Background()))
	assert.Equal(t, 2, calls)
	assert.True(t, m.getKey().Equal(&k.PublicKey))
}

func TestRefreshAssertionKey_JWKS(t *testing.T) {
	k := newKey(t)
	other := newKey(t)
	enc := func(pk *rsa.PublicKey) map[string]string {
		return map[string]string{
			"kty": "RSA",
			"kid": "",
			"n":   base64.RawURLEncoding.EncodeToString(pk.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pk.E)).Bytes()),
		}
	}
	a, b := enc(&other.PublicKey), enc(&k.PublicKey)
	a["kid"], b["kid"] = "old", "current"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"keys": []map[string]string{a, b}})
	}))
	defer srv.Close()

	m := New(Config{AssertKeyURL: srv.URL, AssertKeyKID: "current"}, WithHTTPClient(srv.Client()))
	require.NoError(t, m.refreshAssertionKey(context.Background()))
	assert.True(t, m.getKey().Equal(&k.PublicKey))

	m = New(Config{AssertKeyURL: srv.URL, AssertKeyKID: "missing"}, WithHTTPClient(srv.Client()))
	assert.Error(t, m.refreshAssertionKey(context.Background()))
}

func TestRefreshAssertionKey_Errors(t *testing.T) {
	assert.Error(t, New(Config{}).refreshAssertionKey(context.Background()))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	m := New(Config{AssertKeyURL: srv.URL}, WithHTTPClient(srv.Client()))
	assert.Error(t, m.refreshAssertionKey(context.Background()))
	assert.Nil(t, m.getKey())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("AUTH_DEV_BYPASS", "true")
	t.Setenv("ASSERTION_LEEWAY_SECONDS", "5")
	t.Setenv("ADMIN_ROLE_NAME", " admin ")

	cfg := ConfigFromEnv()
	assert.True(t, cfg.DevBypass)
	assert.Equal(t, 5*time.Second, cfg.AssertLeeway)
	assert.Equal(t, "admin", cfg.AdminRole)
	assert.Equal(t, "assert", New(cfg).cfg.AssertCookieName)
}
