package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const minKeyTTL = 5 * time.Second

// backgroundRefresh re-fetches the assertion key every cache TTL until ctx ends.
func (m *Middleware) backgroundRefresh(ctx context.Context) {
	for {
		t := time.NewTimer(max(m.getCacheTTL(), minKeyTTL))
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
		if err := m.refreshAssertionKey(ctx); err != nil && ctx.Err() == nil {
			m.log.Warn("assertion key refresh failed", zap.String("url", m.cfg.AssertKeyURL), zap.Error(err))
		}
	}
}

// refreshAssertionKey fetches the verification key (PEM or JWKS), revalidating
// with the stored ETag. A 304 keeps the current key.
func (m *Middleware) refreshAssertionKey(ctx context.Context) error {
	url := m.cfg.AssertKeyURL
	if url == "" {
		return errors.New("ASSERTION_KEY_URL not set")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json, application/x-pem-file, */*")

	m.mu.RLock()
	etag, have := m.assertETag, m.assertKey != nil
	m.mu.RUnlock()
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	res, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var pub *rsa.PublicKey
	switch {
	case res.StatusCode == http.StatusNotModified && have:
	case res.StatusCode >= 200 && res.StatusCode < 300:
		body, err := io.ReadAll(res.Body)
		if err != nil {
			return err
		}
		if isJWKS(res.Header.Get("Content-Type"), url) {
			pub, err = keyFromJWKS(body, m.cfg.AssertKeyKID)
		} else {
			pub, err = jwt.ParseRSAPublicKeyFromPEM(body)
		}
		if err != nil {
			return fmt.Errorf("key fetch %s: %w", url, err)
		}
	default:
		return fmt.Errorf("key fetch %s: %s", url, res.Status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if pub != nil {
		m.assertKey = pub
		m.assertETag = res.Header.Get("ETag")
	}
	if ttl, ok := maxAge(res.Header); ok {
		m.cacheTTL = ttl
	}
	m.lastFetch = time.Now()
	return nil
}

func isJWKS(contentType, url string) bool {
	return strings.Contains(strings.ToLower(contentType), "application/json") ||
		strings.HasSuffix(strings.ToLower(url), ".json")
}

type jwk struct {
	Kty string `json:"kty"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// usable reports whether k can verify RS256 signatures, matching kid when set.
func (k jwk) usable(kid string) bool {
	if k.Kty != "RSA" {
		return false
	}
	if kid != "" {
		return k.Kid == kid
	}
	return (k.Use == "" || k.Use == "sig") && (k.Alg == "" || strings.EqualFold(k.Alg, "RS256"))
}

func (k jwk) publicKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("bad jwks.n: %w", err)
	}
	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("bad jwks.e: %w", err)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(n), E: exponent(e)}, nil
}

func keyFromJWKS(b []byte, kid string) (*rsa.PublicKey, error) {
	var set struct {
		Keys []jwk `json:"keys"`
	}
	if err := json.Unmarshal(b, &set); err != nil {
		return nil, err
	}
	for _, k := range set.Keys {
		if k.usable(kid) {
			return k.publicKey()
		}
	}
	return nil, errors.New("no suitable RSA key in JWKS")
}

// exponent decodes a big-endian RSA exponent; empty means 65537.
func exponent(b []byte) int {
	n := 0
	for _, v := range b {
		n = n<<8 | int(v)
	}
	if n == 0 {
		return 65537
	}
	return n
}

// maxAge extracts a Cache-Control max-age of at least minKeyTTL.
func maxAge(h http.Header) (time.Duration, bool) {
	for _, p := range strings.Split(h.Get("Cache-Control"), ",") {
		v, ok := strings.CutPrefix(strings.ToLower(strings.TrimSpace(p)), "max-age=")
		if !ok {
			continue
		}
		if s, err := strconv.Atoi(v); err == nil && time.Duration(s)*time.Second >= minKeyTTL {
			return time.Duration(s) * time.Second, true
		}
	}
	return 0, false
}

func (m *Middleware) getKey() *rsa.PublicKey {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.assertKey
}

func (m *Middleware) getCacheTTL() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cacheTTL
}

// KeyFetchedAt reports when the assertion key was last fetched or revalidated.
func (m *Middleware) KeyFetchedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastFetch
}
