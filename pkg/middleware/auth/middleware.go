package auth

import (
	"crypto/rsa"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Config holds everything the middleware reads from the environment.
type Config struct {
	SessionAPI string // SESSION_STATE_API
	CookieName string // SESSION_COOKIE_NAME
	AdminRole  string // ADMIN_ROLE_NAME
	DevBypass  bool   // AUTH_DEV_BYPASS=true; never in prod

	AssertCookieName string        // ASSERTION_COOKIE_NAME, default "assert"
	AssertKeyURL     string        // ASSERTION_KEY_URL, JWKS or PEM
	AssertKeyKID     string        // ASSERTION_KEY_KID
	AssertIssuer     string        // ASSERTION_ISSUER
	AssertAudience   string        // ASSERTION_AUDIENCE
	AssertLeeway     time.Duration // ASSERTION_LEEWAY_SECONDS, default 60s
}

type Middleware struct {
	httpClient HTTPDoer
	log        *zap.Logger
	cfg        Config

	// guarded by mu
	mu         sync.RWMutex
	assertKey  *rsa.PublicKey
	assertETag string
	cacheTTL   time.Duration
	lastFetch  time.Time
}

type Option func(*Middleware)

// WithHTTPClient swaps the client used for key and session lookups.
func WithHTTPClient(c HTTPDoer) Option { return func(m *Middleware) { m.httpClient = c } }

// WithLogger sets the logger used for key refresh failures.
func WithLogger(l *zap.Logger) Option { return func(m *Middleware) { m.log = l } }

// WithAssertionKey installs a verification key directly, bypassing fetch.
func WithAssertionKey(k *rsa.PublicKey) Option { return func(m *Middleware) { m.assertKey = k } }

// New builds a Middleware from cfg. No network calls are made here.
func New(cfg Config, opts ...Option) *Middleware {
	if cfg.AssertCookieName == "" {
		cfg.AssertCookieName = "assert"
	}
	m := &Middleware{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
			Timeout: 8 * time.Second,
		},
		log:      zap.NewNop(),
		cfg:      cfg,
		cacheTTL: 1 * time.Hour, // default; overridable by Cache-Control
	}
	for _, o := range opts {
		o(m)
	}
	return m
}
