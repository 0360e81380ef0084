package auth

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ConfigFromEnv reads the auth settings, applying defaults.
func ConfigFromEnv() Config {
	leeway := 60 * time.Second
	if v := strings.TrimSpace(os.Getenv("ASSERTION_LEEWAY_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			leeway = time.Duration(n) * time.Second
		}
	}
	return Config{
		SessionAPI:       strings.TrimSpace(os.Getenv("SESSION_STATE_API")),
		CookieName:       strings.TrimSpace(os.Getenv("SESSION_COOKIE_NAME")),
		AdminRole:        strings.TrimSpace(os.Getenv("ADMIN_ROLE_NAME")),
		DevBypass:        os.Getenv("AUTH_DEV_BYPASS") == "true",
		AssertCookieName: strings.TrimSpace(os.Getenv("ASSERTION_COOKIE_NAME")),
		AssertKeyURL:     strings.TrimSpace(os.Getenv("ASSERTION_KEY_URL")),
		AssertKeyKID:     strings.TrimSpace(os.Getenv("ASSERTION_KEY_KID")),
		AssertIssuer:     strings.TrimSpace(os.Getenv("ASSERTION_ISSUER")),
		AssertAudience:   strings.TrimSpace(os.Getenv("ASSERTION_AUDIENCE")),
		AssertLeeway:     leeway,
	}
}

// ProvideAuthentication wires env config into a Middleware and ties the
// assertion key refresh loop to the app lifecycle. A failed first fetch is
// logged, not fatal.
func ProvideAuthentication(lc fx.Lifecycle, zl *zap.Logger) *Middleware {
	m := New(ConfigFromEnv(), WithLogger(zl))
	if m.cfg.AssertKeyURL == "" {
		return m
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			if err := m.refreshAssertionKey(startCtx); err != nil {
				zl.Warn("assertion key fetch failed", zap.String("url", m.cfg.AssertKeyURL), zap.Error(err))
			}
			go m.backgroundRefresh(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return m
}

var Module = fx.Options(
	fx.Provide(ProvideAuthentication),
)
