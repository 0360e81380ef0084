package core

import (
	"net/http"

	"github.com/joeydtaylor/steeze-items/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-items/pkg/middleware/logger"
	httpx "github.com/joeydtaylor/steeze-items/pkg/transport/httpx"
	"go.uber.org/zap"
)

type BuildDeps struct {
	Auth     *auth.Middleware
	LogMW    *logger.Middleware
	Metrics  http.Handler
	Router   httpx.Router
	Handlers *Handlers
	Health   http.HandlerFunc
	Logger   *zap.Logger
}

func (d BuildDeps) log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
