// bundlefx/bundlefx.go
package bundlefx

import (
	"github.com/joeydtaylor/steeze-items/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-items/pkg/middleware/logger"
	"github.com/joeydtaylor/steeze-items/pkg/middleware/metrics"
	"go.uber.org/fx"
)

// Module provides the HTTP middleware stack: identity, access/system
// logging and the named metrics handler.
var Module = fx.Options(
	auth.Module,
	logger.Module,
	metrics.Module,
)
