package logger

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Provide(ProvideLoggerMiddleware),
	fx.Provide(ProvideLogger),
	// route fx's own lifecycle events through the system logger
	fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: l.Named("fx")}
	}),
	fx.Invoke(syncOnStop),
)

func syncOnStop(lc fx.Lifecycle, l *zap.Logger) {
	lc.Append(fx.StopHook(func() { _ = l.Sync() }))
}
