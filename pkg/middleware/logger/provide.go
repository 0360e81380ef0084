package logger

import "go.uber.org/zap"

func ProvideLoggerMiddleware() *Middleware {
	return NewMiddleware(newAccessLog(LogDir(), "http-access.log"))
}

func ProvideLogger() *zap.Logger { return NewLog(LogDir(), "system.log") }
