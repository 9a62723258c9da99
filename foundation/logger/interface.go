package logger

import "context"

// LoggerInterface is the subset of Logger that collaborators depend on.
type LoggerInterface interface {
	Infow(string, ...any)
	Warnw(string, ...any)
	Errorw(string, ...any)
	Debugw(string, ...any)

	InfowCtx(context.Context, string, ...any)
	WarnwCtx(context.Context, string, ...any)
	ErrorwCtx(context.Context, string, ...any)
	DebugwCtx(context.Context, string, ...any)

	With(...any) LoggerInterface
	SafeSync()
}
