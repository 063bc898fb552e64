package errors

import (
	"go.uber.org/zap"
)

// LogHandler is an ErrorHandler that writes through a zap logger.
// The zero value discards everything.
type LogHandler struct {
	// Logger receives the entries. Nil means zap.NewNop().
	Logger *zap.Logger
	// Verbose attaches stack traces to panic entries.
	Verbose bool
}

// NewLogHandler returns a LogHandler writing to logger.
func NewLogHandler(logger *zap.Logger, verbose bool) *LogHandler {
	return &LogHandler{Logger: logger, Verbose: verbose}
}

func (h *LogHandler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

// HandleError logs an ElementError.
func (h *LogHandler) HandleError(err *ElementError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.cause()),
	}
	if err.Element != "" {
		fields = append(fields, zap.String("element", err.Element))
	}
	h.logger().Error("electripy error", fields...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error("electripy panic", fields...)
}
