package errors

import (
	stderrors "errors"
	"runtime/debug"
	"sync"
	"time"
)

// global holds the process-wide handler. A nil handler is the zero LogHandler.
var global struct {
	mu sync.RWMutex
	h  ErrorHandler
}

// SetHandler installs h as the process-wide handler for failures that have
// no caller to return to, such as callback errors on the bridge. Nil
// restores the default, which discards everything.
func SetHandler(h ErrorHandler) {
	global.mu.Lock()
	global.h = h
	global.mu.Unlock()
}

// Handler returns the installed handler.
func Handler() ErrorHandler {
	global.mu.RLock()
	defer global.mu.RUnlock()
	if global.h == nil {
		return &LogHandler{}
	}
	return global.h
}

// Report hands err to the installed handler. An error that is not an
// ElementError is reported under op with KindUnknown.
func Report(op string, err error) {
	if err == nil {
		return
	}
	var ee *ElementError
	if !stderrors.As(err, &ee) {
		ee = New(op, KindUnknown, "", err)
	}
	if ee.Timestamp.IsZero() {
		ee.Timestamp = time.Now()
	}
	Handler().HandleError(ee)
}

// NewPanic describes a recovered panic value, capturing the current stack.
func NewPanic(op string, value any) *PanicError {
	return &PanicError{
		Op:         op,
		Value:      value,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
}

// ReportPanic hands a recovered panic to the installed handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// Recover reports a panic of the calling goroutine under op and stops it
// from unwinding further. Use it directly in a defer statement:
//
//	defer errors.Recover("bridge.ServeConn")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(NewPanic(op, r))
	}
}

// CaptureStack returns the stack of the calling goroutine.
func CaptureStack() string {
	return string(debug.Stack())
}
