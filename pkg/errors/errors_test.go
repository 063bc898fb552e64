package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestElementErrorString(t *testing.T) {
	err := &ElementError{
		Op:   "core.AddChild",
		Kind: KindInvalidCoordinate,
		Err:  fmt.Errorf("x=%v", 1.5),
	}
	got := err.Error()
	want := "core.AddChild [invalid-coordinate]: x=1.5"
	if got != want {
		t.Errorf("ElementError.Error() = %q, want %q", got, want)
	}
}

func TestElementErrorWithElement(t *testing.T) {
	err := &ElementError{
		Op:      "core.RemoveChild",
		Kind:    KindNotChild,
		Element: "Paragraph#0a1b2",
	}
	got := err.Error()
	if !strings.Contains(got, "element=Paragraph#0a1b2") {
		t.Errorf("error string %q should contain element", got)
	}
	if !strings.Contains(got, ErrElementNotChild.Error()) {
		t.Errorf("error string %q should fall back to the sentinel message", got)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindUnknownElement, "unknown-element"},
		{KindInvalidCoordinate, "invalid-coordinate"},
		{KindInvalidEvent, "invalid-event"},
		{KindUnknownIcon, "unknown-icon"},
		{KindImageLoad, "image-load"},
		{KindMissingPort, "missing-port"},
		{KindNotChild, "not-child"},
		{KindMalformedStyle, "malformed-style"},
		{KindInvalidChild, "invalid-child"},
		{KindBridge, "bridge"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestElementErrorIs(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")
	err := fmt.Errorf("building button: %w", New("widgets.Image.Setup", KindImageLoad, "Image#12345", cause))

	if !stderrors.Is(err, ErrImageLoad) {
		t.Error("expected errors.Is(err, ErrImageLoad)")
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected the underlying cause to stay reachable")
	}
	if stderrors.Is(err, ErrInvalidCoordinate) {
		t.Error("kind sentinel of another kind must not match")
	}

	var ee *ElementError
	if !stderrors.As(err, &ee) {
		t.Fatal("expected errors.As to find *ElementError")
	}
	if ee.Timestamp.IsZero() {
		t.Error("New should stamp the error")
	}
}

func TestUnknownKindHasNoSentinel(t *testing.T) {
	if KindUnknown.Sentinel() != nil {
		t.Error("KindUnknown should have no sentinel")
	}
	err := &ElementError{Op: "x"}
	if stderrors.Is(err, ErrBridge) {
		t.Error("unknown kind must not match any sentinel")
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "bridge.Invoke"
	if got, want := err.Error(), "panic in bridge.Invoke: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured []*ElementError
	SetHandler(&testHandler{onError: func(err *ElementError) { captured = append(captured, err) }})
	defer SetHandler(nil)

	Report("test.op", &ElementError{Op: "bridge.Serve", Kind: KindBridge})
	Report("test.op", fmt.Errorf("wrapped: %w", New("core.Init", KindInvalidChild, "Body#3e561", nil)))
	Report("test.op", stderrors.New("plain"))
	Report("test.op", nil)

	if len(captured) != 3 {
		t.Fatalf("captured %d errors, want 3", len(captured))
	}
	if captured[0].Op != "bridge.Serve" || captured[0].Timestamp.IsZero() {
		t.Errorf("first = %+v, want op bridge.Serve with a timestamp", captured[0])
	}
	if captured[1].Kind != KindInvalidChild {
		t.Errorf("wrapped kind = %v, want %v", captured[1].Kind, KindInvalidChild)
	}
	if captured[2].Op != "test.op" || captured[2].Kind != KindUnknown {
		t.Errorf("plain error reported as %+v", captured[2])
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(nil)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
	if !strings.Contains(captured.StackTrace, "TestRecover") {
		t.Errorf("stack does not mention the panicking function:\n%s", captured.StackTrace)
	}
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(&testHandler{})
	SetHandler(nil)
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should restore LogHandler, got %T", Handler())
	}
}

func TestLogHandler(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := NewLogHandler(zap.New(core), true)

	h.HandleError(New("core.Init", KindUnknownElement, "DoesNotExist", nil))
	h.HandlePanic(&PanicError{Op: "bridge.Invoke", Value: "boom", StackTrace: "main.main"})
	h.HandleError(nil)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["kind"] != "unknown-element" {
		t.Errorf("kind field = %v, want unknown-element", fields["kind"])
	}
	if fields["element"] != "DoesNotExist" {
		t.Errorf("element field = %v", fields["element"])
	}
	if _, ok := entries[1].ContextMap()["stack"]; !ok {
		t.Error("verbose handler should log the stack")
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

type testHandler struct {
	onError func(*ElementError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *ElementError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
