// Package errors provides structured error handling for electripy.
//
// Every failure raised while building an element tree is an [*ElementError]
// carrying an [ErrorKind]. Callers match kinds with the standard library:
//
//	if errors.Is(err, electripyerrors.ErrInvalidCoordinate) { ... }
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindUnknownElement indicates construction with an unregistered element name.
	KindUnknownElement
	// KindInvalidCoordinate indicates a normalized position outside [0,1].
	KindInvalidCoordinate
	// KindInvalidEvent indicates an unrecognized callback event type.
	KindInvalidEvent
	// KindUnknownIcon indicates a Button icon lookup miss.
	KindUnknownIcon
	// KindImageLoad indicates an image fetch or decode failure.
	KindImageLoad
	// KindMissingPort indicates a launcher started without both ports.
	KindMissingPort
	// KindNotChild indicates removal of an element that is not a child.
	KindNotChild
	// KindMalformedStyle indicates a serialized style entry without a property.
	KindMalformedStyle
	// KindInvalidChild indicates an attachment that would break the tree.
	KindInvalidChild
	// KindBridge indicates a failure on the frontend bridge.
	KindBridge
)

// Sentinel errors, one per kind. [ElementError.Is] matches them.
var (
	ErrUnknownElementKind       = stderrors.New("unknown element kind")
	ErrInvalidCoordinate        = stderrors.New("normalized coordinates must be in [0,1]")
	ErrInvalidEventType         = stderrors.New("invalid event type")
	ErrUnknownIconName          = stderrors.New("unknown icon name")
	ErrImageLoad                = stderrors.New("image could not be loaded")
	ErrMissingPortConfiguration = stderrors.New("both ports must be specified")
	ErrElementNotChild          = stderrors.New("element is not a child")
	ErrMalformedStyleEntry      = stderrors.New("malformed style entry")
	ErrInvalidChild             = stderrors.New("invalid child element")
	ErrBridge                   = stderrors.New("bridge failure")
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnknownElement:
		return "unknown-element"
	case KindInvalidCoordinate:
		return "invalid-coordinate"
	case KindInvalidEvent:
		return "invalid-event"
	case KindUnknownIcon:
		return "unknown-icon"
	case KindImageLoad:
		return "image-load"
	case KindMissingPort:
		return "missing-port"
	case KindNotChild:
		return "not-child"
	case KindMalformedStyle:
		return "malformed-style"
	case KindInvalidChild:
		return "invalid-child"
	case KindBridge:
		return "bridge"
	default:
		return "unknown"
	}
}

// Sentinel returns the sentinel error for the kind, or nil for KindUnknown.
func (k ErrorKind) Sentinel() error {
	switch k {
	case KindUnknownElement:
		return ErrUnknownElementKind
	case KindInvalidCoordinate:
		return ErrInvalidCoordinate
	case KindInvalidEvent:
		return ErrInvalidEventType
	case KindUnknownIcon:
		return ErrUnknownIconName
	case KindImageLoad:
		return ErrImageLoad
	case KindMissingPort:
		return ErrMissingPortConfiguration
	case KindNotChild:
		return ErrElementNotChild
	case KindMalformedStyle:
		return ErrMalformedStyleEntry
	case KindInvalidChild:
		return ErrInvalidChild
	case KindBridge:
		return ErrBridge
	default:
		return nil
	}
}

// ElementError represents a structured error raised while building or
// serving an element tree.
type ElementError struct {
	// Op is the operation that failed (e.g., "core.AddChild").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Element names the element involved, if any (e.g., "Button#a1b2c").
	Element string
	// Err is the underlying error. When nil, the kind's sentinel is reported.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// New returns an ElementError stamped with the current time.
func New(op string, kind ErrorKind, element string, err error) *ElementError {
	return &ElementError{
		Op:        op,
		Kind:      kind,
		Element:   element,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// Errorf is New with a formatted underlying error.
func Errorf(op string, kind ErrorKind, element string, format string, args ...any) *ElementError {
	return New(op, kind, element, fmt.Errorf(format, args...))
}

func (e *ElementError) Error() string {
	cause := e.cause()
	if e.Element != "" {
		return fmt.Sprintf("%s [%s] element=%s: %v", e.Op, e.Kind, e.Element, cause)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, cause)
}

func (e *ElementError) cause() error {
	if e.Err != nil {
		return e.Err
	}
	if s := e.Kind.Sentinel(); s != nil {
		return s
	}
	return stderrors.New("unknown error")
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *ElementError) Is(target error) bool {
	s := e.Kind.Sentinel()
	return s != nil && target == s
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "bridge.Invoke").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by electripy components that have
// no caller to return them to, such as bridge connection goroutines.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ElementError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
