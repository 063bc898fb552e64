package core

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/electripy/electripy/pkg/errors"
)

// Event is a frontend event type a callback can be attached to.
type Event string

// The fixed set of events.
const (
	OnClick    Event = "onClick"
	OnChange   Event = "onChange"
	OnFocus    Event = "onFocus"
	OnBlur     Event = "onBlur"
	OnKeyPress Event = "onKeyPress"
)

var events = []Event{OnClick, OnChange, OnFocus, OnBlur, OnKeyPress}

// Events returns every valid event in declaration order.
func Events() []Event {
	return slices.Clone(events)
}

// Valid reports whether e is one of the fixed events.
func (e Event) Valid() bool {
	return slices.Contains(events, e)
}

// ParseEvent validates s as an event name.
func ParseEvent(s string) (Event, error) {
	e := Event(s)
	if !e.Valid() {
		return "", invalidEvent("core.ParseEvent", "", e)
	}
	return e, nil
}

func invalidEvent(op, element string, e Event) error {
	return errors.Errorf(op, errors.KindInvalidEvent, element,
		"%w: %q (valid events are %v)", errors.ErrInvalidEventType, string(e), events)
}

// Callback is a host function invoked from the frontend. Params carries the
// raw JSON arguments sent by the frontend; the result is marshaled back.
type Callback func(ctx context.Context, params json.RawMessage) (any, error)

// Noop is the callback absent events resolve to.
func Noop(context.Context, json.RawMessage) (any, error) {
	return nil, nil
}

// ExposedName is the name under which the frontend invokes the callback
// for event e of the element with the given id.
func ExposedName(id string, e Event) string {
	return id + "_" + string(e) + "_callback"
}
