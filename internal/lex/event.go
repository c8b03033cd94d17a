// Package lex holds the Lex V2 fulfillment wire shapes and the builders for
// the two response envelopes (elicit a slot, close the turn). It is a pure
// translation layer: no business logic lives here.
package lex

// Event is the inbound intent-recognition event.
type Event struct {
	SessionState    SessionState `json:"sessionState"`
	InputTranscript string       `json:"inputTranscript"`
}

// SessionState carries the intent, dialog action and session attributes.
type SessionState struct {
	DialogAction      *DialogAction     `json:"dialogAction,omitempty"`
	Intent            Intent            `json:"intent"`
	SessionAttributes map[string]string `json:"sessionAttributes,omitempty"`
}

// Intent is the recognized intent with its extracted slots.
type Intent struct {
	Name  string           `json:"name" validate:"required"`
	Slots map[string]*Slot `json:"slots,omitempty"`
	State string           `json:"state,omitempty"`
}

// Slot is a named parameter extracted from user input. A slot present in the
// map with a nil value (or nil inner value) is recognized but unbound.
type Slot struct {
	Value *SlotValue `json:"value,omitempty"`
}

// SlotValue holds the engine's interpretation of the raw slot input.
type SlotValue struct {
	OriginalValue    string `json:"originalValue,omitempty"`
	InterpretedValue string `json:"interpretedValue"`
}

// DialogAction tells the engine how to continue the dialog.
type DialogAction struct {
	Type         string `json:"type"`
	SlotToElicit string `json:"slotToElicit,omitempty"`
}

// Message is a single piece of bot output.
type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Response is the outbound fulfillment envelope.
type Response struct {
	SessionState SessionState `json:"sessionState"`
	Messages     []Message    `json:"messages"`
}

// IntentName returns the recognized intent's name.
func (e *Event) IntentName() string {
	return e.SessionState.Intent.Name
}

// Slot returns the interpreted value bound to name. The second return is
// false when the slot is missing or unbound.
func (e *Event) Slot(name string) (string, bool) {
	s, ok := e.SessionState.Intent.Slots[name]
	if !ok || s == nil || s.Value == nil {
		return "", false
	}
	return s.Value.InterpretedValue, true
}

// Session returns the event's session attributes, never nil. The returned
// map aliases the event's map when present, so mutations are carried into
// envelopes built from it.
func (e *Event) Session() Session {
	if e.SessionState.SessionAttributes == nil {
		e.SessionState.SessionAttributes = map[string]string{}
	}
	return Session(e.SessionState.SessionAttributes)
}
