package lex

// Dialog action types.
const (
	ActionElicitSlot = "ElicitSlot"
	ActionClose      = "Close"
)

// Intent fulfillment states.
const (
	StateInProgress = "InProgress"
	StateFulfilled  = "Fulfilled"
	StateFailed     = "Failed"
)

// ContentPlainText is the only message content type this service emits.
const ContentPlainText = "PlainText"

// Elicit builds an envelope asking the engine to re-prompt slot. The intent
// is marked in progress and the (possibly mutated) session attributes are
// returned so the engine persists them for the next turn.
func Elicit(e *Event, sess Session, slot, msg string) *Response {
	intent := e.SessionState.Intent
	intent.State = StateInProgress
	return &Response{
		SessionState: SessionState{
			DialogAction:      &DialogAction{Type: ActionElicitSlot, SlotToElicit: slot},
			Intent:            intent,
			SessionAttributes: sess,
		},
		Messages: []Message{{ContentType: ContentPlainText, Content: msg}},
	}
}

// Close builds an envelope ending the current intent with a terminal state
// (StateFulfilled or StateFailed).
func Close(e *Event, sess Session, state, msg string) *Response {
	intent := e.SessionState.Intent
	intent.State = state
	return &Response{
		SessionState: SessionState{
			DialogAction:      &DialogAction{Type: ActionClose},
			Intent:            intent,
			SessionAttributes: sess,
		},
		Messages: []Message{{ContentType: ContentPlainText, Content: msg}},
	}
}
