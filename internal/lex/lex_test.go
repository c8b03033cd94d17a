package lex

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_Lookup(t *testing.T) {
	ev := &Event{}
	ev.SessionState.Intent.Slots = map[string]*Slot{
		"amount":  {Value: &SlotValue{InterpretedValue: "50"}},
		"unbound": nil,
		"empty":   {},
	}

	v, ok := ev.Slot("amount")
	assert.True(t, ok)
	assert.Equal(t, "50", v)

	_, ok = ev.Slot("unbound")
	assert.False(t, ok)
	_, ok = ev.Slot("empty")
	assert.False(t, ok)
	_, ok = ev.Slot("missing")
	assert.False(t, ok)
}

func TestSession_DefaultsToEmptyMap(t *testing.T) {
	ev := &Event{}
	sess := ev.Session()
	require.NotNil(t, sess)

	// Mutations through the wrapper are visible on the event.
	sess.SetAttempts(2)
	assert.Equal(t, "2", ev.SessionState.SessionAttributes[AttemptsKey])
}

func TestSession_AttemptsRoundTrip(t *testing.T) {
	sess := Session{}
	assert.Equal(t, 0, sess.Attempts())

	sess.SetAttempts(3)
	assert.Equal(t, 3, sess.Attempts())
	assert.Equal(t, "3", sess[AttemptsKey])

	sess[AttemptsKey] = "garbage"
	assert.Equal(t, 0, sess.Attempts())

	sess[AttemptsKey] = "-1"
	assert.Equal(t, 0, sess.Attempts())
}

func TestElicit_Envelope(t *testing.T) {
	ev := &Event{}
	ev.SessionState.Intent.Name = "Payment"
	sess := Session{"otp_attempts": "1"}

	resp := Elicit(ev, sess, "otp", "enter the code")

	require.NotNil(t, resp.SessionState.DialogAction)
	assert.Equal(t, ActionElicitSlot, resp.SessionState.DialogAction.Type)
	assert.Equal(t, "otp", resp.SessionState.DialogAction.SlotToElicit)
	assert.Equal(t, StateInProgress, resp.SessionState.Intent.State)
	assert.Equal(t, "Payment", resp.SessionState.Intent.Name)
	assert.Equal(t, map[string]string(sess), resp.SessionState.SessionAttributes)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, ContentPlainText, resp.Messages[0].ContentType)
	assert.Equal(t, "enter the code", resp.Messages[0].Content)
}

func TestClose_Envelope(t *testing.T) {
	ev := &Event{}
	ev.SessionState.Intent.Name = "ThankYou"

	resp := Close(ev, Session{}, StateFulfilled, "bye")

	assert.Equal(t, ActionClose, resp.SessionState.DialogAction.Type)
	assert.Empty(t, resp.SessionState.DialogAction.SlotToElicit)
	assert.Equal(t, StateFulfilled, resp.SessionState.Intent.State)
	assert.Equal(t, "bye", resp.Messages[0].Content)
}

func TestEvent_DecodesWireShape(t *testing.T) {
	raw := `{
		"inputTranscript": "123456",
		"sessionState": {
			"intent": {
				"name": "CheckBalance",
				"slots": {"otp": {"value": {"originalValue": "123456", "interpretedValue": "123456"}}}
			},
			"sessionAttributes": {"otp_attempts": "1"}
		}
	}`

	var ev Event
	require.NoError(t, json.Unmarshal([]byte(raw), &ev))
	assert.Equal(t, "CheckBalance", ev.IntentName())
	v, ok := ev.Slot("otp")
	assert.True(t, ok)
	assert.Equal(t, "123456", v)
	assert.Equal(t, 1, ev.Session().Attempts())
}
