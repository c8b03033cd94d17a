package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bankbot-fulfillment/internal/domain"
	"github.com/bankbot-fulfillment/internal/lex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFulfillment struct{ mock.Mock }

func (m *mockFulfillment) Handle(ctx context.Context, ev *lex.Event) (*lex.Response, error) {
	args := m.Called(ctx, ev)
	if r, _ := args.Get(0).(*lex.Response); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func post(t *testing.T, h *FulfillmentHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/fulfillment", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_InvalidBody(t *testing.T) {
	h := NewFulfillmentHandler(&mockFulfillment{})
	rec := post(t, h, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MissingIntentName(t *testing.T) {
	h := NewFulfillmentHandler(&mockFulfillment{})
	rec := post(t, h, `{"sessionState":{"intent":{"slots":{}}}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandle_UnhandledIntent(t *testing.T) {
	svc := &mockFulfillment{}
	svc.On("Handle", mock.Anything, mock.Anything).Return(nil, domain.ErrUnhandledIntent)

	h := NewFulfillmentHandler(svc)
	rec := post(t, h, `{"sessionState":{"intent":{"name":"OrderPizza"}}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var env MessageEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Contains(t, env.Error, "unhandled intent")
}

func TestHandle_WritesLexResponse(t *testing.T) {
	ev := &lex.Event{}
	ev.SessionState.Intent.Name = "ThankYou"
	want := lex.Close(ev, lex.Session{}, lex.StateFulfilled, "You're welcome! 😊")

	svc := &mockFulfillment{}
	svc.On("Handle", mock.Anything, mock.AnythingOfType("*lex.Event")).Return(want, nil)

	h := NewFulfillmentHandler(svc)
	rec := post(t, h, `{"sessionState":{"intent":{"name":"ThankYou"}}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got lex.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, lex.ActionClose, got.SessionState.DialogAction.Type)
	assert.Equal(t, lex.StateFulfilled, got.SessionState.Intent.State)
	assert.Equal(t, "You're welcome! 😊", got.Messages[0].Content)
	svc.AssertExpectations(t)
}

func TestHandle_InternalError(t *testing.T) {
	svc := &mockFulfillment{}
	svc.On("Handle", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)

	h := NewFulfillmentHandler(svc)
	rec := post(t, h, `{"sessionState":{"intent":{"name":"CheckBalance"}}}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
