package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bankbot-fulfillment/internal/domain"
	"github.com/bankbot-fulfillment/internal/lex"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FulfillmentService is the minimal interface the handler requires from the
// dispatcher.
type FulfillmentService interface {
	Handle(ctx context.Context, ev *lex.Event) (*lex.Response, error)
}

// FulfillmentHandler exposes the single fulfillment endpoint the
// conversational engine calls once per turn.
type FulfillmentHandler struct {
	svc FulfillmentService
}

func NewFulfillmentHandler(svc FulfillmentService) *FulfillmentHandler {
	return &FulfillmentHandler{svc: svc}
}

func (h *FulfillmentHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var ev lex.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&ev); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "intent name is required")
		return
	}

	resp, err := h.svc.Handle(r.Context(), &ev)
	if err != nil {
		if errors.Is(err, domain.ErrUnhandledIntent) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("fulfillment turn failed", "intent", ev.IntentName(), "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
