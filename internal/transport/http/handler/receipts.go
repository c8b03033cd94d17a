package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ReceiptReader is the minimal interface the handler requires from the
// receipt archive.
type ReceiptReader interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

// ReceiptHandler serves archived fulfillment receipts by interaction ID.
type ReceiptHandler struct {
	store ReceiptReader
}

func NewReceiptHandler(store ReceiptReader) *ReceiptHandler {
	return &ReceiptHandler{store: store}
}

func (h *ReceiptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing receipt id")
		return
	}
	body, err := h.store.Download(r.Context(), "receipts/"+id+".json")
	if err != nil {
		writeError(w, http.StatusNotFound, "receipt not found")
		return
	}
	defer body.Close()
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.Copy(w, body)
}
