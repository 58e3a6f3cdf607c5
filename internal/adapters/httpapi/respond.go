package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bnema/attendance-cli/internal/domain"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Envelope wraps every response body.
type Envelope struct {
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	Data       any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondOK(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, http.StatusOK, Envelope{
		StatusCode: http.StatusOK,
		Status:     http.StatusText(http.StatusOK),
		RequestID:  chimw.GetReqID(r.Context()),
		Data:       data,
	})
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorStatus(err)
	writeJSON(w, status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Error:      msg,
		RequestID:  chimw.GetReqID(r.Context()),
	})
}

func errorStatus(err error) (int, string) {
	var bad *badRequestError
	switch {
	case errors.As(err, &bad):
		return bad.status, bad.msg
	case errors.Is(err, domain.ErrUnknownEventType), errors.Is(err, domain.ErrInvalidSaleReport):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}
