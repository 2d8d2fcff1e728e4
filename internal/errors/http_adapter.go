package errors

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// HTTPErrorAdapter maps InformerError categories to HTTP status codes and
// writes JSON error responses for API handlers.
type HTTPErrorAdapter struct {
	logger *slog.Logger
}

// NewHTTPErrorAdapter creates a new HTTP error adapter.
func NewHTTPErrorAdapter(logger *slog.Logger) *HTTPErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPErrorAdapter{logger: logger}
}

// StatusCodeFor determines the HTTP status code for an error.
func (a *HTTPErrorAdapter) StatusCodeFor(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if ie, ok := err.(*InformerError); ok {
		switch ie.Category {
		case CategoryValidation:
			return http.StatusBadRequest
		case CategoryPayment:
			return http.StatusBadGateway
		case CategoryNetwork, CategoryIngest:
			return http.StatusBadGateway
		case CategoryStorage:
			return http.StatusServiceUnavailable
		default:
			return http.StatusInternalServerError
		}
	}

	return http.StatusInternalServerError
}

// errorBody is the JSON wire shape of an error response.
type errorBody struct {
	Error    string        `json:"error"`
	Category ErrorCategory `json:"category,omitempty"`
}

// WriteErrorResponse writes err as a JSON response with the mapped status code.
func (a *HTTPErrorAdapter) WriteErrorResponse(w http.ResponseWriter, err error) {
	status := a.StatusCodeFor(err)

	body := errorBody{Error: "internal error"}
	if ie, ok := err.(*InformerError); ok {
		body.Error = ie.Message
		body.Category = ie.Category
	} else if err != nil {
		body.Error = err.Error()
	}

	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed", slog.String("error", body.Error), slog.Int("status", status))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(body); encodeErr != nil {
		a.logger.Error("failed to encode error response", slog.String("error", encodeErr.Error()))
	}
}
