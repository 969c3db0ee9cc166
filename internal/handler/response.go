package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mewroo/market-history-service/pkg/errors"
)

// errorResponse is the envelope for every failed request.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps the error taxonomy to HTTP statuses. Malformed queries
// are the caller's fault, watermark regressions are conflicts, transient
// store failures invite a retry, and everything else is a server-side
// failure.
func writeError(w http.ResponseWriter, err error) {
	code := string(errors.GeneralInternalServerError)
	status := http.StatusInternalServerError

	if details := errors.DetailsFromError(err); details != nil {
		code = details.Code
		switch errors.ErrorCode(details.Code) {
		case errors.InvalidRange, errors.InvalidGranularity, errors.GeneralBadRequestError:
			status = http.StatusBadRequest
		case errors.WatermarkOutOfOrder:
			status = http.StatusConflict
		case errors.GeneralNotFoundError:
			status = http.StatusNotFound
		case errors.TransientStoreError:
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}
