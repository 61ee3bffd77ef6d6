package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"pomo-hub/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeSuccess wraps a payload in the {"success": true, ...} envelope.
func writeSuccess(w http.ResponseWriter, status int, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, status, body)
}

// writeError maps domain errors onto client statuses; anything unrecognized
// is a 500 with the error text as the diagnostic. Single-user tool, so the
// text is not redacted.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var validation *service.ValidationError
	var notFound *service.NotFoundError
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &conflict):
		status = http.StatusConflict
	}

	writeJSON(w, status, map[string]any{"success": false, "error": err.Error()})
}
