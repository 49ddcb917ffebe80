package httpx

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jimgas/gas-orders/internal/errs"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeAdminError maps the error taxonomy for the admin CRUD surface:
// validation failures are 422, missing entities 404, the rest 500.
func writeAdminError(w http.ResponseWriter, err error) {
	var verr *errs.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, verr.Error())
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		log.Printf("admin op: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
