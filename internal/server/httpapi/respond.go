package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// statusFor maps a service error to its HTTP status and the message shown
// to the caller. Unknown errors never leak their text.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrAuthRequired):
		return http.StatusForbidden, common.ErrAuthRequired.Error()
	case errors.Is(err, common.ErrAuthMalformed):
		return http.StatusForbidden, common.ErrAuthMalformed.Error()
	case errors.Is(err, common.ErrAuthInvalidOrExpired):
		return http.StatusForbidden, common.ErrAuthInvalidOrExpired.Error()
	case errors.Is(err, common.ErrNoPrincipal):
		return http.StatusForbidden, common.ErrAuthRequired.Error()
	case errors.Is(err, common.ErrInvalidEmailFormat):
		return http.StatusUnauthorized, common.ErrInvalidEmailFormat.Error()
	case errors.Is(err, common.ErrEmailAlreadyInUse):
		return http.StatusUnauthorized, common.ErrEmailAlreadyInUse.Error()
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, common.ErrInvalidCredentials.Error()
	case errors.Is(err, common.ErrBadRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, common.ErrorNotFound.Error()
	default:
		return http.StatusInternalServerError, common.ErrorInternal.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
	}
	writeJSON(w, status, errorResponse{Status: status, Message: msg})
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed body: %v", common.ErrBadRequest, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", common.ErrBadRequest, name)
	}
	return id, nil
}
