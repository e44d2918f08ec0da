package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eventick/eventick/internal/core/domain"
	"github.com/eventick/eventick/internal/core/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps core errors onto HTTP statuses. Unknown errors are
// internal and deliberately not echoed to the client.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrTierNotFound), errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrTicketNotFound), errors.Is(err, domain.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSoldOut), errors.Is(err, domain.ErrSaleClosed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrAlreadyCheckedIn), errors.Is(err, domain.ErrTicketNotActive):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotTicketOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrGatewayUnavailable):
		writeError(w, http.StatusBadGateway, "payment gateway unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// buyerID pulls the authenticated buyer from the header the upstream auth
// layer sets. This service trusts it as already verified.
func buyerID(r *http.Request) (string, bool) {
	id := r.Header.Get("X-User-ID")
	return id, id != ""
}
