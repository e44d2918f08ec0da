package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/eventick/eventick/internal/core/domain"
	"github.com/eventick/eventick/internal/core/ports"
	"github.com/eventick/eventick/internal/core/services"
)

type TicketHandler struct {
	svc *services.TicketService
}

func NewTicketHandler(svc *services.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

// List handles GET /api/v1/tickets. Defaults to the last thirty days and
// hides expired/cancelled tickets unless a status filter asks for them.
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	buyer, ok := buyerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing buyer identity")
		return
	}

	filter := ports.TicketFilter{}
	q := r.URL.Query()

	if status := q.Get("status"); status != "" && status != "all" {
		filter.Status = domain.TicketStatus(status)
	}
	if from := q.Get("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = t
		}
	}
	if to := q.Get("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = t
		}
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}

	tickets, err := h.svc.GetUserTickets(r.Context(), buyer, filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"tickets": tickets})
}

// Get handles GET /api/v1/tickets/{id}.
func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	buyer, ok := buyerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing buyer identity")
		return
	}

	ticket, err := h.svc.GetUserTicket(r.Context(), buyer, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ticket)
}

type checkInRequest struct {
	Barcode string `json:"barcode"`
}

// CheckIn handles POST /api/v1/events/{id}/check-in.
func (h *TicketHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	buyer, ok := buyerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing buyer identity")
		return
	}

	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Barcode == "" {
		writeError(w, http.StatusBadRequest, "barcode is required")
		return
	}

	ticket, err := h.svc.CheckIn(r.Context(), buyer, r.PathValue("id"), req.Barcode)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ticket)
}
