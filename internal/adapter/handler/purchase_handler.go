package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/eventick/eventick/internal/core/services"
)

type PurchaseHandler struct {
	svc *services.PurchaseService
}

func NewPurchaseHandler(svc *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{svc: svc}
}

// Create handles POST /api/v1/tickets: reserve inventory, create the
// pending ticket and charge the buyer. A 201 means payment is pending, not
// settled; settlement arrives later through the notification webhook.
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	buyer, ok := buyerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing buyer identity")
		return
	}

	var req services.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.BuyerID = buyer

	resp, err := h.svc.Purchase(r.Context(), req)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"buyer_id": buyer,
			"event_id": req.EventID,
			"tier_id":  req.TierID,
		}).Warn("purchase rejected")
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}
