package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/eventick/eventick/internal/adapter/gateway/midtrans"
	"github.com/eventick/eventick/internal/core/domain"
	"github.com/eventick/eventick/internal/core/services"
)

type NotificationHandler struct {
	svc       *services.PurchaseService
	serverKey string
}

func NewNotificationHandler(svc *services.PurchaseService, serverKey string) *NotificationHandler {
	return &NotificationHandler{svc: svc, serverKey: serverKey}
}

// Handle processes POST /api/v1/payments/notifications. The signature is
// verified before anything else touches state; a forged or tampered
// notification gets a 403 and changes nothing. Transient failures return
// 500 so the provider's retry redelivers; permanent outcomes return 200 to
// stop the retries.
func (h *NotificationHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	var n domain.PaymentNotification
	if err := json.Unmarshal(body, &n); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	n.Raw = body

	if !midtrans.VerifyNotification(&n, h.serverKey) {
		logrus.WithField("order_id", n.OrderID).Warn("notification rejected: invalid signature")
		writeError(w, http.StatusForbidden, "invalid signature key, the notification is not authentic")
		return
	}

	if err := h.svc.HandleNotification(r.Context(), &n); err != nil {
		logrus.WithError(err).WithField("order_id", n.OrderID).Error("notification handling failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "transaction notification handled successfully"})
}
