package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eventick/eventick/internal/core/domain"
	"github.com/eventick/eventick/internal/core/ports"
	"github.com/eventick/eventick/internal/observability"
)

var ErrInvalidRequest = errors.New("invalid request")

var supportedBanks = map[string]bool{
	"bca":  true,
	"bni":  true,
	"bri":  true,
	"cimb": true,
}

type PurchaseRequest struct {
	BuyerID string `json:"-"`
	EventID string `json:"event_id"`
	TierID  string `json:"tier_id"`
	Bank    string `json:"bank_name"`
}

type PurchaseResponse struct {
	TicketID    string `json:"ticket_id"`
	OrderID     string `json:"order_id"`
	Barcode     string `json:"barcode"`
	AmountMinor int64  `json:"amount_minor"`
	Status      string `json:"status"`
	ExpiresAt   string `json:"expires_at"`
}

// PurchaseService coordinates inventory, ticket and transaction records and
// the payment gateway for the buy flow, and reconciles asynchronous gateway
// notifications into a consistent final state.
type PurchaseService struct {
	inventory    ports.InventoryRepository
	tickets      ports.TicketRepository
	transactions ports.TransactionRepository
	gateway      ports.PaymentGateway
	cache        ports.EventCache

	paymentExpiry time.Duration
}

func NewPurchaseService(
	inventory ports.InventoryRepository,
	tickets ports.TicketRepository,
	transactions ports.TransactionRepository,
	gateway ports.PaymentGateway,
	cache ports.EventCache,
	paymentExpiry time.Duration,
) *PurchaseService {
	if paymentExpiry <= 0 {
		paymentExpiry = 15 * time.Minute
	}
	return &PurchaseService{
		inventory:     inventory,
		tickets:       tickets,
		transactions:  transactions,
		gateway:       gateway,
		cache:         cache,
		paymentExpiry: paymentExpiry,
	}
}

// compensation is one already-applied side effect to undo if a later buy
// step fails. The gateway call cannot participate in a local transaction,
// so rollback is manual and best-effort.
type compensation struct {
	name string
	run  func(context.Context) error
}

func (s *PurchaseService) compensate(ctx context.Context, comps []compensation) {
	for i := len(comps) - 1; i >= 0; i-- {
		if err := comps[i].run(ctx); err != nil {
			logrus.WithError(err).WithField("step", comps[i].name).Error("compensation step failed")
		}
	}
}

// Purchase reserves one unit of tier inventory, creates the pending ticket
// and its transaction, and charges the buyer through the gateway. Any
// failure after the reservation unwinds every step already applied, in
// reverse order, and surfaces the original error.
func (s *PurchaseService) Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResponse, error) {
	buyerID, err := uuid.Parse(req.BuyerID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad buyer id", ErrInvalidRequest)
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad event id", ErrInvalidRequest)
	}
	tierID, err := uuid.Parse(req.TierID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad tier id", ErrInvalidRequest)
	}
	if !supportedBanks[req.Bank] {
		return nil, fmt.Errorf("%w: bank must be one of bca, bni, bri, cimb", ErrInvalidRequest)
	}

	// Snapshot the tier price before reserving; the ticket keeps this
	// price even if the tier price changes mid-sale.
	tier, err := s.inventory.GetTier(ctx, eventID, tierID)
	if err != nil {
		return nil, err
	}

	if err := s.inventory.Reserve(ctx, eventID, tierID); err != nil {
		observability.ObserveReservation(reservationOutcome(err))
		return nil, err
	}
	observability.ObserveReservation("reserved")
	s.invalidateEvent(ctx, eventID)

	comps := []compensation{{
		name: "release inventory",
		run: func(ctx context.Context) error {
			if err := s.inventory.Release(ctx, eventID, tierID); err != nil {
				return err
			}
			observability.ObserveRelease()
			s.invalidateEvent(ctx, eventID)
			return nil
		},
	}}

	barcode, err := domain.NewBarcode()
	if err != nil {
		s.compensate(ctx, comps)
		return nil, err
	}

	now := time.Now()
	ticket := &domain.Ticket{
		ID:         uuid.New(),
		EventID:    eventID,
		TierID:     tierID,
		BuyerID:    buyerID,
		Barcode:    barcode,
		PriceMinor: tier.PriceMinor,
		Status:     domain.TicketPending,
		ExpiresAt:  now.Add(s.paymentExpiry),
		CreatedAt:  now,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		s.compensate(ctx, comps)
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	comps = append(comps, compensation{
		name: "delete ticket",
		run:  func(ctx context.Context) error { return s.tickets.Delete(ctx, ticket.ID) },
	})

	txn := &domain.Transaction{
		ID:        uuid.New(),
		BuyerID:   buyerID,
		TicketID:  ticket.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.transactions.Create(ctx, txn); err != nil {
		s.compensate(ctx, comps)
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	comps = append(comps, compensation{
		name: "delete transaction",
		run:  func(ctx context.Context) error { return s.transactions.Delete(ctx, txn.ID) },
	})

	result, err := s.gateway.Charge(ctx, ports.ChargeRequest{
		Bank:        req.Bank,
		AmountMinor: ticket.PriceMinor,
		OrderID:     txn.ID,
	})
	if err != nil {
		s.compensate(ctx, comps)
		return nil, fmt.Errorf("charge: %w", err)
	}

	if err := s.transactions.SavePaymentDetails(ctx, txn.ID, result.Raw); err != nil {
		// The charge already went out; this transaction is now
		// reconciliation-pending, never a rollback candidate.
		logrus.WithError(err).WithFields(logrus.Fields{
			"transaction_id": txn.ID,
			"ticket_id":      ticket.ID,
		}).Warn("charge succeeded but saving gateway response failed; awaiting notification")
	}

	logrus.WithFields(logrus.Fields{
		"ticket_id":      ticket.ID,
		"transaction_id": txn.ID,
		"event_id":       eventID,
		"tier_id":        tierID,
	}).Info("purchase pending payment")

	return &PurchaseResponse{
		TicketID:    ticket.ID.String(),
		OrderID:     txn.ID.String(),
		Barcode:     ticket.Barcode,
		AmountMinor: ticket.PriceMinor,
		Status:      string(domain.TicketPending),
		ExpiresAt:   ticket.ExpiresAt.Format(time.RFC3339),
	}, nil
}

func reservationOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrSoldOut):
		return "sold_out"
	case errors.Is(err, domain.ErrSaleClosed):
		return "sale_closed"
	case errors.Is(err, domain.ErrTierNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// HandleNotification reconciles one gateway notification. The caller has
// already verified the signature. Unknown orders are acknowledged silently:
// the transaction may have been rolled back, and erroring would only make
// the provider retry forever.
func (s *PurchaseService) HandleNotification(ctx context.Context, n *domain.PaymentNotification) error {
	log := logrus.WithFields(logrus.Fields{
		"order_id":           n.OrderID,
		"transaction_status": n.TransactionStatus,
	})

	orderID, err := uuid.Parse(n.OrderID)
	if err != nil {
		log.Info("ignoring notification with malformed order id")
		observability.ObserveNotification(n.TransactionStatus, "unknown_order")
		return nil
	}

	txn, err := s.transactions.GetByID(ctx, orderID)
	if errors.Is(err, domain.ErrTransactionNotFound) {
		log.Info("ignoring notification for unknown transaction")
		observability.ObserveNotification(n.TransactionStatus, "unknown_order")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load transaction: %w", err)
	}

	// Last write wins: a later notification supersedes whatever payload
	// was stored before, which also makes replays of the same status
	// harmless.
	if err := s.transactions.SavePaymentDetails(ctx, txn.ID, n.Raw); err != nil {
		return fmt.Errorf("save payment details: %w", err)
	}

	switch {
	case n.Settles():
		moved, err := s.tickets.TransitionStatus(ctx, txn.TicketID, domain.TicketPurchased, domain.TicketPending)
		if err != nil {
			return fmt.Errorf("mark ticket purchased: %w", err)
		}
		if moved {
			log.WithField("ticket_id", txn.TicketID).Info("ticket purchased")
			observability.ObserveNotification(n.TransactionStatus, "purchased")
		} else {
			observability.ObserveNotification(n.TransactionStatus, "replay")
		}
		// Inventory stays reserved: the unit was counted at reservation.
		return nil

	case n.Fails():
		released, err := s.failTicket(ctx, txn.TicketID, domain.TicketCancelled)
		if err != nil {
			return err
		}
		if released {
			observability.ObserveNotification(n.TransactionStatus, "cancelled")
		} else {
			observability.ObserveNotification(n.TransactionStatus, "replay")
		}
		return nil

	default:
		// Still pending at the gateway; nothing to reconcile yet.
		observability.ObserveNotification(n.TransactionStatus, "pending")
		return nil
	}
}

// failTicket moves a ticket into a terminal failure state and, only when
// this call is the one that performed the transition, releases its
// inventory reservation. The conditional transition is what makes duplicate
// webhook deliveries and a racing expiry sweep release at most once.
func (s *PurchaseService) failTicket(ctx context.Context, ticketID uuid.UUID, to domain.TicketStatus) (bool, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return false, fmt.Errorf("load ticket: %w", err)
	}

	moved, err := s.tickets.TransitionStatus(ctx, ticketID, to, domain.TicketPending, domain.TicketPurchased)
	if err != nil {
		return false, fmt.Errorf("mark ticket %s: %w", to, err)
	}
	if !moved {
		// Already in a terminal state; releasing again would
		// double-decrement the sold counter.
		return false, nil
	}

	if err := s.inventory.Release(ctx, ticket.EventID, ticket.TierID); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"ticket_id": ticketID,
			"event_id":  ticket.EventID,
			"tier_id":   ticket.TierID,
		}).Error("inventory release failed after ticket transition")
		return true, fmt.Errorf("release inventory: %w", err)
	}
	observability.ObserveRelease()
	s.invalidateEvent(ctx, ticket.EventID)

	logrus.WithFields(logrus.Fields{
		"ticket_id": ticketID,
		"status":    to,
	}).Info("ticket failed and inventory released")
	return true, nil
}

// RunExpirySweep periodically expires pending tickets whose payment window
// has lapsed, through the same guarded release path as failure
// notifications.
func (s *PurchaseService) RunExpirySweep(ctx context.Context, interval time.Duration, batch int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logrus.Infof("expiry sweep started, checking every %s", interval)

	for {
		select {
		case <-ctx.Done():
			logrus.Info("expiry sweep stopped")
			return
		case <-ticker.C:
			s.sweepExpired(ctx, batch)
		}
	}
}

func (s *PurchaseService) sweepExpired(ctx context.Context, batch int) {
	tickets, err := s.tickets.FindExpiredPending(ctx, time.Now(), batch)
	if err != nil {
		logrus.WithError(err).Error("fetching expired tickets failed")
		return
	}
	if len(tickets) == 0 {
		return
	}

	logrus.Infof("expiring %d unpaid tickets", len(tickets))

	for _, t := range tickets {
		released, err := s.failTicket(ctx, t.ID, domain.TicketExpired)
		if err != nil {
			logrus.WithError(err).WithField("ticket_id", t.ID).Error("failed to expire ticket")
			continue
		}
		if released {
			observability.ObserveExpiredTicket()
		}
	}
}

func (s *PurchaseService) invalidateEvent(ctx context.Context, eventID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, eventID); err != nil {
		logrus.WithError(err).WithField("event_id", eventID).Warn("event cache invalidation failed")
	}
}
