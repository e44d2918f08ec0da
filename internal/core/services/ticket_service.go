package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eventick/eventick/internal/core/domain"
	"github.com/eventick/eventick/internal/core/ports"
)

// TicketService serves buyer-facing ticket reads and venue check-in.
type TicketService struct {
	tickets ports.TicketRepository
}

func NewTicketService(tickets ports.TicketRepository) *TicketService {
	return &TicketService{tickets: tickets}
}

func (s *TicketService) GetUserTickets(ctx context.Context, buyerID string, filter ports.TicketFilter) ([]domain.Ticket, error) {
	id, err := uuid.Parse(buyerID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad buyer id", ErrInvalidRequest)
	}
	return s.tickets.ListByBuyer(ctx, id, filter)
}

func (s *TicketService) GetUserTicket(ctx context.Context, buyerID, ticketID string) (*domain.Ticket, error) {
	bid, err := uuid.Parse(buyerID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad buyer id", ErrInvalidRequest)
	}
	tid, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, domain.ErrTicketNotFound
	}

	ticket, err := s.tickets.GetByID(ctx, tid)
	if err != nil {
		return nil, err
	}
	if ticket.BuyerID != bid {
		return nil, domain.ErrNotTicketOwner
	}

	return ticket, nil
}

// CheckIn marks a purchased ticket as used at venue entry. Only reachable
// from purchased; the conditional transition keeps two scans of the same
// barcode from both succeeding.
func (s *TicketService) CheckIn(ctx context.Context, buyerID, eventID, barcode string) (*domain.Ticket, error) {
	bid, err := uuid.Parse(buyerID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad buyer id", ErrInvalidRequest)
	}
	eid, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad event id", ErrInvalidRequest)
	}

	ticket, err := s.tickets.GetByBarcode(ctx, eid, barcode)
	if err != nil {
		return nil, err
	}
	if ticket.BuyerID != bid {
		return nil, domain.ErrNotTicketOwner
	}

	switch ticket.Status {
	case domain.TicketCheckedIn:
		return nil, domain.ErrAlreadyCheckedIn
	case domain.TicketPurchased:
		// proceed
	default:
		return nil, domain.ErrTicketNotActive
	}

	moved, err := s.tickets.TransitionStatus(ctx, ticket.ID, domain.TicketCheckedIn, domain.TicketPurchased)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, domain.ErrAlreadyCheckedIn
	}

	logrus.WithFields(logrus.Fields{
		"ticket_id": ticket.ID,
		"event_id":  eid,
	}).Info("ticket checked in")

	ticket.Status = domain.TicketCheckedIn
	return ticket, nil
}
