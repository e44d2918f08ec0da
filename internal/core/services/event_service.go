package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eventick/eventick/internal/core/domain"
	"github.com/eventick/eventick/internal/core/ports"
)

// EventService serves the buyer-facing event read model through the Redis
// read-through cache. The cache is advisory: any cache failure degrades to
// a database read.
type EventService struct {
	events ports.EventRepository
	cache  ports.EventCache
}

func NewEventService(events ports.EventRepository, cache ports.EventCache) *EventService {
	return &EventService{events: events, cache: cache}
}

func (s *EventService) GetEvent(ctx context.Context, eventID string) (*domain.EventWithTiers, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad event id", ErrInvalidRequest)
	}

	cached, err := s.cache.GetEvent(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("event_id", id).Warn("event cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	event, err := s.events.GetEventWithTiers(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetEvent(ctx, event); err != nil {
		logrus.WithError(err).WithField("event_id", id).Warn("event cache write failed")
	}

	return event, nil
}
