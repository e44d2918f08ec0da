package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/eventick/eventick/internal/core/domain"
	"github.com/eventick/eventick/internal/core/ports"
	"github.com/eventick/eventick/internal/core/ports/mocks"
	"github.com/eventick/eventick/internal/core/services"
	"github.com/eventick/eventick/internal/platform/cache"
)

func activeTier(eventID, tierID uuid.UUID) *domain.TicketTier {
	return &domain.TicketTier{
		ID:           tierID,
		EventID:      eventID,
		Name:         "early_bird",
		PriceMinor:   150000,
		Capacity:     100,
		Sold:         10,
		SaleDeadline: time.Now().Add(24 * time.Hour),
		Status:       domain.TierActive,
	}
}

func TestPurchase_Success(t *testing.T) {
	mockInv := mocks.NewInventoryRepository(t)
	mockTickets := mocks.NewTicketRepository(t)
	mockTxns := mocks.NewTransactionRepository(t)
	mockGateway := mocks.NewPaymentGateway(t)

	rdb, mockRedis := redismock.NewClientMock()
	eventCache := cache.NewEventCache(rdb, 5*time.Minute)

	service := services.NewPurchaseService(mockInv, mockTickets, mockTxns, mockGateway, eventCache, 15*time.Minute)

	ctx := context.Background()
	eventID := uuid.New()
	tierID := uuid.New()
	buyerID := uuid.New()

	mockInv.On("GetTier", ctx, eventID, tierID).Return(activeTier(eventID, tierID), nil)
	mockInv.On("Reserve", ctx, eventID, tierID).Return(nil)
	mockRedis.ExpectDel(fmt.Sprintf("event:%s", eventID)).SetVal(1)

	mockTickets.On("Create", ctx, mock.AnythingOfType("*domain.Ticket")).Return(nil)
	mockTxns.On("Create", ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil)

	raw := json.RawMessage(`{"transaction_status":"pending","va_numbers":[{"bank":"bca","va_number":"123"}]}`)
	mockGateway.On("Charge", ctx, mock.AnythingOfType("ports.ChargeRequest")).Return(&ports.ChargeResult{
		TransactionStatus: "pending",
		Raw:               raw,
	}, nil)
	mockTxns.On("SavePaymentDetails", ctx, mock.AnythingOfType("uuid.UUID"), raw).Return(nil)

	resp, err := service.Purchase(ctx, services.PurchaseRequest{
		BuyerID: buyerID.String(),
		EventID: eventID.String(),
		TierID:  tierID.String(),
		Bank:    "bca",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, resp) {
		assert.Equal(t, int64(150000), resp.AmountMinor)
		assert.Equal(t, "pending", resp.Status)
		assert.NotEmpty(t, resp.Barcode)
		assert.NotEmpty(t, resp.OrderID)
	}

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestPurchase_SoldOut(t *testing.T) {
	mockInv := mocks.NewInventoryRepository(t)
	mockTickets := mocks.NewTicketRepository(t)
	mockTxns := mocks.NewTransactionRepository(t)
	mockGateway := mocks.NewPaymentGateway(t)
	mockCache := mocks.NewEventCache(t)

	service := services.NewPurchaseService(mockInv, mockTickets, mockTxns, mockGateway, mockCache, 15*time.Minute)

	ctx := context.Background()
	eventID := uuid.New()
	tierID := uuid.New()

	mockInv.On("GetTier", ctx, eventID, tierID).Return(activeTier(eventID, tierID), nil)
	mockInv.On("Reserve", ctx, eventID, tierID).Return(domain.ErrSoldOut)

	resp, err := service.Purchase(ctx, services.PurchaseRequest{
		BuyerID: uuid.New().String(),
		EventID: eventID.String(),
		TierID:  tierID.String(),
		Bank:    "bni",
	})

	assert.ErrorIs(t, err, domain.ErrSoldOut)
	assert.Nil(t, resp)
	mockTickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPurchase_TierNotFound(t *testing.T) {
	mockInv := mocks.NewInventoryRepository(t)
	mockTickets := mocks.NewTicketRepository(t)
	mockTxns := mocks.NewTransactionRepository(t)
	mockGateway := mocks.NewPaymentGateway(t)
	mockCache := mocks.NewEventCache(t)

	service := services.NewPurchaseService(mockInv, mockTickets, mockTxns, mockGateway, mockCache, 15*time.Minute)

	ctx := context.Background()
	eventID := uuid.New()
	tierID := uuid.New()

	mockInv.On("GetTier", ctx, eventID, tierID).Return(nil, domain.ErrTierNotFound)

	resp, err := service.Purchase(ctx, services.PurchaseRequest{
		BuyerID: uuid.New().String(),
		EventID: eventID.String(),
		TierID:  tierID.String(),
		Bank:    "bca",
	})

	assert.ErrorIs(t, err, domain.ErrTierNotFound)
	assert.Nil(t, resp)
}

func TestPurchase_UnsupportedBank(t *testing.T) {
	mockInv := mocks.NewInventoryRepository(t)
	service := services.NewPurchaseService(
		mockInv,
		mocks.NewTicketRepository(t),
		mocks.NewTransactionRepository(t),
		mocks.NewPaymentGateway(t),
		mocks.NewEventCache(t),
		15*time.Minute,
	)

	resp, err := service.Purchase(context.Background(), services.PurchaseRequest{
		BuyerID: uuid.New().String(),
		EventID: uuid.New().String(),
		TierID:  uuid.New().String(),
		Bank:    "mandiri",
	})

	assert.ErrorIs(t, err, services.ErrInvalidRequest)
	assert.Nil(t, resp)
}

// A gateway failure after reservation, ticket and transaction creation must
// unwind all three: transaction deleted, ticket deleted, inventory released.
func TestPurchase_GatewayFailure_CompensatesEverything(t *testing.T) {
	mockInv := mocks.NewInventoryRepository(t)
	mockTickets := mocks.NewTicketRepository(t)
	mockTxns := mocks.NewTransactionRepository(t)
	mockGateway := mocks.NewPaymentGateway(t)
	mockCache := mocks.NewEventCache(t)

	service := services.NewPurchaseService(mockInv, mockTickets, mockTxns, mockGateway, mockCache, 15*time.Minute)

	ctx := context.Background()
	eventID := uuid.New()
	tierID := uuid.New()

	mockInv.On("GetTier", ctx, eventID, tierID).Return(activeTier(eventID, tierID), nil)
	mockInv.On("Reserve", ctx, eventID, tierID).Return(nil)
	mockCache.On("Invalidate", ctx, eventID).Return(nil)

	mockTickets.On("Create", ctx, mock.AnythingOfType("*domain.Ticket")).Return(nil)
	mockTxns.On("Create", ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil)

	chargeErr := fmt.Errorf("%w: http 503", domain.ErrGatewayUnavailable)
	mockGateway.On("Charge", ctx, mock.AnythingOfType("ports.ChargeRequest")).Return(nil, chargeErr)

	mockTxns.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)
	mockTickets.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)
	mockInv.On("Release", ctx, eventID, tierID).Return(nil)

	resp, err := service.Purchase(ctx, services.PurchaseRequest{
		BuyerID: uuid.New().String(),
		EventID: eventID.String(),
		TierID:  tierID.String(),
		Bank:    "bri",
	})

	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	assert.Nil(t, resp)
	mockInv.AssertNumberOfCalls(t, "Release", 1)
	mockTickets.AssertNumberOfCalls(t, "Delete", 1)
	mockTxns.AssertNumberOfCalls(t, "Delete", 1)
}

// A compensation step failing must not mask the original gateway error.
func TestPurchase_CompensationFailureKeepsOriginalError(t *testing.T) {
	mockInv := mocks.NewInventoryRepository(t)
	mockTickets := mocks.NewTicketRepository(t)
	mockTxns := mocks.NewTransactionRepository(t)
	mockGateway := mocks.NewPaymentGateway(t)
	mockCache := mocks.NewEventCache(t)

	service := services.NewPurchaseService(mockInv, mockTickets, mockTxns, mockGateway, mockCache, 15*time.Minute)

	ctx := context.Background()
	eventID := uuid.New()
	tierID := uuid.New()

	mockInv.On("GetTier", ctx, eventID, tierID).Return(activeTier(eventID, tierID), nil)
	mockInv.On("Reserve", ctx, eventID, tierID).Return(nil)
	mockCache.On("Invalidate", ctx, eventID).Return(nil)
	mockTickets.On("Create", ctx, mock.AnythingOfType("*domain.Ticket")).Return(nil)
	mockTxns.On("Create", ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil)

	chargeErr := fmt.Errorf("%w: timeout", domain.ErrGatewayUnavailable)
	mockGateway.On("Charge", ctx, mock.AnythingOfType("ports.ChargeRequest")).Return(nil, chargeErr)

	mockTxns.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(errors.New("db down"))
	mockTickets.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(errors.New("db down"))
	mockInv.On("Release", ctx, eventID, tierID).Return(nil)

	_, err := service.Purchase(ctx, services.PurchaseRequest{
		BuyerID: uuid.New().String(),
		EventID: eventID.String(),
		TierID:  tierID.String(),
		Bank:    "bca",
	})

	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	assert.NotContains(t, err.Error(), "db down")
}

func notification(orderID uuid.UUID, status string) *domain.PaymentNotification {
	body := fmt.Sprintf(`{"order_id":%q,"transaction_status":%q,"status_code":"200","gross_amount":"150000.00"}`, orderID, status)
	return &domain.PaymentNotification{
		OrderID:           orderID.String(),
		TransactionStatus: status,
		StatusCode:        "200",
		GrossAmount:       "150000.00",
		Raw:               json.RawMessage(body),
	}
}

func TestHandleNotification_SettlementMarksPurchased(t *testing.T) {
	mockInv := mocks.NewInventoryRepository(t)
	mockTickets := mocks.NewTicketRepository(t)
	mockTxns := mocks.NewTransactionRepository(t)

	service := services.NewPurchaseService(mockInv, mockTickets, mockTxns,
		mocks.NewPaymentGateway(t), mocks.NewEventCache(t), 15*time.Minute)

	ctx := context.Background()
	orderID := uuid.New()
	ticketID := uuid.New()

	mockTxns.On("GetByID", ctx, orderID).Return(&domain.Transaction{ID: orderID, TicketID: ticketID}, nil)
	n := notification(orderID, "settlement")
	mockTxns.On("SavePaymentDetails", ctx, orderID, n.Raw).Return(nil)
	mockTickets.On("TransitionStatus", ctx, ticketID, domain.TicketPurchased, domain.TicketPending).Return(true, nil)

	err := service.HandleNotification(ctx, n)

	assert.NoError(t, err)
	// Inventory stays reserved on settlement.
	mockInv.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleNotification_ExpireReleasesInventoryOnce(t *testing.T) {
	mockInv := mocks.NewInventoryRepository(t)
	mockTickets := mocks.NewTicketRepository(t)
	mockTxns := mocks.NewTransactionRepository(t)
	mockCache := mocks.NewEventCache(t)

	service := services.NewPurchaseService(mockInv, mockTickets, mockTxns,
		mocks.NewPaymentGateway(t), mockCache, 15*time.Minute)

	ctx := context.Background()
	orderID := uuid.New()
	eventID := uuid.New()
	tierID := uuid.New()
	ticketID := uuid.New()

	ticket := &domain.Ticket{ID: ticketID, EventID: eventID, TierID: tierID, Status: domain.TicketPending}
	n := notification(orderID, "expire")

	mockTxns.On("GetByID", ctx, orderID).Return(&domain.Transaction{ID: orderID, TicketID: ticketID}, nil)
	mockTxns.On("SavePaymentDetails", ctx, orderID, n.Raw).Return(nil)
	mockTickets.On("GetByID", ctx, ticketID).Return(ticket, nil)

	// First delivery wins the transition; the replay does not.
	mockTickets.On("TransitionStatus", ctx, ticketID, domain.TicketCancelled, domain.TicketPending, domain.TicketPurchased).
		Return(true, nil).Once()
	mockTickets.On("TransitionStatus", ctx, ticketID, domain.TicketCancelled, domain.TicketPending, domain.TicketPurchased).
		Return(false, nil).Once()

	mockInv.On("Release", ctx, eventID, tierID).Return(nil).Once()
	mockCache.On("Invalidate", ctx, eventID).Return(nil).Once()

	assert.NoError(t, service.HandleNotification(ctx, n))
	assert.NoError(t, service.HandleNotification(ctx, n))

	mockInv.AssertNumberOfCalls(t, "Release", 1)
}

func TestHandleNotification_PendingIsNoOp(t *testing.T) {
	mockInv := mocks.NewInventoryRepository(t)
	mockTickets := mocks.NewTicketRepository(t)
	mockTxns := mocks.NewTransactionRepository(t)

	service := services.NewPurchaseService(mockInv, mockTickets, mockTxns,
		mocks.NewPaymentGateway(t), mocks.NewEventCache(t), 15*time.Minute)

	ctx := context.Background()
	orderID := uuid.New()
	n := notification(orderID, "pending")

	mockTxns.On("GetByID", ctx, orderID).Return(&domain.Transaction{ID: orderID, TicketID: uuid.New()}, nil)
	mockTxns.On("SavePaymentDetails", ctx, orderID, n.Raw).Return(nil)

	assert.NoError(t, service.HandleNotification(ctx, n))

	mockTickets.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockInv.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleNotification_UnknownOrderIsAcknowledged(t *testing.T) {
	mockTxns := mocks.NewTransactionRepository(t)

	service := services.NewPurchaseService(
		mocks.NewInventoryRepository(t),
		mocks.NewTicketRepository(t),
		mockTxns,
		mocks.NewPaymentGateway(t),
		mocks.NewEventCache(t),
		15*time.Minute,
	)

	ctx := context.Background()
	orderID := uuid.New()

	mockTxns.On("GetByID", ctx, orderID).Return(nil, domain.ErrTransactionNotFound)

	// The gateway retries notifications; an unknown (already rolled back)
	// order must be acknowledged, not errored.
	assert.NoError(t, service.HandleNotification(ctx, notification(orderID, "settlement")))
}
