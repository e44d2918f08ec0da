package domain

import "errors"

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrTierNotFound        = errors.New("ticket tier not found")
	ErrSoldOut             = errors.New("ticket tier sold out")
	ErrSaleClosed          = errors.New("ticket sales closed for this tier")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrNotTicketOwner      = errors.New("not the owner of this ticket")
	ErrTicketNotActive     = errors.New("ticket is not active")
	ErrAlreadyCheckedIn    = errors.New("ticket has already been checked in")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")
)
