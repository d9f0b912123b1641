package handlers

import (
	"washline/services/auth"
	"washline/services/billing"
	"washline/services/customer"
)

// HandlerBundle aggregates the handlers and the auth service the route
// layer wires them up with.
type HandlerBundle struct {
	AuthService auth.AuthService

	Auth      *AuthHandler
	Customers *CustomerHandler
	Bills     *BillHandler
}

// NewHandlerBundle assembles the bundle from the three services.
func NewHandlerBundle(authSvc auth.AuthService, customerSvc customer.CustomerService, billingSvc billing.BillingService) *HandlerBundle {
	return &HandlerBundle{
		AuthService: authSvc,
		Auth:        &AuthHandler{Service: authSvc},
		Customers:   &CustomerHandler{Service: customerSvc, Billing: billingSvc},
		Bills:       &BillHandler{Service: billingSvc},
	}
}
