package billing

import (
	"context"
	"time"

	billRepo "washline/database/repository/bill"
	customerRepo "washline/database/repository/customer"
	"washline/models"
)

// ItemInput is one raw item descriptor as submitted by the client.
type ItemInput struct {
	ItemID       string  `json:"itemId"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Service      *string `json:"service"`
}

// BillRequest is the parsed bill payload. Nil PaidAmount and DueDate
// mean the field was omitted; on replace they default to the stored
// values, on create to zero / no due date.
type BillRequest struct {
	CustomerID string
	Items      []ItemInput
	PaidAmount *float64
	DueDate    *string
}

// BillingService owns the bill aggregate: it keeps the summary record
// and the variable-length item set consistent across create, replace
// and delete, compensating on partial failure.
type BillingService interface {
	// CreateBill creates a new bill for an existing customer.
	CreateBill(ctx context.Context, customerID string, req BillRequest) (*models.Bill, error)

	// UpsertBill replaces the bill's entire aggregate, or creates it if
	// absent (in which case req.CustomerID is required). The returned
	// flag is true when a new bill was created.
	UpsertBill(ctx context.Context, billID string, req BillRequest) (*models.Bill, bool, error)

	// GetBill returns the bill summary plus its items.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// GetSummary returns just the bill summary.
	GetSummary(ctx context.Context, billID string) (*models.BillSummary, error)

	// DeleteBill removes the summary and all items, forward-only.
	DeleteBill(ctx context.Context, billID string) error

	// ListByCustomer returns the customer's bills, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]models.BillSummary, error)

	// PurgeItems removes every item of the given bill. Used by the
	// customer cascade-deletion path.
	PurgeItems(ctx context.Context, billID string) error
}

// DefaultBillingService is the table-backed BillingService.
type DefaultBillingService struct {
	Repo         billRepo.BillRepository
	CustomerRepo customerRepo.CustomerRepository

	// BillTTL is the retention window stamped on every summary and item
	// write; the store reaps expired records automatically.
	BillTTL time.Duration
}
