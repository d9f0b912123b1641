package customerRepo

import (
	"context"

	"washline/database/table"
	"washline/models"
)

// CustomerRepository persists customer profiles, the denormalized
// customer listing and the phone reverse-lookup entries.
type CustomerRepository interface {
	// Create writes the profile record and its listing entry as one
	// batch.
	Create(ctx context.Context, customer models.Customer) error

	// GetByID returns the customer's profile, or table.ErrItemNotFound.
	GetByID(ctx context.Context, customerID string) (*models.Customer, error)

	// FindByPhone resolves a phone number to its customer via the
	// secondary index. Returns nil when the phone is unclaimed.
	FindByPhone(ctx context.Context, phone string) (*models.Customer, error)

	// List returns all customers from the listing partition.
	List(ctx context.Context) ([]models.Customer, error)

	// Delete removes the profile, the listing entry and the given bill
	// summary records in chunked batches. Bill items are not touched;
	// the caller fans those out per bill beforehand.
	Delete(ctx context.Context, customerID string, billIDs []string) error
}

type tableCustomerRepo struct {
	tbl table.Table
}

// NewCustomerRepo returns a CustomerRepository backed by the table.
func NewCustomerRepo(tbl table.Table) CustomerRepository {
	return &tableCustomerRepo{tbl: tbl}
}
