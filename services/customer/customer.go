package customer

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	customerRepo "washline/database/repository/customer"
	"washline/database/table"
	"washline/models"
	"washline/services/billing"
	"washline/utils"
)

// CreateCustomerRequest is the parsed customer-creation payload.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CustomerService manages customer profiles and their cascade
// deletion.
type CustomerService interface {
	// Create registers a new customer. Phone numbers are unique; a
	// duplicate yields a Conflict error.
	Create(ctx context.Context, req CreateCustomerRequest) (*models.Customer, error)

	// List returns all customers, newest first.
	List(ctx context.Context) ([]models.Customer, error)

	// Get returns one customer, or NotFound.
	Get(ctx context.Context, customerID string) (*models.Customer, error)

	// Delete removes the customer and every bill (summary + items) it
	// owns. The cascade is forward-only: if a later step fails, earlier
	// deletions stay applied.
	Delete(ctx context.Context, customerID string) error
}

// DefaultCustomerService is the table-backed CustomerService.
type DefaultCustomerService struct {
	Repo    customerRepo.CustomerRepository
	Billing billing.BillingService
}

func (s *DefaultCustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*models.Customer, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	address := strings.TrimSpace(req.Address)
	if name == "" || phone == "" {
		return nil, utils.ValidationError("name and phone are required")
	}

	existing, err := s.Repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.Conflict("Phone number already exists")
	}

	cust := models.Customer{
		CustomerID: uuid.New().String(),
		Name:       name,
		Phone:      phone,
		Address:    address,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, cust); err != nil {
		return nil, err
	}
	return &cust, nil
}

func (s *DefaultCustomerService) List(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CreatedAt.After(customers[j].CreatedAt)
	})
	return customers, nil
}

func (s *DefaultCustomerService) Get(ctx context.Context, customerID string) (*models.Customer, error) {
	cust, err := s.Repo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, table.ErrItemNotFound) {
			return nil, utils.NotFound("Customer not found")
		}
		return nil, err
	}
	return cust, nil
}

// Delete fans out over the customer's bills, removing each bill's items
// before the summaries, profile and listing entry go in one final
// chunked batch. No rollback is attempted: deletion is idempotent, and
// a partial cascade is re-runnable.
func (s *DefaultCustomerService) Delete(ctx context.Context, customerID string) error {
	logger := utils.GetLogger()

	if _, err := s.Get(ctx, customerID); err != nil {
		return err
	}

	bills, err := s.Billing.ListByCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	billIDs := make([]string, 0, len(bills))
	for _, bill := range bills {
		billIDs = append(billIDs, bill.BillID)
		if err := s.Billing.PurgeItems(ctx, bill.BillID); err != nil {
			return err
		}
	}

	if err := s.Repo.Delete(ctx, customerID, billIDs); err != nil {
		return err
	}

	logger.Info("Customer deleted",
		zap.String("customerId", customerID),
		zap.Int("bills", len(billIDs)))
	return nil
}
