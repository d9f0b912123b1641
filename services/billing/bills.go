package billing

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"washline/database/table"
	"washline/models"
	"washline/utils"
)

// CreateBill validates the request, then writes all item records before
// the summary: the summary is the commit record readers key off, so a
// reader never sees a summary whose items are missing. If the summary
// write fails, the already-written records are removed best-effort and
// the original error is returned.
func (s *DefaultBillingService) CreateBill(ctx context.Context, customerID string, req BillRequest) (*models.Bill, error) {
	logger := utils.GetLogger()

	if _, err := s.CustomerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, table.ErrItemNotFound) {
			return nil, utils.NotFound("Customer not found")
		}
		return nil, err
	}

	items, err := normalizeItems(req.Items)
	if err != nil {
		return nil, err
	}
	total := computeTotal(items)

	var paid float64
	if req.PaidAmount != nil {
		paid = *req.PaidAmount
	}
	if err := validatePaidAmount(paid, total); err != nil {
		return nil, err
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	billID := uuid.New().String()
	now := time.Now().UTC()
	expiresAt := now.Add(s.BillTTL)
	for i := range items {
		items[i].CreatedAt = now
	}
	summary := models.BillSummary{
		BillID:      billID,
		CustomerID:  customerID,
		TotalAmount: total,
		PaidAmount:  paid,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	comp := newCompensator(logger)
	comp.Push("remove bill summary", func(ctx context.Context) error {
		return s.Repo.DeleteSummary(ctx, customerID, billID)
	})
	comp.Push("remove written bill items", func(ctx context.Context) error {
		return s.Repo.DeleteItems(ctx, billID, nil)
	})

	if err := s.Repo.WriteItems(ctx, billID, customerID, items, expiresAt); err != nil {
		logger.Error("Bill item write failed, rolling back",
			zap.String("billId", billID), zap.Error(err))
		comp.Rollback(ctx)
		return nil, err
	}
	if err := s.Repo.PutSummary(ctx, summary, expiresAt); err != nil {
		logger.Error("Bill summary write failed, rolling back",
			zap.String("billId", billID), zap.Error(err))
		comp.Rollback(ctx)
		return nil, err
	}

	return &models.Bill{Summary: summary, Items: items}, nil
}

// UpsertBill replaces the bill's entire aggregate, creating it when no
// summary exists. Items are deleted and rewritten wholesale rather than
// diffed: clients always submit the complete desired list, which buys a
// much simpler consistency story at the cost of write amplification.
func (s *DefaultBillingService) UpsertBill(ctx context.Context, billID string, req BillRequest) (*models.Bill, bool, error) {
	logger := utils.GetLogger()

	snap, err := s.Repo.Snapshot(ctx, billID)
	if err != nil && !errors.Is(err, table.ErrItemNotFound) {
		return nil, false, err
	}
	replacing := err == nil

	var existing *models.BillSummary
	var prevItems []models.BillItem
	customerID := req.CustomerID
	if replacing {
		summary := snap.Summary()
		existing = &summary
		prevItems = snap.Items()
		// A bill is never reassigned between customers: once it
		// exists, the stored owner wins over the request body.
		customerID = summary.CustomerID
	} else {
		if customerID == "" {
			return nil, false, utils.ValidationError("customerId is required")
		}
		if _, err := s.CustomerRepo.GetByID(ctx, customerID); err != nil {
			if errors.Is(err, table.ErrItemNotFound) {
				return nil, false, utils.NotFound("Customer not found")
			}
			return nil, false, err
		}
	}

	items, err := normalizeItems(req.Items)
	if err != nil {
		return nil, false, err
	}
	total := computeTotal(items)

	var paid float64
	if req.PaidAmount != nil {
		paid = *req.PaidAmount
	} else if existing != nil {
		paid = existing.PaidAmount
	}
	if err := validatePaidAmount(paid, total); err != nil {
		return nil, false, err
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		if dueDate, err = parseDueDate(req.DueDate); err != nil {
			return nil, false, err
		}
	} else if existing != nil {
		dueDate = existing.DueDate
	}

	now := time.Now().UTC()
	createdAt := now
	if existing != nil {
		createdAt = existing.CreatedAt
	}
	expiresAt := now.Add(s.BillTTL)
	for i := range items {
		items[i].CreatedAt = now
	}
	summary := models.BillSummary{
		BillID:      billID,
		CustomerID:  customerID,
		TotalAmount: total,
		PaidAmount:  paid,
		DueDate:     dueDate,
		CreatedAt:   createdAt,
		UpdatedAt:   now,
	}

	comp := newCompensator(logger)
	if replacing {
		comp.Push("restore previous bill records", func(ctx context.Context) error {
			return s.Repo.Restore(ctx, snap)
		})
		comp.Push("remove replacement bill items", func(ctx context.Context) error {
			return s.Repo.DeleteItems(ctx, billID, nil)
		})
		if err := s.Repo.DeleteItems(ctx, billID, prevItems); err != nil {
			logger.Error("Bill item replacement failed, rolling back",
				zap.String("billId", billID), zap.Error(err))
			comp.Rollback(ctx)
			return nil, false, err
		}
	} else {
		comp.Push("remove bill summary", func(ctx context.Context) error {
			return s.Repo.DeleteSummary(ctx, customerID, billID)
		})
		comp.Push("remove written bill items", func(ctx context.Context) error {
			return s.Repo.DeleteItems(ctx, billID, nil)
		})
	}

	if err := s.Repo.WriteItems(ctx, billID, customerID, items, expiresAt); err != nil {
		logger.Error("Bill item write failed, rolling back",
			zap.String("billId", billID), zap.Error(err))
		comp.Rollback(ctx)
		return nil, false, err
	}
	if err := s.Repo.PutSummary(ctx, summary, expiresAt); err != nil {
		logger.Error("Bill summary write failed, rolling back",
			zap.String("billId", billID), zap.Error(err))
		comp.Rollback(ctx)
		return nil, false, err
	}

	return &models.Bill{Summary: summary, Items: items}, !replacing, nil
}

// GetBill returns the summary plus its items.
func (s *DefaultBillingService) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	snap, err := s.Repo.Snapshot(ctx, billID)
	if err != nil {
		if errors.Is(err, table.ErrItemNotFound) {
			return nil, utils.NotFound("Bill not found")
		}
		return nil, err
	}
	return &models.Bill{Summary: snap.Summary(), Items: snap.Items()}, nil
}

// GetSummary returns just the bill summary.
func (s *DefaultBillingService) GetSummary(ctx context.Context, billID string) (*models.BillSummary, error) {
	summary, err := s.Repo.GetSummary(ctx, billID)
	if err != nil {
		if errors.Is(err, table.ErrItemNotFound) {
			return nil, utils.NotFound("Bill not found")
		}
		return nil, err
	}
	return summary, nil
}

// DeleteBill removes the summary first (hiding the bill from readers),
// then fans out the item deletes. Deletion is idempotent and
// forward-only; there is no compensation on this path.
func (s *DefaultBillingService) DeleteBill(ctx context.Context, billID string) error {
	summary, err := s.GetSummary(ctx, billID)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteSummary(ctx, summary.CustomerID, billID); err != nil {
		return err
	}
	return s.Repo.DeleteItems(ctx, billID, nil)
}

// ListByCustomer returns the customer's bills, newest first.
func (s *DefaultBillingService) ListByCustomer(ctx context.Context, customerID string) ([]models.BillSummary, error) {
	if _, err := s.CustomerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, table.ErrItemNotFound) {
			return nil, utils.NotFound("Customer not found")
		}
		return nil, err
	}
	summaries, err := s.Repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// PurgeItems removes every item of the given bill.
func (s *DefaultBillingService) PurgeItems(ctx context.Context, billID string) error {
	return s.Repo.DeleteItems(ctx, billID, nil)
}
