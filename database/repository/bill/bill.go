package billRepo

import (
	"context"
	"time"

	"washline/database/table"
	"washline/models"
)

// BillRepository persists bill summaries and their item records. The
// summary lives in the owning customer's partition and is denormalized
// into the secondary index for id-only lookup; items live in the bill's
// own partition. Item writes and deletes go through chunked batches.
type BillRepository interface {
	// GetSummary resolves a bill id to its summary via the secondary
	// index, or returns table.ErrItemNotFound.
	GetSummary(ctx context.Context, billID string) (*models.BillSummary, error)

	// Snapshot captures the bill's current summary and full item set as
	// stored, for use as a compensation restore point. Returns
	// table.ErrItemNotFound when no summary exists.
	Snapshot(ctx context.Context, billID string) (*Snapshot, error)

	// ListByCustomer returns the customer's bill summaries.
	ListByCustomer(ctx context.Context, customerID string) ([]models.BillSummary, error)

	// ListItems returns the bill's items in sort-key order.
	ListItems(ctx context.Context, billID string) ([]models.BillItem, error)

	// PutSummary writes the summary record with the given expiry.
	PutSummary(ctx context.Context, summary models.BillSummary, expiresAt time.Time) error

	// WriteItems writes the item records in chunks of table.MaxBatchOps.
	WriteItems(ctx context.Context, billID, customerID string, items []models.BillItem, expiresAt time.Time) error

	// DeleteItems removes the given items, or every stored item of the
	// bill when items is nil. Chunked like WriteItems.
	DeleteItems(ctx context.Context, billID string, items []models.BillItem) error

	// DeleteSummary removes the summary record.
	DeleteSummary(ctx context.Context, customerID, billID string) error

	// Restore writes a snapshot's records back verbatim, preserving the
	// original timestamps and expiry.
	Restore(ctx context.Context, snap *Snapshot) error
}

// Snapshot is a restore point for a bill aggregate. The raw records are
// opaque to callers; the accessors expose the domain view.
type Snapshot struct {
	summary summaryRecord
	items   []itemRecord
}

// Summary returns the snapshotted bill summary.
func (s *Snapshot) Summary() models.BillSummary {
	return s.summary.BillSummary
}

// Items returns the snapshotted item set.
func (s *Snapshot) Items() []models.BillItem {
	items := make([]models.BillItem, 0, len(s.items))
	for _, record := range s.items {
		items = append(items, record.BillItem)
	}
	return items
}

type tableBillRepo struct {
	tbl table.Table
}

// NewBillRepo returns a BillRepository backed by the table.
func NewBillRepo(tbl table.Table) BillRepository {
	return &tableBillRepo{tbl: tbl}
}
