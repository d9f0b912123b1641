package billRepo

import (
	"context"
	"time"

	"washline/database/table"
	"washline/models"
)

func (r *tableBillRepo) GetSummary(ctx context.Context, billID string) (*models.BillSummary, error) {
	record, err := r.getSummaryRecord(ctx, billID)
	if err != nil {
		return nil, err
	}
	return &record.BillSummary, nil
}

func (r *tableBillRepo) Snapshot(ctx context.Context, billID string) (*Snapshot, error) {
	summary, err := r.getSummaryRecord(ctx, billID)
	if err != nil {
		return nil, err
	}
	var items []itemRecord
	if err := r.tbl.QueryPrefix(ctx, billKeyPref+billID, itemKeyPref, &items); err != nil {
		return nil, err
	}
	return &Snapshot{summary: *summary, items: items}, nil
}

func (r *tableBillRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.BillSummary, error) {
	var records []summaryRecord
	if err := r.tbl.QueryPrefix(ctx, customerKeyPref+customerID, billKeyPref, &records); err != nil {
		return nil, err
	}
	summaries := make([]models.BillSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, record.BillSummary)
	}
	return summaries, nil
}

func (r *tableBillRepo) ListItems(ctx context.Context, billID string) ([]models.BillItem, error) {
	var records []itemRecord
	if err := r.tbl.QueryPrefix(ctx, billKeyPref+billID, itemKeyPref, &records); err != nil {
		return nil, err
	}
	items := make([]models.BillItem, 0, len(records))
	for _, record := range records {
		items = append(items, record.BillItem)
	}
	return items, nil
}

func (r *tableBillRepo) PutSummary(ctx context.Context, summary models.BillSummary, expiresAt time.Time) error {
	return r.tbl.Put(ctx, newSummaryRecord(summary, expiresAt))
}

func (r *tableBillRepo) WriteItems(ctx context.Context, billID, customerID string, items []models.BillItem, expiresAt time.Time) error {
	if len(items) == 0 {
		return nil
	}
	puts := make([]any, 0, len(items))
	for _, item := range items {
		puts = append(puts, newItemRecord(billID, customerID, item, expiresAt))
	}
	return r.tbl.BatchWrite(ctx, puts, nil)
}

func (r *tableBillRepo) DeleteItems(ctx context.Context, billID string, items []models.BillItem) error {
	if items == nil {
		stored, err := r.ListItems(ctx, billID)
		if err != nil {
			return err
		}
		items = stored
	}
	if len(items) == 0 {
		return nil
	}
	deletes := make([]table.Key, 0, len(items))
	for _, item := range items {
		deletes = append(deletes, itemKey(billID, item.ItemID))
	}
	return r.tbl.BatchWrite(ctx, nil, deletes)
}

func (r *tableBillRepo) DeleteSummary(ctx context.Context, customerID, billID string) error {
	return r.tbl.Delete(ctx, summaryKey(customerID, billID))
}

func (r *tableBillRepo) Restore(ctx context.Context, snap *Snapshot) error {
	if err := r.tbl.Put(ctx, snap.summary); err != nil {
		return err
	}
	if len(snap.items) == 0 {
		return nil
	}
	puts := make([]any, 0, len(snap.items))
	for _, record := range snap.items {
		puts = append(puts, record)
	}
	return r.tbl.BatchWrite(ctx, puts, nil)
}

func (r *tableBillRepo) getSummaryRecord(ctx context.Context, billID string) (*summaryRecord, error) {
	var records []summaryRecord
	if err := r.tbl.QueryIndex(ctx, billKeyPref+billID, 1, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, table.ErrItemNotFound
	}
	return &records[0], nil
}
