package customerRepo

import (
	"context"

	"washline/database/table"
	"washline/models"
)

func (r *tableCustomerRepo) Create(ctx context.Context, customer models.Customer) error {
	return r.tbl.BatchWrite(ctx, []any{
		newProfileRecord(customer),
		newListingRecord(customer),
	}, nil)
}

func (r *tableCustomerRepo) GetByID(ctx context.Context, customerID string) (*models.Customer, error) {
	var record profileRecord
	if err := r.tbl.Get(ctx, profileKey(customerID), &record); err != nil {
		return nil, err
	}
	return &record.Customer, nil
}

func (r *tableCustomerRepo) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var records []profileRecord
	if err := r.tbl.QueryIndex(ctx, phoneKeyPref+phone, 1, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0].Customer, nil
}

func (r *tableCustomerRepo) List(ctx context.Context) ([]models.Customer, error) {
	var records []listingRecord
	if err := r.tbl.Query(ctx, listingPK, &records); err != nil {
		return nil, err
	}
	customers := make([]models.Customer, 0, len(records))
	for _, record := range records {
		customers = append(customers, record.Customer)
	}
	return customers, nil
}

func (r *tableCustomerRepo) Delete(ctx context.Context, customerID string, billIDs []string) error {
	deletes := []table.Key{
		profileKey(customerID),
		listingKey(customerID),
	}
	for _, billID := range billIDs {
		deletes = append(deletes, table.Key{
			PK: customerKeyPref + customerID,
			SK: "BILL#" + billID,
		})
	}
	return r.tbl.BatchWrite(ctx, nil, deletes)
}
