package billRepo

import (
	"time"

	"washline/database/table"
	"washline/models"
)

const (
	customerKeyPref = "CUSTOMER#"
	billKeyPref     = "BILL#"
	itemKeyPref     = "ITEM#"
	summarySK       = "SUMMARY"

	summaryEntityType = "BILL"
	itemEntityType    = "BILL_ITEM"
)

// summaryRecord is the bill's commit record: readers key off it, so it
// is always written after the item set it describes.
type summaryRecord struct {
	PK                 string    `bson:"pk"`
	SK                 string    `bson:"sk"`
	GSI1PK             string    `bson:"gsi1pk"`
	GSI1SK             string    `bson:"gsi1sk"`
	EntityType         string    `bson:"entityType"`
	ExpiresAt          time.Time `bson:"expiresAt"`
	models.BillSummary `bson:",inline"`
}

type itemRecord struct {
	PK              string    `bson:"pk"`
	SK              string    `bson:"sk"`
	EntityType      string    `bson:"entityType"`
	BillID          string    `bson:"billId"`
	CustomerID      string    `bson:"customerId"`
	ExpiresAt       time.Time `bson:"expiresAt"`
	models.BillItem `bson:",inline"`
}

func summaryKey(customerID, billID string) table.Key {
	return table.Key{PK: customerKeyPref + customerID, SK: billKeyPref + billID}
}

func itemKey(billID, itemID string) table.Key {
	return table.Key{PK: billKeyPref + billID, SK: itemKeyPref + itemID}
}

func newSummaryRecord(summary models.BillSummary, expiresAt time.Time) summaryRecord {
	return summaryRecord{
		PK:          customerKeyPref + summary.CustomerID,
		SK:          billKeyPref + summary.BillID,
		GSI1PK:      billKeyPref + summary.BillID,
		GSI1SK:      summarySK,
		EntityType:  summaryEntityType,
		ExpiresAt:   expiresAt,
		BillSummary: summary,
	}
}

func newItemRecord(billID, customerID string, item models.BillItem, expiresAt time.Time) itemRecord {
	return itemRecord{
		PK:         billKeyPref + billID,
		SK:         itemKeyPref + item.ItemID,
		EntityType: itemEntityType,
		BillID:     billID,
		CustomerID: customerID,
		ExpiresAt:  expiresAt,
		BillItem:   item,
	}
}
