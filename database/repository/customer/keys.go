package customerRepo

import (
	"washline/database/table"
	"washline/models"
)

const (
	listingPK       = "CUSTOMERS"
	profileSK       = "PROFILE"
	customerKeyPref = "CUSTOMER#"
	phoneKeyPref    = "PHONE#"
	entityType      = "CUSTOMER"
)

// profileRecord is the customer's primary record, indexed by phone for
// uniqueness lookups.
type profileRecord struct {
	PK              string `bson:"pk"`
	SK              string `bson:"sk"`
	GSI1PK          string `bson:"gsi1pk"`
	GSI1SK          string `bson:"gsi1sk"`
	EntityType      string `bson:"entityType"`
	models.Customer `bson:",inline"`
}

// listingRecord is the denormalized entry under the shared listing
// partition, so listing all customers is a single-partition query.
type listingRecord struct {
	PK              string `bson:"pk"`
	SK              string `bson:"sk"`
	EntityType      string `bson:"entityType"`
	models.Customer `bson:",inline"`
}

func profileKey(customerID string) table.Key {
	return table.Key{PK: customerKeyPref + customerID, SK: profileSK}
}

func listingKey(customerID string) table.Key {
	return table.Key{PK: listingPK, SK: customerKeyPref + customerID}
}

func newProfileRecord(c models.Customer) profileRecord {
	return profileRecord{
		PK:         customerKeyPref + c.CustomerID,
		SK:         profileSK,
		GSI1PK:     phoneKeyPref + c.Phone,
		GSI1SK:     customerKeyPref + c.CustomerID,
		EntityType: entityType,
		Customer:   c,
	}
}

func newListingRecord(c models.Customer) listingRecord {
	return listingRecord{
		PK:         listingPK,
		SK:         customerKeyPref + c.CustomerID,
		EntityType: entityType,
		Customer:   c,
	}
}
