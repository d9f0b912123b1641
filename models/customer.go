package models

import "time"

// Customer represents a shop customer. Phone numbers are unique across
// customers and double as the human-facing lookup key.
type Customer struct {
	CustomerID string    `bson:"customerId" json:"customerId"`
	Name       string    `bson:"name" json:"name"`
	Phone      string    `bson:"phone" json:"phone"`
	Address    string    `bson:"address" json:"address"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
