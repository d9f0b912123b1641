package models

import "time"

// BillSummary holds a bill's totals, payment state and due date.
// TotalAmount is always derived from the current item set, never taken
// from client input.
type BillSummary struct {
	BillID      string     `bson:"billId" json:"billId"`
	CustomerID  string     `bson:"customerId" json:"customerId"`
	TotalAmount float64    `bson:"totalAmount" json:"totalAmount"`
	PaidAmount  float64    `bson:"paidAmount" json:"paidAmount"`
	DueDate     *time.Time `bson:"dueDate" json:"dueDate"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// BillItem is one line entry (garment/service) belonging to a bill.
// Items have no identity outside their bill.
type BillItem struct {
	ItemID       string    `bson:"itemId" json:"itemId"`
	Name         string    `bson:"name" json:"name"`
	Quantity     float64   `bson:"quantity" json:"quantity"`
	PricePerUnit float64   `bson:"pricePerUnit" json:"pricePerUnit"`
	Service      *string   `bson:"service" json:"service"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// Bill is the full aggregate returned by the API: the summary plus its
// item set.
type Bill struct {
	Summary BillSummary `json:"bill"`
	Items   []BillItem  `json:"items"`
}
