package billing

import (
	"net/http"
	"strings"
	"testing"

	"washline/models"
	"washline/utils"
)

func strPtr(s string) *string { return &s }

func TestNormalizeItems(t *testing.T) {
	items, err := normalizeItems([]ItemInput{
		{Name: "  Shirt  ", Quantity: 2, PricePerUnit: 50, Service: strPtr(" Wash ")},
		{ItemID: "fixed-id", Name: "Pants", Quantity: 1, PricePerUnit: 80},
	})
	if err != nil {
		t.Fatalf("normalizeItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	if items[0].Name != "Shirt" {
		t.Errorf("name not trimmed: %q", items[0].Name)
	}
	if items[0].Service == nil || *items[0].Service != "Wash" {
		t.Errorf("service not trimmed: %v", items[0].Service)
	}
	if items[0].ItemID == "" {
		t.Error("missing item id was not generated")
	}
	if items[1].ItemID != "fixed-id" {
		t.Errorf("supplied item id not preserved: %q", items[1].ItemID)
	}
	if items[1].Service != nil {
		t.Errorf("absent service should stay nil, got %v", items[1].Service)
	}
}

func TestNormalizeItemsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		items   []ItemInput
		wantMsg string
	}{
		{
			name:    "empty list",
			items:   nil,
			wantMsg: "At least one item is required",
		},
		{
			name:    "blank name",
			items:   []ItemInput{{Name: "Shirt", Quantity: 1, PricePerUnit: 1}, {Name: "   ", Quantity: 1, PricePerUnit: 1}},
			wantMsg: "items[1].name is required",
		},
		{
			name:    "zero quantity",
			items:   []ItemInput{{Name: "Shirt", Quantity: 0, PricePerUnit: 1}},
			wantMsg: "items[0].quantity must be greater than 0",
		},
		{
			name:    "negative quantity",
			items:   []ItemInput{{Name: "Shirt", Quantity: -2, PricePerUnit: 1}},
			wantMsg: "items[0].quantity must be greater than 0",
		},
		{
			name:    "negative price",
			items:   []ItemInput{{Name: "Shirt", Quantity: 1, PricePerUnit: -1}},
			wantMsg: "items[0].pricePerUnit must be zero or positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := normalizeItems(tt.items)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if items != nil {
				t.Error("invalid batch must not return items (all-or-nothing)")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
			if utils.StatusOf(err) != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", utils.StatusOf(err))
			}
		})
	}
}

func TestComputeTotal(t *testing.T) {
	items := []models.BillItem{
		{Quantity: 2, PricePerUnit: 50},
		{Quantity: 1, PricePerUnit: 80},
		{Quantity: 0.5, PricePerUnit: 30},
	}
	if got := computeTotal(items); got != 195 {
		t.Errorf("computeTotal = %v, want 195", got)
	}
	if got := computeTotal(nil); got != 0 {
		t.Errorf("computeTotal(nil) = %v, want 0", got)
	}
}

func TestValidatePaidAmount(t *testing.T) {
	if err := validatePaidAmount(100, 100); err != nil {
		t.Errorf("paid == total should pass: %v", err)
	}
	if err := validatePaidAmount(0, 0); err != nil {
		t.Errorf("zero paid against zero total should pass: %v", err)
	}
	if err := validatePaidAmount(-1, 100); err == nil {
		t.Error("negative paid amount should fail")
	}
	if err := validatePaidAmount(101, 100); err == nil {
		t.Error("paid above total should fail")
	}
}

func TestParseDueDate(t *testing.T) {
	if due, err := parseDueDate(nil); err != nil || due != nil {
		t.Errorf("nil due date: got %v, %v", due, err)
	}
	if due, err := parseDueDate(strPtr("")); err != nil || due != nil {
		t.Errorf("empty due date: got %v, %v", due, err)
	}
	for _, valid := range []string{"2026-09-15T10:00:00Z", "2026-09-15T10:00:00", "2026-09-15"} {
		if due, err := parseDueDate(strPtr(valid)); err != nil || due == nil {
			t.Errorf("parseDueDate(%q) = %v, %v", valid, due, err)
		}
	}
	if _, err := parseDueDate(strPtr("next tuesday")); err == nil {
		t.Error("invalid due date should fail")
	} else if utils.StatusOf(err) != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", utils.StatusOf(err))
	}
}
