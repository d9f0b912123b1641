package billing

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"washline/models"
	"washline/utils"
)

// dueDateLayouts are the accepted due date formats, tried in order.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// normalizeItems validates and normalizes the raw item list in order.
// Any invalid entry aborts the whole batch; no item is silently
// dropped. Missing item ids are generated. The input is not mutated.
func normalizeItems(raw []ItemInput) ([]models.BillItem, error) {
	if len(raw) == 0 {
		return nil, utils.ValidationError("At least one item is required")
	}
	items := make([]models.BillItem, 0, len(raw))
	for i, in := range raw {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, utils.ValidationError("items[%d].name is required", i)
		}
		if !isFinite(in.Quantity) || in.Quantity <= 0 {
			return nil, utils.ValidationError("items[%d].quantity must be greater than 0", i)
		}
		if !isFinite(in.PricePerUnit) || in.PricePerUnit < 0 {
			return nil, utils.ValidationError("items[%d].pricePerUnit must be zero or positive", i)
		}

		var service *string
		if in.Service != nil {
			if trimmed := strings.TrimSpace(*in.Service); trimmed != "" {
				service = &trimmed
			}
		}

		itemID := strings.TrimSpace(in.ItemID)
		if itemID == "" {
			itemID = uuid.New().String()
		}

		items = append(items, models.BillItem{
			ItemID:       itemID,
			Name:         name,
			Quantity:     in.Quantity,
			PricePerUnit: in.PricePerUnit,
			Service:      service,
		})
	}
	return items, nil
}

// computeTotal sums quantity×pricePerUnit across items. The result is
// what gets persisted as the summary's totalAmount; client-supplied
// totals are never trusted.
func computeTotal(items []models.BillItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Quantity * item.PricePerUnit
	}
	return total
}

// validatePaidAmount checks the paid amount against the newly computed
// total, never against a previously stored one.
func validatePaidAmount(paid, total float64) error {
	if !isFinite(paid) || paid < 0 {
		return utils.ValidationError("paidAmount must be zero or positive")
	}
	if paid > total {
		return utils.ValidationError("paidAmount cannot exceed total amount")
	}
	return nil
}

// parseDueDate parses an optional due date. Nil or empty means "no due
// date" and is always allowed.
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	for _, layout := range dueDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
	}
	return nil, utils.ValidationError("dueDate must be an ISO 8601 datetime")
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
