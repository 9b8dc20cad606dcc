package scan

import (
	"regexp"
	"strings"
	"time"
)

// ValidationError is one field-level finding. ItemIndex is set when the
// finding concerns a specific item.
type ValidationError struct {
	Field     string `json:"field"`
	Message   string `json:"message"`
	ItemIndex *int   `json:"item_index,omitempty"`
}

// ValidationResult separates blocking errors from non-blocking warnings.
// Saving is gated on IsValid only.
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
}

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// Validate checks a receipt draft against the business rules. It is a pure
// function: callers re-run it after every edit, and identical input yields
// an identical result. The total it checks is expected to be the recomputed
// sum from RecomputeTotal, never the raw extraction value.
func Validate(data *ReceiptData) ValidationResult {
	var errors, warnings []ValidationError

	if data.StoreName == nil || strings.TrimSpace(*data.StoreName) == "" {
		errors = append(errors, ValidationError{Field: "store_name", Message: "Store name is required"})
	}

	if data.Date == nil || *data.Date == "" {
		errors = append(errors, ValidationError{Field: "date", Message: "Date is required"})
	} else if !dateRe.MatchString(*data.Date) {
		errors = append(errors, ValidationError{Field: "date", Message: "Date must be in YYYY-MM-DD format"})
	} else if parsed, err := time.ParseInLocation("2006-01-02", *data.Date, time.Local); err != nil {
		errors = append(errors, ValidationError{Field: "date", Message: "Date must be a valid calendar date"})
	} else if parsed.After(time.Now()) {
		errors = append(errors, ValidationError{Field: "date", Message: "Date cannot be in the future"})
	}

	// Time is optional, but must be well-formed when present.
	if data.Time != nil && *data.Time != "" && !timeRe.MatchString(*data.Time) {
		errors = append(errors, ValidationError{Field: "time", Message: "Time must be in HH:MM format (24-hour)"})
	}

	if data.TotalPrice == nil {
		errors = append(errors, ValidationError{Field: "total_price", Message: "Total price is required"})
	} else if *data.TotalPrice <= 0 {
		errors = append(errors, ValidationError{Field: "total_price", Message: "Total price must be greater than 0"})
	}

	if data.PaymentMethod == nil || strings.TrimSpace(*data.PaymentMethod) == "" {
		errors = append(errors, ValidationError{Field: "payment_method", Message: "Payment method is required"})
	}

	if len(data.Items) == 0 {
		errors = append(errors, ValidationError{Field: "items", Message: "At least one item is required"})
	} else {
		pricedItems := 0
		for i := range data.Items {
			item := &data.Items[i]
			index := i

			if item.Name == nil || strings.TrimSpace(*item.Name) == "" {
				errors = append(errors, ValidationError{Field: "name", Message: "Item name is required", ItemIndex: &index})
			}

			if item.Category == nil || strings.TrimSpace(*item.Category) == "" {
				warnings = append(warnings, ValidationError{Field: "category", Message: "Category is recommended", ItemIndex: &index})
			}

			if item.Quantity == nil {
				warnings = append(warnings, ValidationError{Field: "quantity", Message: "Quantity should be specified", ItemIndex: &index})
			} else if *item.Quantity <= 0 {
				errors = append(errors, ValidationError{Field: "quantity", Message: "Quantity must be greater than 0", ItemIndex: &index})
			}

			if item.Price == nil {
				errors = append(errors, ValidationError{Field: "price", Message: "Item price is required", ItemIndex: &index})
			} else if *item.Price < 0 {
				errors = append(errors, ValidationError{Field: "price", Message: "Item price cannot be negative", ItemIndex: &index})
			} else {
				pricedItems++
			}
		}

		// A receipt whose items all lack a price can never reconcile with a
		// total, so it cannot be saved.
		if pricedItems == 0 {
			errors = append(errors, ValidationError{Field: "items", Message: "At least one item must have a valid price"})
		}
	}

	return ValidationResult{
		IsValid:  len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}
