package scan

import "math"

// Item is a single line item on a receipt draft. Fields are pointers because
// every value coming out of the extraction step may be absent.
type Item struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Quantity *float64 `json:"quantity"`
	Price    *float64 `json:"price"`
}

// ReceiptData is a receipt draft: the structured result of an extraction,
// edited by the user until it validates and gets saved.
type ReceiptData struct {
	StoreName     *string  `json:"store_name"`
	Date          *string  `json:"date"`
	Time          *string  `json:"time"`
	TotalPrice    *float64 `json:"total_price"`
	PaymentMethod *string  `json:"payment_method"`
	Items         []Item   `json:"items"`
}

// RecomputeTotal sums price × quantity over the items with a known price,
// rounded to cents. Quantity defaults to 1 when absent. The result always
// supersedes the total the extraction step reported.
func RecomputeTotal(items []Item) float64 {
	var total float64
	for _, item := range items {
		if item.Price == nil {
			continue
		}
		qty := 1.0
		if item.Quantity != nil {
			qty = *item.Quantity
		}
		total += *item.Price * qty
	}
	return math.Round(total*100) / 100
}
