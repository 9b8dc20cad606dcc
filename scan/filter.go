package scan

import (
	"regexp"
	"strings"
)

// Patterns for receipt lines that the model tends to report as items but
// that are not products: totals, tax and discount lines, bare numbers,
// SKU-like codes, price-only strings and payment method echoes.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^totaal$`),
	regexp.MustCompile(`(?i)^total$`),
	regexp.MustCompile(`(?i)^subtotaal$`),
	regexp.MustCompile(`(?i)^subtotal$`),
	regexp.MustCompile(`(?i)^btw$`),
	regexp.MustCompile(`(?i)^vat$`),
	regexp.MustCompile(`(?i)^tax$`),
	regexp.MustCompile(`(?i)^kortin?g$`),
	regexp.MustCompile(`(?i)^discount$`),
	regexp.MustCompile(`^\d+$`),
	regexp.MustCompile(`^[A-Z0-9]{3,}$`),
	regexp.MustCompile(`^€?\d+,\d{2}$`),
	regexp.MustCompile(`(?i)cash`),
	regexp.MustCompile(`(?i)visa`),
	regexp.MustCompile(`(?i)bancontact`),
	regexp.MustCompile(`(?i)credit card`),
	regexp.MustCompile(`(?i)debit card`),
}

var (
	letterRe     = regexp.MustCompile(`[a-zA-Z]`)
	whitespaceRe = regexp.MustCompile(`\s`)
)

// FilterItems removes non-product lines from an extracted item list. It is
// pure and order-preserving; filtering an already filtered list returns the
// same list.
func FilterItems(items []Item) []Item {
	filtered := make([]Item, 0, len(items))
outer:
	for _, item := range items {
		if item.Name == nil {
			continue
		}
		name := strings.TrimSpace(*item.Name)
		if name == "" {
			continue
		}
		for _, pattern := range noisePatterns {
			if pattern.MatchString(name) {
				continue outer
			}
		}
		// Names with less than 30% letters are barcodes or codes, not
		// product labels.
		letters := len(letterRe.FindAllString(name, -1))
		chars := len(whitespaceRe.ReplaceAllString(name, ""))
		if chars > 0 && float64(letters)/float64(chars) < 0.3 {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}
