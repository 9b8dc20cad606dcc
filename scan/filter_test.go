package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

func TestFilterItems_DropsNoiseLines(t *testing.T) {
	items := []Item{
		{Name: strPtr("Melk halfvol"), Price: numPtr(1.29)},
		{Name: strPtr("TOTAAL"), Price: numPtr(23.50)},
		{Name: strPtr("Subtotal"), Price: numPtr(20.00)},
		{Name: strPtr("BTW"), Price: numPtr(3.50)},
		{Name: strPtr("KORTING"), Price: numPtr(-1.00)},
		{Name: strPtr("Discount"), Price: numPtr(-0.50)},
		{Name: strPtr("Visa"), Price: nil},
		{Name: strPtr("cash"), Price: nil},
		{Name: strPtr("Bancontact"), Price: nil},
		{Name: strPtr("Brood volkoren"), Price: numPtr(2.15)},
	}

	got := FilterItems(items)

	assert.Len(t, got, 2)
	assert.Equal(t, "Melk halfvol", *got[0].Name)
	assert.Equal(t, "Brood volkoren", *got[1].Name)
}

func TestFilterItems_DropsCodesAndAmounts(t *testing.T) {
	items := []Item{
		{Name: strPtr("123456")},
		{Name: strPtr("AB12CD")},
		{Name: strPtr("€12,99")},
		{Name: strPtr("4,50")},
		{Name: strPtr("Kaas jong belegen"), Price: numPtr(4.99)},
	}

	got := FilterItems(items)

	assert.Len(t, got, 1)
	assert.Equal(t, "Kaas jong belegen", *got[0].Name)
}

func TestFilterItems_DropsMissingAndLowLetterNames(t *testing.T) {
	items := []Item{
		{Name: nil, Price: numPtr(1.00)},
		{Name: strPtr(""), Price: numPtr(1.00)},
		{Name: strPtr("-- ## 12 --"), Price: numPtr(1.00)},
		{Name: strPtr("Appels Elstar"), Price: numPtr(2.49)},
	}

	got := FilterItems(items)

	assert.Len(t, got, 1)
	assert.Equal(t, "Appels Elstar", *got[0].Name)
}

func TestFilterItems_Idempotent(t *testing.T) {
	items := []Item{
		{Name: strPtr("Melk"), Price: numPtr(1.29)},
		{Name: strPtr("TOTAAL"), Price: numPtr(10.00)},
		{Name: strPtr("Brood"), Price: numPtr(2.15)},
	}

	once := FilterItems(items)
	twice := FilterItems(once)

	assert.Equal(t, once, twice)
}

func TestFilterItems_EmptyInput(t *testing.T) {
	assert.Empty(t, FilterItems(nil))
	assert.Empty(t, FilterItems([]Item{}))
}
