package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeTotal(t *testing.T) {
	items := []Item{
		{Name: strPtr("Melk"), Quantity: numPtr(2), Price: numPtr(1.29)},
		{Name: strPtr("Brood"), Quantity: numPtr(1), Price: numPtr(2.15)},
	}

	assert.Equal(t, 4.73, RecomputeTotal(items))
}

func TestRecomputeTotal_MissingQuantityCountsAsOne(t *testing.T) {
	items := []Item{
		{Name: strPtr("Koffie"), Price: numPtr(2.50)},
		{Name: strPtr("Thee"), Quantity: numPtr(3), Price: numPtr(1.10)},
	}

	assert.Equal(t, 5.80, RecomputeTotal(items))
}

func TestRecomputeTotal_SkipsUnpricedItems(t *testing.T) {
	items := []Item{
		{Name: strPtr("Koffie"), Quantity: numPtr(2)},
		{Name: strPtr("Thee"), Quantity: numPtr(1), Price: numPtr(1.10)},
	}

	assert.Equal(t, 1.10, RecomputeTotal(items))
}

func TestRecomputeTotal_RoundsToCents(t *testing.T) {
	items := []Item{
		{Name: strPtr("Snoep"), Quantity: numPtr(3), Price: numPtr(0.10)},
	}

	// 3 * 0.10 accumulates a binary-float remainder without the final round.
	assert.Equal(t, 0.30, RecomputeTotal(items))
}

func TestRecomputeTotal_Empty(t *testing.T) {
	assert.Equal(t, 0.0, RecomputeTotal(nil))
}
