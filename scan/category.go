package scan

import (
	"log"

	"kassabon/models"
)

// Store types the model is asked to choose from. Anything else is treated
// as StoreTypeUnknown.
const (
	StoreTypeSupermarket   = "supermarket"
	StoreTypeClothing      = "clothing"
	StoreTypeElectronics   = "electronics"
	StoreTypeRestaurant    = "restaurant"
	StoreTypePharmacy      = "pharmacy"
	StoreTypePetrolStation = "petrol_station"
	StoreTypeHardware      = "hardware"
	StoreTypeUnknown       = "unknown"
)

var validCategories = func() map[string]bool {
	m := make(map[string]bool)
	for _, name := range models.GetCategories() {
		m[name] = true
	}
	return m
}()

var primaryCategoryByStoreType = map[string]string{
	StoreTypeSupermarket:   models.CategoryGroceries,
	StoreTypeClothing:      models.CategoryRetail,
	StoreTypeElectronics:   models.CategoryRetail,
	StoreTypeRestaurant:    models.CategoryLeisure,
	StoreTypePharmacy:      models.CategoryHealth,
	StoreTypePetrolStation: models.CategoryTransport,
	StoreTypeHardware:      models.CategoryHousehold,
	StoreTypeUnknown:       models.CategoryOther,
}

// IsMixedTypeStore reports whether items from this store type may carry
// independent categories. Only supermarkets sell across categories; every
// other recognized store type forces a single category on all items.
func IsMixedTypeStore(storeType string) bool {
	return storeType == StoreTypeSupermarket
}

// ValidateCategory returns the candidate unchanged when it is exactly one of
// the canonical category names, and the Overig fallback otherwise. The
// model's category vocabulary is untrusted; this is the gate that keeps it
// from drifting into storage.
func ValidateCategory(candidate *string) string {
	if candidate == nil || *candidate == "" {
		return models.CategoryOther
	}
	if validCategories[*candidate] {
		return *candidate
	}
	log.Printf("invalid category %q detected, defaulting to %q", *candidate, models.CategoryOther)
	return models.CategoryOther
}

// ResolvePrimaryCategory maps a store type to the category all of its items
// inherit when the store is single-type.
func ResolvePrimaryCategory(storeType string) string {
	if category, ok := primaryCategoryByStoreType[storeType]; ok {
		return category
	}
	return models.CategoryOther
}
