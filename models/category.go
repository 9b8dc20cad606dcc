package models

// Category is a product category: one of the seeded canonical names or a
// user-defined one. No soft delete here: removing a category must fire the
// SET NULL constraint on receipt items instead of leaving dangling
// references behind.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}

func (Category) TableName() string {
	return "categories"
}

// Canonical category names. The ingestion pipeline only ever selects from
// this set; the CRUD path may add custom categories on top of it.
const (
	CategoryGroceries = "Boodschappen"
	CategoryHousehold = "Huishouden"
	CategoryTransport = "Verkeer & Vervoer"
	CategoryHealth    = "Gezondheid & Zorg"
	CategoryLeisure   = "Vrije Tijd & Uitgaan"
	CategoryRetail    = "Winkels & Kleding"
	CategoryFinancial = "Financieel & Diensten"
	CategoryOther     = "Overig"
)

// CategoryUnknownLabel is what an item without a resolved category is called
// at the API boundary. It is a display sentinel, not a category row.
const CategoryUnknownLabel = "Onbekend"

// GetCategories returns the canonical category names in seed order.
func GetCategories() []string {
	return []string{
		CategoryGroceries,
		CategoryHousehold,
		CategoryTransport,
		CategoryHealth,
		CategoryLeisure,
		CategoryRetail,
		CategoryFinancial,
		CategoryOther,
	}
}
