package models

import (
	"time"
)

// Receipt is one saved purchase receipt, owned by exactly one user. A
// receipt and its items form a single unit of change: every create or
// update happens in one transaction, and edits replace the items wholesale.
type Receipt struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	UserID        uint          `json:"user_id" gorm:"index;not null"`
	StoreName     string        `json:"store_name" gorm:"size:255;not null"`
	PurchaseDate  string        `json:"purchase_date" gorm:"type:date;not null"`
	PurchaseTime  string        `json:"purchase_time" gorm:"size:8;not null"`
	PaymentMethod string        `json:"payment_method" gorm:"size:50"`
	TotalAmount   float64       `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	RawOCRText    string        `json:"raw_ocr_text,omitempty" gorm:"column:raw_ocr_text;type:text"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	User          User          `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Items         []ReceiptItem `json:"-" gorm:"foreignKey:ReceiptID"`
}

func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptItem is a single purchased product line on a receipt. The category
// reference is nullable: deleting a category uncategorizes the item, it
// never deletes it. Quantity is decimal(8,3) because weight-based items
// (0.5 kg of cheese) produce fractional quantities.
type ReceiptItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ReceiptID   uint      `json:"receipt_id" gorm:"index;not null"`
	CategoryID  *uint     `json:"category_id" gorm:"index"`
	ProductName string    `json:"product_name" gorm:"size:255;not null"`
	Quantity    float64   `json:"quantity" gorm:"type:decimal(8,3);default:1"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Receipt     *Receipt  `json:"-" gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE"`
	Category    *Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

func (ReceiptItem) TableName() string {
	return "receipt_items"
}
