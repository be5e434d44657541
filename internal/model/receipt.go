package model

import (
	"time"

	"github.com/google/uuid"
)

// Receipt is a finalized sale. It is created atomically with its items and
// the matching stock decrements, and is immutable afterwards except for
// full deletion.
type Receipt struct {
	BaseModel
	CustomerName    string    `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerAddress string    `gorm:"type:varchar(255)" json:"customer_address"`
	CustomerTIN     string    `gorm:"type:varchar(50)" json:"customer_tin"`
	TotalPrice      float64   `gorm:"type:numeric(12,2);not null" json:"total_price"`
	DiscountType    string    `gorm:"type:varchar(20)" json:"discount_type"`
	DiscountPercent float64   `gorm:"type:numeric(5,2)" json:"discount_percent"`
	DiscountAmount  float64   `gorm:"type:numeric(12,2)" json:"discount_amount"`
	NetPay          float64   `gorm:"type:numeric(12,2);not null" json:"net_pay"`
	CashGiven       float64   `gorm:"type:numeric(12,2)" json:"cash_given"`
	ChangeAmount    float64   `gorm:"type:numeric(12,2)" json:"change_amount"`
	PaymentMethod   string    `gorm:"type:varchar(20)" json:"payment_method"`
	VatableSale     float64   `gorm:"type:numeric(12,2)" json:"vatable_sale"`
	VatAmount       float64   `gorm:"type:numeric(12,2)" json:"vat_amount"`
	TransactionDate time.Time `gorm:"not null;index" json:"transaction_date"`

	Items []ReceiptItem `gorm:"foreignKey:ReceiptID" json:"items,omitempty"`
}

// ReceiptItem is one sold line. ProductID deliberately has no foreign key
// constraint: deleting a product must not touch sales history, so the name
// and price are snapshotted here.
type ReceiptItem struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReceiptID   uuid.UUID `gorm:"type:uuid;not null;index" json:"receipt_id"`
	ProductID   uuid.UUID `gorm:"type:uuid" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Price       float64   `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}
