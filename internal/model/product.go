package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is one stocked medicine. Quantity is the live on-hand count and
// is only ever decremented inside the receipt transaction.
type Product struct {
	BaseModel
	MedicineID   string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"medicine_id" validate:"required"`
	SupplierName string    `gorm:"type:varchar(255);not null" json:"supplier_name" validate:"required"`
	MedicineName string    `gorm:"type:varchar(255)" json:"medicine_name"`
	GenericName  string    `gorm:"type:varchar(255);not null" json:"generic_name" validate:"required"`
	BrandName    string    `gorm:"type:varchar(255);not null" json:"brand_name" validate:"required"`
	CategoryID   uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category     *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"`
	Description  string    `gorm:"type:text" json:"description"`
	Form         string    `gorm:"type:varchar(50)" json:"form"`
	Strength     string    `gorm:"type:varchar(50)" json:"strength"`
	Unit         string    `gorm:"type:varchar(20)" json:"unit"`
	ReorderLevel int       `gorm:"default:0" json:"reorder_level"`
	Price        float64   `gorm:"type:numeric(12,2);not null" json:"price" validate:"required,gt=0"`
	Quantity     int       `gorm:"default:0" json:"quantity" validate:"gte=0"`
	DeliveryDate time.Time `gorm:"type:date" json:"delivery_date"`
	Barcode      string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"barcode" validate:"required"`
	ImagePath    string    `gorm:"type:varchar(255)" json:"image_path,omitempty"`
}
